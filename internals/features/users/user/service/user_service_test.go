package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userModel "schoolku_backend/internals/features/users/user/model"
	"schoolku_backend/internals/features/users/user/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/testutil"
)

func TestListScopedAndFiltered(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	a := testutil.SeedTenant(t, db, "alpha")
	b := testutil.SeedTenant(t, db, "beta")
	admin := testutil.SeedAdmin(t, db, a.ID)
	testutil.SeedUser(t, db, a.ID, "budi@alpha.test")
	testutil.SeedUser(t, db, b.ID, "budi@beta.test")

	svc := service.NewUserService(db)
	p := helper.Params{Page: 1, Limit: 10, SortBy: "email", SortOrder: "asc"}

	users, roles, total, err := svc.List(ctx, a.ID, service.ListFilter{}, p)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, users, 2)
	assert.Equal(t, []string{"Admin"}, roles[admin.ID])

	users, _, total, err = svc.List(ctx, a.ID, service.ListFilter{Search: "BUDI"}, p)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "budi@alpha.test", users[0].Email)

	_, _, total, err = svc.List(ctx, a.ID, service.ListFilter{Role: "Admin"}, p)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestUpdateStatus(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	a := testutil.SeedTenant(t, db, "alpha")
	b := testutil.SeedTenant(t, db, "beta")
	admin := testutil.SeedAdmin(t, db, a.ID)
	u := testutil.SeedUser(t, db, a.ID, "u@alpha.test")
	foreign := testutil.SeedUser(t, db, b.ID, "u@beta.test")

	svc := service.NewUserService(db)
	got, err := svc.UpdateStatus(ctx, a.ID, admin.ID, u.ID, userModel.UserSuspended)
	require.NoError(t, err)
	assert.Equal(t, userModel.UserSuspended, got.Status)

	_, err = svc.UpdateStatus(ctx, a.ID, admin.ID, admin.ID, userModel.UserInactive)
	assert.True(t, helper.IsKind(err, helper.KindValidation))

	_, err = svc.UpdateStatus(ctx, a.ID, admin.ID, foreign.ID, userModel.UserInactive)
	assert.True(t, helper.IsKind(err, helper.KindNotFound))
}
