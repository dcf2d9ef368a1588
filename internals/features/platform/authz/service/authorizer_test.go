package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/platform/authz/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/testutil"
)

func TestPermissionSetHasAll(t *testing.T) {
	ps := service.NewPermissionSet("teachers:read", "teachers:create")

	assert.True(t, ps.HasAll("teachers:read"))
	assert.True(t, ps.HasAll("teachers:read", "teachers:create"))
	assert.False(t, ps.HasAll("teachers:read", "teachers:delete"))
	assert.True(t, ps.HasAll(), "no requirement is always satisfied")
	assert.Equal(t, []string{"teachers:delete"}, ps.Missing("teachers:read", "teachers:delete"))
	assert.Equal(t, []string{"teachers:create", "teachers:read"}, ps.List())
}

func TestPermissionsAreUnionOfRoles(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	tn := testutil.SeedTenant(t, db, "alpha")
	u := testutil.SeedUser(t, db, tn.ID, "u@alpha.test")

	r1 := testutil.SeedRole(t, db, tn.ID, "R1", constants.PermTeachersRead, constants.PermSubjectsRead)
	r2 := testutil.SeedRole(t, db, tn.ID, "R2", constants.PermSubjectsRead, constants.PermSchedulesCreate)
	testutil.AssignRole(t, db, u.ID, r1.ID, tn.ID)
	testutil.AssignRole(t, db, u.ID, r2.ID, tn.ID)

	az := service.NewAuthorizer(db)
	ps, err := az.Permissions(ctx, u.ID, tn.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{
		constants.PermSchedulesCreate,
		constants.PermSubjectsRead,
		constants.PermTeachersRead,
	}, ps.List())

	ok, err := az.HasPermission(ctx, u.ID, tn.ID, constants.PermTeachersDelete)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPermissionsZeroRoles(t *testing.T) {
	db := testutil.NewDB(t)
	tn := testutil.SeedTenant(t, db, "alpha")
	u := testutil.SeedUser(t, db, tn.ID, "u@alpha.test")

	ps, err := service.NewAuthorizer(db).Permissions(context.Background(), u.ID, tn.ID)
	require.NoError(t, err)
	assert.Empty(t, ps)
}

func TestPermissionsScopedToTenant(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	a := testutil.SeedTenant(t, db, "alpha")
	b := testutil.SeedTenant(t, db, "beta")
	u := testutil.SeedUser(t, db, a.ID, "u@alpha.test")

	role := testutil.SeedRole(t, db, a.ID, "Teacher", constants.PermTeachersRead)
	testutil.AssignRole(t, db, u.ID, role.ID, a.ID)

	az := service.NewAuthorizer(db)
	ps, err := az.Permissions(ctx, u.ID, b.ID)
	require.NoError(t, err)
	assert.Empty(t, ps, "grants in tenant A never apply to tenant B")
}

func TestSystemRoleOnlyCountsItsGrants(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	tn := testutil.SeedTenant(t, db, "alpha")
	u := testutil.SeedUser(t, db, tn.ID, "u@alpha.test")

	empty := testutil.SeedSystemRole(t, db, "Auditor")
	testutil.AssignRole(t, db, u.ID, empty.ID, tn.ID)

	az := service.NewAuthorizer(db)
	ps, err := az.Permissions(ctx, u.ID, tn.ID)
	require.NoError(t, err)
	assert.Empty(t, ps, "system flag grants nothing by itself")

	roles, err := az.Roles(ctx, u.ID, tn.ID)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, "Auditor", roles[0].Name)
}

func TestRoleServiceLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	tn := testutil.SeedTenant(t, db, "alpha")
	admin := testutil.SeedAdmin(t, db, tn.ID)
	u := testutil.SeedUser(t, db, tn.ID, "staff@alpha.test")

	svc := service.NewRoleService(db)
	role, err := svc.Create(ctx, tn.ID, "Librarian", "books", []string{constants.PermContentRead})
	require.NoError(t, err)
	require.Len(t, role.Permissions, 1)

	_, err = svc.Create(ctx, tn.ID, "librarian", "", nil)
	assert.True(t, helper.IsKind(err, helper.KindConflict))

	role, err = svc.SetPermissions(ctx, tn.ID, role.ID, []string{constants.PermContentRead, constants.PermContentCreate})
	require.NoError(t, err)
	assert.Len(t, role.Permissions, 2)

	_, err = svc.AssignRole(ctx, tn.ID, u.ID, role.ID, admin.ID)
	require.NoError(t, err)
	_, err = svc.AssignRole(ctx, tn.ID, u.ID, role.ID, admin.ID)
	assert.True(t, helper.IsKind(err, helper.KindConflict))

	ok, err := service.NewAuthorizer(db).HasPermission(ctx, u.ID, tn.ID, constants.PermContentCreate)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, svc.RevokeRole(ctx, tn.ID, u.ID, role.ID))
	err = svc.RevokeRole(ctx, tn.ID, u.ID, role.ID)
	assert.True(t, helper.IsKind(err, helper.KindNotFound))
}

func TestRoleServiceRejectsForeignTenant(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	a := testutil.SeedTenant(t, db, "alpha")
	b := testutil.SeedTenant(t, db, "beta")
	ub := testutil.SeedUser(t, db, b.ID, "u@beta.test")
	roleA := testutil.SeedRole(t, db, a.ID, "Clerk")

	svc := service.NewRoleService(db)
	_, err := svc.AssignRole(ctx, a.ID, ub.ID, roleA.ID, ub.ID)
	assert.True(t, helper.IsKind(err, helper.KindNotFound), "user of tenant B is invisible from tenant A")

	_, err = svc.SetPermissions(ctx, b.ID, roleA.ID, nil)
	assert.True(t, helper.IsKind(err, helper.KindNotFound))
}

func TestSetPermissionsUnknownName(t *testing.T) {
	db := testutil.NewDB(t)
	tn := testutil.SeedTenant(t, db, "alpha")
	role := testutil.SeedRole(t, db, tn.ID, "Clerk")

	_, err := service.NewRoleService(db).SetPermissions(context.Background(), tn.ID, role.ID, []string{"nope:read"})
	assert.True(t, helper.IsKind(err, helper.KindValidation))
}

func TestTenantRolesCannotCarryPlatformPermissions(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	tn := testutil.SeedTenant(t, db, "alpha")
	admin := testutil.SeedAdmin(t, db, tn.ID)

	svc := service.NewRoleService(db)
	_, err := svc.Create(ctx, tn.ID, "Escalate", "", []string{constants.PermTenantsUpdate, constants.PermTenantsRead})
	assert.True(t, helper.IsKind(err, helper.KindAuthorization))

	var n int64
	require.NoError(t, db.Table("roles").Where("name = ?", "Escalate").Count(&n).Error)
	assert.Zero(t, n, "rejected role is not created")

	role, err := svc.Create(ctx, tn.ID, "Clerk", "", []string{constants.PermContentRead})
	require.NoError(t, err)
	_, err = svc.SetPermissions(ctx, tn.ID, role.ID, []string{constants.PermContentRead, constants.PermTenantsUpdate})
	assert.True(t, helper.IsKind(err, helper.KindAuthorization))

	_, err = svc.AssignRole(ctx, tn.ID, admin.ID, role.ID, admin.ID)
	require.NoError(t, err)
	ps, err := service.NewAuthorizer(db).Permissions(ctx, admin.ID, tn.ID)
	require.NoError(t, err)
	assert.True(t, ps.Has(constants.PermContentRead))
	assert.False(t, ps.Has(constants.PermTenantsUpdate), "grant replacement was rolled back")
}

func TestPlatformGrantOnTenantRoleIsIgnored(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	tn := testutil.SeedTenant(t, db, "alpha")
	u := testutil.SeedUser(t, db, tn.ID, "u@alpha.test")

	// written straight to the tables, bypassing RoleService
	legacy := testutil.SeedRole(t, db, tn.ID, "Legacy", constants.PermTenantsUpdate, constants.PermUsersRead)
	testutil.AssignRole(t, db, u.ID, legacy.ID, tn.ID)
	ps, err := service.NewAuthorizer(db).Permissions(ctx, u.ID, tn.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{constants.PermUsersRead}, ps.List())

	sys := testutil.SeedSystemRole(t, db, "Operator", constants.PermTenantsUpdate)
	testutil.AssignRole(t, db, u.ID, sys.ID, tn.ID)
	ps, err = service.NewAuthorizer(db).Permissions(ctx, u.ID, tn.ID)
	require.NoError(t, err)
	assert.True(t, ps.Has(constants.PermTenantsUpdate))
}
