package seeds_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/configs"
	"schoolku_backend/internals/constants"
	authzModel "schoolku_backend/internals/features/platform/authz/model"
	authzService "schoolku_backend/internals/features/platform/authz/service"
	userModel "schoolku_backend/internals/features/users/user/model"
	"schoolku_backend/internals/seeds"
	"schoolku_backend/internals/testutil"
)

func TestRunAllSeedsWithoutOperator(t *testing.T) {
	db := testutil.NewDB(t)
	require.NoError(t, seeds.RunAllSeeds(context.Background(), db, configs.AppConfig{}))

	var perms int64
	require.NoError(t, db.Model(&authzModel.PermissionModel{}).Count(&perms).Error)
	assert.EqualValues(t, len(constants.AllPermissions), perms)

	var role authzModel.RoleModel
	require.NoError(t, db.Where("name = ?", constants.RoleSuperAdmin).First(&role).Error)
	assert.True(t, role.IsSystem)
	assert.Nil(t, role.TenantID)

	var users int64
	require.NoError(t, db.Model(&userModel.UserModel{}).Count(&users).Error)
	assert.Zero(t, users)
}

func TestRunAllSeedsIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	cfg := configs.AppConfig{
		PlatformDomain:     "Platform.Local",
		SuperAdminEmail:    "Root@Platform.Local",
		SuperAdminPassword: testutil.Password,
	}

	require.NoError(t, seeds.RunAllSeeds(ctx, db, cfg))
	require.NoError(t, seeds.RunAllSeeds(ctx, db, cfg))

	var users []userModel.UserModel
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "root@platform.local", users[0].Email)

	var roles int64
	require.NoError(t, db.Model(&authzModel.RoleModel{}).Count(&roles).Error)
	assert.EqualValues(t, 1, roles)

	var held int64
	require.NoError(t, db.Model(&authzModel.UserRoleModel{}).Count(&held).Error)
	assert.EqualValues(t, 1, held)

	set, err := authzService.NewAuthorizer(db).Permissions(ctx, users[0].ID, users[0].TenantID)
	require.NoError(t, err)
	assert.True(t, set.HasAll(constants.PermTenantsRead, constants.PermTenantsUpdate, constants.PermSchedulesCreate))
}
