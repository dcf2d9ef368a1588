// Package testutil provides an in-memory database and seed helpers for
// package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormLogger "gorm.io/gorm/logger"

	"schoolku_backend/internals/configs"
	"schoolku_backend/internals/constants"
	database "schoolku_backend/internals/databases"
	authzModel "schoolku_backend/internals/features/platform/authz/model"
	authHelper "schoolku_backend/internals/features/users/auth/helper"
	tenantModel "schoolku_backend/internals/features/platform/tenants/model"
	userModel "schoolku_backend/internals/features/users/user/model"
	helper "schoolku_backend/internals/helpers"
)

const (
	JWTSecret = "test-secret"
	Password  = "password123"
)

// NewDB opens a fresh migrated in-memory database. One connection keeps
// every statement on the same memory instance.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	configs.JWTSecret = JWTSecret
	configs.App.JWTSecret = JWTSecret
	configs.App.Env = "test"
	authHelper.BcryptCost = bcrypt.MinCost

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// NewApp returns a Fiber app wired with the production error handler.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
}

// WithIdentity stands in for AuthMiddleware in handler tests.
func WithIdentity(userID, tenantID uuid.UUID) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(helper.LocalUserID, userID.String())
		c.Locals(helper.LocalTenantID, tenantID.String())
		return c.Next()
	}
}

func SeedTenant(t testing.TB, db *gorm.DB, name string) *tenantModel.TenantModel {
	t.Helper()
	slug := name + "-" + uuid.NewString()[:8]
	tn := &tenantModel.TenantModel{
		Name:   name,
		Email:  slug + "@school.test",
		Domain: slug + ".school.test",
		Status: tenantModel.TenantActive,
	}
	require.NoError(t, db.Create(tn).Error)
	return tn
}

func SeedUser(t testing.TB, db *gorm.DB, tenantID uuid.UUID, email string) *userModel.UserModel {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &userModel.UserModel{
		TenantID:  tenantID,
		Email:     email,
		Password:  string(hash),
		FirstName: "Test",
		LastName:  "User",
		Status:    userModel.UserActive,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// SeedRole creates a tenant role granting perms, creating catalog rows as needed.
func SeedRole(t testing.TB, db *gorm.DB, tenantID uuid.UUID, name string, perms ...string) *authzModel.RoleModel {
	t.Helper()
	tid := tenantID
	role := &authzModel.RoleModel{TenantID: &tid, Name: name}
	require.NoError(t, db.Create(role).Error)
	grant(t, db, role.ID, perms)
	return role
}

// SeedSystemRole creates a tenant-less system role.
func SeedSystemRole(t testing.TB, db *gorm.DB, name string, perms ...string) *authzModel.RoleModel {
	t.Helper()
	role := &authzModel.RoleModel{Name: name, IsSystem: true}
	require.NoError(t, db.Create(role).Error)
	grant(t, db, role.ID, perms)
	return role
}

func grant(t testing.TB, db *gorm.DB, roleID uuid.UUID, perms []string) {
	t.Helper()
	for _, name := range perms {
		res, act := constants.SplitPermission(name)
		p := authzModel.PermissionModel{Name: name, Resource: res, Action: act}
		require.NoError(t, db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&p).Error)

		var stored authzModel.PermissionModel
		require.NoError(t, db.Where("name = ?", name).First(&stored).Error)
		require.NoError(t, db.Create(&authzModel.RolePermissionModel{RoleID: roleID, PermissionID: stored.ID}).Error)
	}
}

func AssignRole(t testing.TB, db *gorm.DB, userID, roleID, tenantID uuid.UUID) {
	t.Helper()
	require.NoError(t, db.Create(&authzModel.UserRoleModel{
		UserID:   userID,
		RoleID:   roleID,
		TenantID: tenantID,
	}).Error)
}

// SeedAdmin creates a user holding a role with every tenant-level permission.
func SeedAdmin(t testing.TB, db *gorm.DB, tenantID uuid.UUID) *userModel.UserModel {
	t.Helper()
	u := SeedUser(t, db, tenantID, "admin-"+uuid.NewString()[:8]+"@school.test")
	var role authzModel.RoleModel
	err := db.Where("tenant_id = ? AND name = ?", tenantID, constants.RoleAdmin).First(&role).Error
	if err != nil {
		role = *SeedRole(t, db, tenantID, constants.RoleAdmin, constants.TenantAdminPermissions()...)
	}
	AssignRole(t, db, u.ID, role.ID, tenantID)
	return u
}

// Token signs an access token the way the login endpoint does.
func Token(t testing.TB, userID, tenantID uuid.UUID, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":        userID.String(),
		"tenant_id": tenantID.String(),
		"exp":       time.Now().Add(ttl).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(JWTSecret))
	require.NoError(t, err)
	return tok
}
