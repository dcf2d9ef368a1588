package auth_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	authzService "schoolku_backend/internals/features/platform/authz/service"
	authModel "schoolku_backend/internals/features/users/auth/model"
	userModel "schoolku_backend/internals/features/users/user/model"
	"schoolku_backend/internals/middlewares/auth"
	"schoolku_backend/internals/testutil"
)

func newProtectedApp(db *gorm.DB, perms ...string) *fiber.App {
	app := testutil.NewApp()
	az := authzService.NewAuthorizer(db)
	app.Get("/protected",
		auth.AuthMiddleware(db),
		auth.Authorize(az, perms...),
		func(c *fiber.Ctx) error { return c.SendString("ok") },
	)
	return app
}

func doGet(t *testing.T, app *fiber.App, token string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	db := testutil.NewDB(t)
	app := newProtectedApp(db, constants.PermTeachersRead)
	assert.Equal(t, fiber.StatusUnauthorized, doGet(t, app, ""))
	assert.Equal(t, fiber.StatusUnauthorized, doGet(t, app, "not-a-jwt"))
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	db := testutil.NewDB(t)
	tn := testutil.SeedTenant(t, db, "alpha")
	u := testutil.SeedUser(t, db, tn.ID, "u@alpha.test")

	app := newProtectedApp(db)
	tok := testutil.Token(t, u.ID, tn.ID, -time.Hour)
	assert.Equal(t, fiber.StatusUnauthorized, doGet(t, app, tok))
}

func TestAuthMiddlewareRejectsWrongTenantClaim(t *testing.T) {
	db := testutil.NewDB(t)
	a := testutil.SeedTenant(t, db, "alpha")
	b := testutil.SeedTenant(t, db, "beta")
	u := testutil.SeedUser(t, db, a.ID, "u@alpha.test")

	app := newProtectedApp(db)
	assert.Equal(t, fiber.StatusUnauthorized, doGet(t, app, testutil.Token(t, u.ID, b.ID, time.Hour)))
}

func TestAuthMiddlewareInactiveUserForbidden(t *testing.T) {
	db := testutil.NewDB(t)
	tn := testutil.SeedTenant(t, db, "alpha")
	u := testutil.SeedUser(t, db, tn.ID, "u@alpha.test")
	require.NoError(t, db.Model(u).Update("status", userModel.UserSuspended).Error)

	app := newProtectedApp(db)
	assert.Equal(t, fiber.StatusForbidden, doGet(t, app, testutil.Token(t, u.ID, tn.ID, time.Hour)))
}

func TestAuthMiddlewareBlacklistedToken(t *testing.T) {
	db := testutil.NewDB(t)
	tn := testutil.SeedTenant(t, db, "alpha")
	u := testutil.SeedUser(t, db, tn.ID, "u@alpha.test")
	tok := testutil.Token(t, u.ID, tn.ID, time.Hour)

	app := newProtectedApp(db)
	assert.Equal(t, fiber.StatusOK, doGet(t, app, tok))

	require.NoError(t, db.Create(&authModel.TokenBlacklist{Token: tok, ExpiredAt: time.Now().Add(time.Hour)}).Error)
	assert.Equal(t, fiber.StatusUnauthorized, doGet(t, app, tok))
}

func TestAuthorizeRequiresEveryPermission(t *testing.T) {
	db := testutil.NewDB(t)
	tn := testutil.SeedTenant(t, db, "alpha")
	u := testutil.SeedUser(t, db, tn.ID, "u@alpha.test")
	role := testutil.SeedRole(t, db, tn.ID, "Teacher", constants.PermSchedulesRead)
	testutil.AssignRole(t, db, u.ID, role.ID, tn.ID)
	tok := testutil.Token(t, u.ID, tn.ID, time.Hour)

	assert.Equal(t, fiber.StatusOK, doGet(t, newProtectedApp(db, constants.PermSchedulesRead), tok))
	assert.Equal(t, fiber.StatusForbidden,
		doGet(t, newProtectedApp(db, constants.PermSchedulesRead, constants.PermSchedulesCreate), tok))
}

func TestAuthorizeWithoutIdentity(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp()
	app.Get("/protected",
		auth.Authorize(authzService.NewAuthorizer(db), constants.PermSchedulesRead),
		func(c *fiber.Ctx) error { return c.SendString("ok") },
	)
	assert.Equal(t, fiber.StatusUnauthorized, doGet(t, app, ""))
}
