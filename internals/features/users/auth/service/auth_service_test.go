package service_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	tenantModel "schoolku_backend/internals/features/platform/tenants/model"
	authzService "schoolku_backend/internals/features/platform/authz/service"
	authRoute "schoolku_backend/internals/features/users/auth/route"
	userModel "schoolku_backend/internals/features/users/user/model"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
	"schoolku_backend/internals/testutil"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newAuthApp(db *gorm.DB) *fiber.App {
	app := testutil.NewApp()
	az := authzService.NewAuthorizer(db)
	api := app.Group("/api")
	authRoute.AuthPublicRoutes(api, db, az)
	authRoute.AuthProtectedRoutes(api.Group("", authMiddleware.AuthMiddleware(db)), db, az)
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var env envelope
	_ = json.NewDecoder(resp.Body).Decode(&env)
	return resp.StatusCode, env
}

func login(t *testing.T, app *fiber.App, domain, email, password string) (int, envelope) {
	return call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"domain": domain, "email": email, "password": password,
	})
}

func TestLoginAndMe(t *testing.T) {
	db := testutil.NewDB(t)
	tn := testutil.SeedTenant(t, db, "alpha")
	u := testutil.SeedUser(t, db, tn.ID, "teacher@alpha.test")
	role := testutil.SeedRole(t, db, tn.ID, constants.RoleTeacher, constants.PermSchedulesRead)
	testutil.AssignRole(t, db, u.ID, role.ID, tn.ID)
	app := newAuthApp(db)

	status, env := login(t, app, tn.Domain, u.Email, testutil.Password)
	require.Equal(t, fiber.StatusOK, status)
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)

	status, env = call(t, app, http.MethodGet, "/api/auth/me", data.Token, nil)
	require.Equal(t, fiber.StatusOK, status)
	var me struct {
		Roles       []string `json:"roles"`
		Permissions []string `json:"permissions"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, []string{constants.RoleTeacher}, me.Roles)
	assert.Equal(t, []string{constants.PermSchedulesRead}, me.Permissions)

	var stored userModel.UserModel
	require.NoError(t, db.First(&stored, "id = ?", u.ID).Error)
	assert.NotNil(t, stored.LastLoginAt)
}

func TestLoginFailuresShareMessage(t *testing.T) {
	db := testutil.NewDB(t)
	tn := testutil.SeedTenant(t, db, "alpha")
	u := testutil.SeedUser(t, db, tn.ID, "u@alpha.test")
	app := newAuthApp(db)

	s1, e1 := login(t, app, tn.Domain, u.Email, "wrong-password1")
	s2, e2 := login(t, app, tn.Domain, "ghost@alpha.test", testutil.Password)
	s3, e3 := login(t, app, "nowhere.test", u.Email, testutil.Password)

	assert.Equal(t, fiber.StatusUnauthorized, s1)
	assert.Equal(t, fiber.StatusUnauthorized, s2)
	assert.Equal(t, fiber.StatusUnauthorized, s3)
	assert.Equal(t, e1.Message, e2.Message)
	assert.Equal(t, e1.Message, e3.Message)
}

func TestLoginInactiveUser(t *testing.T) {
	db := testutil.NewDB(t)
	tn := testutil.SeedTenant(t, db, "alpha")
	u := testutil.SeedUser(t, db, tn.ID, "u@alpha.test")
	require.NoError(t, db.Model(u).Update("status", userModel.UserInactive).Error)

	status, _ := login(t, newAuthApp(db), tn.Domain, u.Email, testutil.Password)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestLoginSuspendedTenant(t *testing.T) {
	db := testutil.NewDB(t)
	tn := testutil.SeedTenant(t, db, "alpha")
	u := testutil.SeedUser(t, db, tn.ID, "u@alpha.test")
	require.NoError(t, db.Model(tn).Update("status", tenantModel.TenantSuspended).Error)

	status, _ := login(t, newAuthApp(db), tn.Domain, u.Email, testutil.Password)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestLogoutRevokesToken(t *testing.T) {
	db := testutil.NewDB(t)
	tn := testutil.SeedTenant(t, db, "alpha")
	u := testutil.SeedUser(t, db, tn.ID, "u@alpha.test")
	app := newAuthApp(db)
	tok := testutil.Token(t, u.ID, tn.ID, time.Hour)

	status, _ := call(t, app, http.MethodPost, "/api/auth/logout", tok, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, _ = call(t, app, http.MethodGet, "/api/auth/me", tok, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestRegister(t *testing.T) {
	db := testutil.NewDB(t)
	tn := testutil.SeedTenant(t, db, "alpha")
	app := newAuthApp(db)

	body := map[string]string{
		"domain":    tn.Domain,
		"email":     "New@Alpha.test",
		"password":  "secret123",
		"firstName": "Nia",
		"lastName":  "Rahma",
	}
	status, _ := call(t, app, http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = call(t, app, http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, fiber.StatusConflict, status)

	body["email"] = "weak@alpha.test"
	body["password"] = "onlyletters"
	status, _ = call(t, app, http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = login(t, app, tn.Domain, "new@alpha.test", "secret123")
	assert.Equal(t, fiber.StatusOK, status)
}
