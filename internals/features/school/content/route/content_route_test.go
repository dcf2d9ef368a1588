package route_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/constants"
	authzService "schoolku_backend/internals/features/platform/authz/service"
	"schoolku_backend/internals/features/school/content/dto"
	"schoolku_backend/internals/features/school/content/route"
	"schoolku_backend/internals/features/school/content/service"
	"schoolku_backend/internals/helpers/storage"
	"schoolku_backend/internals/middlewares/auth"
	"schoolku_backend/internals/testutil"
)

var pdf = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

func TestDownloadRequiresTenantAndPermission(t *testing.T) {
	db := testutil.NewDB(t)
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	alpha := testutil.SeedTenant(t, db, "alpha")
	beta := testutil.SeedTenant(t, db, "beta")
	admin := testutil.SeedAdmin(t, db, alpha.ID)
	outsider := testutil.SeedAdmin(t, db, beta.ID)
	clerk := testutil.SeedUser(t, db, alpha.ID, "clerk@alpha.test")
	testutil.AssignRole(t, db, clerk.ID, testutil.SeedRole(t, db, alpha.ID, "Clerk", constants.PermUsersRead).ID, alpha.ID)

	m, err := service.NewContentService(db, store).Upload(context.Background(), alpha.ID, admin.ID,
		dto.CreateContentRequest{Title: "Syllabus"}, service.File{Name: "syllabus.pdf", Data: pdf})
	require.NoError(t, err)
	assert.Equal(t, service.DownloadPath(m.ID), m.URL)

	app := testutil.NewApp()
	api := app.Group("/api", auth.AuthMiddleware(db))
	route.ContentRoutes(api, db, store, authzService.NewAuthorizer(db))

	get := func(token string) (*http.Response, []byte) {
		req := httptest.NewRequest(fiber.MethodGet, m.URL, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp, b
	}
	code := func(token string) int {
		resp, _ := get(token)
		return resp.StatusCode
	}

	assert.Equal(t, fiber.StatusUnauthorized, code(""))
	assert.Equal(t, fiber.StatusNotFound, code(testutil.Token(t, outsider.ID, beta.ID, time.Hour)))
	assert.Equal(t, fiber.StatusForbidden, code(testutil.Token(t, clerk.ID, alpha.ID, time.Hour)))

	resp, body := get(testutil.Token(t, admin.ID, alpha.ID, time.Hour))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "filename=syllabus.pdf")
	assert.Equal(t, pdf, body)
}
