package controller_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/features/school/schedules/controller"
	"schoolku_backend/internals/testutil"
)

func TestExportServesAttachment(t *testing.T) {
	db := testutil.NewDB(t)
	tn := testutil.SeedTenant(t, db, "alpha")
	admin := testutil.SeedAdmin(t, db, tn.ID)

	ctl := controller.NewScheduleController(db)
	app := testutil.NewApp()
	app.Use(testutil.WithIdentity(admin.ID, tn.ID))
	app.Post("/schedules", ctl.Create)
	app.Get("/schedules/export", ctl.Export)

	body := `{"title":"Math","type":"CLASS","date":"2026-05-04","startTime":"09:00","endTime":"10:00"}`
	req := httptest.NewRequest(fiber.MethodPost, "/schedules", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/schedules/export?format=csv", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "attachment")
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), ".csv")
	out, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(out), `"Math","CLASS","2026-05-04","09:00","10:00"`)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/schedules/export?format=pdf", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateRejectsReversedTimes(t *testing.T) {
	db := testutil.NewDB(t)
	tn := testutil.SeedTenant(t, db, "alpha")
	admin := testutil.SeedAdmin(t, db, tn.ID)

	ctl := controller.NewScheduleController(db)
	app := testutil.NewApp()
	app.Use(testutil.WithIdentity(admin.ID, tn.ID))
	app.Post("/schedules", ctl.Create)

	body := `{"title":"Math","type":"CLASS","date":"2026-05-04","startTime":"10:00","endTime":"09:00"}`
	req := httptest.NewRequest(fiber.MethodPost, "/schedules", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	out, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(out), "end time must be after start time")
}
