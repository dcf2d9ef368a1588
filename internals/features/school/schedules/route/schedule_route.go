package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	authzService "schoolku_backend/internals/features/platform/authz/service"
	"schoolku_backend/internals/features/school/schedules/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

func ScheduleRoutes(api fiber.Router, db *gorm.DB, az *authzService.Authorizer) {
	ctl := controller.NewScheduleController(db)

	g := api.Group("/schedules")
	g.Get("/", authMiddleware.Authorize(az, constants.PermSchedulesRead), ctl.List)
	g.Post("/", authMiddleware.Authorize(az, constants.PermSchedulesCreate), ctl.Create)
	// static paths before /:id
	g.Get("/stats", authMiddleware.Authorize(az, constants.PermSchedulesRead), ctl.Stats)
	g.Get("/export", authMiddleware.Authorize(az, constants.PermSchedulesRead), ctl.Export)
	g.Get("/:id", authMiddleware.Authorize(az, constants.PermSchedulesRead), ctl.Get)
	g.Put("/:id", authMiddleware.Authorize(az, constants.PermSchedulesUpdate), ctl.Update)
	g.Delete("/:id", authMiddleware.Authorize(az, constants.PermSchedulesDelete), ctl.Delete)
}
