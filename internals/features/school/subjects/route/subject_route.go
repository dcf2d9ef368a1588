package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	authzService "schoolku_backend/internals/features/platform/authz/service"
	"schoolku_backend/internals/features/school/subjects/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

func SubjectRoutes(api fiber.Router, db *gorm.DB, az *authzService.Authorizer) {
	ctl := controller.NewSubjectController(db)

	g := api.Group("/subjects")
	g.Get("/", authMiddleware.Authorize(az, constants.PermSubjectsRead), ctl.List)
	g.Post("/", authMiddleware.Authorize(az, constants.PermSubjectsCreate), ctl.Create)
	g.Get("/:id", authMiddleware.Authorize(az, constants.PermSubjectsRead), ctl.Get)
	g.Put("/:id", authMiddleware.Authorize(az, constants.PermSubjectsUpdate), ctl.Update)
	g.Delete("/:id", authMiddleware.Authorize(az, constants.PermSubjectsDelete), ctl.Delete)
}
