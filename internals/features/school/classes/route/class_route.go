package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	authzService "schoolku_backend/internals/features/platform/authz/service"
	"schoolku_backend/internals/features/school/classes/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

func ClassRoutes(api fiber.Router, db *gorm.DB, az *authzService.Authorizer) {
	ctl := controller.NewClassController(db)

	g := api.Group("/classes")
	g.Get("/", authMiddleware.Authorize(az, constants.PermClassesRead), ctl.List)
	g.Post("/", authMiddleware.Authorize(az, constants.PermClassesCreate), ctl.Create)
	g.Get("/:id", authMiddleware.Authorize(az, constants.PermClassesRead), ctl.Get)
	g.Get("/:id/students", authMiddleware.Authorize(az, constants.PermClassesRead, constants.PermStudentsRead), ctl.Students)
	g.Put("/:id", authMiddleware.Authorize(az, constants.PermClassesUpdate), ctl.Update)
	g.Delete("/:id", authMiddleware.Authorize(az, constants.PermClassesDelete), ctl.Delete)

	g.Post("/:id/enrollments", authMiddleware.Authorize(az, constants.PermClassesUpdate), ctl.Enroll)
	g.Delete("/:id/enrollments/:studentId", authMiddleware.Authorize(az, constants.PermClassesUpdate), ctl.Withdraw)
}
