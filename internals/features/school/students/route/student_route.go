package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	authzService "schoolku_backend/internals/features/platform/authz/service"
	"schoolku_backend/internals/features/school/students/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

func StudentRoutes(api fiber.Router, db *gorm.DB, az *authzService.Authorizer) {
	ctl := controller.NewStudentController(db)

	g := api.Group("/students")
	g.Get("/", authMiddleware.Authorize(az, constants.PermStudentsRead), ctl.List)
	g.Post("/", authMiddleware.Authorize(az, constants.PermStudentsCreate), ctl.Create)
	g.Get("/:id", authMiddleware.Authorize(az, constants.PermStudentsRead), ctl.Get)
	g.Put("/:id", authMiddleware.Authorize(az, constants.PermStudentsUpdate), ctl.Update)
	g.Delete("/:id", authMiddleware.Authorize(az, constants.PermStudentsDelete), ctl.Delete)
}
