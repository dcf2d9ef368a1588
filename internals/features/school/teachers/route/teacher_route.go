package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	authzService "schoolku_backend/internals/features/platform/authz/service"
	"schoolku_backend/internals/features/school/teachers/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

func TeacherRoutes(api fiber.Router, db *gorm.DB, az *authzService.Authorizer) {
	ctl := controller.NewTeacherController(db)

	g := api.Group("/teachers")
	g.Get("/", authMiddleware.Authorize(az, constants.PermTeachersRead), ctl.List)
	g.Post("/", authMiddleware.Authorize(az, constants.PermTeachersCreate), ctl.Create)
	g.Get("/:id", authMiddleware.Authorize(az, constants.PermTeachersRead), ctl.Get)
	g.Put("/:id", authMiddleware.Authorize(az, constants.PermTeachersUpdate), ctl.Update)
	g.Delete("/:id", authMiddleware.Authorize(az, constants.PermTeachersDelete), ctl.Delete)

	g.Post("/:teacherId/subjects", authMiddleware.Authorize(az, constants.PermTeachersUpdate), ctl.AssignSubject)
	g.Delete("/:teacherId/subjects/:subjectId", authMiddleware.Authorize(az, constants.PermTeachersUpdate), ctl.RemoveSubject)
}
