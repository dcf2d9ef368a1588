package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	authzService "schoolku_backend/internals/features/platform/authz/service"
	"schoolku_backend/internals/features/school/parents/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

func ParentRoutes(api fiber.Router, db *gorm.DB, az *authzService.Authorizer) {
	ctl := controller.NewParentController(db)
	read := authMiddleware.Authorize(az, constants.PermParentsRead)
	update := authMiddleware.Authorize(az, constants.PermParentsUpdate)

	g := api.Group("/parents")
	g.Get("/", read, ctl.List)
	g.Post("/", authMiddleware.Authorize(az, constants.PermParentsCreate), ctl.Create)
	g.Get("/:id", read, ctl.Get)
	g.Put("/:id", update, ctl.Update)
	g.Delete("/:id", authMiddleware.Authorize(az, constants.PermParentsDelete), ctl.Delete)

	g.Get("/:id/relations", read, ctl.ListRelations)
	g.Post("/:id/relations", update, ctl.CreateRelation)
	g.Put("/:id/relations/:relationId", update, ctl.UpdateRelation)
	g.Delete("/:id/relations/:relationId", update, ctl.DeleteRelation)

	kids := g.Group("/:id/children/:studentId", read)
	kids.Get("/academic-records", ctl.ChildAcademicRecords)
	kids.Get("/attendance", ctl.ChildAttendance)
	kids.Get("/grades", ctl.ChildGrades)
	kids.Get("/schedule", ctl.ChildSchedule)
	kids.Get("/health-records", ctl.ChildHealthRecords)
}
