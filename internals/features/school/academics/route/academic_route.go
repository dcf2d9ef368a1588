package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	authzService "schoolku_backend/internals/features/platform/authz/service"
	"schoolku_backend/internals/features/school/academics/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

func AcademicRoutes(api fiber.Router, db *gorm.DB, az *authzService.Authorizer) {
	ctl := controller.NewAcademicController(db)

	api.Get("/grades", authMiddleware.Authorize(az, constants.PermGradesRead), ctl.ListGrades)
	api.Post("/grades", authMiddleware.Authorize(az, constants.PermGradesCreate), ctl.CreateGrade)

	api.Get("/attendance", authMiddleware.Authorize(az, constants.PermAttendanceRead), ctl.ListAttendance)
	api.Post("/attendance", authMiddleware.Authorize(az, constants.PermAttendanceCreate), ctl.CreateAttendance)

	api.Get("/academic-records", authMiddleware.Authorize(az, constants.PermRecordsRead), ctl.ListAcademicRecords)
	api.Post("/academic-records", authMiddleware.Authorize(az, constants.PermRecordsCreate), ctl.CreateAcademicRecord)

	api.Get("/health-records", authMiddleware.Authorize(az, constants.PermRecordsRead), ctl.ListHealthRecords)
	api.Post("/health-records", authMiddleware.Authorize(az, constants.PermRecordsCreate), ctl.CreateHealthRecord)
}
