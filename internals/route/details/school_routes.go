package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authzService "schoolku_backend/internals/features/platform/authz/service"
	academicRoute "schoolku_backend/internals/features/school/academics/route"
	classRoute "schoolku_backend/internals/features/school/classes/route"
	contentRoute "schoolku_backend/internals/features/school/content/route"
	parentRoute "schoolku_backend/internals/features/school/parents/route"
	scheduleRoute "schoolku_backend/internals/features/school/schedules/route"
	studentRoute "schoolku_backend/internals/features/school/students/route"
	subjectRoute "schoolku_backend/internals/features/school/subjects/route"
	teacherRoute "schoolku_backend/internals/features/school/teachers/route"
	"schoolku_backend/internals/helpers/storage"
)

// SchoolRoutes mounts every tenant-scoped school resource. The router must
// already carry AuthMiddleware.
func SchoolRoutes(api fiber.Router, db *gorm.DB, store storage.Storage, az *authzService.Authorizer) {
	teacherRoute.TeacherRoutes(api, db, az)
	subjectRoute.SubjectRoutes(api, db, az)
	studentRoute.StudentRoutes(api, db, az)
	classRoute.ClassRoutes(api, db, az)
	parentRoute.ParentRoutes(api, db, az)
	scheduleRoute.ScheduleRoutes(api, db, az)
	contentRoute.ContentRoutes(api, db, store, az)
	academicRoute.AcademicRoutes(api, db, az)
}
