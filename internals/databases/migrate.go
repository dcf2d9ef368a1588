package database

import (
	"gorm.io/gorm"

	authzModel "schoolku_backend/internals/features/platform/authz/model"
	tenantModel "schoolku_backend/internals/features/platform/tenants/model"
	academicModel "schoolku_backend/internals/features/school/academics/model"
	classModel "schoolku_backend/internals/features/school/classes/model"
	contentModel "schoolku_backend/internals/features/school/content/model"
	parentModel "schoolku_backend/internals/features/school/parents/model"
	scheduleModel "schoolku_backend/internals/features/school/schedules/model"
	studentModel "schoolku_backend/internals/features/school/students/model"
	subjectModel "schoolku_backend/internals/features/school/subjects/model"
	teacherModel "schoolku_backend/internals/features/school/teachers/model"
	authModel "schoolku_backend/internals/features/users/auth/model"
	userModel "schoolku_backend/internals/features/users/user/model"
)

// Models is every table owned by the service, in dependency order.
func Models() []any {
	return []any{
		&tenantModel.TenantModel{},
		&userModel.UserModel{},
		&authzModel.PermissionModel{},
		&authzModel.RoleModel{},
		&authzModel.RolePermissionModel{},
		&authzModel.UserRoleModel{},
		&authModel.TokenBlacklist{},

		&subjectModel.SubjectModel{},
		&teacherModel.TeacherModel{},
		&teacherModel.TeacherSubjectModel{},
		&teacherModel.TeacherQualificationModel{},
		&studentModel.StudentModel{},
		&classModel.ClassModel{},
		&classModel.StudentClassEnrollmentModel{},
		&parentModel.ParentModel{},
		&parentModel.ParentStudentRelationModel{},
		&scheduleModel.ScheduleModel{},
		&contentModel.ContentModel{},

		&academicModel.GradeModel{},
		&academicModel.AttendanceRecordModel{},
		&academicModel.AcademicRecordModel{},
		&academicModel.HealthRecordModel{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
