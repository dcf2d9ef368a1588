package constants

// Default role names created for every tenant at bootstrap.
const (
	RoleSuperAdmin = "Super Admin"
	RoleAdmin      = "Admin"
	RoleTeacher    = "Teacher"
	RoleParent     = "Parent"
	RoleStudent    = "Student"
)

// DefaultRoleGrants lists what each non-admin default role receives.
// Admin gets every tenant-level permission; Super Admin gets everything.
var DefaultRoleGrants = map[string][]string{
	RoleTeacher: {
		PermTeachersRead,
		PermStudentsRead,
		PermClassesRead,
		PermSubjectsRead,
		PermSchedulesRead,
		PermContentRead, PermContentCreate, PermContentUpdate,
		PermGradesRead, PermGradesCreate,
		PermAttendanceRead, PermAttendanceCreate,
		PermRecordsRead,
	},
	RoleParent: {
		PermParentsRead,
		PermSchedulesRead,
		PermContentRead,
	},
	RoleStudent: {
		PermSchedulesRead,
		PermContentRead,
		PermSubjectsRead,
	},
}

// DefaultRoleDescriptions labels the roles every new tenant starts with.
var DefaultRoleDescriptions = map[string]string{
	RoleAdmin:   "Tenant administrator",
	RoleTeacher: "Teaching staff",
	RoleParent:  "Parent or guardian",
	RoleStudent: "Enrolled student",
}
