package constants

import "strings"

// Permission names are "resource:action".
const (
	PermTenantsRead   = "tenants:read"
	PermTenantsCreate = "tenants:create"
	PermTenantsUpdate = "tenants:update"
	PermTenantsDelete = "tenants:delete"

	PermUsersRead   = "users:read"
	PermUsersCreate = "users:create"
	PermUsersUpdate = "users:update"
	PermUsersDelete = "users:delete"

	PermRolesRead   = "roles:read"
	PermRolesCreate = "roles:create"
	PermRolesUpdate = "roles:update"
	PermRolesDelete = "roles:delete"

	PermTeachersRead   = "teachers:read"
	PermTeachersCreate = "teachers:create"
	PermTeachersUpdate = "teachers:update"
	PermTeachersDelete = "teachers:delete"

	PermParentsRead   = "parents:read"
	PermParentsCreate = "parents:create"
	PermParentsUpdate = "parents:update"
	PermParentsDelete = "parents:delete"

	PermStudentsRead   = "students:read"
	PermStudentsCreate = "students:create"
	PermStudentsUpdate = "students:update"
	PermStudentsDelete = "students:delete"

	PermClassesRead   = "classes:read"
	PermClassesCreate = "classes:create"
	PermClassesUpdate = "classes:update"
	PermClassesDelete = "classes:delete"

	PermSubjectsRead   = "subjects:read"
	PermSubjectsCreate = "subjects:create"
	PermSubjectsUpdate = "subjects:update"
	PermSubjectsDelete = "subjects:delete"

	PermSchedulesRead   = "schedules:read"
	PermSchedulesCreate = "schedules:create"
	PermSchedulesUpdate = "schedules:update"
	PermSchedulesDelete = "schedules:delete"

	PermContentRead   = "content:read"
	PermContentCreate = "content:create"
	PermContentUpdate = "content:update"
	PermContentDelete = "content:delete"

	PermGradesRead   = "grades:read"
	PermGradesCreate = "grades:create"

	PermAttendanceRead   = "attendance:read"
	PermAttendanceCreate = "attendance:create"

	PermRecordsRead   = "records:read"
	PermRecordsCreate = "records:create"
)

// AllPermissions is the global catalog seeded into the permissions table.
var AllPermissions = []string{
	PermTenantsRead, PermTenantsCreate, PermTenantsUpdate, PermTenantsDelete,
	PermUsersRead, PermUsersCreate, PermUsersUpdate, PermUsersDelete,
	PermRolesRead, PermRolesCreate, PermRolesUpdate, PermRolesDelete,
	PermTeachersRead, PermTeachersCreate, PermTeachersUpdate, PermTeachersDelete,
	PermParentsRead, PermParentsCreate, PermParentsUpdate, PermParentsDelete,
	PermStudentsRead, PermStudentsCreate, PermStudentsUpdate, PermStudentsDelete,
	PermClassesRead, PermClassesCreate, PermClassesUpdate, PermClassesDelete,
	PermSubjectsRead, PermSubjectsCreate, PermSubjectsUpdate, PermSubjectsDelete,
	PermSchedulesRead, PermSchedulesCreate, PermSchedulesUpdate, PermSchedulesDelete,
	PermContentRead, PermContentCreate, PermContentUpdate, PermContentDelete,
	PermGradesRead, PermGradesCreate,
	PermAttendanceRead, PermAttendanceCreate,
	PermRecordsRead, PermRecordsCreate,
}

// SplitPermission returns resource and action of "resource:action".
func SplitPermission(name string) (resource, action string) {
	resource, action, _ = strings.Cut(name, ":")
	return resource, action
}

// IsPlatformPermission reports whether name is reserved for system roles.
func IsPlatformPermission(name string) bool {
	res, _ := SplitPermission(name)
	return res == "tenants"
}

// TenantAdminPermissions is every permission except platform-level tenants:*.
func TenantAdminPermissions() []string {
	out := make([]string, 0, len(AllPermissions))
	for _, p := range AllPermissions {
		if !IsPlatformPermission(p) {
			out = append(out, p)
		}
	}
	return out
}
