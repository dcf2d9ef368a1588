package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	classModel "schoolku_backend/internals/features/school/classes/model"
	parentModel "schoolku_backend/internals/features/school/parents/model"
	studentModel "schoolku_backend/internals/features/school/students/model"
	subjectModel "schoolku_backend/internals/features/school/subjects/model"
	teacherModel "schoolku_backend/internals/features/school/teachers/model"
)

func SeedSubject(t testing.TB, db *gorm.DB, tenantID uuid.UUID, code string) *subjectModel.SubjectModel {
	t.Helper()
	s := &subjectModel.SubjectModel{TenantID: tenantID, Name: "Subject " + code, Code: code, IsActive: true}
	require.NoError(t, db.Create(s).Error)
	return s
}

// SeedTeacher inserts a user + teacher profile directly, bypassing the service.
func SeedTeacher(t testing.TB, db *gorm.DB, tenantID uuid.UUID) *teacherModel.TeacherModel {
	t.Helper()
	u := SeedUser(t, db, tenantID, "teacher-"+uuid.NewString()[:8]+"@school.test")
	tc := &teacherModel.TeacherModel{
		TenantID:       tenantID,
		UserID:         u.ID,
		TeacherCode:    "T-" + uuid.NewString()[:8],
		EmploymentType: teacherModel.EmploymentFullTime,
		Status:         teacherModel.TeacherActive,
	}
	require.NoError(t, db.Create(tc).Error)
	return tc
}

func SeedStudent(t testing.TB, db *gorm.DB, tenantID uuid.UUID) *studentModel.StudentModel {
	t.Helper()
	u := SeedUser(t, db, tenantID, "student-"+uuid.NewString()[:8]+"@school.test")
	s := &studentModel.StudentModel{
		TenantID:    tenantID,
		UserID:      u.ID,
		StudentCode: "S-" + uuid.NewString()[:8],
		Status:      studentModel.StudentActive,
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

// SeedParent inserts a parent profile for an existing user.
func SeedParent(t testing.TB, db *gorm.DB, tenantID, userID uuid.UUID) *parentModel.ParentModel {
	t.Helper()
	p := &parentModel.ParentModel{TenantID: tenantID, UserID: userID, Status: "ACTIVE"}
	require.NoError(t, db.Create(p).Error)
	return p
}

func SeedRelation(t testing.TB, db *gorm.DB, tenantID, parentID, studentID uuid.UUID) *parentModel.ParentStudentRelationModel {
	t.Helper()
	r := &parentModel.ParentStudentRelationModel{
		TenantID:     tenantID,
		ParentID:     parentID,
		StudentID:    studentID,
		Relationship: parentModel.RelationshipGuardian,
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

func SeedClass(t testing.TB, db *gorm.DB, tenantID uuid.UUID, name string) *classModel.ClassModel {
	t.Helper()
	c := &classModel.ClassModel{TenantID: tenantID, Name: name, GradeLevel: "7", AcademicYear: "2025/2026", Capacity: 30, IsActive: true}
	require.NoError(t, db.Create(c).Error)
	return c
}

func Enroll(t testing.TB, db *gorm.DB, tenantID, studentID, classID uuid.UUID, status classModel.EnrollmentStatus) *classModel.StudentClassEnrollmentModel {
	t.Helper()
	e := &classModel.StudentClassEnrollmentModel{TenantID: tenantID, StudentID: studentID, ClassID: classID, Status: status}
	require.NoError(t, db.Create(e).Error)
	return e
}
