package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/features/school/classes/dto"
	classModel "schoolku_backend/internals/features/school/classes/model"
	"schoolku_backend/internals/features/school/classes/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/testutil"
)

func TestClassCreateValidatesTeacher(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	a := testutil.SeedTenant(t, db, "alpha")
	b := testutil.SeedTenant(t, db, "beta")
	svc := service.NewClassService(db)

	foreignTeacher := testutil.SeedTeacher(t, db, b.ID)
	_, err := svc.Create(ctx, a.ID, dto.CreateClassRequest{
		Name: "7A", GradeLevel: "7", AcademicYear: "2025/2026", ClassTeacherID: &foreignTeacher.ID,
	})
	assert.True(t, helper.IsKind(err, helper.KindNotFound))

	mine := testutil.SeedTeacher(t, db, a.ID)
	out, err := svc.Create(ctx, a.ID, dto.CreateClassRequest{
		Name: "7A", GradeLevel: "7", AcademicYear: "2025/2026", ClassTeacherID: &mine.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 30, out.Capacity)
}

func TestEnrollmentLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	tn := testutil.SeedTenant(t, db, "alpha")
	other := testutil.SeedTenant(t, db, "beta")
	svc := service.NewClassService(db)

	created, err := svc.Create(ctx, tn.ID, dto.CreateClassRequest{Name: "9C", GradeLevel: "9", AcademicYear: "2025/2026", Capacity: 1})
	require.NoError(t, err)
	s1 := testutil.SeedStudent(t, db, tn.ID)
	s2 := testutil.SeedStudent(t, db, tn.ID)
	foreign := testutil.SeedStudent(t, db, other.ID)

	_, err = svc.Enroll(ctx, tn.ID, created.ID, s1.ID)
	require.NoError(t, err)

	_, err = svc.Enroll(ctx, tn.ID, created.ID, s1.ID)
	assert.True(t, helper.IsKind(err, helper.KindConflict), "duplicate enrollment")

	_, err = svc.Enroll(ctx, tn.ID, created.ID, s2.ID)
	assert.True(t, helper.IsKind(err, helper.KindConflict), "capacity")

	_, err = svc.Enroll(ctx, tn.ID, created.ID, foreign.ID)
	assert.True(t, helper.IsKind(err, helper.KindNotFound))

	_, err = svc.Enroll(ctx, other.ID, created.ID, foreign.ID)
	assert.True(t, helper.IsKind(err, helper.KindNotFound), "class from another tenant")

	require.NoError(t, svc.Withdraw(ctx, tn.ID, created.ID, s1.ID))
	assert.True(t, helper.IsKind(svc.Withdraw(ctx, tn.ID, created.ID, s1.ID), helper.KindNotFound))

	// withdrawn seat is free again; re-enrolling reuses the row
	_, err = svc.Enroll(ctx, tn.ID, created.ID, s2.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Withdraw(ctx, tn.ID, created.ID, s2.ID))
	e, err := svc.Enroll(ctx, tn.ID, created.ID, s1.ID)
	require.NoError(t, err)
	assert.Equal(t, classModel.EnrollmentActive, e.Status)

	got, err := svc.Get(ctx, tn.ID, created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.EnrolledCount)

	roster, err := svc.Students(ctx, tn.ID, created.ID)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, s1.ID, roster[0].StudentID)
	assert.Equal(t, "ACTIVE", roster[0].Status)
}

func TestCapacityCannotDropBelowEnrollment(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	tn := testutil.SeedTenant(t, db, "alpha")
	c := testutil.SeedClass(t, db, tn.ID, "8B")
	svc := service.NewClassService(db)
	for i := 0; i < 2; i++ {
		testutil.Enroll(t, db, tn.ID, testutil.SeedStudent(t, db, tn.ID).ID, c.ID, classModel.EnrollmentActive)
	}
	one := 1
	_, err := svc.Update(ctx, tn.ID, c.ID, dto.UpdateClassRequest{Capacity: &one})
	assert.True(t, helper.IsKind(err, helper.KindValidation))
}

func TestDeleteClassRemovesEnrollments(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	tn := testutil.SeedTenant(t, db, "alpha")
	c := testutil.SeedClass(t, db, tn.ID, "8B")
	testutil.Enroll(t, db, tn.ID, testutil.SeedStudent(t, db, tn.ID).ID, c.ID, classModel.EnrollmentActive)
	svc := service.NewClassService(db)

	assert.True(t, helper.IsKind(svc.Delete(ctx, uuid.New(), c.ID), helper.KindNotFound))
	require.NoError(t, svc.Delete(ctx, tn.ID, c.ID))

	var n int64
	require.NoError(t, db.Model(&classModel.StudentClassEnrollmentModel{}).Where("class_id = ?", c.ID).Count(&n).Error)
	assert.Zero(t, n)
}
