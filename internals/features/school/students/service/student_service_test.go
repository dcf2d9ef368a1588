package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	classModel "schoolku_backend/internals/features/school/classes/model"
	"schoolku_backend/internals/features/school/students/dto"
	"schoolku_backend/internals/features/school/students/service"
	userModel "schoolku_backend/internals/features/users/user/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/testutil"
)

func studentReq(email string) dto.CreateStudentRequest {
	return dto.CreateStudentRequest{Email: email, Password: "password123", FirstName: "Rani", LastName: "Putri"}
}

func TestCreateStudentWithEnrollment(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	tn := testutil.SeedTenant(t, db, "alpha")
	class := testutil.SeedClass(t, db, tn.ID, "7A")
	svc := service.NewStudentService(db)

	req := studentReq("rani@alpha.test")
	req.ClassID = &class.ID
	out, err := svc.Create(ctx, tn.ID, uuid.New(), req)
	require.NoError(t, err)
	assert.Regexp(t, `^STU\d{16}$`, out.StudentID)
	require.Len(t, out.Classes, 1)
	assert.Equal(t, "7A", out.Classes[0].Name)
	assert.Equal(t, "ACTIVE", out.Classes[0].Status)

	rows, total, err := svc.List(ctx, tn.ID, service.ListFilter{ClassID: &class.ID}, helper.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, out.ID, rows[0].ID)
}

func TestCreateStudentForeignClassRollsBack(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	a := testutil.SeedTenant(t, db, "alpha")
	b := testutil.SeedTenant(t, db, "beta")
	foreign := testutil.SeedClass(t, db, b.ID, "7B")

	req := studentReq("x@alpha.test")
	req.ClassID = &foreign.ID
	_, err := service.NewStudentService(db).Create(ctx, a.ID, uuid.New(), req)
	assert.True(t, helper.IsKind(err, helper.KindNotFound))

	var n int64
	require.NoError(t, db.Model(&userModel.UserModel{}).Where("email = ?", "x@alpha.test").Count(&n).Error)
	assert.Zero(t, n)
}

func TestStudentExplicitCodeConflict(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	tn := testutil.SeedTenant(t, db, "alpha")
	svc := service.NewStudentService(db)

	code := "NIS-0001"
	r1 := studentReq("one@alpha.test")
	r1.StudentID = &code
	_, err := svc.Create(ctx, tn.ID, uuid.New(), r1)
	require.NoError(t, err)

	r2 := studentReq("two@alpha.test")
	r2.StudentID = &code
	_, err = svc.Create(ctx, tn.ID, uuid.New(), r2)
	assert.True(t, helper.IsKind(err, helper.KindConflict))
}

func TestStudentIsolationUpdateDelete(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	a := testutil.SeedTenant(t, db, "alpha")
	b := testutil.SeedTenant(t, db, "beta")
	svc := service.NewStudentService(db)
	mine := testutil.SeedStudent(t, db, a.ID)
	foreign := testutil.SeedStudent(t, db, b.ID)
	class := testutil.SeedClass(t, db, a.ID, "8A")
	testutil.Enroll(t, db, a.ID, mine.ID, class.ID, classModel.EnrollmentActive)

	_, err := svc.Get(ctx, a.ID, foreign.ID)
	assert.True(t, helper.IsKind(err, helper.KindNotFound))
	assert.True(t, helper.IsKind(svc.Delete(ctx, a.ID, foreign.ID), helper.KindNotFound))

	blood := "O+"
	first := "Budi"
	out, err := svc.Update(ctx, a.ID, mine.ID, dto.UpdateStudentRequest{BloodGroup: &blood, FirstName: &first})
	require.NoError(t, err)
	assert.Equal(t, "O+", *out.BloodGroup)
	assert.Equal(t, "Budi", out.FirstName)

	require.NoError(t, svc.Delete(ctx, a.ID, mine.ID))
	var e classModel.StudentClassEnrollmentModel
	require.NoError(t, db.Where("student_id = ?", mine.ID).First(&e).Error)
	assert.Equal(t, classModel.EnrollmentWithdrawn, e.Status)

	var u userModel.UserModel
	require.NoError(t, db.First(&u, "id = ?", mine.UserID).Error)
	assert.Equal(t, userModel.UserInactive, u.Status)
}
