package service_test

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/constants"
	authzService "schoolku_backend/internals/features/platform/authz/service"
	"schoolku_backend/internals/features/school/teachers/dto"
	teacherModel "schoolku_backend/internals/features/school/teachers/model"
	"schoolku_backend/internals/features/school/teachers/service"
	userModel "schoolku_backend/internals/features/users/user/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/testutil"
)

func newTeacherReq(email string) dto.CreateTeacherRequest {
	return dto.CreateTeacherRequest{
		Email:     email,
		Password:  "password123",
		FirstName: "Dewi",
		LastName:  "Lestari",
	}
}

func TestGenerateTeacherCodeFormat(t *testing.T) {
	now := time.Date(2026, 3, 9, 14, 5, 7, 0, time.UTC)
	code := service.GenerateTeacherCode(now)
	assert.Regexp(t, regexp.MustCompile(`^TCH260309140507\d{4}$`), code)
}

func TestCreateTeacherFull(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	tn := testutil.SeedTenant(t, db, "alpha")
	admin := testutil.SeedAdmin(t, db, tn.ID)
	teacherRole := testutil.SeedRole(t, db, tn.ID, constants.RoleTeacher, constants.PermSchedulesRead)
	math := testutil.SeedSubject(t, db, tn.ID, "MATH")
	phys := testutil.SeedSubject(t, db, tn.ID, "PHYS")

	req := newTeacherReq("Dewi@Alpha.test")
	dob := "1990-04-12"
	req.DateOfBirth = &dob
	req.SubjectIDs = []uuid.UUID{math.ID, phys.ID}
	req.Qualifications = []dto.QualificationInput{{Degree: "M.Ed", Institution: "UPI"}}

	out, err := service.NewTeacherService(db).Create(ctx, tn.ID, admin.ID, req)
	require.NoError(t, err)

	assert.Regexp(t, `^TCH\d{16}$`, out.TeacherID)
	assert.Equal(t, "dewi@alpha.test", out.Email)
	require.NotNil(t, out.DateOfBirth)
	assert.Equal(t, "1990-04-12", out.DateOfBirth.Format("2006-01-02"))
	assert.Len(t, out.Qualifications, 1)
	require.Len(t, out.Subjects, 2)

	roles, err := authzService.NewAuthorizer(db).Roles(ctx, out.UserID, tn.ID)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, teacherRole.ID, roles[0].ID)
}

func TestCreateTeacherExplicitDuplicateConflicts(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	tn := testutil.SeedTenant(t, db, "alpha")
	other := testutil.SeedTenant(t, db, "beta")
	svc := service.NewTeacherService(db)

	code := "TCH-001"
	req := newTeacherReq("a@alpha.test")
	req.TeacherID = &code
	_, err := svc.Create(ctx, tn.ID, uuid.New(), req)
	require.NoError(t, err)

	req2 := newTeacherReq("b@alpha.test")
	req2.TeacherID = &code
	_, err = svc.Create(ctx, tn.ID, uuid.New(), req2)
	assert.True(t, helper.IsKind(err, helper.KindConflict))

	// same code in another tenant is fine
	req3 := newTeacherReq("a@beta.test")
	req3.TeacherID = &code
	_, err = svc.Create(ctx, other.ID, uuid.New(), req3)
	require.NoError(t, err)

	var users int64
	require.NoError(t, db.Model(&userModel.UserModel{}).Where("email = ?", "b@alpha.test").Count(&users).Error)
	assert.Zero(t, users, "failed create must roll back the user")
}

func TestCreateTeacherDuplicateEmailConflicts(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	tn := testutil.SeedTenant(t, db, "alpha")
	testutil.SeedUser(t, db, tn.ID, "taken@alpha.test")

	_, err := service.NewTeacherService(db).Create(ctx, tn.ID, uuid.New(), newTeacherReq("TAKEN@alpha.test"))
	assert.True(t, helper.IsKind(err, helper.KindConflict))
}

func TestGeneratedCodesAreUnique(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	tn := testutil.SeedTenant(t, db, "alpha")
	svc := service.NewTeacherService(db)

	seen := map[string]bool{}
	for i := 0; i < 25; i++ {
		out, err := svc.Create(ctx, tn.ID, uuid.New(), newTeacherReq(fmt.Sprintf("t%d@alpha.test", i)))
		require.NoError(t, err)
		assert.False(t, seen[out.TeacherID], "duplicate code %s", out.TeacherID)
		seen[out.TeacherID] = true
	}
}

func TestGeneratorRetriesThenSucceeds(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	tn := testutil.SeedTenant(t, db, "alpha")
	svc := service.NewTeacherService(db)

	taken := "TCH-TAKEN"
	req := newTeacherReq("first@alpha.test")
	req.TeacherID = &taken
	_, err := svc.Create(ctx, tn.ID, uuid.New(), req)
	require.NoError(t, err)

	calls := 0
	svc.NewCode = func(time.Time) string {
		calls++
		if calls < 3 {
			return taken
		}
		return "TCH-FRESH"
	}
	out, err := svc.Create(ctx, tn.ID, uuid.New(), newTeacherReq("second@alpha.test"))
	require.NoError(t, err)
	assert.Equal(t, "TCH-FRESH", out.TeacherID)
	assert.Equal(t, 3, calls)
}

func TestGeneratorExhausted(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	tn := testutil.SeedTenant(t, db, "alpha")
	svc := service.NewTeacherService(db)

	taken := "TCH-TAKEN"
	req := newTeacherReq("first@alpha.test")
	req.TeacherID = &taken
	_, err := svc.Create(ctx, tn.ID, uuid.New(), req)
	require.NoError(t, err)

	calls := 0
	svc.NewCode = func(time.Time) string { calls++; return taken }
	_, err = svc.Create(ctx, tn.ID, uuid.New(), newTeacherReq("second@alpha.test"))
	require.Error(t, err)
	assert.True(t, helper.IsKind(err, helper.KindInternal))
	assert.Equal(t, service.MaxCodeAttempts, calls)
}

func TestTeacherTenantIsolation(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	a := testutil.SeedTenant(t, db, "alpha")
	b := testutil.SeedTenant(t, db, "beta")
	foreign := testutil.SeedTeacher(t, db, b.ID)
	svc := service.NewTeacherService(db)

	_, err := svc.Get(ctx, a.ID, foreign.ID)
	assert.True(t, helper.IsKind(err, helper.KindNotFound))

	name := "Hacked"
	_, err = svc.Update(ctx, a.ID, foreign.ID, dto.UpdateTeacherRequest{FirstName: &name})
	assert.True(t, helper.IsKind(err, helper.KindNotFound))

	assert.True(t, helper.IsKind(svc.Delete(ctx, a.ID, foreign.ID), helper.KindNotFound))

	rows, total, err := svc.List(ctx, a.ID, service.ListFilter{}, helper.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, rows)
}

func TestUpdateReplacesQualificationsAndDeleteDeactivates(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	tn := testutil.SeedTenant(t, db, "alpha")
	svc := service.NewTeacherService(db)

	req := newTeacherReq("q@alpha.test")
	req.Qualifications = []dto.QualificationInput{{Degree: "B.Sc", Institution: "ITB"}, {Degree: "M.Sc", Institution: "UI"}}
	created, err := svc.Create(ctx, tn.ID, uuid.New(), req)
	require.NoError(t, err)
	require.Len(t, created.Qualifications, 2)

	last := "Wijaya"
	quals := []dto.QualificationInput{{Degree: "Ph.D", Institution: "UGM"}}
	updated, err := svc.Update(ctx, tn.ID, created.ID, dto.UpdateTeacherRequest{LastName: &last, Qualifications: &quals})
	require.NoError(t, err)
	assert.Equal(t, "Wijaya", updated.LastName)
	require.Len(t, updated.Qualifications, 1)
	assert.Equal(t, "Ph.D", updated.Qualifications[0].Degree)

	require.NoError(t, svc.Delete(ctx, tn.ID, created.ID))
	_, err = svc.Get(ctx, tn.ID, created.ID)
	assert.True(t, helper.IsKind(err, helper.KindNotFound))

	var u userModel.UserModel
	require.NoError(t, db.First(&u, "id = ?", created.UserID).Error)
	assert.Equal(t, userModel.UserInactive, u.Status)

	var kept int64
	require.NoError(t, db.Unscoped().Model(&teacherModel.TeacherModel{}).Where("id = ?", created.ID).Count(&kept).Error)
	assert.EqualValues(t, 1, kept)
}

func TestAssignAndRemoveSubject(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	a := testutil.SeedTenant(t, db, "alpha")
	b := testutil.SeedTenant(t, db, "beta")
	teacher := testutil.SeedTeacher(t, db, a.ID)
	subj := testutil.SeedSubject(t, db, a.ID, "BIO")
	foreignSubj := testutil.SeedSubject(t, db, b.ID, "BIO")
	svc := service.NewTeacherService(db)

	_, err := svc.AssignSubject(ctx, a.ID, teacher.ID, dto.AssignSubjectRequest{SubjectID: subj.ID, IsPrimary: true})
	require.NoError(t, err)

	_, err = svc.AssignSubject(ctx, a.ID, teacher.ID, dto.AssignSubjectRequest{SubjectID: subj.ID})
	assert.True(t, helper.IsKind(err, helper.KindConflict))

	_, err = svc.AssignSubject(ctx, a.ID, teacher.ID, dto.AssignSubjectRequest{SubjectID: foreignSubj.ID})
	assert.True(t, helper.IsKind(err, helper.KindNotFound))

	require.NoError(t, svc.RemoveSubject(ctx, a.ID, teacher.ID, subj.ID))
	assert.True(t, helper.IsKind(svc.RemoveSubject(ctx, a.ID, teacher.ID, subj.ID), helper.KindNotFound))
}
