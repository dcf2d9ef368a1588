package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/features/school/academics/dto"
	"schoolku_backend/internals/features/school/academics/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
	"schoolku_backend/internals/testutil"
)

var allRows = helper.Params{Page: 1, Limit: 100}

func newService(t *testing.T) (*service.AcademicService, context.Context) {
	db := testutil.NewDB(t)
	svc := service.NewAcademicService(db)
	svc.Now = func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) }
	return svc, context.Background()
}

func TestCreateGradeValidatesScoreAndRefs(t *testing.T) {
	svc, ctx := newService(t)
	a := testutil.SeedTenant(t, svc.DB, "alpha")
	b := testutil.SeedTenant(t, svc.DB, "beta")
	actor := testutil.SeedAdmin(t, svc.DB, a.ID)
	st := testutil.SeedStudent(t, svc.DB, a.ID)
	math := testutil.SeedSubject(t, svc.DB, a.ID, "MATH")
	foreignSubject := testutil.SeedSubject(t, svc.DB, b.ID, "MATH")
	foreignStudent := testutil.SeedStudent(t, svc.DB, b.ID)

	g, err := svc.CreateGrade(ctx, a.ID, actor.ID, dto.CreateGradeRequest{
		StudentID: st.ID, SubjectID: &math.ID, Term: "2026-1", Assessment: "Quiz 1", Score: 88,
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, g.MaxScore)
	assert.Equal(t, actor.ID, g.GradedBy)

	_, err = svc.CreateGrade(ctx, a.ID, actor.ID, dto.CreateGradeRequest{
		StudentID: st.ID, Term: "2026-1", Assessment: "Quiz 2", Score: 21, MaxScore: 20,
	})
	assert.True(t, helper.IsKind(err, helper.KindValidation))

	_, err = svc.CreateGrade(ctx, a.ID, actor.ID, dto.CreateGradeRequest{
		StudentID: st.ID, SubjectID: &foreignSubject.ID, Term: "2026-1", Assessment: "Quiz 3", Score: 1,
	})
	assert.True(t, helper.IsKind(err, helper.KindNotFound))

	_, err = svc.CreateGrade(ctx, a.ID, actor.ID, dto.CreateGradeRequest{
		StudentID: foreignStudent.ID, Term: "2026-1", Assessment: "Quiz 4", Score: 1,
	})
	assert.True(t, helper.IsKind(err, helper.KindNotFound))

	rows, total, err := svc.ListGrades(ctx, a.ID, service.GradeFilter{StudentID: &st.ID, Term: "2026-1"}, allRows)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Quiz 1", rows[0].Assessment)
}

func TestAttendanceDuplicateAndRange(t *testing.T) {
	svc, ctx := newService(t)
	a := testutil.SeedTenant(t, svc.DB, "alpha")
	actor := testutil.SeedAdmin(t, svc.DB, a.ID)
	st := testutil.SeedStudent(t, svc.DB, a.ID)
	cls := testutil.SeedClass(t, svc.DB, a.ID, "7A")

	for _, d := range []string{"2026-03-01", "2026-03-02", "2026-03-05"} {
		_, err := svc.CreateAttendance(ctx, a.ID, actor.ID, dto.CreateAttendanceRequest{
			StudentID: st.ID, ClassID: &cls.ID, Date: d, Status: "PRESENT",
		})
		require.NoError(t, err)
	}

	_, err := svc.CreateAttendance(ctx, a.ID, actor.ID, dto.CreateAttendanceRequest{
		StudentID: st.ID, ClassID: &cls.ID, Date: "2026-03-02", Status: "LATE",
	})
	assert.True(t, helper.IsKind(err, helper.KindConflict))

	_, err = svc.CreateAttendance(ctx, a.ID, actor.ID, dto.CreateAttendanceRequest{
		StudentID: st.ID, Date: "02/03/2026", Status: "LATE",
	})
	assert.True(t, helper.IsKind(err, helper.KindValidation))

	from, _ := dbtime.ParseDate("2026-03-02")
	to, _ := dbtime.ParseDate("2026-03-04")
	rows, total, err := svc.ListAttendance(ctx, a.ID, service.AttendanceFilter{StudentID: &st.ID, From: &from, To: &to}, allRows)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "2026-03-02", rows[0].Date.Format("2006-01-02"))
}

func TestRecordsAreTenantScoped(t *testing.T) {
	svc, ctx := newService(t)
	a := testutil.SeedTenant(t, svc.DB, "alpha")
	b := testutil.SeedTenant(t, svc.DB, "beta")
	actor := testutil.SeedAdmin(t, svc.DB, a.ID)
	st := testutil.SeedStudent(t, svc.DB, a.ID)

	gpa := 3.5
	_, err := svc.CreateAcademicRecord(ctx, a.ID, dto.CreateAcademicRecordRequest{
		StudentID: st.ID, AcademicYear: "2025/2026", Term: "1", GPA: &gpa,
	})
	require.NoError(t, err)
	_, err = svc.CreateHealthRecord(ctx, a.ID, actor.ID, dto.CreateHealthRecordRequest{
		StudentID: st.ID, RecordDate: "2026-02-10", Type: "CHECKUP", Description: "annual",
	})
	require.NoError(t, err)

	_, total, err := svc.ListAcademicRecords(ctx, a.ID, service.RecordFilter{StudentID: &st.ID}, allRows)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	_, total, err = svc.ListHealthRecords(ctx, b.ID, service.HealthFilter{StudentID: &st.ID}, allRows)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)

	missing := uuid.New()
	_, err = svc.CreateHealthRecord(ctx, a.ID, actor.ID, dto.CreateHealthRecordRequest{
		StudentID: missing, RecordDate: "2026-02-10", Type: "OTHER", Description: "x",
	})
	assert.True(t, helper.IsKind(err, helper.KindNotFound))
}
