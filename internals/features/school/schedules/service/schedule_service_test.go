package service_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/schedules/dto"
	scheduleModel "schoolku_backend/internals/features/school/schedules/model"
	"schoolku_backend/internals/features/school/schedules/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
	"schoolku_backend/internals/testutil"
)

func ptr[T any](v T) *T { return &v }

func TestOverlaps(t *testing.T) {
	base := [2]string{"09:00", "10:00"}
	cases := []struct {
		start, end string
		want       bool
	}{
		{"09:30", "10:30", true},
		{"08:30", "09:30", true},
		{"09:00", "10:00", true},
		{"09:15", "09:45", true},
		{"08:00", "11:00", true},
		{"10:00", "11:00", false},
		{"08:00", "09:00", false},
		{"11:00", "12:00", false},
	}
	a0, a1 := dbtime.MustParse(base[0]), dbtime.MustParse(base[1])
	for _, tc := range cases {
		b0, b1 := dbtime.MustParse(tc.start), dbtime.MustParse(tc.end)
		assert.Equal(t, tc.want, service.Overlaps(a0, a1, b0, b1), "%s-%s", tc.start, tc.end)
		assert.Equal(t, tc.want, service.Overlaps(b0, b1, a0, a1), "symmetric %s-%s", tc.start, tc.end)
	}
}

type fixture struct {
	db      *gorm.DB
	svc     *service.ScheduleService
	ctx     context.Context
	tenant  uuid.UUID
	actor   uuid.UUID
	teacher uuid.UUID
}

func setup(t *testing.T) fixture {
	db := testutil.NewDB(t)
	tn := testutil.SeedTenant(t, db, "alpha")
	admin := testutil.SeedAdmin(t, db, tn.ID)
	tc := testutil.SeedTeacher(t, db, tn.ID)
	svc := service.NewScheduleService(db)
	svc.Now = func() time.Time { return time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC) }
	return fixture{db: db, svc: svc, ctx: context.Background(), tenant: tn.ID, actor: admin.ID, teacher: tc.ID}
}

func (f fixture) req(title, date, start, end string) dto.CreateScheduleRequest {
	return dto.CreateScheduleRequest{
		Title: title, Type: "CLASS", Date: date, StartTime: start, EndTime: end, TeacherID: &f.teacher,
	}
}

func TestCreateRejectsOverlapForSameTeacher(t *testing.T) {
	f := setup(t)
	first, err := f.svc.Create(f.ctx, f.tenant, f.actor, f.req("Math", "2026-05-04", "09:00", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, f.actor, first.CreatedBy)
	assert.Equal(t, f.actor, first.UpdatedBy)
	assert.Equal(t, scheduleModel.ScheduleActive, first.Status)

	for _, slot := range [][2]string{{"09:30", "10:30"}, {"09:00", "10:00"}, {"08:00", "09:01"}} {
		_, err := f.svc.Create(f.ctx, f.tenant, f.actor, f.req("Clash", "2026-05-04", slot[0], slot[1]))
		require.Error(t, err, slot)
		assert.True(t, helper.IsKind(err, helper.KindConflict), slot)
		assert.Contains(t, err.Error(), "Math")
	}

	_, err = f.svc.Create(f.ctx, f.tenant, f.actor, f.req("Adjacent", "2026-05-04", "10:00", "11:00"))
	assert.NoError(t, err)
}

func TestConflictIgnoresOtherTeacherDateAndInactiveStatuses(t *testing.T) {
	f := setup(t)
	_, err := f.svc.Create(f.ctx, f.tenant, f.actor, f.req("Math", "2026-05-04", "09:00", "10:00"))
	require.NoError(t, err)

	other := testutil.SeedTeacher(t, f.db, f.tenant)
	r := f.req("Other teacher", "2026-05-04", "09:00", "10:00")
	r.TeacherID = &other.ID
	_, err = f.svc.Create(f.ctx, f.tenant, f.actor, r)
	assert.NoError(t, err)

	_, err = f.svc.Create(f.ctx, f.tenant, f.actor, f.req("Next day", "2026-05-05", "09:00", "10:00"))
	assert.NoError(t, err)

	noTeacher := f.req("Assembly", "2026-05-04", "09:00", "10:00")
	noTeacher.TeacherID = nil
	_, err = f.svc.Create(f.ctx, f.tenant, f.actor, noTeacher)
	assert.NoError(t, err)

	for _, st := range []string{"CANCELLED", "COMPLETED"} {
		r := f.req("Old "+st, "2026-05-06", "09:00", "10:00")
		r.Status = ptr(st)
		_, err := f.svc.Create(f.ctx, f.tenant, f.actor, r)
		require.NoError(t, err)
	}
	_, err = f.svc.Create(f.ctx, f.tenant, f.actor, f.req("Fresh", "2026-05-06", "09:00", "10:00"))
	assert.NoError(t, err, "cancelled and completed schedules never block")

	draft := f.req("Draft", "2026-05-07", "09:00", "10:00")
	draft.Status = ptr("DRAFT")
	_, err = f.svc.Create(f.ctx, f.tenant, f.actor, draft)
	require.NoError(t, err)
	_, err = f.svc.Create(f.ctx, f.tenant, f.actor, f.req("Over draft", "2026-05-07", "09:30", "10:30"))
	assert.True(t, helper.IsKind(err, helper.KindConflict), "drafts block")
}

func TestCreateValidation(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Create(f.ctx, f.tenant, f.actor, f.req("Backwards", "2026-05-04", "10:00", "09:00"))
	require.True(t, helper.IsKind(err, helper.KindValidation))
	assert.Contains(t, err.Error(), "end time must be after start time")

	_, err = f.svc.Create(f.ctx, f.tenant, f.actor, f.req("Empty", "2026-05-04", "10:00", "10:00"))
	assert.True(t, helper.IsKind(err, helper.KindValidation))

	_, err = f.svc.Create(f.ctx, f.tenant, f.actor, f.req("Bad time", "2026-05-04", "9am", "10:00"))
	assert.True(t, helper.IsKind(err, helper.KindValidation))

	foreign := testutil.SeedTenant(t, f.db, "beta")
	foreignTeacher := testutil.SeedTeacher(t, f.db, foreign.ID)
	r := f.req("Foreign", "2026-05-04", "09:00", "10:00")
	r.TeacherID = &foreignTeacher.ID
	_, err = f.svc.Create(f.ctx, f.tenant, f.actor, r)
	assert.True(t, helper.IsKind(err, helper.KindNotFound))

	r = f.req("Missing subject", "2026-05-04", "09:00", "10:00")
	r.SubjectID = ptr(uuid.New())
	_, err = f.svc.Create(f.ctx, f.tenant, f.actor, r)
	assert.True(t, helper.IsKind(err, helper.KindNotFound))
}

func TestUpdateRechecksConflicts(t *testing.T) {
	f := setup(t)
	_, err := f.svc.Create(f.ctx, f.tenant, f.actor, f.req("Math", "2026-05-04", "09:00", "10:00"))
	require.NoError(t, err)
	later, err := f.svc.Create(f.ctx, f.tenant, f.actor, f.req("Science", "2026-05-04", "11:00", "12:00"))
	require.NoError(t, err)

	_, err = f.svc.Update(f.ctx, f.tenant, f.actor, later.ID, dto.UpdateScheduleRequest{StartTime: ptr("09:30")})
	assert.True(t, helper.IsKind(err, helper.KindConflict))

	// moving within its own slot never conflicts with itself
	got, err := f.svc.Update(f.ctx, f.tenant, f.actor, later.ID, dto.UpdateScheduleRequest{EndTime: ptr("12:30")})
	require.NoError(t, err)
	assert.Equal(t, "12:30", got.EndTime.HM())

	cancelled, err := f.svc.Update(f.ctx, f.tenant, f.actor, later.ID, dto.UpdateScheduleRequest{
		Status: ptr("CANCELLED"), StartTime: ptr("09:30"),
	})
	require.NoError(t, err)
	assert.Equal(t, scheduleModel.ScheduleCancelled, cancelled.Status)

	_, err = f.svc.Update(f.ctx, f.tenant, f.actor, later.ID, dto.UpdateScheduleRequest{Status: ptr("ACTIVE")})
	assert.True(t, helper.IsKind(err, helper.KindConflict), "reactivating into a taken slot")

	_, err = f.svc.Update(f.ctx, f.tenant, f.actor, later.ID, dto.UpdateScheduleRequest{EndTime: ptr("09:00")})
	assert.True(t, helper.IsKind(err, helper.KindValidation))
}

func TestUpdateClearsTeacher(t *testing.T) {
	f := setup(t)
	first, err := f.svc.Create(f.ctx, f.tenant, f.actor, f.req("Math", "2026-05-04", "09:00", "10:00"))
	require.NoError(t, err)

	_, err = f.svc.Update(f.ctx, f.tenant, f.actor, first.ID, dto.UpdateScheduleRequest{
		ClearTeacher: true, TeacherID: &f.teacher,
	})
	assert.True(t, helper.IsKind(err, helper.KindValidation))

	got, err := f.svc.Update(f.ctx, f.tenant, f.actor, first.ID, dto.UpdateScheduleRequest{ClearTeacher: true})
	require.NoError(t, err)
	assert.Nil(t, got.TeacherID)

	var stored scheduleModel.ScheduleModel
	require.NoError(t, f.db.First(&stored, "id = ?", first.ID).Error)
	assert.Nil(t, stored.TeacherID)

	// the freed slot can be booked for the same teacher again
	_, err = f.svc.Create(f.ctx, f.tenant, f.actor, f.req("Science", "2026-05-04", "09:00", "10:00"))
	require.NoError(t, err)
}

func TestTenantIsolation(t *testing.T) {
	f := setup(t)
	s, err := f.svc.Create(f.ctx, f.tenant, f.actor, f.req("Math", "2026-05-04", "09:00", "10:00"))
	require.NoError(t, err)
	other := testutil.SeedTenant(t, f.db, "beta")

	_, err = f.svc.Get(f.ctx, other.ID, s.ID)
	assert.True(t, helper.IsKind(err, helper.KindNotFound))
	_, err = f.svc.Update(f.ctx, other.ID, f.actor, s.ID, dto.UpdateScheduleRequest{Title: ptr("x")})
	assert.True(t, helper.IsKind(err, helper.KindNotFound))
	assert.True(t, helper.IsKind(f.svc.Delete(f.ctx, other.ID, s.ID), helper.KindNotFound))

	got, err := f.svc.Get(f.ctx, f.tenant, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Math", got.Title)
	require.NoError(t, f.svc.Delete(f.ctx, f.tenant, s.ID))
}

func TestListFiltersAndStats(t *testing.T) {
	f := setup(t)
	subj := testutil.SeedSubject(t, f.db, f.tenant, "MATH")
	r := f.req("Algebra", "2026-05-04", "09:00", "10:00")
	r.SubjectID = &subj.ID
	_, err := f.svc.Create(f.ctx, f.tenant, f.actor, r)
	require.NoError(t, err)

	exam := f.req("Final exam", "2026-05-10", "08:00", "10:00")
	exam.Type = "EXAM"
	exam.Location = ptr("Hall")
	_, err = f.svc.Create(f.ctx, f.tenant, f.actor, exam)
	require.NoError(t, err)

	old := f.req("Old", "2026-04-01", "08:00", "09:00")
	old.Status = ptr("COMPLETED")
	_, err = f.svc.Create(f.ctx, f.tenant, f.actor, old)
	require.NoError(t, err)

	all := helper.Params{Page: 1, Limit: 10}
	rows, total, err := f.svc.List(f.ctx, f.tenant, service.ListFilter{}, all)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Equal(t, []string{"Old", "Algebra", "Final exam"}, []string{rows[0].Title, rows[1].Title, rows[2].Title})
	require.NotNil(t, rows[1].SubjectName)
	assert.Equal(t, "Subject MATH", *rows[1].SubjectName)

	_, total, err = f.svc.List(f.ctx, f.tenant, service.ListFilter{Type: "EXAM"}, all)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	_, total, err = f.svc.List(f.ctx, f.tenant, service.ListFilter{Search: "hall"}, all)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	from, _ := dbtime.ParseDate("2026-05-01")
	_, total, err = f.svc.List(f.ctx, f.tenant, service.ListFilter{From: &from}, all)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	_, total, err = f.svc.List(f.ctx, f.tenant, service.ListFilter{ClassIDs: []uuid.UUID{}}, all)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)

	stats, err := f.svc.Stats(f.ctx, f.tenant)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.Total)
	assert.EqualValues(t, 2, stats.ByType["CLASS"])
	assert.EqualValues(t, 1, stats.ByStatus["COMPLETED"])
	assert.EqualValues(t, 1, stats.Today)
	assert.EqualValues(t, 2, stats.Upcoming)
}

func TestExportCSVQuotesEveryField(t *testing.T) {
	f := setup(t)
	r := f.req(`Say "hi"`, "2026-05-04", "09:00", "10:00")
	r.Description = ptr("a, b")
	_, err := f.svc.Create(f.ctx, f.tenant, f.actor, r)
	require.NoError(t, err)

	body, ctype, name, err := f.svc.Export(f.ctx, f.tenant, service.ListFilter{}, "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv; charset=utf-8", ctype)
	assert.Equal(t, "schedules-20260504.csv", name)

	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"Title","Type","Date","Start Time","End Time","Subject","Teacher","Location","Status","Description"`, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], `"Say ""hi""","CLASS","2026-05-04","09:00","10:00","",`))
	assert.True(t, strings.HasSuffix(lines[1], `"","ACTIVE","a, b"`))

	_, _, _, err = f.svc.Export(f.ctx, f.tenant, service.ListFilter{}, "xml")
	assert.True(t, helper.IsKind(err, helper.KindValidation))

	body, ctype, _, err = f.svc.Export(f.ctx, f.tenant, service.ListFilter{}, "json")
	require.NoError(t, err)
	assert.Equal(t, "application/json", ctype)
	assert.Contains(t, string(body), `"startTime":"09:00"`)
}

func TestExportReadsEveryPage(t *testing.T) {
	f := setup(t)
	f.svc.ExportBatch = 2
	for i, start := range []string{"07:00", "08:00", "09:00", "10:00", "11:00"} {
		end := fmt.Sprintf("%02d:30", 7+i)
		_, err := f.svc.Create(f.ctx, f.tenant, f.actor, f.req(fmt.Sprintf("Lesson %d", i+1), "2026-05-06", start, end))
		require.NoError(t, err)
	}

	body, _, _, err := f.svc.Export(f.ctx, f.tenant, service.ListFilter{}, "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 6)
	for i := 1; i <= 5; i++ {
		assert.True(t, strings.HasPrefix(lines[i], fmt.Sprintf(`"Lesson %d",`, i)), lines[i])
	}

	body, _, _, err = f.svc.Export(f.ctx, f.tenant, service.ListFilter{}, "json")
	require.NoError(t, err)
	var rows []map[string]any
	require.NoError(t, sonic.Unmarshal(body, &rows))
	assert.Len(t, rows, 5)
}
