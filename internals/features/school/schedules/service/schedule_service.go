package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	tenantModel "schoolku_backend/internals/features/platform/tenants/model"
	classModel "schoolku_backend/internals/features/school/classes/model"
	"schoolku_backend/internals/features/school/schedules/dto"
	scheduleModel "schoolku_backend/internals/features/school/schedules/model"
	subjectModel "schoolku_backend/internals/features/school/subjects/model"
	teacherModel "schoolku_backend/internals/features/school/teachers/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
	"schoolku_backend/internals/middlewares/metrics"
)

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Touching intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd dbtime.Tod) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

type ScheduleService struct {
	DB  *gorm.DB
	Now func() time.Time
	// ExportBatch is the page size Export reads with.
	ExportBatch int
}

func NewScheduleService(db *gorm.DB) *ScheduleService {
	return &ScheduleService{
		DB:          db,
		Now:         func() time.Time { return time.Now().UTC() },
		ExportBatch: helper.ExportOpts.MaxLimit,
	}
}

func (s *ScheduleService) find(tx *gorm.DB, tenantID, id uuid.UUID) (*scheduleModel.ScheduleModel, error) {
	var m scheduleModel.ScheduleModel
	if err := tx.Where("id = ? AND tenant_id = ?", id, tenantID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("schedule")
		}
		return nil, err
	}
	return &m, nil
}

func exists(tx *gorm.DB, model any, tenantID uuid.UUID, id *uuid.UUID, what string) error {
	if id == nil {
		return nil
	}
	var n int64
	if err := tx.Model(model).Where("id = ? AND tenant_id = ?", *id, tenantID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return helper.ErrNotFound(what)
	}
	return nil
}

func checkRefs(tx *gorm.DB, m *scheduleModel.ScheduleModel) error {
	if err := exists(tx, &teacherModel.TeacherModel{}, m.TenantID, m.TeacherID, "teacher"); err != nil {
		return err
	}
	if err := exists(tx, &subjectModel.SubjectModel{}, m.TenantID, m.SubjectID, "subject"); err != nil {
		return err
	}
	return exists(tx, &classModel.ClassModel{}, m.TenantID, m.ClassID, "class")
}

func validateSlot(m *scheduleModel.ScheduleModel) error {
	if !m.StartTime.Before(m.EndTime) {
		return helper.ErrValidation("end time must be after start time",
			helper.FieldError{Field: "endTime", Message: "end time must be after start time"})
	}
	if m.Recurring && m.RecurrenceType == nil {
		return helper.ErrValidation("validation failed",
			helper.FieldError{Field: "recurrenceType", Message: "recurrenceType is required for recurring schedules"})
	}
	if m.RecurrenceEnd != nil && m.RecurrenceEnd.Before(m.Date) {
		return helper.ErrValidation("validation failed",
			helper.FieldError{Field: "recurrenceEnd", Message: "recurrenceEnd must not be before date"})
	}
	return nil
}

// lockTeacherDay serializes bookings for one teacher and day until the
// transaction ends. Only PostgreSQL has advisory locks; the sqlite test
// driver runs on a single connection anyway.
func lockTeacherDay(tx *gorm.DB, m *scheduleModel.ScheduleModel) error {
	if m.TeacherID == nil || tx.Dialector.Name() != "postgres" {
		return nil
	}
	key := fmt.Sprintf("%s|%s|%s", m.TenantID, *m.TeacherID, m.Date.Format("2006-01-02"))
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error
}

// findConflict returns the first blocking schedule of the same teacher on
// the same day whose interval overlaps m, ignoring m itself.
func findConflict(tx *gorm.DB, m *scheduleModel.ScheduleModel) (*scheduleModel.ScheduleModel, error) {
	if m.TeacherID == nil || !m.Status.Blocking() {
		return nil, nil
	}
	q := tx.Where("tenant_id = ? AND teacher_id = ? AND date = ? AND status IN ?",
		m.TenantID, *m.TeacherID, m.Date,
		[]scheduleModel.ScheduleStatus{scheduleModel.ScheduleActive, scheduleModel.ScheduleDraft})
	if m.ID != uuid.Nil {
		q = q.Where("id <> ?", m.ID)
	}
	var same []scheduleModel.ScheduleModel
	if err := q.Order("start_time ASC").Find(&same).Error; err != nil {
		return nil, err
	}
	for i := range same {
		if Overlaps(m.StartTime, m.EndTime, same[i].StartTime, same[i].EndTime) {
			return &same[i], nil
		}
	}
	return nil, nil
}

func conflictError(other *scheduleModel.ScheduleModel) error {
	metrics.ScheduleConflicts.Inc()
	zap.L().Info("schedule conflict",
		zap.String("conflicts_with", other.ID.String()),
		zap.String("date", other.Date.Format("2006-01-02")))
	return helper.ErrConflict(fmt.Sprintf("schedule conflicts with %q (%s-%s)",
		other.Title, other.StartTime.HM(), other.EndTime.HM()))
}

// book runs the conflict check and the write in one transaction.
func (s *ScheduleService) book(ctx context.Context, m *scheduleModel.ScheduleModel, recheck bool, write func(tx *gorm.DB) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkRefs(tx, m); err != nil {
			return err
		}
		if recheck {
			if err := lockTeacherDay(tx, m); err != nil {
				return err
			}
			other, err := findConflict(tx, m)
			if err != nil {
				return err
			}
			if other != nil {
				return conflictError(other)
			}
		}
		return write(tx)
	})
}

func (s *ScheduleService) Create(ctx context.Context, tenantID, actorID uuid.UUID, req dto.CreateScheduleRequest) (*scheduleModel.ScheduleModel, error) {
	m, err := req.ToModel(tenantID, actorID)
	if err != nil {
		return nil, err
	}
	if err := validateSlot(&m); err != nil {
		return nil, err
	}
	err = s.book(ctx, &m, true, func(tx *gorm.DB) error {
		return tx.Create(&m).Error
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Update re-runs conflict detection when the slot, teacher or status moved.
func (s *ScheduleService) Update(ctx context.Context, tenantID, actorID, id uuid.UUID, req dto.UpdateScheduleRequest) (*scheduleModel.ScheduleModel, error) {
	m, err := s.find(s.DB.WithContext(ctx), tenantID, id)
	if err != nil {
		return nil, err
	}
	slotChanged, err := req.Apply(m)
	if err != nil {
		return nil, err
	}
	if err := validateSlot(m); err != nil {
		return nil, err
	}
	m.UpdatedBy = actorID
	err = s.book(ctx, m, slotChanged, func(tx *gorm.DB) error {
		return tx.Save(m).Error
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *ScheduleService) Get(ctx context.Context, tenantID, id uuid.UUID) (*dto.ScheduleResponse, error) {
	var rows []dto.ScheduleRow
	if err := withNames(s.DB.WithContext(ctx).Model(&scheduleModel.ScheduleModel{}).
		Where("schedules.id = ? AND schedules.tenant_id = ?", id, tenantID)).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, helper.ErrNotFound("schedule")
	}
	out := dto.FromRows(rows)[0]
	return &out, nil
}

func (s *ScheduleService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&scheduleModel.ScheduleModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.ErrNotFound("schedule")
	}
	return nil
}

/* =========================
   Listing
========================= */

type ListFilter struct {
	Type      string
	Status    string
	Date      *time.Time
	From      *time.Time
	To        *time.Time
	TeacherID *uuid.UUID
	SubjectID *uuid.UUID
	ClassID   *uuid.UUID
	ClassIDs  []uuid.UUID
	Search    string
}

var scheduleSortColumns = map[string]string{
	"date":      "schedules.date",
	"startTime": "schedules.start_time",
	"title":     "schedules.title",
	"createdAt": "schedules.created_at",
	"type":      "schedules.type",
	"status":    "schedules.status",
}

func (f ListFilter) apply(q *gorm.DB, tenantID uuid.UUID) *gorm.DB {
	q = q.Where("schedules.tenant_id = ?", tenantID)
	if f.Type != "" {
		q = q.Where("schedules.type = ?", f.Type)
	}
	if f.Status != "" {
		q = q.Where("schedules.status = ?", f.Status)
	}
	if f.Date != nil {
		q = q.Where("schedules.date = ?", *f.Date)
	}
	if f.From != nil {
		q = q.Where("schedules.date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("schedules.date <= ?", *f.To)
	}
	if f.TeacherID != nil {
		q = q.Where("schedules.teacher_id = ?", *f.TeacherID)
	}
	if f.SubjectID != nil {
		q = q.Where("schedules.subject_id = ?", *f.SubjectID)
	}
	if f.ClassID != nil {
		q = q.Where("schedules.class_id = ?", *f.ClassID)
	}
	if f.ClassIDs != nil {
		q = q.Where("schedules.class_id IN ?", f.ClassIDs)
	}
	if f.Search != "" {
		like := helper.Like(f.Search)
		q = q.Where(`(LOWER(schedules.title) LIKE ? OR LOWER(COALESCE(schedules.description, '')) LIKE ?
			OR LOWER(COALESCE(schedules.location, '')) LIKE ?)`, like, like, like)
	}
	return q
}

func withNames(q *gorm.DB) *gorm.DB {
	return q.Select(`schedules.*, subjects.name AS subject_name,
			users.first_name AS teacher_first_name, users.last_name AS teacher_last_name`).
		Joins("LEFT JOIN subjects ON subjects.id = schedules.subject_id").
		Joins("LEFT JOIN teachers ON teachers.id = schedules.teacher_id").
		Joins("LEFT JOIN users ON users.id = teachers.user_id")
}

func order(p helper.Params) string {
	if p.SortBy == "" || p.SortBy == "date" {
		dir := "ASC"
		if p.SortOrder == "desc" {
			dir = "DESC"
		}
		return "schedules.date " + dir + ", schedules.start_time " + dir + ", schedules.id ASC"
	}
	return p.OrderColumn(scheduleSortColumns, "date")
}

func (s *ScheduleService) List(ctx context.Context, tenantID uuid.UUID, f ListFilter, p helper.Params) ([]dto.ScheduleResponse, int64, error) {
	if f.ClassIDs != nil && len(f.ClassIDs) == 0 {
		return []dto.ScheduleResponse{}, 0, nil
	}
	q := f.apply(s.DB.WithContext(ctx).Model(&scheduleModel.ScheduleModel{}), tenantID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []dto.ScheduleRow
	if err := withNames(q).Order(order(p)).Limit(p.Limit).Offset(p.Offset()).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return dto.FromRows(rows), total, nil
}

// Stats counts schedules by type and status plus today's and upcoming ones.
// "Today" is the date in the tenant's timezone.
func (s *ScheduleService) Stats(ctx context.Context, tenantID uuid.UUID) (*dto.StatsResponse, error) {
	db := s.DB.WithContext(ctx)
	base := func() *gorm.DB {
		return db.Model(&scheduleModel.ScheduleModel{}).Where("tenant_id = ?", tenantID)
	}
	out := dto.StatsResponse{ByType: map[string]int64{}, ByStatus: map[string]int64{}}

	if err := base().Count(&out.Total).Error; err != nil {
		return nil, err
	}
	var groups []struct {
		Grp string
		N   int64
	}
	if err := base().Select("type AS grp, COUNT(*) AS n").Group("type").Scan(&groups).Error; err != nil {
		return nil, err
	}
	for _, g := range groups {
		out.ByType[g.Grp] = g.N
	}
	groups = nil
	if err := base().Select("status AS grp, COUNT(*) AS n").Group("status").Scan(&groups).Error; err != nil {
		return nil, err
	}
	for _, g := range groups {
		out.ByStatus[g.Grp] = g.N
	}

	var tz string
	if err := db.Model(&tenantModel.TenantModel{}).Where("id = ?", tenantID).
		Select("timezone").Scan(&tz).Error; err != nil {
		return nil, err
	}
	today := dbtime.TodayIn(s.Now(), tz)
	if err := base().Where("date = ?", today).Count(&out.Today).Error; err != nil {
		return nil, err
	}
	if err := base().Where("date >= ? AND status = ?", today, scheduleModel.ScheduleActive).
		Count(&out.Upcoming).Error; err != nil {
		return nil, err
	}
	return &out, nil
}
