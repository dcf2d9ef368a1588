package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/academics/dto"
	academicModel "schoolku_backend/internals/features/school/academics/model"
	classService "schoolku_backend/internals/features/school/classes/service"
	studentService "schoolku_backend/internals/features/school/students/service"
	subjectModel "schoolku_backend/internals/features/school/subjects/model"
	helper "schoolku_backend/internals/helpers"
)

// AcademicService records and lists grades, attendance, academic and
// health records.
type AcademicService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewAcademicService(db *gorm.DB) *AcademicService {
	return &AcademicService{DB: db, Now: func() time.Time { return time.Now().UTC() }}
}

// checkRefs verifies referenced rows belong to the tenant.
func checkRefs(tx *gorm.DB, tenantID, studentID uuid.UUID, subjectID, classID *uuid.UUID) error {
	if _, err := studentService.FindStudent(tx, tenantID, studentID); err != nil {
		return err
	}
	if subjectID != nil {
		var n int64
		if err := tx.Model(&subjectModel.SubjectModel{}).
			Where("id = ? AND tenant_id = ?", *subjectID, tenantID).
			Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return helper.ErrNotFound("subject")
		}
	}
	if classID != nil {
		if _, err := classService.FindClass(tx, tenantID, *classID); err != nil {
			return err
		}
	}
	return nil
}

func page[T any](q *gorm.DB, order string, p helper.Params) ([]T, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	rows := make([]T, 0)
	if err := q.Order(order).Limit(p.Limit).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

/* =========================
   Grades
========================= */

type GradeFilter struct {
	StudentID *uuid.UUID
	SubjectID *uuid.UUID
	ClassID   *uuid.UUID
	Term      string
}

func (s *AcademicService) CreateGrade(ctx context.Context, tenantID, actorID uuid.UUID, req dto.CreateGradeRequest) (*academicModel.GradeModel, error) {
	m, err := req.ToModel(tenantID, actorID, s.Now())
	if err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)
	if err := checkRefs(db, tenantID, req.StudentID, req.SubjectID, req.ClassID); err != nil {
		return nil, err
	}
	if err := db.Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *AcademicService) ListGrades(ctx context.Context, tenantID uuid.UUID, f GradeFilter, p helper.Params) ([]academicModel.GradeModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&academicModel.GradeModel{}).Where("tenant_id = ?", tenantID)
	if f.StudentID != nil {
		q = q.Where("student_id = ?", *f.StudentID)
	}
	if f.SubjectID != nil {
		q = q.Where("subject_id = ?", *f.SubjectID)
	}
	if f.ClassID != nil {
		q = q.Where("class_id = ?", *f.ClassID)
	}
	if f.Term != "" {
		q = q.Where("term = ?", f.Term)
	}
	return page[academicModel.GradeModel](q, "graded_at DESC", p)
}

/* =========================
   Attendance
========================= */

type AttendanceFilter struct {
	StudentID *uuid.UUID
	ClassID   *uuid.UUID
	Status    string
	From      *time.Time
	To        *time.Time
}

func (s *AcademicService) CreateAttendance(ctx context.Context, tenantID, actorID uuid.UUID, req dto.CreateAttendanceRequest) (*academicModel.AttendanceRecordModel, error) {
	m, err := req.ToModel(tenantID, actorID)
	if err != nil {
		return nil, err
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkRefs(tx, tenantID, req.StudentID, nil, req.ClassID); err != nil {
			return err
		}
		dup := tx.Model(&academicModel.AttendanceRecordModel{}).
			Where("tenant_id = ? AND student_id = ? AND date = ?", tenantID, req.StudentID, m.Date)
		if req.ClassID != nil {
			dup = dup.Where("class_id = ?", *req.ClassID)
		} else {
			dup = dup.Where("class_id IS NULL")
		}
		var n int64
		if err := dup.Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return helper.ErrConflict("attendance already recorded for this date")
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *AcademicService) ListAttendance(ctx context.Context, tenantID uuid.UUID, f AttendanceFilter, p helper.Params) ([]academicModel.AttendanceRecordModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&academicModel.AttendanceRecordModel{}).Where("tenant_id = ?", tenantID)
	if f.StudentID != nil {
		q = q.Where("student_id = ?", *f.StudentID)
	}
	if f.ClassID != nil {
		q = q.Where("class_id = ?", *f.ClassID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != nil {
		q = q.Where("date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("date <= ?", *f.To)
	}
	return page[academicModel.AttendanceRecordModel](q, "date DESC", p)
}

/* =========================
   Academic / health records
========================= */

type RecordFilter struct {
	StudentID    *uuid.UUID
	AcademicYear string
	Term         string
}

func (s *AcademicService) CreateAcademicRecord(ctx context.Context, tenantID uuid.UUID, req dto.CreateAcademicRecordRequest) (*academicModel.AcademicRecordModel, error) {
	db := s.DB.WithContext(ctx)
	if err := checkRefs(db, tenantID, req.StudentID, nil, req.ClassID); err != nil {
		return nil, err
	}
	m := req.ToModel(tenantID)
	if err := db.Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *AcademicService) ListAcademicRecords(ctx context.Context, tenantID uuid.UUID, f RecordFilter, p helper.Params) ([]academicModel.AcademicRecordModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&academicModel.AcademicRecordModel{}).Where("tenant_id = ?", tenantID)
	if f.StudentID != nil {
		q = q.Where("student_id = ?", *f.StudentID)
	}
	if f.AcademicYear != "" {
		q = q.Where("academic_year = ?", f.AcademicYear)
	}
	if f.Term != "" {
		q = q.Where("term = ?", f.Term)
	}
	return page[academicModel.AcademicRecordModel](q, "academic_year DESC, term DESC", p)
}

type HealthFilter struct {
	StudentID *uuid.UUID
	Type      string
}

func (s *AcademicService) CreateHealthRecord(ctx context.Context, tenantID, actorID uuid.UUID, req dto.CreateHealthRecordRequest) (*academicModel.HealthRecordModel, error) {
	m, err := req.ToModel(tenantID, actorID)
	if err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)
	if err := checkRefs(db, tenantID, req.StudentID, nil, nil); err != nil {
		return nil, err
	}
	if err := db.Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *AcademicService) ListHealthRecords(ctx context.Context, tenantID uuid.UUID, f HealthFilter, p helper.Params) ([]academicModel.HealthRecordModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&academicModel.HealthRecordModel{}).Where("tenant_id = ?", tenantID)
	if f.StudentID != nil {
		q = q.Where("student_id = ?", *f.StudentID)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	return page[academicModel.HealthRecordModel](q, "record_date DESC", p)
}
