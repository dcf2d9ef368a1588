package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/classes/dto"
	classModel "schoolku_backend/internals/features/school/classes/model"
	studentService "schoolku_backend/internals/features/school/students/service"
	teacherModel "schoolku_backend/internals/features/school/teachers/model"
	helper "schoolku_backend/internals/helpers"
)

type ClassService struct {
	DB *gorm.DB
}

func NewClassService(db *gorm.DB) *ClassService {
	return &ClassService{DB: db}
}

func FindClass(tx *gorm.DB, tenantID, id uuid.UUID) (*classModel.ClassModel, error) {
	var c classModel.ClassModel
	if err := tx.Where("id = ? AND tenant_id = ?", id, tenantID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("class")
		}
		return nil, err
	}
	return &c, nil
}

func checkTeacher(tx *gorm.DB, tenantID uuid.UUID, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	var n int64
	if err := tx.Model(&teacherModel.TeacherModel{}).
		Where("id = ? AND tenant_id = ?", *id, tenantID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return helper.ErrNotFound("teacher")
	}
	return nil
}

func activeCount(tx *gorm.DB, classID uuid.UUID) (int64, error) {
	var n int64
	err := tx.Model(&classModel.StudentClassEnrollmentModel{}).
		Where("class_id = ? AND status = ?", classID, classModel.EnrollmentActive).
		Count(&n).Error
	return n, err
}

type ListFilter struct {
	Search       string
	GradeLevel   string
	AcademicYear string
	TeacherID    *uuid.UUID
}

var classSortColumns = map[string]string{
	"name":         "name",
	"gradeLevel":   "grade_level",
	"academicYear": "academic_year",
	"createdAt":    "created_at",
}

func (s *ClassService) List(ctx context.Context, tenantID uuid.UUID, f ListFilter, p helper.Params) ([]dto.ClassResponse, int64, error) {
	q := s.DB.WithContext(ctx).Model(&classModel.ClassModel{}).Where("tenant_id = ?", tenantID)
	if f.Search != "" {
		q = q.Where("LOWER(name) LIKE ?", helper.Like(f.Search))
	}
	if f.GradeLevel != "" {
		q = q.Where("grade_level = ?", f.GradeLevel)
	}
	if f.AcademicYear != "" {
		q = q.Where("academic_year = ?", f.AcademicYear)
	}
	if f.TeacherID != nil {
		q = q.Where("class_teacher_id = ?", *f.TeacherID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []classModel.ClassModel
	if err := q.Order(p.OrderColumn(classSortColumns, "name")).
		Limit(p.Limit).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	counts := map[uuid.UUID]int64{}
	if len(rows) > 0 {
		ids := make([]uuid.UUID, len(rows))
		for i, r := range rows {
			ids[i] = r.ID
		}
		var agg []struct {
			ClassID uuid.UUID
			N       int64
		}
		if err := s.DB.WithContext(ctx).Model(&classModel.StudentClassEnrollmentModel{}).
			Select("class_id, COUNT(*) AS n").
			Where("class_id IN ? AND status = ?", ids, classModel.EnrollmentActive).
			Group("class_id").
			Scan(&agg).Error; err != nil {
			return nil, 0, err
		}
		for _, a := range agg {
			counts[a.ClassID] = a.N
		}
	}
	out := make([]dto.ClassResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ClassResponse{ClassModel: r, EnrolledCount: counts[r.ID]})
	}
	return out, total, nil
}

func (s *ClassService) Get(ctx context.Context, tenantID, id uuid.UUID) (*dto.ClassResponse, error) {
	db := s.DB.WithContext(ctx)
	c, err := FindClass(db, tenantID, id)
	if err != nil {
		return nil, err
	}
	n, err := activeCount(db, c.ID)
	if err != nil {
		return nil, err
	}
	return &dto.ClassResponse{ClassModel: *c, EnrolledCount: n}, nil
}

// Students lists a class roster, active enrollments first.
func (s *ClassService) Students(ctx context.Context, tenantID, id uuid.UUID) ([]dto.EnrolledStudent, error) {
	db := s.DB.WithContext(ctx)
	if _, err := FindClass(db, tenantID, id); err != nil {
		return nil, err
	}
	var out []dto.EnrolledStudent
	err := db.Table("student_class_enrollments e").
		Select("s.id AS student_id, s.student_code, u.first_name, u.last_name, e.status, e.enrolled_at").
		Joins("JOIN students s ON s.id = e.student_id AND s.deleted_at IS NULL").
		Joins("JOIN users u ON u.id = s.user_id").
		Where("e.class_id = ? AND e.tenant_id = ?", id, tenantID).
		Order("CASE WHEN e.status = 'ACTIVE' THEN 0 ELSE 1 END, u.first_name ASC").
		Scan(&out).Error
	return out, err
}

func (s *ClassService) Create(ctx context.Context, tenantID uuid.UUID, req dto.CreateClassRequest) (*dto.ClassResponse, error) {
	db := s.DB.WithContext(ctx)
	if err := checkTeacher(db, tenantID, req.ClassTeacherID); err != nil {
		return nil, err
	}
	m := req.ToModel(tenantID)
	if err := db.Create(&m).Error; err != nil {
		return nil, err
	}
	return &dto.ClassResponse{ClassModel: m}, nil
}

func (s *ClassService) Update(ctx context.Context, tenantID, id uuid.UUID, req dto.UpdateClassRequest) (*dto.ClassResponse, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := FindClass(tx, tenantID, id)
		if err != nil {
			return err
		}
		if err := checkTeacher(tx, tenantID, req.ClassTeacherID); err != nil {
			return err
		}
		if req.Capacity != nil {
			n, err := activeCount(tx, c.ID)
			if err != nil {
				return err
			}
			if int64(*req.Capacity) < n {
				return helper.ErrValidation("capacity is below the current enrollment")
			}
		}
		updates := req.Updates()
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(c).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, tenantID, id)
}

// Delete removes the class with its enrollments and detaches schedules,
// content and records that pointed at it.
func (s *ClassService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := FindClass(tx, tenantID, id)
		if err != nil {
			return err
		}
		if err := tx.Where("class_id = ? AND tenant_id = ?", c.ID, tenantID).
			Delete(&classModel.StudentClassEnrollmentModel{}).Error; err != nil {
			return err
		}
		for _, table := range []string{"schedules", "contents", "grades", "attendance_records", "academic_records"} {
			if err := tx.Exec("UPDATE "+table+" SET class_id = NULL WHERE class_id = ? AND tenant_id = ?", c.ID, tenantID).Error; err != nil {
				return err
			}
		}
		return tx.Delete(c).Error
	})
}

/* =========================
   Enrollment
========================= */

// Enroll adds a student to a class, reactivating a previous enrollment.
func (s *ClassService) Enroll(ctx context.Context, tenantID, classID, studentID uuid.UUID) (*classModel.StudentClassEnrollmentModel, error) {
	var out classModel.StudentClassEnrollmentModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := FindClass(tx, tenantID, classID)
		if err != nil {
			return err
		}
		if _, err := studentService.FindStudent(tx, tenantID, studentID); err != nil {
			return err
		}
		n, err := activeCount(tx, c.ID)
		if err != nil {
			return err
		}

		var existing classModel.StudentClassEnrollmentModel
		err = tx.Where("class_id = ? AND student_id = ?", classID, studentID).First(&existing).Error
		switch {
		case err == nil:
			if existing.Status == classModel.EnrollmentActive {
				return helper.ErrConflict("student already enrolled in this class")
			}
			if n >= int64(c.Capacity) {
				return helper.ErrConflict("class is full")
			}
			existing.Status = classModel.EnrollmentActive
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			out = existing
			return nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		if n >= int64(c.Capacity) {
			return helper.ErrConflict("class is full")
		}
		out = classModel.StudentClassEnrollmentModel{
			TenantID:  tenantID,
			StudentID: studentID,
			ClassID:   classID,
			Status:    classModel.EnrollmentActive,
		}
		if err := tx.Create(&out).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return helper.ErrConflict("student already enrolled in this class")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ClassService) Withdraw(ctx context.Context, tenantID, classID, studentID uuid.UUID) error {
	db := s.DB.WithContext(ctx)
	if _, err := FindClass(db, tenantID, classID); err != nil {
		return err
	}
	res := db.Model(&classModel.StudentClassEnrollmentModel{}).
		Where("class_id = ? AND student_id = ? AND tenant_id = ? AND status = ?", classID, studentID, tenantID, classModel.EnrollmentActive).
		Update("status", classModel.EnrollmentWithdrawn)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.ErrNotFound("enrollment")
	}
	return nil
}
