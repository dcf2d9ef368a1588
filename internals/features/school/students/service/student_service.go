package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	authzService "schoolku_backend/internals/features/platform/authz/service"
	classModel "schoolku_backend/internals/features/school/classes/model"
	"schoolku_backend/internals/features/school/students/dto"
	studentModel "schoolku_backend/internals/features/school/students/model"
	userService "schoolku_backend/internals/features/users/user/service"
	helper "schoolku_backend/internals/helpers"
)

const maxCodeAttempts = 5

type StudentService struct {
	DB *gorm.DB
}

func NewStudentService(db *gorm.DB) *StudentService {
	return &StudentService{DB: db}
}

// FindStudent is the tenant-scoped lookup shared with parents and academics.
func FindStudent(tx *gorm.DB, tenantID, id uuid.UUID) (*studentModel.StudentModel, error) {
	var s studentModel.StudentModel
	if err := tx.Where("id = ? AND tenant_id = ?", id, tenantID).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("student")
		}
		return nil, err
	}
	return &s, nil
}

func generateStudentCode(now time.Time) string { return helper.NewCode("STU", now) }

func (s *StudentService) Create(ctx context.Context, tenantID, actorID uuid.UUID, req dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	profile, err := req.Profile()
	if err != nil {
		return nil, err
	}
	if req.StudentID != nil && strings.TrimSpace(*req.StudentID) != "" {
		id, err := s.createWithCode(ctx, tenantID, actorID, req, profile, strings.TrimSpace(*req.StudentID))
		if errors.Is(err, helper.ErrCodeTaken) {
			return nil, helper.ErrConflict("studentId already exists")
		}
		if err != nil {
			return nil, err
		}
		return s.Get(ctx, tenantID, id)
	}

	var id uuid.UUID
	err = helper.WithGeneratedCode("student id", maxCodeAttempts, generateStudentCode, func(code string) error {
		var err error
		id, err = s.createWithCode(ctx, tenantID, actorID, req, profile, code)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, tenantID, id)
}

func (s *StudentService) createWithCode(
	ctx context.Context,
	tenantID, actorID uuid.UUID,
	req dto.CreateStudentRequest,
	profile studentModel.StudentModel,
	code string,
) (uuid.UUID, error) {
	var studentID uuid.UUID
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Unscoped().Model(&studentModel.StudentModel{}).
			Where("tenant_id = ? AND student_code = ?", tenantID, code).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return helper.ErrCodeTaken
		}
		if req.ClassID != nil {
			var cn int64
			if err := tx.Model(&classModel.ClassModel{}).
				Where("id = ? AND tenant_id = ?", *req.ClassID, tenantID).
				Count(&cn).Error; err != nil {
				return err
			}
			if cn == 0 {
				return helper.ErrNotFound("class")
			}
		}

		user, err := userService.CreateAccount(tx, tenantID, userService.NewAccount{
			Email:     req.Email,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
		})
		if err != nil {
			return err
		}

		st := profile
		st.TenantID = tenantID
		st.UserID = user.ID
		st.StudentCode = code
		if err := tx.Create(&st).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return helper.ErrCodeTaken
			}
			return err
		}
		if req.ClassID != nil {
			if err := tx.Create(&classModel.StudentClassEnrollmentModel{
				TenantID:  tenantID,
				StudentID: st.ID,
				ClassID:   *req.ClassID,
				Status:    classModel.EnrollmentActive,
			}).Error; err != nil {
				return err
			}
		}
		by := actorID
		if err := authzService.AssignRoleByName(tx, tenantID, user.ID, constants.RoleStudent, &by); err != nil {
			return err
		}
		studentID = st.ID
		return nil
	})
	return studentID, err
}

type ListFilter struct {
	Search  string
	Status  string
	ClassID *uuid.UUID
}

var studentSortColumns = map[string]string{
	"createdAt":     "students.created_at",
	"studentId":     "students.student_code",
	"firstName":     "users.first_name",
	"lastName":      "users.last_name",
	"admissionDate": "students.admission_date",
}

func (s *StudentService) List(ctx context.Context, tenantID uuid.UUID, f ListFilter, p helper.Params) ([]dto.StudentResponse, int64, error) {
	q := s.DB.WithContext(ctx).Model(&studentModel.StudentModel{}).
		Joins("JOIN users ON users.id = students.user_id").
		Where("students.tenant_id = ?", tenantID)
	if f.Search != "" {
		like := helper.Like(f.Search)
		q = q.Where(`(LOWER(users.first_name) LIKE ? OR LOWER(users.last_name) LIKE ?
			OR LOWER(users.email) LIKE ? OR LOWER(students.student_code) LIKE ?)`, like, like, like, like)
	}
	if f.Status != "" {
		q = q.Where("students.status = ?", f.Status)
	}
	if f.ClassID != nil {
		q = q.Where(`EXISTS (SELECT 1 FROM student_class_enrollments e
			WHERE e.student_id = students.id AND e.class_id = ? AND e.status = ?)`, *f.ClassID, classModel.EnrollmentActive)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []studentModel.StudentModel
	if err := q.Preload("User").
		Order(p.OrderColumn(studentSortColumns, "createdAt")).
		Limit(p.Limit).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]dto.StudentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.FromStudentModel(r))
	}
	return out, total, nil
}

func (s *StudentService) Get(ctx context.Context, tenantID, id uuid.UUID) (*dto.StudentResponse, error) {
	var st studentModel.StudentModel
	if err := s.DB.WithContext(ctx).Preload("User").
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("student")
		}
		return nil, err
	}
	out := dto.FromStudentModel(st)

	var classes []dto.ClassBrief
	if err := s.DB.WithContext(ctx).
		Table("student_class_enrollments e").
		Select("c.id, c.name, c.grade_level, c.academic_year, e.status").
		Joins("JOIN classes c ON c.id = e.class_id").
		Where("e.student_id = ? AND e.tenant_id = ?", id, tenantID).
		Order("c.academic_year DESC, c.name ASC").
		Scan(&classes).Error; err != nil {
		return nil, err
	}
	out.Classes = classes
	return &out, nil
}

func (s *StudentService) Update(ctx context.Context, tenantID, id uuid.UUID, req dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		st, err := FindStudent(tx, tenantID, id)
		if err != nil {
			return err
		}
		if err := req.Apply(st); err != nil {
			return err
		}
		if err := tx.Save(st).Error; err != nil {
			return err
		}
		return userService.UpdateNames(tx, tenantID, st.UserID, req.FirstName, req.LastName, req.Phone)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, tenantID, id)
}

// Delete soft-deletes the profile, withdraws active enrollments and
// deactivates the login.
func (s *StudentService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		st, err := FindStudent(tx, tenantID, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(st).Error; err != nil {
			return err
		}
		if err := tx.Model(&classModel.StudentClassEnrollmentModel{}).
			Where("student_id = ? AND tenant_id = ? AND status = ?", id, tenantID, classModel.EnrollmentActive).
			Update("status", classModel.EnrollmentWithdrawn).Error; err != nil {
			return err
		}
		return userService.Deactivate(tx, tenantID, st.UserID)
	})
}
