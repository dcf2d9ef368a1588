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
	subjectModel "schoolku_backend/internals/features/school/subjects/model"
	"schoolku_backend/internals/features/school/teachers/dto"
	teacherModel "schoolku_backend/internals/features/school/teachers/model"
	userService "schoolku_backend/internals/features/users/user/service"
	helper "schoolku_backend/internals/helpers"
)

// MaxCodeAttempts bounds teacher code generation.
const MaxCodeAttempts = 5

// GenerateTeacherCode returns TCH + yymmddHHMMSS + 4 random digits.
func GenerateTeacherCode(now time.Time) string {
	return helper.NewCode("TCH", now)
}

type TeacherService struct {
	DB *gorm.DB
	// NewCode is swappable so tests can force collisions.
	NewCode func(time.Time) string
}

func NewTeacherService(db *gorm.DB) *TeacherService {
	return &TeacherService{DB: db, NewCode: GenerateTeacherCode}
}

func (s *TeacherService) find(tx *gorm.DB, tenantID, id uuid.UUID) (*teacherModel.TeacherModel, error) {
	var t teacherModel.TeacherModel
	if err := tx.Where("id = ? AND tenant_id = ?", id, tenantID).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("teacher")
		}
		return nil, err
	}
	return &t, nil
}

func codeExists(tx *gorm.DB, tenantID uuid.UUID, code string) (bool, error) {
	var n int64
	// soft-deleted rows still hold the unique index
	err := tx.Unscoped().Model(&teacherModel.TeacherModel{}).
		Where("tenant_id = ? AND teacher_code = ?", tenantID, code).
		Count(&n).Error
	return n > 0, err
}

func checkSubjects(tx *gorm.DB, tenantID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	uniq := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		uniq[id] = struct{}{}
	}
	var n int64
	if err := tx.Model(&subjectModel.SubjectModel{}).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Count(&n).Error; err != nil {
		return err
	}
	if int(n) != len(uniq) {
		return helper.ErrNotFound("subject")
	}
	return nil
}

/* =========================
   Create
========================= */

// Create inserts user, teacher, qualifications and subject links together.
// An explicit teacherId that is taken is a 409; a generated one is retried.
func (s *TeacherService) Create(ctx context.Context, tenantID, actorID uuid.UUID, req dto.CreateTeacherRequest) (*dto.TeacherResponse, error) {
	profile, err := req.Profile()
	if err != nil {
		return nil, err
	}

	if req.TeacherID != nil && strings.TrimSpace(*req.TeacherID) != "" {
		code := strings.TrimSpace(*req.TeacherID)
		id, err := s.createWithCode(ctx, tenantID, actorID, req, profile, code)
		if errors.Is(err, helper.ErrCodeTaken) {
			return nil, helper.ErrConflict("teacherId already exists")
		}
		if err != nil {
			return nil, err
		}
		return s.Get(ctx, tenantID, id)
	}

	var id uuid.UUID
	err = helper.WithGeneratedCode("teacher id", MaxCodeAttempts, s.NewCode, func(code string) error {
		var err error
		id, err = s.createWithCode(ctx, tenantID, actorID, req, profile, code)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, tenantID, id)
}

func (s *TeacherService) createWithCode(
	ctx context.Context,
	tenantID, actorID uuid.UUID,
	req dto.CreateTeacherRequest,
	profile teacherModel.TeacherModel,
	code string,
) (uuid.UUID, error) {
	var teacherID uuid.UUID
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := codeExists(tx, tenantID, code)
		if err != nil {
			return err
		}
		if taken {
			return helper.ErrCodeTaken
		}
		if err := checkSubjects(tx, tenantID, req.SubjectIDs); err != nil {
			return err
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

		t := profile
		t.TenantID = tenantID
		t.UserID = user.ID
		t.TeacherCode = code
		if err := tx.Create(&t).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return helper.ErrCodeTaken
			}
			return err
		}

		for _, q := range req.Qualifications {
			row := q.ToModel(tenantID, t.ID)
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		seen := make(map[uuid.UUID]bool, len(req.SubjectIDs))
		for i, sid := range req.SubjectIDs {
			if seen[sid] {
				continue
			}
			seen[sid] = true
			link := teacherModel.TeacherSubjectModel{TenantID: tenantID, TeacherID: t.ID, SubjectID: sid, IsPrimary: i == 0}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}

		by := actorID
		if err := authzService.AssignRoleByName(tx, tenantID, user.ID, constants.RoleTeacher, &by); err != nil {
			return err
		}
		teacherID = t.ID
		return nil
	})
	return teacherID, err
}

/* =========================
   Read
========================= */

type ListFilter struct {
	Search    string
	Status    string
	SubjectID *uuid.UUID
}

var teacherSortColumns = map[string]string{
	"createdAt": "teachers.created_at",
	"teacherId": "teachers.teacher_code",
	"firstName": "users.first_name",
	"lastName":  "users.last_name",
	"hireDate":  "teachers.hire_date",
}

func (s *TeacherService) List(ctx context.Context, tenantID uuid.UUID, f ListFilter, p helper.Params) ([]dto.TeacherResponse, int64, error) {
	q := s.DB.WithContext(ctx).Model(&teacherModel.TeacherModel{}).
		Joins("JOIN users ON users.id = teachers.user_id").
		Where("teachers.tenant_id = ?", tenantID)
	if f.Search != "" {
		like := helper.Like(f.Search)
		q = q.Where(`(LOWER(users.first_name) LIKE ? OR LOWER(users.last_name) LIKE ?
			OR LOWER(users.email) LIKE ? OR LOWER(teachers.teacher_code) LIKE ?
			OR LOWER(COALESCE(teachers.specialization, '')) LIKE ?)`, like, like, like, like, like)
	}
	if f.Status != "" {
		q = q.Where("teachers.status = ?", f.Status)
	}
	if f.SubjectID != nil {
		q = q.Where("EXISTS (SELECT 1 FROM teacher_subjects ts WHERE ts.teacher_id = teachers.id AND ts.subject_id = ?)", *f.SubjectID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []teacherModel.TeacherModel
	if err := q.Preload("User").Preload("Subjects.Subject").
		Order(p.OrderColumn(teacherSortColumns, "createdAt")).
		Limit(p.Limit).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return dto.FromTeacherModels(rows), total, nil
}

func (s *TeacherService) Get(ctx context.Context, tenantID, id uuid.UUID) (*dto.TeacherResponse, error) {
	var t teacherModel.TeacherModel
	err := s.DB.WithContext(ctx).
		Preload("User").
		Preload("Subjects.Subject").
		Preload("Qualifications", func(db *gorm.DB) *gorm.DB { return db.Order("year_obtained DESC") }).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("teacher")
		}
		return nil, err
	}
	out := dto.FromTeacherModel(t)
	return &out, nil
}

/* =========================
   Update / Delete
========================= */

func (s *TeacherService) Update(ctx context.Context, tenantID, id uuid.UUID, req dto.UpdateTeacherRequest) (*dto.TeacherResponse, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := s.find(tx, tenantID, id)
		if err != nil {
			return err
		}
		if err := req.Apply(t); err != nil {
			return err
		}
		if err := tx.Save(t).Error; err != nil {
			return err
		}
		if err := userService.UpdateNames(tx, tenantID, t.UserID, req.FirstName, req.LastName, req.Phone); err != nil {
			return err
		}
		if req.Qualifications == nil {
			return nil
		}
		if err := tx.Where("teacher_id = ? AND tenant_id = ?", t.ID, tenantID).
			Delete(&teacherModel.TeacherQualificationModel{}).Error; err != nil {
			return err
		}
		for _, q := range *req.Qualifications {
			row := q.ToModel(tenantID, t.ID)
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, tenantID, id)
}

// Delete soft-deletes the teacher and deactivates the login.
func (s *TeacherService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := s.find(tx, tenantID, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(t).Error; err != nil {
			return err
		}
		return userService.Deactivate(tx, tenantID, t.UserID)
	})
}

/* =========================
   Subjects
========================= */

func (s *TeacherService) AssignSubject(ctx context.Context, tenantID, teacherID uuid.UUID, req dto.AssignSubjectRequest) (*teacherModel.TeacherSubjectModel, error) {
	var link teacherModel.TeacherSubjectModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.find(tx, tenantID, teacherID); err != nil {
			return err
		}
		if err := checkSubjects(tx, tenantID, []uuid.UUID{req.SubjectID}); err != nil {
			return err
		}
		var n int64
		if err := tx.Model(&teacherModel.TeacherSubjectModel{}).
			Where("teacher_id = ? AND subject_id = ?", teacherID, req.SubjectID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return helper.ErrConflict("subject already assigned to teacher")
		}
		if req.IsPrimary {
			if err := tx.Model(&teacherModel.TeacherSubjectModel{}).
				Where("teacher_id = ?", teacherID).
				Update("is_primary", false).Error; err != nil {
				return err
			}
		}
		link = teacherModel.TeacherSubjectModel{
			TenantID:  tenantID,
			TeacherID: teacherID,
			SubjectID: req.SubjectID,
			IsPrimary: req.IsPrimary,
		}
		return tx.Create(&link).Error
	})
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (s *TeacherService) RemoveSubject(ctx context.Context, tenantID, teacherID, subjectID uuid.UUID) error {
	if _, err := s.find(s.DB.WithContext(ctx), tenantID, teacherID); err != nil {
		return err
	}
	res := s.DB.WithContext(ctx).
		Where("tenant_id = ? AND teacher_id = ? AND subject_id = ?", tenantID, teacherID, subjectID).
		Delete(&teacherModel.TeacherSubjectModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.ErrNotFound("teacher subject")
	}
	return nil
}
