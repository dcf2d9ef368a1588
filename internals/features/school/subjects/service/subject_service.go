package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/subjects/dto"
	subjectModel "schoolku_backend/internals/features/school/subjects/model"
	helper "schoolku_backend/internals/helpers"
)

type SubjectService struct {
	DB *gorm.DB
}

func NewSubjectService(db *gorm.DB) *SubjectService {
	return &SubjectService{DB: db}
}

type ListFilter struct {
	Search string
	Active *bool
}

var subjectSortColumns = map[string]string{
	"name":      "name",
	"code":      "code",
	"credits":   "credits",
	"createdAt": "created_at",
}

func (s *SubjectService) List(ctx context.Context, tenantID uuid.UUID, f ListFilter, p helper.Params) ([]subjectModel.SubjectModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&subjectModel.SubjectModel{}).Where("tenant_id = ?", tenantID)
	if f.Search != "" {
		like := helper.Like(f.Search)
		q = q.Where("(LOWER(name) LIKE ? OR LOWER(code) LIKE ?)", like, like)
	}
	if f.Active != nil {
		q = q.Where("is_active = ?", *f.Active)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []subjectModel.SubjectModel
	if err := q.Order(p.OrderColumn(subjectSortColumns, "name")).
		Limit(p.Limit).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *SubjectService) Get(ctx context.Context, tenantID, id uuid.UUID) (*subjectModel.SubjectModel, error) {
	var m subjectModel.SubjectModel
	if err := s.DB.WithContext(ctx).Where("id = ? AND tenant_id = ?", id, tenantID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("subject")
		}
		return nil, err
	}
	return &m, nil
}

func (s *SubjectService) codeTaken(ctx context.Context, tenantID uuid.UUID, code string, except *uuid.UUID) (bool, error) {
	q := s.DB.WithContext(ctx).Model(&subjectModel.SubjectModel{}).
		Where("tenant_id = ? AND code = ?", tenantID, code)
	if except != nil {
		q = q.Where("id <> ?", *except)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

func (s *SubjectService) Create(ctx context.Context, tenantID uuid.UUID, req dto.CreateSubjectRequest) (*subjectModel.SubjectModel, error) {
	m := req.ToModel()
	m.TenantID = tenantID
	taken, err := s.codeTaken(ctx, tenantID, m.Code, nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, helper.ErrConflict("subject code already exists")
	}
	if err := s.DB.WithContext(ctx).Create(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, helper.ErrConflict("subject code already exists")
		}
		return nil, err
	}
	// a false bool is skipped on insert in favour of the column default
	if !m.IsActive {
		if err := s.DB.WithContext(ctx).Model(&m).Update("is_active", false).Error; err != nil {
			return nil, err
		}
	}
	return &m, nil
}

func (s *SubjectService) Update(ctx context.Context, tenantID, id uuid.UUID, req dto.UpdateSubjectRequest) (*subjectModel.SubjectModel, error) {
	m, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	updates := req.Updates()
	if code, ok := updates["code"].(string); ok && code != m.Code {
		taken, err := s.codeTaken(ctx, tenantID, code, &m.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, helper.ErrConflict("subject code already exists")
		}
	}
	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(m).Updates(updates).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return nil, helper.ErrConflict("subject code already exists")
			}
			return nil, err
		}
	}
	return s.Get(ctx, tenantID, id)
}

// Delete removes the subject and its teacher links. Schedules and content
// keep their rows with subject_id cleared.
func (s *SubjectService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&subjectModel.SubjectModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return helper.ErrNotFound("subject")
		}
		if err := tx.Exec("DELETE FROM teacher_subjects WHERE subject_id = ? AND tenant_id = ?", id, tenantID).Error; err != nil {
			return err
		}
		for _, table := range []string{"schedules", "contents", "grades"} {
			if err := tx.Exec("UPDATE "+table+" SET subject_id = NULL WHERE subject_id = ? AND tenant_id = ?", id, tenantID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
