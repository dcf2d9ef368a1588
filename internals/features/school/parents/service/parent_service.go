package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	authzService "schoolku_backend/internals/features/platform/authz/service"
	academicService "schoolku_backend/internals/features/school/academics/service"
	"schoolku_backend/internals/features/school/parents/dto"
	parentModel "schoolku_backend/internals/features/school/parents/model"
	scheduleService "schoolku_backend/internals/features/school/schedules/service"
	userService "schoolku_backend/internals/features/users/user/service"
	helper "schoolku_backend/internals/helpers"
)

type ParentService struct {
	DB        *gorm.DB
	Academics *academicService.AcademicService
	Schedules *scheduleService.ScheduleService
}

func NewParentService(db *gorm.DB) *ParentService {
	return &ParentService{
		DB:        db,
		Academics: academicService.NewAcademicService(db),
		Schedules: scheduleService.NewScheduleService(db),
	}
}

func findParent(tx *gorm.DB, tenantID, id uuid.UUID) (*parentModel.ParentModel, error) {
	var p parentModel.ParentModel
	if err := tx.Where("id = ? AND tenant_id = ?", id, tenantID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("parent")
		}
		return nil, err
	}
	return &p, nil
}

// Create opens a login and a parent profile together and grants the
// tenant's Parent role when it exists.
func (s *ParentService) Create(ctx context.Context, tenantID, actorID uuid.UUID, req dto.CreateParentRequest) (*dto.ParentResponse, error) {
	profile, err := req.Profile()
	if err != nil {
		return nil, err
	}
	var parentID uuid.UUID
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
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
		p := profile
		p.TenantID = tenantID
		p.UserID = user.ID
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		by := actorID
		if err := authzService.AssignRoleByName(tx, tenantID, user.ID, constants.RoleParent, &by); err != nil {
			return err
		}
		parentID = p.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, tenantID, parentID)
}

type ListFilter struct {
	Search string
	Status string
	// Caller narrows the list to the caller's own profile when they are a parent.
	Caller uuid.UUID
}

var parentSortColumns = map[string]string{
	"createdAt": "parents.created_at",
	"firstName": "users.first_name",
	"lastName":  "users.last_name",
	"email":     "users.email",
}

func (s *ParentService) List(ctx context.Context, tenantID uuid.UUID, f ListFilter, p helper.Params) ([]dto.ParentResponse, int64, error) {
	q := s.DB.WithContext(ctx).Model(&parentModel.ParentModel{}).
		Joins("JOIN users ON users.id = parents.user_id").
		Where("parents.tenant_id = ?", tenantID)
	if f.Search != "" {
		like := helper.Like(f.Search)
		q = q.Where("(LOWER(users.email) LIKE ? OR LOWER(users.first_name) LIKE ? OR LOWER(users.last_name) LIKE ?)", like, like, like)
	}
	if f.Status != "" {
		q = q.Where("parents.status = ?", f.Status)
	}
	if f.Caller != uuid.Nil {
		own, err := ownParentID(s.DB.WithContext(ctx), tenantID, f.Caller)
		if err != nil {
			return nil, 0, err
		}
		if own != nil {
			q = q.Where("parents.id = ?", *own)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []parentModel.ParentModel
	if err := q.Preload("User").Preload("Relations").
		Order(p.OrderColumn(parentSortColumns, "createdAt")).
		Limit(p.Limit).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]dto.ParentResponse, 0, len(rows))
	for _, r := range rows {
		resp := dto.FromParentModel(r)
		resp.Children = nil
		out = append(out, resp)
	}
	return out, total, nil
}

func (s *ParentService) Get(ctx context.Context, tenantID, id uuid.UUID) (*dto.ParentResponse, error) {
	var p parentModel.ParentModel
	err := s.DB.WithContext(ctx).
		Preload("User").
		Preload("Relations", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Relations.Student").
		Preload("Relations.Student.User").
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("parent")
		}
		return nil, err
	}
	out := dto.FromParentModel(p)
	return &out, nil
}

func (s *ParentService) Update(ctx context.Context, tenantID, id uuid.UUID, req dto.UpdateParentRequest) (*dto.ParentResponse, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := findParent(tx, tenantID, id)
		if err != nil {
			return err
		}
		if err := req.Apply(p); err != nil {
			return err
		}
		if err := userService.UpdateNames(tx, tenantID, p.UserID, req.FirstName, req.LastName, req.Phone); err != nil {
			return err
		}
		return tx.Save(p).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, tenantID, id)
}

// Delete soft-deletes the profile, drops its relations and deactivates
// the login.
func (s *ParentService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := findParent(tx, tenantID, id)
		if err != nil {
			return err
		}
		if err := tx.Where("parent_id = ? AND tenant_id = ?", id, tenantID).
			Delete(&parentModel.ParentStudentRelationModel{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(p).Error; err != nil {
			return err
		}
		return userService.Deactivate(tx, tenantID, p.UserID)
	})
}
