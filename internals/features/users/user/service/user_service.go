package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "schoolku_backend/internals/features/users/user/model"
	helper "schoolku_backend/internals/helpers"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

type ListFilter struct {
	Search string
	Status string
	Role   string
}

var userSortColumns = map[string]string{
	"createdAt": "users.created_at",
	"email":     "users.email",
	"firstName": "users.first_name",
	"lastName":  "users.last_name",
}

// List returns tenant users plus a user_id -> role names map for the page.
func (s *UserService) List(ctx context.Context, tenantID uuid.UUID, f ListFilter, p helper.Params) ([]userModel.UserModel, map[uuid.UUID][]string, int64, error) {
	q := s.DB.WithContext(ctx).Model(&userModel.UserModel{}).Where("users.tenant_id = ?", tenantID)
	if f.Search != "" {
		like := helper.Like(f.Search)
		q = q.Where("(LOWER(users.email) LIKE ? OR LOWER(users.first_name) LIKE ? OR LOWER(users.last_name) LIKE ?)", like, like, like)
	}
	if f.Status != "" {
		q = q.Where("users.status = ?", f.Status)
	}
	if f.Role != "" {
		q = q.Where(`EXISTS (SELECT 1 FROM user_roles ur JOIN roles r ON r.id = ur.role_id
			WHERE ur.user_id = users.id AND ur.tenant_id = ? AND r.name = ?)`, tenantID, f.Role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, nil, 0, err
	}

	var users []userModel.UserModel
	if err := q.Order(p.OrderColumn(userSortColumns, "createdAt")).
		Limit(p.Limit).Offset(p.Offset()).
		Find(&users).Error; err != nil {
		return nil, nil, 0, err
	}

	roles, err := s.rolesFor(ctx, tenantID, users)
	if err != nil {
		return nil, nil, 0, err
	}
	return users, roles, total, nil
}

func (s *UserService) rolesFor(ctx context.Context, tenantID uuid.UUID, users []userModel.UserModel) (map[uuid.UUID][]string, error) {
	out := make(map[uuid.UUID][]string, len(users))
	if len(users) == 0 {
		return out, nil
	}
	ids := make([]uuid.UUID, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	var rows []struct {
		UserID uuid.UUID
		Name   string
	}
	if err := s.DB.WithContext(ctx).
		Table("user_roles ur").
		Select("ur.user_id, r.name").
		Joins("JOIN roles r ON r.id = ur.role_id").
		Where("ur.tenant_id = ? AND ur.user_id IN ?", tenantID, ids).
		Order("r.name ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.UserID] = append(out[r.UserID], r.Name)
	}
	return out, nil
}

// UpdateStatus flips a user's status. Callers cannot change their own.
func (s *UserService) UpdateStatus(ctx context.Context, tenantID, actorID, userID uuid.UUID, status userModel.UserStatus) (*userModel.UserModel, error) {
	if actorID == userID {
		return nil, helper.ErrValidation("you cannot change your own status")
	}
	var u userModel.UserModel
	if err := s.DB.WithContext(ctx).Where("id = ? AND tenant_id = ?", userID, tenantID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("user")
		}
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&u).Update("status", status).Error; err != nil {
		return nil, err
	}
	u.Status = status
	return &u, nil
}
