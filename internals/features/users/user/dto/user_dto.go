package dto

import (
	"time"

	"github.com/google/uuid"

	userModel "schoolku_backend/internals/features/users/user/model"
)

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ACTIVE INACTIVE SUSPENDED"`
}

type AssignRoleRequest struct {
	RoleID string `json:"roleId" validate:"required,uuid"`
}

type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Phone       *string    `json:"phone,omitempty"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	Roles       []string   `json:"roles"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func FromUserModel(u userModel.UserModel, roles []string) UserResponse {
	if roles == nil {
		roles = []string{}
	}
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Phone:       u.Phone,
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
		Roles:       roles,
		CreatedAt:   u.CreatedAt,
	}
}
