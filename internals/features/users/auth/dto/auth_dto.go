package dto

import (
	"time"

	"github.com/google/uuid"

	userModel "schoolku_backend/internals/features/users/user/model"
)

type LoginRequest struct {
	Domain   string `json:"domain"   validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Domain    string  `json:"domain"    validate:"required"`
	Email     string  `json:"email"     validate:"required,email,max=200"`
	Password  string  `json:"password"  validate:"required,min=8,max=72"`
	FirstName string  `json:"firstName" validate:"required,max=100"`
	LastName  string  `json:"lastName"  validate:"required,max=100"`
	Phone     *string `json:"phone"     validate:"omitempty,max=40"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=8,max=72"`
}

type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    uuid.UUID  `json:"tenantId"`
	Email       string     `json:"email"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Phone       *string    `json:"phone,omitempty"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

func FromUserModel(u userModel.UserModel) UserResponse {
	return UserResponse{
		ID:          u.ID,
		TenantID:    u.TenantID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Phone:       u.Phone,
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
	}
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

type MeResponse struct {
	User        UserResponse `json:"user"`
	Roles       []string     `json:"roles"`
	Permissions []string     `json:"permissions"`
}
