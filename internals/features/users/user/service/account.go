package service

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authHelper "schoolku_backend/internals/features/users/auth/helper"
	authRepo "schoolku_backend/internals/features/users/auth/repository"
	userModel "schoolku_backend/internals/features/users/user/model"
	helper "schoolku_backend/internals/helpers"
)

// NewAccount is the user half of a teacher, parent or student profile.
type NewAccount struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     *string
}

// CreateAccount inserts an active tenant user inside tx. Email clashes in
// the tenant are a 409.
func CreateAccount(tx *gorm.DB, tenantID uuid.UUID, in NewAccount) (*userModel.UserModel, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	taken, err := authRepo.EmailTaken(tx, tenantID, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, helper.ErrConflict("email already registered in this school")
	}
	hash, err := authHelper.HashPassword(in.Password)
	if err != nil {
		return nil, helper.ErrInternal("failed to hash password", err)
	}
	u := &userModel.UserModel{
		TenantID:  tenantID,
		Email:     email,
		Password:  hash,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Phone:     in.Phone,
		Status:    userModel.UserActive,
	}
	if err := authRepo.CreateUser(tx, u); err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, helper.ErrConflict("email already registered in this school")
		}
		return nil, err
	}
	return u, nil
}

// UpdateNames patches first/last name and phone when set.
func UpdateNames(tx *gorm.DB, tenantID, userID uuid.UUID, first, last, phone *string) error {
	updates := map[string]any{}
	if first != nil {
		updates["first_name"] = strings.TrimSpace(*first)
	}
	if last != nil {
		updates["last_name"] = strings.TrimSpace(*last)
	}
	if phone != nil {
		updates["phone"] = *phone
	}
	if len(updates) == 0 {
		return nil
	}
	return tx.Model(&userModel.UserModel{}).
		Where("id = ? AND tenant_id = ?", userID, tenantID).
		Updates(updates).Error
}

// Deactivate blocks login for a user whose profile was removed.
func Deactivate(tx *gorm.DB, tenantID, userID uuid.UUID) error {
	return tx.Model(&userModel.UserModel{}).
		Where("id = ? AND tenant_id = ?", userID, tenantID).
		Update("status", userModel.UserInactive).Error
}
