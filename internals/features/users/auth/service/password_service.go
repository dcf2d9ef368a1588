package service

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/users/auth/dto"
	authHelper "schoolku_backend/internals/features/users/auth/helper"
	authRepo "schoolku_backend/internals/features/users/auth/repository"
	helper "schoolku_backend/internals/helpers"
)

// POST /api/auth/change-password
func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	id, err := helper.GetIdentity(c)
	if err != nil {
		return err
	}
	var req dto.ChangePasswordRequest
	if err := helper.ParseBody(c, nil, &req); err != nil {
		return err
	}
	if !authHelper.IsStrongPassword(req.NewPassword) {
		return helper.ErrValidation("validation failed", helper.FieldError{
			Field: "newPassword", Message: "newPassword must contain letters and numbers",
		})
	}
	tx := db.WithContext(c.UserContext())

	user, err := authRepo.FindUserByID(tx, id.TenantID, id.UserID)
	if err != nil {
		return err
	}
	if err := authHelper.CheckPasswordHash(user.Password, req.CurrentPassword); err != nil {
		return helper.ErrUnauthenticated("current password is incorrect")
	}
	hash, err := authHelper.HashPassword(req.NewPassword)
	if err != nil {
		return helper.ErrInternal("failed to hash password", err)
	}
	if err := authRepo.UpdateUserPassword(tx, user.ID, hash); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "password changed", nil)
}
