// Package seeds prepares the rows every deployment needs before the first
// request: the permission catalog, the system Super Admin role and,
// optionally, a platform operator account.
package seeds

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	"schoolku_backend/internals/constants"
	authzModel "schoolku_backend/internals/features/platform/authz/model"
	authzService "schoolku_backend/internals/features/platform/authz/service"
	tenantModel "schoolku_backend/internals/features/platform/tenants/model"
	authHelper "schoolku_backend/internals/features/users/auth/helper"
	userModel "schoolku_backend/internals/features/users/user/model"
	helper "schoolku_backend/internals/helpers"
)

// RunAllSeeds is idempotent and runs on every boot.
func RunAllSeeds(ctx context.Context, db *gorm.DB, cfg configs.AppConfig) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids, err := authzService.EnsurePermissions(tx, constants.AllPermissions)
		if err != nil {
			return err
		}
		role, err := ensureSuperAdminRole(tx, ids)
		if err != nil {
			return err
		}
		if cfg.SuperAdminEmail == "" || cfg.SuperAdminPassword == "" {
			zap.L().Info("seeds: no platform operator configured")
			return nil
		}
		return ensurePlatformOperator(tx, cfg, role)
	})
}

// ensureSuperAdminRole keeps the tenant-less system role granted the full
// catalog, tenants:* included.
func ensureSuperAdminRole(tx *gorm.DB, ids map[string]uuid.UUID) (*authzModel.RoleModel, error) {
	var role authzModel.RoleModel
	err := tx.Where("tenant_id IS NULL AND name = ? AND is_system = ?", constants.RoleSuperAdmin, true).
		First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		role = authzModel.RoleModel{
			Name:        constants.RoleSuperAdmin,
			Description: "Platform operator",
			IsSystem:    true,
		}
		err = tx.Create(&role).Error
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "super admin role")
	}
	if err := authzService.GrantPermissions(tx, role.ID, ids, constants.AllPermissions); err != nil {
		return nil, pkgerrors.Wrap(err, "grant super admin")
	}
	return &role, nil
}

func ensurePlatformOperator(tx *gorm.DB, cfg configs.AppConfig, role *authzModel.RoleModel) error {
	domain := helper.NormalizeDomain(cfg.PlatformDomain)
	if domain == "" {
		return pkgerrors.Errorf("invalid platform domain %q", cfg.PlatformDomain)
	}
	email := strings.ToLower(strings.TrimSpace(cfg.SuperAdminEmail))

	var tenant tenantModel.TenantModel
	err := tx.Where("domain = ?", domain).First(&tenant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tenant = tenantModel.TenantModel{
			Name:   "Platform",
			Email:  email,
			Domain: domain,
			Status: tenantModel.TenantActive,
		}
		err = tx.Create(&tenant).Error
	}
	if err != nil {
		return pkgerrors.Wrap(err, "platform tenant")
	}

	var user userModel.UserModel
	err = tx.Where("tenant_id = ? AND email = ?", tenant.ID, email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		hash, hErr := authHelper.HashPassword(cfg.SuperAdminPassword)
		if hErr != nil {
			return hErr
		}
		user = userModel.UserModel{
			TenantID:  tenant.ID,
			Email:     email,
			Password:  hash,
			FirstName: "Super",
			LastName:  "Admin",
			Status:    userModel.UserActive,
		}
		err = tx.Create(&user).Error
		if err == nil {
			zap.L().Info("seeds: platform operator created", zap.String("email", email), zap.String("domain", domain))
		}
	}
	if err != nil {
		return pkgerrors.Wrap(err, "platform operator")
	}

	var held int64
	if err := tx.Model(&authzModel.UserRoleModel{}).
		Where("user_id = ? AND role_id = ?", user.ID, role.ID).
		Count(&held).Error; err != nil {
		return err
	}
	if held > 0 {
		return nil
	}
	return tx.Create(&authzModel.UserRoleModel{
		UserID:   user.ID,
		RoleID:   role.ID,
		TenantID: tenant.ID,
	}).Error
}
