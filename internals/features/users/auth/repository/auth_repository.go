package repository

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	tenantModel "schoolku_backend/internals/features/platform/tenants/model"
	authModel "schoolku_backend/internals/features/users/auth/model"
	userModel "schoolku_backend/internals/features/users/user/model"
)

/* ====================== TENANT ====================== */

func FindTenantByDomain(db *gorm.DB, domain string) (*tenantModel.TenantModel, error) {
	var t tenantModel.TenantModel
	if err := db.Where("LOWER(domain) = ?", strings.ToLower(strings.TrimSpace(domain))).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

/* ====================== USER ====================== */

func FindUserByEmail(db *gorm.DB, tenantID uuid.UUID, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("tenant_id = ? AND LOWER(email) = ?", tenantID, strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(db *gorm.DB, tenantID, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("id = ? AND tenant_id = ?", userID, tenantID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func EmailTaken(db *gorm.DB, tenantID uuid.UUID, email string) (bool, error) {
	var n int64
	err := db.Model(&userModel.UserModel{}).
		Where("tenant_id = ? AND LOWER(email) = ?", tenantID, strings.ToLower(strings.TrimSpace(email))).
		Count(&n).Error
	return n > 0, err
}

func CreateUser(db *gorm.DB, user *userModel.UserModel) error {
	return db.Create(user).Error
}

func TouchLastLogin(db *gorm.DB, userID uuid.UUID, at time.Time) error {
	return db.Model(&userModel.UserModel{}).Where("id = ?", userID).Update("last_login_at", at).Error
}

func UpdateUserPassword(db *gorm.DB, userID uuid.UUID, hash string) error {
	return db.Model(&userModel.UserModel{}).Where("id = ?", userID).Update("password", hash).Error
}

/* ====================== BLACKLIST TOKEN ====================== */

// BlacklistToken is idempotent: logging out twice with the same token is fine.
func BlacklistToken(db *gorm.DB, token string, expiredAt time.Time) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoNothing: true,
	}).Create(&authModel.TokenBlacklist{
		Token:     token,
		ExpiredAt: expiredAt.UTC(),
	}).Error
}

// CleanupExpiredBlacklist removes rows whose token could no longer verify anyway.
func CleanupExpiredBlacklist(db *gorm.DB, now time.Time) (int64, error) {
	res := db.Where("expired_at <= ?", now.UTC()).Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
