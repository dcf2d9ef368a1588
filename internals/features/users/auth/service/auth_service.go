package service

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	tenantModel "schoolku_backend/internals/features/platform/tenants/model"
	authzService "schoolku_backend/internals/features/platform/authz/service"
	"schoolku_backend/internals/features/users/auth/dto"
	authHelper "schoolku_backend/internals/features/users/auth/helper"
	authRepo "schoolku_backend/internals/features/users/auth/repository"
	userModel "schoolku_backend/internals/features/users/user/model"
	helper "schoolku_backend/internals/helpers"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
	"schoolku_backend/internals/middlewares/logger"
)

// one message for unknown domain, unknown email and wrong password
var errBadCredentials = helper.ErrUnauthenticated("invalid email or password")

func tenantUsable(t *tenantModel.TenantModel) bool {
	return t.Status == tenantModel.TenantActive || t.Status == tenantModel.TenantTrial
}

/* ========================== LOGIN ========================== */

// POST /api/auth/login
func Login(db *gorm.DB, c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := helper.ParseBody(c, nil, &req); err != nil {
		return err
	}
	tx := db.WithContext(c.UserContext())

	tenant, err := authRepo.FindTenantByDomain(tx, req.Domain)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errBadCredentials
		}
		return err
	}

	user, err := authRepo.FindUserByEmail(tx, tenant.ID, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errBadCredentials
		}
		return err
	}
	if err := authHelper.CheckPasswordHash(user.Password, req.Password); err != nil {
		return errBadCredentials
	}
	if !user.IsActive() {
		return helper.ErrForbidden("account is not active")
	}
	if !tenantUsable(tenant) {
		return helper.ErrForbidden("school account is not active")
	}

	now := nowUTC()
	token, exp, err := IssueAccessToken(user.ID, tenant.ID, now)
	if err != nil {
		return helper.ErrInternal("failed to issue token", err)
	}
	if err := authRepo.TouchLastLogin(tx, user.ID, now); err != nil {
		logger.FromCtx(c).Warn("last_login_at update failed", zap.Error(err))
	}
	user.LastLoginAt = &now

	return helper.JsonOK(c, "login successful", dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      dto.FromUserModel(*user),
	})
}

/* ========================== REGISTER ========================== */

// POST /api/auth/register. The new account gets no roles.
func Register(db *gorm.DB, c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := helper.ParseBody(c, nil, &req); err != nil {
		return err
	}
	if !authHelper.IsStrongPassword(req.Password) {
		return helper.ErrValidation("validation failed", helper.FieldError{
			Field: "password", Message: "password must contain letters and numbers",
		})
	}
	tx := db.WithContext(c.UserContext())

	tenant, err := authRepo.FindTenantByDomain(tx, req.Domain)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.ErrNotFound("school")
		}
		return err
	}
	if !tenantUsable(tenant) {
		return helper.ErrForbidden("school account is not active")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	taken, err := authRepo.EmailTaken(tx, tenant.ID, email)
	if err != nil {
		return err
	}
	if taken {
		return helper.ErrConflict("email already registered")
	}

	hash, err := authHelper.HashPassword(req.Password)
	if err != nil {
		return helper.ErrInternal("failed to hash password", err)
	}
	user := userModel.UserModel{
		TenantID:  tenant.ID,
		Email:     email,
		Password:  hash,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Phone:     req.Phone,
		Status:    userModel.UserActive,
	}
	if err := authRepo.CreateUser(tx, &user); err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.ErrConflict("email already registered")
		}
		return err
	}
	return helper.JsonCreated(c, "registration successful", dto.FromUserModel(user))
}

/* ========================== LOGOUT ========================== */

// POST /api/auth/logout blacklists the presented token until it expires.
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	token := authMiddleware.TokenFromCtx(c)
	if token == "" {
		return helper.ErrUnauthenticated("no token provided")
	}
	if err := authRepo.BlacklistToken(db.WithContext(c.UserContext()), token, tokenExpiry(token)); err != nil {
		return helper.ErrInternal("failed to revoke token", err)
	}
	return helper.JsonOK(c, "logout successful", nil)
}

/* ========================== ME ========================== */

// GET /api/auth/me
func Me(db *gorm.DB, az *authzService.Authorizer, c *fiber.Ctx) error {
	id, err := helper.GetIdentity(c)
	if err != nil {
		return err
	}
	ctx := c.UserContext()

	user, err := authRepo.FindUserByID(db.WithContext(ctx), id.TenantID, id.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.ErrUnauthenticated("user not found")
		}
		return err
	}
	roles, err := az.Roles(ctx, id.UserID, id.TenantID)
	if err != nil {
		return err
	}
	perms, err := authMiddleware.PermissionsFromCtx(c, az)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Name)
	}
	return helper.JsonOK(c, "ok", dto.MeResponse{
		User:        dto.FromUserModel(*user),
		Roles:       names,
		Permissions: perms.List(),
	})
}
