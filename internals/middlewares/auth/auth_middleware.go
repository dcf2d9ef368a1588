package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	authModel "schoolku_backend/internals/features/users/auth/model"
	userModel "schoolku_backend/internals/features/users/user/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/middlewares/logger"
)

const expirySkew = 30 * time.Second

// AuthMiddleware verifies the bearer JWT and resolves the caller's identity.
// On success Locals carry user_id, tenant_id and user_email.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := logger.FromCtx(c)

		tokenString, err := extractBearerToken(c)
		if err != nil {
			return helper.ErrUnauthenticated("unauthorized: " + err.Error())
		}

		var blacklisted int64
		if err := db.WithContext(c.UserContext()).
			Model(&authModel.TokenBlacklist{}).
			Where("token = ?", tokenString).
			Count(&blacklisted).Error; err != nil {
			return helper.ErrInternal("failed to verify token", err)
		}
		if blacklisted > 0 {
			return helper.ErrUnauthenticated("unauthorized: token has been revoked")
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Error("JWT_SECRET is empty")
			return helper.ErrInternal("authentication is not configured", nil)
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secretKey), nil
		}); err != nil {
			log.Debug("token parse failed", zap.Error(err))
			return helper.ErrUnauthenticated("unauthorized: invalid token")
		}

		if err := validateTokenExpiry(claims, expirySkew); err != nil {
			return helper.ErrUnauthenticated("unauthorized: token expired")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return helper.ErrUnauthenticated("unauthorized: invalid or missing user id")
		}
		tenantID, err := extractTenantID(claims)
		if err != nil {
			return helper.ErrUnauthenticated("unauthorized: invalid or missing tenant")
		}

		var user userModel.UserModel
		if err := db.WithContext(c.UserContext()).
			Select("id", "tenant_id", "email", "status").
			Where("id = ? AND tenant_id = ?", userID, tenantID).
			First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.ErrUnauthenticated("unauthorized: user not found")
			}
			return helper.ErrInternal("failed to load user", err)
		}
		if !user.IsActive() {
			return helper.ErrForbidden("account is not active")
		}

		c.Locals(helper.LocalUserID, userID.String())
		c.Locals(helper.LocalTenantID, tenantID.String())
		c.Locals(helper.LocalUserEmail, user.Email)
		c.Locals(localToken, tokenString)
		return c.Next()
	}
}

const localToken = "access_token"

// TokenFromCtx returns the raw JWT accepted by AuthMiddleware.
func TokenFromCtx(c *fiber.Ctx) string {
	s, _ := c.Locals(localToken).(string)
	return s
}
