package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

/* ======== Extractors ======== */

func extractBearerToken(c *fiber.Ctx) (string, error) {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if auth == "" {
		if cookieTok := c.Cookies("access_token"); cookieTok != "" {
			auth = "Bearer " + cookieTok
		}
	}
	if auth == "" {
		return "", errors.New("no token provided")
	}

	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", errors.New("invalid token format")
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", errors.New("empty token")
	}
	return tok, nil
}

func validateTokenExpiry(claims jwt.MapClaims, skew time.Duration) error {
	expVal, ok := claims["exp"]
	if !ok {
		return errors.New("token has no exp")
	}

	var expUnix int64
	switch t := expVal.(type) {
	case float64:
		expUnix = int64(t)
	case int64:
		expUnix = t
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return errors.New("invalid exp format")
		}
		expUnix = n
	default:
		return fmt.Errorf("invalid exp type %T", t)
	}

	expTime := time.Unix(expUnix, 0).UTC()
	if time.Now().UTC().After(expTime.Add(skew)) {
		return fmt.Errorf("token expired at %v", expTime)
	}
	return nil
}

func uuidClaim(claims jwt.MapClaims, key string) (uuid.UUID, error) {
	raw, ok := claims[key]
	if !ok {
		return uuid.Nil, fmt.Errorf("no %s claim", key)
	}
	s, ok := raw.(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("invalid %s claim type", key)
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("invalid %s claim", key)
	}
	return id, nil
}

func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	return uuidClaim(claims, "id")
}

func extractTenantID(claims jwt.MapClaims) (uuid.UUID, error) {
	return uuidClaim(claims, "tenant_id")
}
