package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"schoolku_backend/internals/configs"
)

const accessTTLDefault = 24 * time.Hour

func nowUTC() time.Time { return time.Now().UTC() }

func accessTTL() time.Duration {
	if configs.App.JWTTTL > 0 {
		return configs.App.JWTTTL
	}
	return accessTTLDefault
}

// IssueAccessToken signs an HS256 token carrying the user and tenant ids.
func IssueAccessToken(userID, tenantID uuid.UUID, now time.Time) (string, time.Time, error) {
	if configs.JWTSecret == "" {
		return "", time.Time{}, errors.New("JWT_SECRET is not set")
	}
	exp := now.Add(accessTTL())
	claims := jwt.MapClaims{
		"id":        userID.String(),
		"tenant_id": tenantID.String(),
		"iat":       now.Unix(),
		"exp":       exp.Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tok, exp, nil
}

// tokenExpiry reads exp without re-verifying; the token already passed
// AuthMiddleware when this is called.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err == nil {
		if exp, ok := claims["exp"].(float64); ok {
			return time.Unix(int64(exp), 0).UTC()
		}
	}
	return nowUTC().Add(accessTTL())
}
