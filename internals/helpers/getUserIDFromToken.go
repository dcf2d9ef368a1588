package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys written by the auth middleware.
const (
	LocalUserID    = "user_id"
	LocalTenantID  = "tenant_id"
	LocalUserEmail = "user_email"
)

func localUUID(c *fiber.Ctx, key string) (uuid.UUID, bool) {
	switch t := c.Locals(key).(type) {
	case uuid.UUID:
		return t, t != uuid.Nil
	case string:
		id, err := uuid.Parse(strings.TrimSpace(t))
		return id, err == nil && id != uuid.Nil
	default:
		return uuid.Nil, false
	}
}

// GetUserIDFromToken returns the authenticated user id or a 401 AppError.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	id, ok := localUUID(c, LocalUserID)
	if !ok {
		return uuid.Nil, ErrUnauthenticated("authentication required")
	}
	return id, nil
}

// GetTenantIDFromToken returns the caller's tenant. A request without one
// never falls back to a global scope.
func GetTenantIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	id, ok := localUUID(c, LocalTenantID)
	if !ok {
		return uuid.Nil, ErrUnauthenticated("tenant context missing")
	}
	return id, nil
}

// Identity is the (user, tenant) pair every tenant-scoped handler needs.
type Identity struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
}

func GetIdentity(c *fiber.Ctx) (Identity, error) {
	uid, err := GetUserIDFromToken(c)
	if err != nil {
		return Identity{}, err
	}
	tid, err := GetTenantIDFromToken(c)
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: uid, TenantID: tid}, nil
}

// ParseUUIDParam reads a path parameter as UUID; malformed ids are a 400.
func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params(name))
	if raw == "" {
		return uuid.Nil, ErrValidation(name+" is required", FieldError{Field: name, Message: name + " is required"})
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrValidation("invalid "+name, FieldError{Field: name, Message: name + " must be a valid UUID"})
	}
	return id, nil
}

// ParseUUIDQuery returns nil when the query parameter is absent.
func ParseUUIDQuery(c *fiber.Ctx, name string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, ErrValidation("invalid "+name, FieldError{Field: name, Message: name + " must be a valid UUID"})
	}
	return &id, nil
}
