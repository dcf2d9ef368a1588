package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	authzService "schoolku_backend/internals/features/platform/authz/service"
	helper "schoolku_backend/internals/helpers"
)

const localPermissions = "permissions"

// PermissionsFromCtx resolves the caller's permission set once per request.
func PermissionsFromCtx(c *fiber.Ctx, az *authzService.Authorizer) (authzService.PermissionSet, error) {
	if ps, ok := c.Locals(localPermissions).(authzService.PermissionSet); ok {
		return ps, nil
	}
	id, err := helper.GetIdentity(c)
	if err != nil {
		return nil, err
	}
	ps, err := az.Permissions(c.UserContext(), id.UserID, id.TenantID)
	if err != nil {
		return nil, err
	}
	c.Locals(localPermissions, ps)
	return ps, nil
}

// Authorize requires every listed permission (AND). Must run after AuthMiddleware.
func Authorize(az *authzService.Authorizer, perms ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ps, err := PermissionsFromCtx(c, az)
		if err != nil {
			return err
		}
		if missing := ps.Missing(perms...); len(missing) > 0 {
			return helper.ErrForbidden("forbidden: missing permission " + strings.Join(missing, ", "))
		}
		return c.Next()
	}
}
