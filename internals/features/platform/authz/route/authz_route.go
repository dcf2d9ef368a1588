package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/platform/authz/controller"
	authzService "schoolku_backend/internals/features/platform/authz/service"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

// AuthzRoutes mounts role administration on an authenticated router.
func AuthzRoutes(api fiber.Router, db *gorm.DB, az *authzService.Authorizer) {
	ctl := controller.NewRoleController(db)

	roles := api.Group("/roles")
	roles.Get("/", authMiddleware.Authorize(az, constants.PermRolesRead), ctl.List)
	roles.Post("/", authMiddleware.Authorize(az, constants.PermRolesCreate), ctl.Create)
	roles.Put("/:id/permissions", authMiddleware.Authorize(az, constants.PermRolesUpdate), ctl.SetPermissions)

	api.Get("/permissions", authMiddleware.Authorize(az, constants.PermRolesRead), ctl.ListPermissions)
}
