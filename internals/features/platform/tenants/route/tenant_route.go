package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	authzService "schoolku_backend/internals/features/platform/authz/service"
	"schoolku_backend/internals/features/platform/tenants/controller"
	rateLimiter "schoolku_backend/internals/middlewares"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

// TenantPublicRoutes: school self-signup.
func TenantPublicRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewTenantController(db)
	api.Post("/tenants", rateLimiter.RegisterRateLimiter(), ctl.Bootstrap)
}

func TenantRoutes(api fiber.Router, db *gorm.DB, az *authzService.Authorizer) {
	ctl := controller.NewTenantController(db)

	tenants := api.Group("/tenants")
	tenants.Get("/", authMiddleware.Authorize(az, constants.PermTenantsRead), ctl.List)
	tenants.Get("/current", ctl.Current)
	tenants.Put("/:id", authMiddleware.Authorize(az, constants.PermTenantsUpdate), ctl.Update)
}
