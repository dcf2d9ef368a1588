package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authzRoute "schoolku_backend/internals/features/platform/authz/route"
	authzService "schoolku_backend/internals/features/platform/authz/service"
	tenantRoute "schoolku_backend/internals/features/platform/tenants/route"
	authRoute "schoolku_backend/internals/features/users/auth/route"
	userRoute "schoolku_backend/internals/features/users/user/route"
)

// PlatformPublicRoutes mounts login, register and school signup.
func PlatformPublicRoutes(api fiber.Router, db *gorm.DB, az *authzService.Authorizer) {
	authRoute.AuthPublicRoutes(api, db, az)
	tenantRoute.TenantPublicRoutes(api, db)
}

func PlatformProtectedRoutes(api fiber.Router, db *gorm.DB, az *authzService.Authorizer) {
	authRoute.AuthProtectedRoutes(api, db, az)
	tenantRoute.TenantRoutes(api, db, az)
	authzRoute.AuthzRoutes(api, db, az)
	userRoute.UserRoutes(api, db, az)
}
