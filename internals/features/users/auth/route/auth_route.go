package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authzService "schoolku_backend/internals/features/platform/authz/service"
	"schoolku_backend/internals/features/users/auth/controller"
	rateLimiter "schoolku_backend/internals/middlewares"
)

// AuthPublicRoutes: /api/auth login and register
func AuthPublicRoutes(api fiber.Router, db *gorm.DB, az *authzService.Authorizer) {
	ctl := controller.NewAuthController(db, az)

	auth := api.Group("/auth")
	auth.Post("/login", rateLimiter.LoginRateLimiter(), ctl.Login)
	auth.Post("/register", rateLimiter.RegisterRateLimiter(), ctl.Register)
}

// AuthProtectedRoutes expects AuthMiddleware on the router already.
func AuthProtectedRoutes(protected fiber.Router, db *gorm.DB, az *authzService.Authorizer) {
	ctl := controller.NewAuthController(db, az)

	auth := protected.Group("/auth")
	auth.Post("/logout", ctl.Logout)
	auth.Get("/me", ctl.Me)
	auth.Post("/change-password", ctl.ChangePassword)
}
