package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authzService "schoolku_backend/internals/features/platform/authz/service"
	"schoolku_backend/internals/helpers/storage"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
	routeDetails "schoolku_backend/internals/route/details"
)

var startTime time.Time

// SetupRoutes mounts public routes first so they match before the
// authenticated /api group.
func SetupRoutes(app *fiber.App, db *gorm.DB, store storage.Storage, az *authzService.Authorizer) {
	startTime = time.Now()
	log := zap.L().Named("routes")

	log.Info("setting up base routes")
	BaseRoutes(app, db)

	log.Info("mounting public api")
	public := app.Group("/api")
	routeDetails.PlatformPublicRoutes(public, db, az)

	log.Info("mounting protected api")
	protected := app.Group("/api", authMiddleware.AuthMiddleware(db))
	routeDetails.PlatformProtectedRoutes(protected, db, az)
	routeDetails.SchoolRoutes(protected, db, store, az)
}
