package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	authzService "schoolku_backend/internals/features/platform/authz/service"
	"schoolku_backend/internals/features/school/content/controller"
	"schoolku_backend/internals/helpers/storage"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

func ContentRoutes(api fiber.Router, db *gorm.DB, store storage.Storage, az *authzService.Authorizer) {
	ctl := controller.NewContentController(db, store)

	g := api.Group("/content")
	g.Get("/", authMiddleware.Authorize(az, constants.PermContentRead), ctl.List)
	g.Post("/", authMiddleware.Authorize(az, constants.PermContentCreate), ctl.Upload)
	g.Get("/:id", authMiddleware.Authorize(az, constants.PermContentRead), ctl.Get)
	g.Get("/:id/file", authMiddleware.Authorize(az, constants.PermContentRead), ctl.Download)
	g.Put("/:id", authMiddleware.Authorize(az, constants.PermContentUpdate), ctl.Update)
	g.Delete("/:id", authMiddleware.Authorize(az, constants.PermContentDelete), ctl.Delete)
}
