package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	authzService "schoolku_backend/internals/features/platform/authz/service"
	"schoolku_backend/internals/features/users/user/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

func UserRoutes(api fiber.Router, db *gorm.DB, az *authzService.Authorizer) {
	ctl := controller.NewUserController(db)

	users := api.Group("/users")
	users.Get("/", authMiddleware.Authorize(az, constants.PermUsersRead), ctl.List)
	users.Patch("/:id/status", authMiddleware.Authorize(az, constants.PermUsersUpdate), ctl.UpdateStatus)
	users.Post("/:id/roles", authMiddleware.Authorize(az, constants.PermUsersUpdate), ctl.AssignRole)
	users.Delete("/:id/roles/:roleId", authMiddleware.Authorize(az, constants.PermUsersUpdate), ctl.RevokeRole)
}
