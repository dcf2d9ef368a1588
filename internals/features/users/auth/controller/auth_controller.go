package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authzService "schoolku_backend/internals/features/platform/authz/service"
	"schoolku_backend/internals/features/users/auth/service"
)

type AuthController struct {
	DB *gorm.DB
	AZ *authzService.Authorizer
}

func NewAuthController(db *gorm.DB, az *authzService.Authorizer) *AuthController {
	return &AuthController{DB: db, AZ: az}
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	return service.Login(ac.DB, c)
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	return service.Register(ac.DB, c)
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	return service.Logout(ac.DB, c)
}

func (ac *AuthController) Me(c *fiber.Ctx) error {
	return service.Me(ac.DB, ac.AZ, c)
}

func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	return service.ChangePassword(ac.DB, c)
}
