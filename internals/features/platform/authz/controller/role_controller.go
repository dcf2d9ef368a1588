package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/platform/authz/dto"
	"schoolku_backend/internals/features/platform/authz/service"
	helper "schoolku_backend/internals/helpers"
)

type RoleController struct {
	DB  *gorm.DB
	Svc *service.RoleService
}

func NewRoleController(db *gorm.DB) *RoleController {
	return &RoleController{DB: db, Svc: service.NewRoleService(db)}
}

// GET /api/roles
func (ctl *RoleController) List(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	roles, err := ctl.Svc.List(c.UserContext(), tenantID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "roles fetched", dto.FromRoleModels(roles))
}

// POST /api/roles
func (ctl *RoleController) Create(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	var req dto.CreateRoleRequest
	if err := helper.ParseBody(c, nil, &req); err != nil {
		return err
	}
	role, err := ctl.Svc.Create(c.UserContext(), tenantID, req.Name, req.Description, req.Permissions)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "role created", dto.FromRoleModel(*role))
}

// PUT /api/roles/:id/permissions
func (ctl *RoleController) SetPermissions(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	roleID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.SetPermissionsRequest
	if err := helper.ParseBody(c, nil, &req); err != nil {
		return err
	}
	role, err := ctl.Svc.SetPermissions(c.UserContext(), tenantID, roleID, req.Permissions)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "role permissions updated", dto.FromRoleModel(*role))
}

// GET /api/permissions
func (ctl *RoleController) ListPermissions(c *fiber.Ctx) error {
	perms, err := ctl.Svc.ListPermissions(c.UserContext())
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "permissions fetched", perms)
}
