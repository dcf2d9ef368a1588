package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	authzService "schoolku_backend/internals/features/platform/authz/service"
	"schoolku_backend/internals/features/users/user/dto"
	userModel "schoolku_backend/internals/features/users/user/model"
	"schoolku_backend/internals/features/users/user/service"
	helper "schoolku_backend/internals/helpers"
)

type UserController struct {
	DB    *gorm.DB
	Svc   *service.UserService
	Roles *authzService.RoleService
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{
		DB:    db,
		Svc:   service.NewUserService(db),
		Roles: authzService.NewRoleService(db),
	}
}

// GET /api/users?search=&status=&role=&page=&limit=
func (ctl *UserController) List(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	p := helper.ParseFiber(c, "createdAt", "desc", helper.DefaultOpts)
	f := service.ListFilter{
		Search: strings.TrimSpace(c.Query("search")),
		Status: strings.ToUpper(strings.TrimSpace(c.Query("status"))),
		Role:   strings.TrimSpace(c.Query("role")),
	}
	users, roles, total, err := ctl.Svc.List(c.UserContext(), tenantID, f, p)
	if err != nil {
		return err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.FromUserModel(u, roles[u.ID]))
	}
	return helper.JsonList(c, "users fetched", out, helper.BuildPagination(total, p.Page, p.Limit))
}

// PATCH /api/users/:id/status
func (ctl *UserController) UpdateStatus(c *fiber.Ctx) error {
	id, err := helper.GetIdentity(c)
	if err != nil {
		return err
	}
	userID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := helper.ParseBody(c, nil, &req); err != nil {
		return err
	}
	u, err := ctl.Svc.UpdateStatus(c.UserContext(), id.TenantID, id.UserID, userID, userModel.UserStatus(req.Status))
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "user status updated", dto.FromUserModel(*u, nil))
}

// POST /api/users/:id/roles
func (ctl *UserController) AssignRole(c *fiber.Ctx) error {
	id, err := helper.GetIdentity(c)
	if err != nil {
		return err
	}
	userID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.AssignRoleRequest
	if err := helper.ParseBody(c, nil, &req); err != nil {
		return err
	}
	ur, err := ctl.Roles.AssignRole(c.UserContext(), id.TenantID, userID, uuid.MustParse(req.RoleID), id.UserID)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "role assigned", ur)
}

// DELETE /api/users/:id/roles/:roleId
func (ctl *UserController) RevokeRole(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	roleID, err := helper.ParseUUIDParam(c, "roleId")
	if err != nil {
		return err
	}
	if err := ctl.Roles.RevokeRole(c.UserContext(), tenantID, userID, roleID); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "role revoked", nil)
}
