package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/platform/tenants/dto"
	"schoolku_backend/internals/features/platform/tenants/service"
	helper "schoolku_backend/internals/helpers"
)

type TenantController struct {
	DB  *gorm.DB
	Svc *service.TenantService
}

func NewTenantController(db *gorm.DB) *TenantController {
	return &TenantController{DB: db, Svc: service.NewTenantService(db)}
}

// POST /api/tenants
func (ctl *TenantController) Bootstrap(c *fiber.Ctx) error {
	var req dto.BootstrapTenantRequest
	if err := helper.ParseBody(c, nil, &req); err != nil {
		return err
	}
	out, err := ctl.Svc.Bootstrap(c.UserContext(), req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "tenant created", out)
}

// GET /api/tenants?search=&status=
func (ctl *TenantController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "createdAt", "desc", helper.DefaultOpts)
	rows, total, err := ctl.Svc.List(
		c.UserContext(),
		strings.TrimSpace(c.Query("search")),
		strings.ToUpper(strings.TrimSpace(c.Query("status"))),
		p,
	)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "tenants fetched", rows, helper.BuildPagination(total, p.Page, p.Limit))
}

// GET /api/tenants/current
func (ctl *TenantController) Current(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	t, err := ctl.Svc.Get(c.UserContext(), tenantID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "tenant fetched", t)
}

// PUT /api/tenants/:id
func (ctl *TenantController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateTenantRequest
	if err := helper.ParseBody(c, nil, &req); err != nil {
		return err
	}
	t, err := ctl.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "tenant updated", t)
}
