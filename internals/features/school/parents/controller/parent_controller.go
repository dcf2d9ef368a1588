package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/parents/dto"
	"schoolku_backend/internals/features/school/parents/service"
	helper "schoolku_backend/internals/helpers"
)

type ParentController struct {
	Svc *service.ParentService
}

func NewParentController(db *gorm.DB) *ParentController {
	return &ParentController{Svc: service.NewParentService(db)}
}

// GET /api/parents?search=&status=
func (ctl *ParentController) List(c *fiber.Ctx) error {
	who, err := helper.GetIdentity(c)
	if err != nil {
		return err
	}
	p := helper.ParseFiber(c, "createdAt", "desc", helper.DefaultOpts)
	rows, total, err := ctl.Svc.List(c.UserContext(), who.TenantID, service.ListFilter{
		Search: strings.TrimSpace(c.Query("search")),
		Status: strings.ToUpper(strings.TrimSpace(c.Query("status"))),
		Caller: who.UserID,
	}, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "parents fetched", rows, helper.BuildPagination(total, p.Page, p.Limit))
}

// GET /api/parents/:id
func (ctl *ParentController) Get(c *fiber.Ctx) error {
	who, err := helper.GetIdentity(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Svc.AuthorizeParent(c.UserContext(), who.TenantID, who.UserID, id); err != nil {
		return err
	}
	out, err := ctl.Svc.Get(c.UserContext(), who.TenantID, id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "parent fetched", out)
}

// POST /api/parents
func (ctl *ParentController) Create(c *fiber.Ctx) error {
	who, err := helper.GetIdentity(c)
	if err != nil {
		return err
	}
	var req dto.CreateParentRequest
	if err := helper.ParseBody(c, nil, &req); err != nil {
		return err
	}
	out, err := ctl.Svc.Create(c.UserContext(), who.TenantID, who.UserID, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "parent created", out)
}

// PUT /api/parents/:id
func (ctl *ParentController) Update(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateParentRequest
	if err := helper.ParseBody(c, nil, &req); err != nil {
		return err
	}
	out, err := ctl.Svc.Update(c.UserContext(), tenantID, id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "parent updated", out)
}

// DELETE /api/parents/:id
func (ctl *ParentController) Delete(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Svc.Delete(c.UserContext(), tenantID, id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "parent deleted", fiber.Map{"id": id})
}
