package controller

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/subjects/dto"
	"schoolku_backend/internals/features/school/subjects/service"
	helper "schoolku_backend/internals/helpers"
)

type SubjectController struct {
	DB  *gorm.DB
	Svc *service.SubjectService
}

func NewSubjectController(db *gorm.DB) *SubjectController {
	return &SubjectController{DB: db, Svc: service.NewSubjectService(db)}
}

// GET /api/subjects?search=&active=
func (ctl *SubjectController) List(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	f := service.ListFilter{Search: strings.TrimSpace(c.Query("search"))}
	if raw := c.Query("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return helper.ErrValidation("invalid active", helper.FieldError{Field: "active", Message: "active must be true or false"})
		}
		f.Active = &v
	}
	p := helper.ParseFiber(c, "name", "asc", helper.DefaultOpts)
	rows, total, err := ctl.Svc.List(c.UserContext(), tenantID, f, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "subjects fetched", rows, helper.BuildPagination(total, p.Page, p.Limit))
}

// GET /api/subjects/:id
func (ctl *SubjectController) Get(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.Svc.Get(c.UserContext(), tenantID, id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "subject fetched", m)
}

// POST /api/subjects
func (ctl *SubjectController) Create(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	var req dto.CreateSubjectRequest
	if err := helper.ParseBody(c, nil, &req); err != nil {
		return err
	}
	m, err := ctl.Svc.Create(c.UserContext(), tenantID, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "subject created", m)
}

// PUT /api/subjects/:id
func (ctl *SubjectController) Update(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateSubjectRequest
	if err := helper.ParseBody(c, nil, &req); err != nil {
		return err
	}
	m, err := ctl.Svc.Update(c.UserContext(), tenantID, id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "subject updated", m)
}

// DELETE /api/subjects/:id
func (ctl *SubjectController) Delete(c *fiber.Ctx) error {
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
	return helper.JsonDeleted(c, "subject deleted", nil)
}
