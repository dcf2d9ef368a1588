package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/students/dto"
	"schoolku_backend/internals/features/school/students/service"
	helper "schoolku_backend/internals/helpers"
)

type StudentController struct {
	DB  *gorm.DB
	Svc *service.StudentService
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db, Svc: service.NewStudentService(db)}
}

// GET /api/students?search=&status=&classId=
func (ctl *StudentController) List(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	classID, err := helper.ParseUUIDQuery(c, "classId")
	if err != nil {
		return err
	}
	p := helper.ParseFiber(c, "createdAt", "desc", helper.DefaultOpts)
	rows, total, err := ctl.Svc.List(c.UserContext(), tenantID, service.ListFilter{
		Search:  strings.TrimSpace(c.Query("search")),
		Status:  strings.ToUpper(strings.TrimSpace(c.Query("status"))),
		ClassID: classID,
	}, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "students fetched", rows, helper.BuildPagination(total, p.Page, p.Limit))
}

// GET /api/students/:id
func (ctl *StudentController) Get(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	out, err := ctl.Svc.Get(c.UserContext(), tenantID, id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "student fetched", out)
}

// POST /api/students
func (ctl *StudentController) Create(c *fiber.Ctx) error {
	who, err := helper.GetIdentity(c)
	if err != nil {
		return err
	}
	var req dto.CreateStudentRequest
	if err := helper.ParseBody(c, nil, &req); err != nil {
		return err
	}
	out, err := ctl.Svc.Create(c.UserContext(), who.TenantID, who.UserID, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "student created", out)
}

// PUT /api/students/:id
func (ctl *StudentController) Update(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateStudentRequest
	if err := helper.ParseBody(c, nil, &req); err != nil {
		return err
	}
	out, err := ctl.Svc.Update(c.UserContext(), tenantID, id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "student updated", out)
}

// DELETE /api/students/:id
func (ctl *StudentController) Delete(c *fiber.Ctx) error {
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
	return helper.JsonDeleted(c, "student deleted", nil)
}
