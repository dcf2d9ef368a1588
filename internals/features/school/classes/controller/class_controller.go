package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/classes/dto"
	"schoolku_backend/internals/features/school/classes/service"
	helper "schoolku_backend/internals/helpers"
)

type ClassController struct {
	DB  *gorm.DB
	Svc *service.ClassService
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{DB: db, Svc: service.NewClassService(db)}
}

// GET /api/classes?search=&gradeLevel=&academicYear=&teacherId=
func (ctl *ClassController) List(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	teacherID, err := helper.ParseUUIDQuery(c, "teacherId")
	if err != nil {
		return err
	}
	p := helper.ParseFiber(c, "name", "asc", helper.DefaultOpts)
	rows, total, err := ctl.Svc.List(c.UserContext(), tenantID, service.ListFilter{
		Search:       strings.TrimSpace(c.Query("search")),
		GradeLevel:   strings.TrimSpace(c.Query("gradeLevel")),
		AcademicYear: strings.TrimSpace(c.Query("academicYear")),
		TeacherID:    teacherID,
	}, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "classes fetched", rows, helper.BuildPagination(total, p.Page, p.Limit))
}

// GET /api/classes/:id
func (ctl *ClassController) Get(c *fiber.Ctx) error {
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
	return helper.JsonOK(c, "class fetched", out)
}

// GET /api/classes/:id/students
func (ctl *ClassController) Students(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	out, err := ctl.Svc.Students(c.UserContext(), tenantID, id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "class roster fetched", out)
}

// POST /api/classes
func (ctl *ClassController) Create(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	var req dto.CreateClassRequest
	if err := helper.ParseBody(c, nil, &req); err != nil {
		return err
	}
	out, err := ctl.Svc.Create(c.UserContext(), tenantID, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "class created", out)
}

// PUT /api/classes/:id
func (ctl *ClassController) Update(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateClassRequest
	if err := helper.ParseBody(c, nil, &req); err != nil {
		return err
	}
	out, err := ctl.Svc.Update(c.UserContext(), tenantID, id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "class updated", out)
}

// DELETE /api/classes/:id
func (ctl *ClassController) Delete(c *fiber.Ctx) error {
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
	return helper.JsonDeleted(c, "class deleted", nil)
}

// POST /api/classes/:id/enrollments
func (ctl *ClassController) Enroll(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.EnrollRequest
	if err := helper.ParseBody(c, nil, &req); err != nil {
		return err
	}
	out, err := ctl.Svc.Enroll(c.UserContext(), tenantID, id, req.StudentID)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "student enrolled", out)
}

// DELETE /api/classes/:id/enrollments/:studentId
func (ctl *ClassController) Withdraw(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	studentID, err := helper.ParseUUIDParam(c, "studentId")
	if err != nil {
		return err
	}
	if err := ctl.Svc.Withdraw(c.UserContext(), tenantID, id, studentID); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "student withdrawn", nil)
}
