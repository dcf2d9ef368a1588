package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/teachers/dto"
	"schoolku_backend/internals/features/school/teachers/service"
	helper "schoolku_backend/internals/helpers"
)

type TeacherController struct {
	DB  *gorm.DB
	Svc *service.TeacherService
}

func NewTeacherController(db *gorm.DB) *TeacherController {
	return &TeacherController{DB: db, Svc: service.NewTeacherService(db)}
}

// GET /api/teachers?search=&status=&subjectId=
func (ctl *TeacherController) List(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	subjectID, err := helper.ParseUUIDQuery(c, "subjectId")
	if err != nil {
		return err
	}
	p := helper.ParseFiber(c, "createdAt", "desc", helper.DefaultOpts)
	rows, total, err := ctl.Svc.List(c.UserContext(), tenantID, service.ListFilter{
		Search:    strings.TrimSpace(c.Query("search")),
		Status:    strings.ToUpper(strings.TrimSpace(c.Query("status"))),
		SubjectID: subjectID,
	}, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "teachers fetched", rows, helper.BuildPagination(total, p.Page, p.Limit))
}

// GET /api/teachers/:id
func (ctl *TeacherController) Get(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	t, err := ctl.Svc.Get(c.UserContext(), tenantID, id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "teacher fetched", t)
}

// POST /api/teachers
func (ctl *TeacherController) Create(c *fiber.Ctx) error {
	who, err := helper.GetIdentity(c)
	if err != nil {
		return err
	}
	var req dto.CreateTeacherRequest
	if err := helper.ParseBody(c, nil, &req); err != nil {
		return err
	}
	t, err := ctl.Svc.Create(c.UserContext(), who.TenantID, who.UserID, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "teacher created", t)
}

// PUT /api/teachers/:id
func (ctl *TeacherController) Update(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateTeacherRequest
	if err := helper.ParseBody(c, nil, &req); err != nil {
		return err
	}
	t, err := ctl.Svc.Update(c.UserContext(), tenantID, id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "teacher updated", t)
}

// DELETE /api/teachers/:id
func (ctl *TeacherController) Delete(c *fiber.Ctx) error {
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
	return helper.JsonDeleted(c, "teacher deleted", nil)
}

// POST /api/teachers/:teacherId/subjects
func (ctl *TeacherController) AssignSubject(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	teacherID, err := helper.ParseUUIDParam(c, "teacherId")
	if err != nil {
		return err
	}
	var req dto.AssignSubjectRequest
	if err := helper.ParseBody(c, nil, &req); err != nil {
		return err
	}
	link, err := ctl.Svc.AssignSubject(c.UserContext(), tenantID, teacherID, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "subject assigned", link)
}

// DELETE /api/teachers/:teacherId/subjects/:subjectId
func (ctl *TeacherController) RemoveSubject(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	teacherID, err := helper.ParseUUIDParam(c, "teacherId")
	if err != nil {
		return err
	}
	subjectID, err := helper.ParseUUIDParam(c, "subjectId")
	if err != nil {
		return err
	}
	if err := ctl.Svc.RemoveSubject(c.UserContext(), tenantID, teacherID, subjectID); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "subject removed", nil)
}
