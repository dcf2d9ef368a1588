package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/schedules/dto"
	"schoolku_backend/internals/features/school/schedules/service"
	helper "schoolku_backend/internals/helpers"
)

type ScheduleController struct {
	Svc *service.ScheduleService
}

func NewScheduleController(db *gorm.DB) *ScheduleController {
	return &ScheduleController{Svc: service.NewScheduleService(db)}
}

// ListFilterFromQuery reads the filters shared by list and export.
func ListFilterFromQuery(c *fiber.Ctx) (service.ListFilter, error) {
	var (
		f   service.ListFilter
		err error
	)
	f.Type = strings.ToUpper(strings.TrimSpace(c.Query("type")))
	f.Status = strings.ToUpper(strings.TrimSpace(c.Query("status")))
	f.Search = strings.TrimSpace(c.Query("search"))
	if f.Date, err = helper.ParseDateQuery("date", c.Query("date")); err != nil {
		return f, err
	}
	if f.From, err = helper.ParseDateQuery("from", c.Query("from")); err != nil {
		return f, err
	}
	if f.To, err = helper.ParseDateQuery("to", c.Query("to")); err != nil {
		return f, err
	}
	if f.TeacherID, err = helper.ParseUUIDQuery(c, "teacherId"); err != nil {
		return f, err
	}
	if f.SubjectID, err = helper.ParseUUIDQuery(c, "subjectId"); err != nil {
		return f, err
	}
	if f.ClassID, err = helper.ParseUUIDQuery(c, "classId"); err != nil {
		return f, err
	}
	return f, nil
}

// GET /api/schedules
func (ctl *ScheduleController) List(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	f, err := ListFilterFromQuery(c)
	if err != nil {
		return err
	}
	p := helper.ParseFiber(c, "date", "asc", helper.DefaultOpts)
	rows, total, err := ctl.Svc.List(c.UserContext(), tenantID, f, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "schedules fetched", rows, helper.BuildPagination(total, p.Page, p.Limit))
}

// GET /api/schedules/stats
func (ctl *ScheduleController) Stats(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	out, err := ctl.Svc.Stats(c.UserContext(), tenantID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "schedule stats fetched", out)
}

// GET /api/schedules/export?format=csv|json
func (ctl *ScheduleController) Export(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	f, err := ListFilterFromQuery(c)
	if err != nil {
		return err
	}
	body, contentType, filename, err := ctl.Svc.Export(c.UserContext(), tenantID, f, c.Query("format", "csv"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Attachment(filename)
	return c.Send(body)
}

// GET /api/schedules/:id
func (ctl *ScheduleController) Get(c *fiber.Ctx) error {
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
	return helper.JsonOK(c, "schedule fetched", out)
}

// POST /api/schedules
func (ctl *ScheduleController) Create(c *fiber.Ctx) error {
	who, err := helper.GetIdentity(c)
	if err != nil {
		return err
	}
	var req dto.CreateScheduleRequest
	if err := helper.ParseBody(c, nil, &req); err != nil {
		return err
	}
	out, err := ctl.Svc.Create(c.UserContext(), who.TenantID, who.UserID, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "schedule created", out)
}

// PUT /api/schedules/:id
func (ctl *ScheduleController) Update(c *fiber.Ctx) error {
	who, err := helper.GetIdentity(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateScheduleRequest
	if err := helper.ParseBody(c, nil, &req); err != nil {
		return err
	}
	out, err := ctl.Svc.Update(c.UserContext(), who.TenantID, who.UserID, id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "schedule updated", out)
}

// DELETE /api/schedules/:id
func (ctl *ScheduleController) Delete(c *fiber.Ctx) error {
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
	return helper.JsonDeleted(c, "schedule deleted", fiber.Map{"id": id})
}
