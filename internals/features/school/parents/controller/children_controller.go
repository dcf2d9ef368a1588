package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"schoolku_backend/internals/features/school/parents/service"
	helper "schoolku_backend/internals/helpers"
)

func childAccess(c *fiber.Ctx) (service.ChildAccess, error) {
	who, err := helper.GetIdentity(c)
	if err != nil {
		return service.ChildAccess{}, err
	}
	parentID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return service.ChildAccess{}, err
	}
	studentID, err := helper.ParseUUIDParam(c, "studentId")
	if err != nil {
		return service.ChildAccess{}, err
	}
	return service.ChildAccess{
		TenantID:  who.TenantID,
		CallerID:  who.UserID,
		ParentID:  parentID,
		StudentID: studentID,
	}, nil
}

// GET /api/parents/:id/children/:studentId/grades?term=
func (ctl *ParentController) ChildGrades(c *fiber.Ctx) error {
	a, err := childAccess(c)
	if err != nil {
		return err
	}
	p := helper.ParseFiber(c, "gradedAt", "desc", helper.DefaultOpts)
	rows, total, err := ctl.Svc.ChildGrades(c.UserContext(), a, strings.TrimSpace(c.Query("term")), p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "grades fetched", rows, helper.BuildPagination(total, p.Page, p.Limit))
}

// GET /api/parents/:id/children/:studentId/attendance?from=&to=
func (ctl *ParentController) ChildAttendance(c *fiber.Ctx) error {
	a, err := childAccess(c)
	if err != nil {
		return err
	}
	from, err := helper.ParseDateQuery("from", c.Query("from"))
	if err != nil {
		return err
	}
	to, err := helper.ParseDateQuery("to", c.Query("to"))
	if err != nil {
		return err
	}
	p := helper.ParseFiber(c, "date", "desc", helper.DefaultOpts)
	rows, total, err := ctl.Svc.ChildAttendance(c.UserContext(), a, from, to, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "attendance fetched", rows, helper.BuildPagination(total, p.Page, p.Limit))
}

// GET /api/parents/:id/children/:studentId/academic-records
func (ctl *ParentController) ChildAcademicRecords(c *fiber.Ctx) error {
	a, err := childAccess(c)
	if err != nil {
		return err
	}
	p := helper.ParseFiber(c, "academicYear", "desc", helper.DefaultOpts)
	rows, total, err := ctl.Svc.ChildAcademicRecords(c.UserContext(), a, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "academic records fetched", rows, helper.BuildPagination(total, p.Page, p.Limit))
}

// GET /api/parents/:id/children/:studentId/health-records
func (ctl *ParentController) ChildHealthRecords(c *fiber.Ctx) error {
	a, err := childAccess(c)
	if err != nil {
		return err
	}
	p := helper.ParseFiber(c, "recordDate", "desc", helper.DefaultOpts)
	rows, total, err := ctl.Svc.ChildHealthRecords(c.UserContext(), a, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "health records fetched", rows, helper.BuildPagination(total, p.Page, p.Limit))
}

// GET /api/parents/:id/children/:studentId/schedule?from=&to=
func (ctl *ParentController) ChildSchedule(c *fiber.Ctx) error {
	a, err := childAccess(c)
	if err != nil {
		return err
	}
	from, err := helper.ParseDateQuery("from", c.Query("from"))
	if err != nil {
		return err
	}
	to, err := helper.ParseDateQuery("to", c.Query("to"))
	if err != nil {
		return err
	}
	p := helper.ParseFiber(c, "date", "asc", helper.DefaultOpts)
	rows, total, err := ctl.Svc.ChildSchedule(c.UserContext(), a, from, to, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "schedule fetched", rows, helper.BuildPagination(total, p.Page, p.Limit))
}
