package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/academics/dto"
	"schoolku_backend/internals/features/school/academics/service"
	helper "schoolku_backend/internals/helpers"
)

type AcademicController struct {
	Svc *service.AcademicService
}

func NewAcademicController(db *gorm.DB) *AcademicController {
	return &AcademicController{Svc: service.NewAcademicService(db)}
}

// GET /api/grades?studentId=&subjectId=&classId=&term=
func (ctl *AcademicController) ListGrades(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	var f service.GradeFilter
	if f.StudentID, err = helper.ParseUUIDQuery(c, "studentId"); err != nil {
		return err
	}
	if f.SubjectID, err = helper.ParseUUIDQuery(c, "subjectId"); err != nil {
		return err
	}
	if f.ClassID, err = helper.ParseUUIDQuery(c, "classId"); err != nil {
		return err
	}
	f.Term = strings.TrimSpace(c.Query("term"))

	p := helper.ParseFiber(c, "gradedAt", "desc", helper.DefaultOpts)
	rows, total, err := ctl.Svc.ListGrades(c.UserContext(), tenantID, f, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "grades fetched", rows, helper.BuildPagination(total, p.Page, p.Limit))
}

// POST /api/grades
func (ctl *AcademicController) CreateGrade(c *fiber.Ctx) error {
	who, err := helper.GetIdentity(c)
	if err != nil {
		return err
	}
	var req dto.CreateGradeRequest
	if err := helper.ParseBody(c, nil, &req); err != nil {
		return err
	}
	out, err := ctl.Svc.CreateGrade(c.UserContext(), who.TenantID, who.UserID, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "grade recorded", out)
}

// GET /api/attendance?studentId=&classId=&status=&from=&to=
func (ctl *AcademicController) ListAttendance(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	var f service.AttendanceFilter
	if f.StudentID, err = helper.ParseUUIDQuery(c, "studentId"); err != nil {
		return err
	}
	if f.ClassID, err = helper.ParseUUIDQuery(c, "classId"); err != nil {
		return err
	}
	if f.From, err = helper.ParseDateQuery("from", c.Query("from")); err != nil {
		return err
	}
	if f.To, err = helper.ParseDateQuery("to", c.Query("to")); err != nil {
		return err
	}
	f.Status = strings.ToUpper(strings.TrimSpace(c.Query("status")))

	p := helper.ParseFiber(c, "date", "desc", helper.DefaultOpts)
	rows, total, err := ctl.Svc.ListAttendance(c.UserContext(), tenantID, f, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "attendance fetched", rows, helper.BuildPagination(total, p.Page, p.Limit))
}

// POST /api/attendance
func (ctl *AcademicController) CreateAttendance(c *fiber.Ctx) error {
	who, err := helper.GetIdentity(c)
	if err != nil {
		return err
	}
	var req dto.CreateAttendanceRequest
	if err := helper.ParseBody(c, nil, &req); err != nil {
		return err
	}
	out, err := ctl.Svc.CreateAttendance(c.UserContext(), who.TenantID, who.UserID, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "attendance recorded", out)
}

// GET /api/academic-records?studentId=&academicYear=&term=
func (ctl *AcademicController) ListAcademicRecords(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	var f service.RecordFilter
	if f.StudentID, err = helper.ParseUUIDQuery(c, "studentId"); err != nil {
		return err
	}
	f.AcademicYear = strings.TrimSpace(c.Query("academicYear"))
	f.Term = strings.TrimSpace(c.Query("term"))

	p := helper.ParseFiber(c, "academicYear", "desc", helper.DefaultOpts)
	rows, total, err := ctl.Svc.ListAcademicRecords(c.UserContext(), tenantID, f, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "academic records fetched", rows, helper.BuildPagination(total, p.Page, p.Limit))
}

// POST /api/academic-records
func (ctl *AcademicController) CreateAcademicRecord(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	var req dto.CreateAcademicRecordRequest
	if err := helper.ParseBody(c, nil, &req); err != nil {
		return err
	}
	out, err := ctl.Svc.CreateAcademicRecord(c.UserContext(), tenantID, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "academic record created", out)
}

// GET /api/health-records?studentId=&type=
func (ctl *AcademicController) ListHealthRecords(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	var f service.HealthFilter
	if f.StudentID, err = helper.ParseUUIDQuery(c, "studentId"); err != nil {
		return err
	}
	f.Type = strings.ToUpper(strings.TrimSpace(c.Query("type")))

	p := helper.ParseFiber(c, "recordDate", "desc", helper.DefaultOpts)
	rows, total, err := ctl.Svc.ListHealthRecords(c.UserContext(), tenantID, f, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "health records fetched", rows, helper.BuildPagination(total, p.Page, p.Limit))
}

// POST /api/health-records
func (ctl *AcademicController) CreateHealthRecord(c *fiber.Ctx) error {
	who, err := helper.GetIdentity(c)
	if err != nil {
		return err
	}
	var req dto.CreateHealthRecordRequest
	if err := helper.ParseBody(c, nil, &req); err != nil {
		return err
	}
	out, err := ctl.Svc.CreateHealthRecord(c.UserContext(), who.TenantID, who.UserID, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "health record created", out)
}
