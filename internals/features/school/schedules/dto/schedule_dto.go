package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	scheduleModel "schoolku_backend/internals/features/school/schedules/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
)

type CreateScheduleRequest struct {
	Title       string  `json:"title"       validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=4000"`
	Type        string  `json:"type"        validate:"required,oneof=CLASS EXAM EVENT MEETING"`
	Date        string  `json:"date"        validate:"required"`
	StartTime   string  `json:"startTime"   validate:"required"`
	EndTime     string  `json:"endTime"     validate:"required"`
	Status      *string `json:"status"      validate:"omitempty,oneof=ACTIVE CANCELLED COMPLETED DRAFT"`

	SubjectID *uuid.UUID `json:"subjectId"`
	TeacherID *uuid.UUID `json:"teacherId"`
	ClassID   *uuid.UUID `json:"classId"`
	Location  *string    `json:"location" validate:"omitempty,max=200"`

	Recurring      bool    `json:"recurring"`
	RecurrenceType *string `json:"recurrenceType" validate:"omitempty,oneof=DAILY WEEKLY MONTHLY"`
	RecurrenceEnd  *string `json:"recurrenceEnd"`
}

func parseDate(field, s string) (time.Time, error) {
	d, err := dbtime.ParseDate(s)
	if err != nil {
		return time.Time{}, helper.ErrValidation("validation failed",
			helper.FieldError{Field: field, Message: field + " must be YYYY-MM-DD"})
	}
	return d, nil
}

func parseTod(field, s string) (dbtime.Tod, error) {
	t, err := dbtime.Parse(s)
	if err != nil {
		return dbtime.Tod{}, helper.ErrValidation("validation failed",
			helper.FieldError{Field: field, Message: field + " must be HH:mm"})
	}
	return t, nil
}

// ToModel parses dates and times; ordering of start/end is checked by the
// service so create and update share one rule.
func (r CreateScheduleRequest) ToModel(tenantID, actorID uuid.UUID) (scheduleModel.ScheduleModel, error) {
	var m scheduleModel.ScheduleModel
	date, err := parseDate("date", r.Date)
	if err != nil {
		return m, err
	}
	start, err := parseTod("startTime", r.StartTime)
	if err != nil {
		return m, err
	}
	end, err := parseTod("endTime", r.EndTime)
	if err != nil {
		return m, err
	}
	recEnd, err := helper.ParseOptionalDate("recurrenceEnd", r.RecurrenceEnd)
	if err != nil {
		return m, err
	}

	m = scheduleModel.ScheduleModel{
		TenantID:      tenantID,
		Title:         strings.TrimSpace(r.Title),
		Description:   r.Description,
		Type:          scheduleModel.ScheduleType(r.Type),
		Date:          date,
		StartTime:     start,
		EndTime:       end,
		Status:        scheduleModel.ScheduleActive,
		SubjectID:     r.SubjectID,
		TeacherID:     r.TeacherID,
		ClassID:       r.ClassID,
		Location:      r.Location,
		Recurring:     r.Recurring,
		RecurrenceEnd: recEnd,
		CreatedBy:     actorID,
		UpdatedBy:     actorID,
	}
	if r.Status != nil {
		m.Status = scheduleModel.ScheduleStatus(*r.Status)
	}
	if r.RecurrenceType != nil {
		rt := scheduleModel.RecurrenceType(*r.RecurrenceType)
		m.RecurrenceType = &rt
	}
	return m, nil
}

type UpdateScheduleRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=4000"`
	Type        *string `json:"type"        validate:"omitempty,oneof=CLASS EXAM EVENT MEETING"`
	Date        *string `json:"date"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
	Status      *string `json:"status"      validate:"omitempty,oneof=ACTIVE CANCELLED COMPLETED DRAFT"`

	SubjectID *uuid.UUID `json:"subjectId"`
	TeacherID *uuid.UUID `json:"teacherId"`
	ClassID   *uuid.UUID `json:"classId"`
	Location  *string    `json:"location" validate:"omitempty,max=200"`
	// ClearTeacher unassigns the teacher; teacherId must be absent.
	ClearTeacher bool `json:"clearTeacher"`

	Recurring      *bool   `json:"recurring"`
	RecurrenceType *string `json:"recurrenceType" validate:"omitempty,oneof=DAILY WEEKLY MONTHLY"`
	RecurrenceEnd  *string `json:"recurrenceEnd"`
}

// Apply copies set fields onto m and reports whether anything that takes
// part in conflict detection changed.
func (r UpdateScheduleRequest) Apply(m *scheduleModel.ScheduleModel) (slotChanged bool, err error) {
	if r.Title != nil {
		m.Title = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		m.Description = r.Description
	}
	if r.Type != nil {
		m.Type = scheduleModel.ScheduleType(*r.Type)
	}
	if r.Date != nil {
		d, err := parseDate("date", *r.Date)
		if err != nil {
			return false, err
		}
		slotChanged = slotChanged || !d.Equal(m.Date)
		m.Date = d
	}
	if r.StartTime != nil {
		t, err := parseTod("startTime", *r.StartTime)
		if err != nil {
			return false, err
		}
		slotChanged = slotChanged || t.Seconds() != m.StartTime.Seconds()
		m.StartTime = t
	}
	if r.EndTime != nil {
		t, err := parseTod("endTime", *r.EndTime)
		if err != nil {
			return false, err
		}
		slotChanged = slotChanged || t.Seconds() != m.EndTime.Seconds()
		m.EndTime = t
	}
	if r.Status != nil {
		st := scheduleModel.ScheduleStatus(*r.Status)
		slotChanged = slotChanged || st != m.Status
		m.Status = st
	}
	switch {
	case r.ClearTeacher && r.TeacherID != nil:
		return false, helper.ErrValidation("validation failed",
			helper.FieldError{Field: "clearTeacher", Message: "clearTeacher cannot be combined with teacherId"})
	case r.ClearTeacher:
		m.TeacherID = nil
	case r.TeacherID != nil:
		slotChanged = slotChanged || m.TeacherID == nil || *m.TeacherID != *r.TeacherID
		m.TeacherID = r.TeacherID
	}
	if r.SubjectID != nil {
		m.SubjectID = r.SubjectID
	}
	if r.ClassID != nil {
		m.ClassID = r.ClassID
	}
	if r.Location != nil {
		m.Location = r.Location
	}
	if r.Recurring != nil {
		m.Recurring = *r.Recurring
	}
	if r.RecurrenceType != nil {
		rt := scheduleModel.RecurrenceType(*r.RecurrenceType)
		m.RecurrenceType = &rt
	}
	if r.RecurrenceEnd != nil {
		d, err := helper.ParseOptionalDate("recurrenceEnd", r.RecurrenceEnd)
		if err != nil {
			return false, err
		}
		m.RecurrenceEnd = d
	}
	return slotChanged, nil
}

// ScheduleRow is a schedule joined with display names, the shape used by
// list and export.
type ScheduleRow struct {
	scheduleModel.ScheduleModel
	SubjectName      *string `json:"subjectName,omitempty"`
	TeacherFirstName *string `json:"-"`
	TeacherLastName  *string `json:"-"`
}

func (r ScheduleRow) TeacherName() string {
	var parts []string
	if r.TeacherFirstName != nil && *r.TeacherFirstName != "" {
		parts = append(parts, *r.TeacherFirstName)
	}
	if r.TeacherLastName != nil && *r.TeacherLastName != "" {
		parts = append(parts, *r.TeacherLastName)
	}
	return strings.Join(parts, " ")
}

type ScheduleResponse struct {
	ScheduleRow
	TeacherName string `json:"teacherName,omitempty"`
}

func FromRows(rows []ScheduleRow) []ScheduleResponse {
	out := make([]ScheduleResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ScheduleResponse{ScheduleRow: r, TeacherName: r.TeacherName()})
	}
	return out
}

type StatsResponse struct {
	Total    int64            `json:"total"`
	ByType   map[string]int64 `json:"byType"`
	ByStatus map[string]int64 `json:"byStatus"`
	Today    int64            `json:"today"`
	Upcoming int64            `json:"upcoming"`
}
