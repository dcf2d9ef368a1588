package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/helpers/dbtime"
)

/* =========================
   Enums
========================= */

type ScheduleType string

const (
	ScheduleClass   ScheduleType = "CLASS"
	ScheduleExam    ScheduleType = "EXAM"
	ScheduleEvent   ScheduleType = "EVENT"
	ScheduleMeeting ScheduleType = "MEETING"
)

type ScheduleStatus string

const (
	ScheduleActive    ScheduleStatus = "ACTIVE"
	ScheduleCancelled ScheduleStatus = "CANCELLED"
	ScheduleCompleted ScheduleStatus = "COMPLETED"
	ScheduleDraft     ScheduleStatus = "DRAFT"
)

// Blocking reports whether a schedule in this status occupies its teacher's time.
func (s ScheduleStatus) Blocking() bool {
	return s == ScheduleActive || s == ScheduleDraft
}

type RecurrenceType string

const (
	RecurrenceDaily   RecurrenceType = "DAILY"
	RecurrenceWeekly  RecurrenceType = "WEEKLY"
	RecurrenceMonthly RecurrenceType = "MONTHLY"
)

/* =========================
   Model
========================= */

type ScheduleModel struct {
	ID          uuid.UUID    `json:"id"                    gorm:"column:id;type:uuid;primaryKey"`
	TenantID    uuid.UUID    `json:"tenantId"              gorm:"column:tenant_id;type:uuid;not null;index:idx_schedules_tenant_teacher_date,priority:1"`
	Title       string       `json:"title"                 gorm:"column:title;type:varchar(200);not null"`
	Description *string      `json:"description,omitempty" gorm:"column:description;type:text"`
	Type        ScheduleType `json:"type"                  gorm:"column:type;type:varchar(20);not null"`

	// calendar date, always stored as UTC midnight
	Date      time.Time      `json:"date"      gorm:"column:date;type:date;not null;index:idx_schedules_tenant_teacher_date,priority:3"`
	StartTime dbtime.Tod     `json:"startTime" gorm:"column:start_time;type:time;not null"`
	EndTime   dbtime.Tod     `json:"endTime"   gorm:"column:end_time;type:time;not null"`
	Status    ScheduleStatus `json:"status"    gorm:"column:status;type:varchar(20);not null;default:'ACTIVE'"`

	SubjectID *uuid.UUID `json:"subjectId,omitempty" gorm:"column:subject_id;type:uuid;index"`
	TeacherID *uuid.UUID `json:"teacherId,omitempty" gorm:"column:teacher_id;type:uuid;index:idx_schedules_tenant_teacher_date,priority:2"`
	ClassID   *uuid.UUID `json:"classId,omitempty"   gorm:"column:class_id;type:uuid;index"`
	Location  *string    `json:"location,omitempty"  gorm:"column:location;type:varchar(200)"`

	Recurring      bool            `json:"recurring"                gorm:"column:recurring;not null;default:false"`
	RecurrenceType *RecurrenceType `json:"recurrenceType,omitempty" gorm:"column:recurrence_type;type:varchar(20)"`
	RecurrenceEnd  *time.Time      `json:"recurrenceEnd,omitempty"  gorm:"column:recurrence_end;type:date"`

	CreatedBy uuid.UUID `json:"createdBy" gorm:"column:created_by;type:uuid;not null"`
	UpdatedBy uuid.UUID `json:"updatedBy" gorm:"column:updated_by;type:uuid;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at;autoUpdateTime"`
}

func (ScheduleModel) TableName() string { return "schedules" }

func (s *ScheduleModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Status == "" {
		s.Status = ScheduleActive
	}
	return nil
}
