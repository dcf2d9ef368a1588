package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

/* =========================
   Grade
========================= */

type GradeModel struct {
	ID         uuid.UUID  `json:"id"                  gorm:"column:id;type:uuid;primaryKey"`
	TenantID   uuid.UUID  `json:"tenantId"            gorm:"column:tenant_id;type:uuid;not null;index"`
	StudentID  uuid.UUID  `json:"studentId"           gorm:"column:student_id;type:uuid;not null;index"`
	SubjectID  *uuid.UUID `json:"subjectId,omitempty" gorm:"column:subject_id;type:uuid;index"`
	ClassID    *uuid.UUID `json:"classId,omitempty"   gorm:"column:class_id;type:uuid"`
	Term       string     `json:"term"                gorm:"column:term;type:varchar(40);not null;index"`
	Assessment string     `json:"assessment"          gorm:"column:assessment;type:varchar(120);not null"`
	Score      float64    `json:"score"               gorm:"column:score;not null"`
	MaxScore   float64    `json:"maxScore"            gorm:"column:max_score;not null;default:100"`
	Letter     *string    `json:"letter,omitempty"    gorm:"column:letter;type:varchar(4)"`
	Remarks    *string    `json:"remarks,omitempty"   gorm:"column:remarks;type:text"`
	GradedBy   uuid.UUID  `json:"gradedBy"            gorm:"column:graded_by;type:uuid;not null"`
	GradedAt   time.Time  `json:"gradedAt"            gorm:"column:graded_at;not null"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
}

func (GradeModel) TableName() string { return "grades" }
func (g *GradeModel) BeforeCreate(tx *gorm.DB) error { newID(&g.ID); return nil }

/* =========================
   Attendance
========================= */

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
	AttendanceExcused AttendanceStatus = "EXCUSED"
)

type AttendanceRecordModel struct {
	ID         uuid.UUID        `json:"id"                gorm:"column:id;type:uuid;primaryKey"`
	TenantID   uuid.UUID        `json:"tenantId"          gorm:"column:tenant_id;type:uuid;not null;index"`
	StudentID  uuid.UUID        `json:"studentId"         gorm:"column:student_id;type:uuid;not null;index"`
	ClassID    *uuid.UUID       `json:"classId,omitempty" gorm:"column:class_id;type:uuid"`
	Date       time.Time        `json:"date"              gorm:"column:date;type:date;not null;index"`
	Status     AttendanceStatus `json:"status"            gorm:"column:status;type:varchar(20);not null"`
	Remarks    *string          `json:"remarks,omitempty" gorm:"column:remarks;type:text"`
	RecordedBy uuid.UUID        `json:"recordedBy"        gorm:"column:recorded_by;type:uuid;not null"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }
func (a *AttendanceRecordModel) BeforeCreate(tx *gorm.DB) error { newID(&a.ID); return nil }

/* =========================
   Academic record (per term)
========================= */

type AcademicRecordModel struct {
	ID           uuid.UUID  `json:"id"                gorm:"column:id;type:uuid;primaryKey"`
	TenantID     uuid.UUID  `json:"tenantId"          gorm:"column:tenant_id;type:uuid;not null;index"`
	StudentID    uuid.UUID  `json:"studentId"         gorm:"column:student_id;type:uuid;not null;index"`
	AcademicYear string     `json:"academicYear"      gorm:"column:academic_year;type:varchar(20);not null"`
	Term         string     `json:"term"              gorm:"column:term;type:varchar(40);not null"`
	ClassID      *uuid.UUID `json:"classId,omitempty" gorm:"column:class_id;type:uuid"`
	GPA          *float64   `json:"gpa,omitempty"     gorm:"column:gpa"`
	Rank         *int       `json:"rank,omitempty"    gorm:"column:rank"`
	Remarks      *string    `json:"remarks,omitempty" gorm:"column:remarks;type:text"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at;autoUpdateTime"`
}

func (AcademicRecordModel) TableName() string { return "academic_records" }
func (r *AcademicRecordModel) BeforeCreate(tx *gorm.DB) error { newID(&r.ID); return nil }

/* =========================
   Health record
========================= */

type HealthRecordType string

const (
	HealthCheckup     HealthRecordType = "CHECKUP"
	HealthVaccination HealthRecordType = "VACCINATION"
	HealthAllergy     HealthRecordType = "ALLERGY"
	HealthIncident    HealthRecordType = "INCIDENT"
	HealthOther       HealthRecordType = "OTHER"
)

type HealthRecordModel struct {
	ID          uuid.UUID        `json:"id"                  gorm:"column:id;type:uuid;primaryKey"`
	TenantID    uuid.UUID        `json:"tenantId"            gorm:"column:tenant_id;type:uuid;not null;index"`
	StudentID   uuid.UUID        `json:"studentId"           gorm:"column:student_id;type:uuid;not null;index"`
	RecordDate  time.Time        `json:"recordDate"          gorm:"column:record_date;type:date;not null"`
	Type        HealthRecordType `json:"type"                gorm:"column:type;type:varchar(20);not null"`
	Description string           `json:"description"         gorm:"column:description;type:text;not null"`
	Treatment   *string          `json:"treatment,omitempty" gorm:"column:treatment;type:text"`
	RecordedBy  uuid.UUID        `json:"recordedBy"          gorm:"column:recorded_by;type:uuid;not null"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
}

func (HealthRecordModel) TableName() string { return "health_records" }
func (h *HealthRecordModel) BeforeCreate(tx *gorm.DB) error { newID(&h.ID); return nil }
