package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassModel struct {
	ID             uuid.UUID  `json:"id"                       gorm:"column:id;type:uuid;primaryKey"`
	TenantID       uuid.UUID  `json:"tenantId"                 gorm:"column:tenant_id;type:uuid;not null;index"`
	Name           string     `json:"name"                     gorm:"column:name;type:varchar(120);not null"`
	GradeLevel     string     `json:"gradeLevel"               gorm:"column:grade_level;type:varchar(40);not null"`
	Section        *string    `json:"section,omitempty"        gorm:"column:section;type:varchar(20)"`
	AcademicYear   string     `json:"academicYear"             gorm:"column:academic_year;type:varchar(20);not null"`
	Capacity       int        `json:"capacity"                 gorm:"column:capacity;not null;default:30"`
	ClassTeacherID *uuid.UUID `json:"classTeacherId,omitempty" gorm:"column:class_teacher_id;type:uuid;index"`
	IsActive       bool       `json:"isActive"                 gorm:"column:is_active;not null;default:true"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at;autoUpdateTime"`
}

func (ClassModel) TableName() string { return "classes" }

func (c *ClassModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "ACTIVE"
	EnrollmentCompleted EnrollmentStatus = "COMPLETED"
	EnrollmentWithdrawn EnrollmentStatus = "WITHDRAWN"
)

type StudentClassEnrollmentModel struct {
	ID         uuid.UUID        `json:"id"         gorm:"column:id;type:uuid;primaryKey"`
	TenantID   uuid.UUID        `json:"tenantId"   gorm:"column:tenant_id;type:uuid;not null;index"`
	StudentID  uuid.UUID        `json:"studentId"  gorm:"column:student_id;type:uuid;not null;uniqueIndex:uq_enrollment_student_class,priority:1"`
	ClassID    uuid.UUID        `json:"classId"    gorm:"column:class_id;type:uuid;not null;uniqueIndex:uq_enrollment_student_class,priority:2"`
	Status     EnrollmentStatus `json:"status"     gorm:"column:status;type:varchar(20);not null;default:'ACTIVE'"`
	EnrolledAt time.Time        `json:"enrolledAt" gorm:"column:enrolled_at;autoCreateTime"`
	UpdatedAt  time.Time        `json:"updatedAt"  gorm:"column:updated_at;autoUpdateTime"`
}

func (StudentClassEnrollmentModel) TableName() string { return "student_class_enrollments" }

func (e *StudentClassEnrollmentModel) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
