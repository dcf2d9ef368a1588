package dto

import (
	"time"

	"github.com/google/uuid"

	classModel "schoolku_backend/internals/features/school/classes/model"
)

type CreateClassRequest struct {
	Name           string     `json:"name"           validate:"required,max=120"`
	GradeLevel     string     `json:"gradeLevel"     validate:"required,max=40"`
	Section        *string    `json:"section"        validate:"omitempty,max=20"`
	AcademicYear   string     `json:"academicYear"   validate:"required,max=20"`
	Capacity       int        `json:"capacity"       validate:"omitempty,min=1,max=1000"`
	ClassTeacherID *uuid.UUID `json:"classTeacherId"`
}

func (r CreateClassRequest) ToModel(tenantID uuid.UUID) classModel.ClassModel {
	capacity := r.Capacity
	if capacity == 0 {
		capacity = 30
	}
	return classModel.ClassModel{
		TenantID:       tenantID,
		Name:           r.Name,
		GradeLevel:     r.GradeLevel,
		Section:        r.Section,
		AcademicYear:   r.AcademicYear,
		Capacity:       capacity,
		ClassTeacherID: r.ClassTeacherID,
		IsActive:       true,
	}
}

type UpdateClassRequest struct {
	Name           *string    `json:"name"           validate:"omitempty,min=1,max=120"`
	GradeLevel     *string    `json:"gradeLevel"     validate:"omitempty,min=1,max=40"`
	Section        *string    `json:"section"        validate:"omitempty,max=20"`
	AcademicYear   *string    `json:"academicYear"   validate:"omitempty,min=1,max=20"`
	Capacity       *int       `json:"capacity"       validate:"omitempty,min=1,max=1000"`
	ClassTeacherID *uuid.UUID `json:"classTeacherId"`
	IsActive       *bool      `json:"isActive"`
}

func (r UpdateClassRequest) Updates() map[string]any {
	m := map[string]any{}
	if r.Name != nil {
		m["name"] = *r.Name
	}
	if r.GradeLevel != nil {
		m["grade_level"] = *r.GradeLevel
	}
	if r.Section != nil {
		m["section"] = *r.Section
	}
	if r.AcademicYear != nil {
		m["academic_year"] = *r.AcademicYear
	}
	if r.Capacity != nil {
		m["capacity"] = *r.Capacity
	}
	if r.ClassTeacherID != nil {
		m["class_teacher_id"] = *r.ClassTeacherID
	}
	if r.IsActive != nil {
		m["is_active"] = *r.IsActive
	}
	return m
}

type EnrollRequest struct {
	StudentID uuid.UUID `json:"studentId" validate:"required"`
}

type ClassResponse struct {
	classModel.ClassModel
	EnrolledCount int64 `json:"enrolledCount"`
}

type EnrolledStudent struct {
	StudentID   uuid.UUID `json:"studentId"`
	StudentCode string    `json:"studentCode"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Status      string    `json:"status"`
	EnrolledAt  time.Time `json:"enrolledAt"`
}
