package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	academicModel "schoolku_backend/internals/features/school/academics/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
)

/* =========================
   Grades
========================= */

type CreateGradeRequest struct {
	StudentID  uuid.UUID  `json:"studentId"  validate:"required"`
	SubjectID  *uuid.UUID `json:"subjectId"`
	ClassID    *uuid.UUID `json:"classId"`
	Term       string     `json:"term"       validate:"required,max=40"`
	Assessment string     `json:"assessment" validate:"required,max=120"`
	Score      float64    `json:"score"      validate:"min=0"`
	MaxScore   float64    `json:"maxScore"   validate:"omitempty,gt=0"`
	Letter     *string    `json:"letter"     validate:"omitempty,max=4"`
	Remarks    *string    `json:"remarks"    validate:"omitempty,max=2000"`
}

func (r CreateGradeRequest) ToModel(tenantID, gradedBy uuid.UUID, now time.Time) (academicModel.GradeModel, error) {
	max := r.MaxScore
	if max == 0 {
		max = 100
	}
	if r.Score > max {
		return academicModel.GradeModel{}, helper.ErrValidation("validation failed",
			helper.FieldError{Field: "score", Message: "score must not exceed maxScore"})
	}
	return academicModel.GradeModel{
		TenantID:   tenantID,
		StudentID:  r.StudentID,
		SubjectID:  r.SubjectID,
		ClassID:    r.ClassID,
		Term:       strings.TrimSpace(r.Term),
		Assessment: strings.TrimSpace(r.Assessment),
		Score:      r.Score,
		MaxScore:   max,
		Letter:     r.Letter,
		Remarks:    r.Remarks,
		GradedBy:   gradedBy,
		GradedAt:   now,
	}, nil
}

/* =========================
   Attendance
========================= */

type CreateAttendanceRequest struct {
	StudentID uuid.UUID  `json:"studentId" validate:"required"`
	ClassID   *uuid.UUID `json:"classId"`
	Date      string     `json:"date"      validate:"required"`
	Status    string     `json:"status"    validate:"required,oneof=PRESENT ABSENT LATE EXCUSED"`
	Remarks   *string    `json:"remarks"   validate:"omitempty,max=2000"`
}

func (r CreateAttendanceRequest) ToModel(tenantID, recordedBy uuid.UUID) (academicModel.AttendanceRecordModel, error) {
	d, err := dbtime.ParseDate(r.Date)
	if err != nil {
		return academicModel.AttendanceRecordModel{}, helper.ErrValidation("validation failed",
			helper.FieldError{Field: "date", Message: "date must be YYYY-MM-DD"})
	}
	return academicModel.AttendanceRecordModel{
		TenantID:   tenantID,
		StudentID:  r.StudentID,
		ClassID:    r.ClassID,
		Date:       d,
		Status:     academicModel.AttendanceStatus(r.Status),
		Remarks:    r.Remarks,
		RecordedBy: recordedBy,
	}, nil
}

/* =========================
   Academic records
========================= */

type CreateAcademicRecordRequest struct {
	StudentID    uuid.UUID  `json:"studentId"    validate:"required"`
	AcademicYear string     `json:"academicYear" validate:"required,max=20"`
	Term         string     `json:"term"         validate:"required,max=40"`
	ClassID      *uuid.UUID `json:"classId"`
	GPA          *float64   `json:"gpa"          validate:"omitempty,min=0,max=4"`
	Rank         *int       `json:"rank"         validate:"omitempty,min=1"`
	Remarks      *string    `json:"remarks"      validate:"omitempty,max=2000"`
}

func (r CreateAcademicRecordRequest) ToModel(tenantID uuid.UUID) academicModel.AcademicRecordModel {
	return academicModel.AcademicRecordModel{
		TenantID:     tenantID,
		StudentID:    r.StudentID,
		AcademicYear: strings.TrimSpace(r.AcademicYear),
		Term:         strings.TrimSpace(r.Term),
		ClassID:      r.ClassID,
		GPA:          r.GPA,
		Rank:         r.Rank,
		Remarks:      r.Remarks,
	}
}

/* =========================
   Health records
========================= */

type CreateHealthRecordRequest struct {
	StudentID   uuid.UUID `json:"studentId"   validate:"required"`
	RecordDate  string    `json:"recordDate"  validate:"required"`
	Type        string    `json:"type"        validate:"required,oneof=CHECKUP VACCINATION ALLERGY INCIDENT OTHER"`
	Description string    `json:"description" validate:"required,max=4000"`
	Treatment   *string   `json:"treatment"   validate:"omitempty,max=4000"`
}

func (r CreateHealthRecordRequest) ToModel(tenantID, recordedBy uuid.UUID) (academicModel.HealthRecordModel, error) {
	d, err := dbtime.ParseDate(r.RecordDate)
	if err != nil {
		return academicModel.HealthRecordModel{}, helper.ErrValidation("validation failed",
			helper.FieldError{Field: "recordDate", Message: "recordDate must be YYYY-MM-DD"})
	}
	return academicModel.HealthRecordModel{
		TenantID:    tenantID,
		StudentID:   r.StudentID,
		RecordDate:  d,
		Type:        academicModel.HealthRecordType(r.Type),
		Description: r.Description,
		Treatment:   r.Treatment,
		RecordedBy:  recordedBy,
	}, nil
}
