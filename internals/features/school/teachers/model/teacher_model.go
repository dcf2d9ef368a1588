package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	subjectModel "schoolku_backend/internals/features/school/subjects/model"
	userModel "schoolku_backend/internals/features/users/user/model"
)

/* =========================
   Enums
========================= */

type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "FULL_TIME"
	EmploymentPartTime EmploymentType = "PART_TIME"
	EmploymentContract EmploymentType = "CONTRACT"
	EmploymentVisiting EmploymentType = "VISITING"
)

type TeacherStatus string

const (
	TeacherActive     TeacherStatus = "ACTIVE"
	TeacherInactive   TeacherStatus = "INACTIVE"
	TeacherOnLeave    TeacherStatus = "ON_LEAVE"
	TeacherTerminated TeacherStatus = "TERMINATED"
)

/* =========================
   Teacher
========================= */

type TeacherModel struct {
	ID       uuid.UUID `json:"id"       gorm:"column:id;type:uuid;primaryKey"`
	TenantID uuid.UUID `json:"tenantId" gorm:"column:tenant_id;type:uuid;not null;uniqueIndex:uq_teachers_tenant_code,priority:1"`
	UserID   uuid.UUID `json:"userId"   gorm:"column:user_id;type:uuid;not null;uniqueIndex"`

	// exposed as teacherId, unique per tenant
	TeacherCode string `json:"teacherId" gorm:"column:teacher_code;type:varchar(40);not null;uniqueIndex:uq_teachers_tenant_code,priority:2"`

	DateOfBirth      *time.Time     `json:"dateOfBirth,omitempty"      gorm:"column:date_of_birth;type:date"`
	Gender           *string        `json:"gender,omitempty"           gorm:"column:gender;type:varchar(10)"`
	Phone            *string        `json:"phone,omitempty"            gorm:"column:phone;type:varchar(40)"`
	Address          *string        `json:"address,omitempty"          gorm:"column:address;type:text"`
	EmergencyContact *string        `json:"emergencyContact,omitempty" gorm:"column:emergency_contact;type:varchar(120)"`
	EmergencyPhone   *string        `json:"emergencyPhone,omitempty"   gorm:"column:emergency_phone;type:varchar(40)"`
	HireDate         *time.Time     `json:"hireDate,omitempty"         gorm:"column:hire_date;type:date"`
	EmploymentType   EmploymentType `json:"employmentType"             gorm:"column:employment_type;type:varchar(20);not null;default:'FULL_TIME'"`
	Specialization   *string        `json:"specialization,omitempty"   gorm:"column:specialization;type:varchar(200)"`
	ExperienceYears  int            `json:"experienceYears"            gorm:"column:experience_years;not null;default:0"`
	Status           TeacherStatus  `json:"status"                     gorm:"column:status;type:varchar(20);not null;default:'ACTIVE'"`

	User           *userModel.UserModel        `json:"user,omitempty"           gorm:"foreignKey:UserID;references:ID"`
	Subjects       []TeacherSubjectModel       `json:"subjects,omitempty"       gorm:"foreignKey:TeacherID;references:ID"`
	Qualifications []TeacherQualificationModel `json:"qualifications,omitempty" gorm:"foreignKey:TeacherID;references:ID"`

	CreatedAt time.Time      `json:"createdAt"           gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `json:"updatedAt"           gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"column:deleted_at;index"`
}

func (TeacherModel) TableName() string { return "teachers" }

func (t *TeacherModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

/* =========================
   TeacherSubject (join)
========================= */

type TeacherSubjectModel struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id;type:uuid;primaryKey"`
	TenantID  uuid.UUID `json:"tenantId"  gorm:"column:tenant_id;type:uuid;not null;index"`
	TeacherID uuid.UUID `json:"teacherId" gorm:"column:teacher_id;type:uuid;not null;uniqueIndex:uq_teacher_subjects,priority:1"`
	SubjectID uuid.UUID `json:"subjectId" gorm:"column:subject_id;type:uuid;not null;uniqueIndex:uq_teacher_subjects,priority:2"`
	IsPrimary bool      `json:"isPrimary" gorm:"column:is_primary;not null;default:false"`

	Subject *subjectModel.SubjectModel `json:"subject,omitempty" gorm:"foreignKey:SubjectID;references:ID"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
}

func (TeacherSubjectModel) TableName() string { return "teacher_subjects" }

func (ts *TeacherSubjectModel) BeforeCreate(tx *gorm.DB) error {
	if ts.ID == uuid.Nil {
		ts.ID = uuid.New()
	}
	return nil
}

/* =========================
   TeacherQualification
========================= */

type TeacherQualificationModel struct {
	ID           uuid.UUID `json:"id"                     gorm:"column:id;type:uuid;primaryKey"`
	TenantID     uuid.UUID `json:"tenantId"               gorm:"column:tenant_id;type:uuid;not null;index"`
	TeacherID    uuid.UUID `json:"teacherId"              gorm:"column:teacher_id;type:uuid;not null;index"`
	Degree       string    `json:"degree"                 gorm:"column:degree;type:varchar(120);not null"`
	Institution  string    `json:"institution"            gorm:"column:institution;type:varchar(200);not null"`
	FieldOfStudy *string   `json:"fieldOfStudy,omitempty" gorm:"column:field_of_study;type:varchar(200)"`
	YearObtained *int      `json:"yearObtained,omitempty" gorm:"column:year_obtained"`
	Grade        *string   `json:"grade,omitempty"        gorm:"column:grade;type:varchar(40)"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
}

func (TeacherQualificationModel) TableName() string { return "teacher_qualifications" }

func (q *TeacherQualificationModel) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
