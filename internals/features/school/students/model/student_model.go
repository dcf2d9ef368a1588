package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "schoolku_backend/internals/features/users/user/model"
)

type StudentStatus string

const (
	StudentActive      StudentStatus = "ACTIVE"
	StudentInactive    StudentStatus = "INACTIVE"
	StudentGraduated   StudentStatus = "GRADUATED"
	StudentTransferred StudentStatus = "TRANSFERRED"
)

type StudentModel struct {
	ID                uuid.UUID     `json:"id"                          gorm:"column:id;type:uuid;primaryKey"`
	TenantID          uuid.UUID     `json:"tenantId"                    gorm:"column:tenant_id;type:uuid;not null;uniqueIndex:uq_students_tenant_code,priority:1"`
	UserID            uuid.UUID     `json:"userId"                      gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	StudentCode       string        `json:"studentId"                   gorm:"column:student_code;type:varchar(40);not null;uniqueIndex:uq_students_tenant_code,priority:2"`
	DateOfBirth       *time.Time    `json:"dateOfBirth,omitempty"       gorm:"column:date_of_birth;type:date"`
	Gender            *string       `json:"gender,omitempty"            gorm:"column:gender;type:varchar(10)"`
	Address           *string       `json:"address,omitempty"           gorm:"column:address;type:text"`
	BloodGroup        *string       `json:"bloodGroup,omitempty"        gorm:"column:blood_group;type:varchar(5)"`
	MedicalConditions *string       `json:"medicalConditions,omitempty" gorm:"column:medical_conditions;type:text"`
	AdmissionDate     *time.Time    `json:"admissionDate,omitempty"     gorm:"column:admission_date;type:date"`
	Status            StudentStatus `json:"status"                      gorm:"column:status;type:varchar(20);not null;default:'ACTIVE'"`

	User *userModel.UserModel `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`

	CreatedAt time.Time      `json:"createdAt"           gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `json:"updatedAt"           gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"column:deleted_at;index"`
}

func (StudentModel) TableName() string { return "students" }

func (s *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
