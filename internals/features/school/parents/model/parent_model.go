package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	studentModel "schoolku_backend/internals/features/school/students/model"
	userModel "schoolku_backend/internals/features/users/user/model"
)

/* =========================
   Parent
========================= */

type ParentModel struct {
	ID               uuid.UUID  `json:"id"                         gorm:"column:id;type:uuid;primaryKey"`
	TenantID         uuid.UUID  `json:"tenantId"                   gorm:"column:tenant_id;type:uuid;not null;index"`
	UserID           uuid.UUID  `json:"userId"                     gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Occupation       *string    `json:"occupation,omitempty"       gorm:"column:occupation;type:varchar(120)"`
	Employer         *string    `json:"employer,omitempty"         gorm:"column:employer;type:varchar(200)"`
	Phone            *string    `json:"phone,omitempty"            gorm:"column:phone;type:varchar(40)"`
	AlternatePhone   *string    `json:"alternatePhone,omitempty"   gorm:"column:alternate_phone;type:varchar(40)"`
	Address          *string    `json:"address,omitempty"          gorm:"column:address;type:text"`
	EmergencyContact *string    `json:"emergencyContact,omitempty" gorm:"column:emergency_contact;type:varchar(120)"`
	EmergencyPhone   *string    `json:"emergencyPhone,omitempty"   gorm:"column:emergency_phone;type:varchar(40)"`
	DateOfBirth      *time.Time `json:"dateOfBirth,omitempty"      gorm:"column:date_of_birth;type:date"`
	Gender           *string    `json:"gender,omitempty"           gorm:"column:gender;type:varchar(10)"`
	Status           string     `json:"status"                     gorm:"column:status;type:varchar(20);not null;default:'ACTIVE'"`

	User      *userModel.UserModel         `json:"user,omitempty"     gorm:"foreignKey:UserID;references:ID"`
	Relations []ParentStudentRelationModel `json:"children,omitempty" gorm:"foreignKey:ParentID;references:ID"`

	CreatedAt time.Time      `json:"createdAt"           gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `json:"updatedAt"           gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"column:deleted_at;index"`
}

func (ParentModel) TableName() string { return "parents" }

func (p *ParentModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

/* =========================
   ParentStudentRelation
========================= */

type Relationship string

const (
	RelationshipFather   Relationship = "FATHER"
	RelationshipMother   Relationship = "MOTHER"
	RelationshipGuardian Relationship = "GUARDIAN"
	RelationshipOther    Relationship = "OTHER"
)

type ParentStudentRelationModel struct {
	ID           uuid.UUID    `json:"id"              gorm:"column:id;type:uuid;primaryKey"`
	TenantID     uuid.UUID    `json:"tenantId"        gorm:"column:tenant_id;type:uuid;not null;uniqueIndex:uq_parent_student,priority:1"`
	ParentID     uuid.UUID    `json:"parentId"        gorm:"column:parent_id;type:uuid;not null;uniqueIndex:uq_parent_student,priority:2"`
	StudentID    uuid.UUID    `json:"studentId"       gorm:"column:student_id;type:uuid;not null;uniqueIndex:uq_parent_student,priority:3;index"`
	Relationship Relationship `json:"relationship"    gorm:"column:relationship;type:varchar(20);not null"`
	IsPrimary    bool         `json:"isPrimary"       gorm:"column:is_primary;not null;default:false"`
	IsEmergency  bool         `json:"isEmergency"     gorm:"column:is_emergency;not null;default:false"`
	CanPickup    bool         `json:"canPickup"       gorm:"column:can_pickup;not null;default:false"`
	Notes        *string      `json:"notes,omitempty" gorm:"column:notes;type:text"`

	Student *studentModel.StudentModel `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at;autoUpdateTime"`
}

func (ParentStudentRelationModel) TableName() string { return "parent_student_relations" }

func (r *ParentStudentRelationModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
