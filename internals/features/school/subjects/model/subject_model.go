package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubjectModel struct {
	ID          uuid.UUID `json:"id"                    gorm:"column:id;type:uuid;primaryKey"`
	TenantID    uuid.UUID `json:"tenantId"              gorm:"column:tenant_id;type:uuid;not null;uniqueIndex:uq_subjects_tenant_code,priority:1"`
	Name        string    `json:"name"                  gorm:"column:name;type:varchar(150);not null"`
	Code        string    `json:"code"                  gorm:"column:code;type:varchar(40);not null;uniqueIndex:uq_subjects_tenant_code,priority:2"`
	Description *string   `json:"description,omitempty" gorm:"column:description;type:text"`
	Credits     int       `json:"credits"               gorm:"column:credits;not null;default:0"`
	IsActive    bool      `json:"isActive"              gorm:"column:is_active;not null;default:true"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at;autoUpdateTime"`
}

func (SubjectModel) TableName() string { return "subjects" }

func (s *SubjectModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
