package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TenantStatus string

const (
	TenantTrial     TenantStatus = "TRIAL"
	TenantActive    TenantStatus = "ACTIVE"
	TenantInactive  TenantStatus = "INACTIVE"
	TenantSuspended TenantStatus = "SUSPENDED"
)

type TenantModel struct {
	ID               uuid.UUID         `json:"id"               gorm:"column:id;type:uuid;primaryKey"`
	Name             string            `json:"name"             gorm:"column:name;type:varchar(200);not null"`
	Email            string            `json:"email"            gorm:"column:email;type:varchar(200);not null;uniqueIndex"`
	Domain           string            `json:"domain"           gorm:"column:domain;type:varchar(200);not null;uniqueIndex"`
	Address          string            `json:"address"          gorm:"column:address;type:text"`
	Phone            *string           `json:"phone,omitempty"  gorm:"column:phone;type:varchar(40)"`
	Status           TenantStatus      `json:"status"           gorm:"column:status;type:varchar(20);not null;default:'TRIAL'"`
	SubscriptionPlan string            `json:"subscriptionPlan" gorm:"column:subscription_plan;type:varchar(40);not null;default:'BASIC'"`
	MaxUsers         int               `json:"maxUsers"         gorm:"column:max_users;not null;default:100"`
	Currency         string            `json:"currency"         gorm:"column:currency;type:varchar(8);not null;default:'USD'"`
	Timezone         string            `json:"timezone"         gorm:"column:timezone;type:varchar(64);not null;default:'UTC'"`
	Settings         datatypes.JSONMap `json:"settings,omitempty" gorm:"column:settings"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at;autoUpdateTime"`
}

func (TenantModel) TableName() string { return "tenants" }

func (t *TenantModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
