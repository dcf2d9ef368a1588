package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	tenantModel "schoolku_backend/internals/features/platform/tenants/model"
)

// BootstrapTenantRequest creates a school together with its first administrator.
type BootstrapTenantRequest struct {
	Name             string  `json:"name"             validate:"required,min=2,max=200"`
	Email            string  `json:"email"            validate:"required,email,max=200"`
	Domain           string  `json:"domain"           validate:"required,min=3,max=200"`
	Address          string  `json:"address"          validate:"omitempty,max=500"`
	Phone            *string `json:"phone"            validate:"omitempty,max=40"`
	SubscriptionPlan string  `json:"subscriptionPlan" validate:"omitempty,oneof=BASIC STANDARD PREMIUM ENTERPRISE"`
	Timezone         string  `json:"timezone"         validate:"omitempty,max=64"`

	AdminFirstName string `json:"adminFirstName" validate:"required,max=100"`
	AdminLastName  string `json:"adminLastName"  validate:"required,max=100"`
	AdminEmail     string `json:"adminEmail"     validate:"required,email,max=200"`
	AdminPassword  string `json:"adminPassword"  validate:"required,min=8,max=72"`
}

type UpdateTenantRequest struct {
	Name             *string        `json:"name"             validate:"omitempty,min=2,max=200"`
	Address          *string        `json:"address"          validate:"omitempty,max=500"`
	Phone            *string        `json:"phone"            validate:"omitempty,max=40"`
	Status           *string        `json:"status"           validate:"omitempty,oneof=TRIAL ACTIVE INACTIVE SUSPENDED"`
	SubscriptionPlan *string        `json:"subscriptionPlan" validate:"omitempty,oneof=BASIC STANDARD PREMIUM ENTERPRISE"`
	MaxUsers         *int           `json:"maxUsers"         validate:"omitempty,min=1"`
	Timezone         *string        `json:"timezone"         validate:"omitempty,max=64"`
	Settings         map[string]any `json:"settings"`
}

// Apply copies set fields onto m.
func (r UpdateTenantRequest) Apply(m *tenantModel.TenantModel) {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.Address != nil {
		m.Address = *r.Address
	}
	if r.Phone != nil {
		m.Phone = r.Phone
	}
	if r.Status != nil {
		m.Status = tenantModel.TenantStatus(*r.Status)
	}
	if r.SubscriptionPlan != nil {
		m.SubscriptionPlan = *r.SubscriptionPlan
	}
	if r.MaxUsers != nil {
		m.MaxUsers = *r.MaxUsers
	}
	if r.Timezone != nil {
		m.Timezone = *r.Timezone
	}
	if r.Settings != nil {
		m.Settings = datatypes.JSONMap(r.Settings)
	}
}

type AdminSummary struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}

type BootstrapResponse struct {
	Tenant tenantModel.TenantModel `json:"tenant"`
	Admin  AdminSummary            `json:"admin"`
	Roles  []string                `json:"roles"`
}

type TenantResponse struct {
	ID               uuid.UUID      `json:"id"`
	Name             string         `json:"name"`
	Email            string         `json:"email"`
	Domain           string         `json:"domain"`
	Address          string         `json:"address"`
	Phone            *string        `json:"phone,omitempty"`
	Status           string         `json:"status"`
	SubscriptionPlan string         `json:"subscriptionPlan"`
	MaxUsers         int            `json:"maxUsers"`
	Timezone         string         `json:"timezone"`
	Settings         map[string]any `json:"settings,omitempty"`
	UserCount        int64          `json:"userCount"`
	CreatedAt        time.Time      `json:"createdAt"`
}

func FromTenantModel(t tenantModel.TenantModel, userCount int64) TenantResponse {
	return TenantResponse{
		ID:               t.ID,
		Name:             t.Name,
		Email:            t.Email,
		Domain:           t.Domain,
		Address:          t.Address,
		Phone:            t.Phone,
		Status:           string(t.Status),
		SubscriptionPlan: t.SubscriptionPlan,
		MaxUsers:         t.MaxUsers,
		Timezone:         t.Timezone,
		Settings:         t.Settings,
		UserCount:        userCount,
		CreatedAt:        t.CreatedAt,
	}
}
