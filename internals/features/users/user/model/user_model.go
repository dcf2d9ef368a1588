package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserStatus string

const (
	UserActive    UserStatus = "ACTIVE"
	UserInactive  UserStatus = "INACTIVE"
	UserSuspended UserStatus = "SUSPENDED"
)

// UserModel is an account inside a tenant. Email is unique per tenant only.
type UserModel struct {
	ID          uuid.UUID  `json:"id"                    gorm:"column:id;type:uuid;primaryKey"`
	TenantID    uuid.UUID  `json:"tenantId"              gorm:"column:tenant_id;type:uuid;not null;uniqueIndex:uq_users_tenant_email,priority:1"`
	Email       string     `json:"email"                 gorm:"column:email;type:varchar(200);not null;uniqueIndex:uq_users_tenant_email,priority:2"`
	Password    string     `json:"-"                     gorm:"column:password;type:varchar(255);not null"`
	FirstName   string     `json:"firstName"             gorm:"column:first_name;type:varchar(100);not null"`
	LastName    string     `json:"lastName"              gorm:"column:last_name;type:varchar(100);not null"`
	Phone       *string    `json:"phone,omitempty"       gorm:"column:phone;type:varchar(40)"`
	Status      UserStatus `json:"status"                gorm:"column:status;type:varchar(20);not null;default:'ACTIVE'"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" gorm:"column:last_login_at"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at;autoUpdateTime"`
}

func (UserModel) TableName() string { return "users" }

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Status == "" {
		u.Status = UserActive
	}
	return nil
}

func (u UserModel) IsActive() bool { return u.Status == UserActive }

func (u UserModel) FullName() string { return u.FirstName + " " + u.LastName }
