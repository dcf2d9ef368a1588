package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Role
========================= */

// RoleModel is a named permission bundle. System roles have no tenant.
type RoleModel struct {
	ID          uuid.UUID  `json:"id"                 gorm:"column:id;type:uuid;primaryKey"`
	TenantID    *uuid.UUID `json:"tenantId,omitempty" gorm:"column:tenant_id;type:uuid;uniqueIndex:uq_roles_tenant_name,priority:1"`
	Name        string     `json:"name"               gorm:"column:name;type:varchar(100);not null;uniqueIndex:uq_roles_tenant_name,priority:2"`
	Description string     `json:"description"        gorm:"column:description;type:text"`
	IsSystem    bool       `json:"isSystem"           gorm:"column:is_system;not null;default:false"`

	// filled by the role service, not persisted through this struct
	Permissions []PermissionModel `json:"permissions,omitempty" gorm:"-"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at;autoUpdateTime"`
}

func (RoleModel) TableName() string { return "roles" }

func (r *RoleModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

/* =========================
   Permission (global)
========================= */

type PermissionModel struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id;type:uuid;primaryKey"`
	Name        string    `json:"name"        gorm:"column:name;type:varchar(120);not null;uniqueIndex"`
	Resource    string    `json:"resource"    gorm:"column:resource;type:varchar(60);not null;index"`
	Action      string    `json:"action"      gorm:"column:action;type:varchar(60);not null"`
	Description string    `json:"description" gorm:"column:description;type:text"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
}

func (PermissionModel) TableName() string { return "permissions" }

func (p *PermissionModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

/* =========================
   Joins
========================= */

type RolePermissionModel struct {
	RoleID       uuid.UUID `json:"roleId"       gorm:"column:role_id;type:uuid;primaryKey"`
	PermissionID uuid.UUID `json:"permissionId" gorm:"column:permission_id;type:uuid;primaryKey"`
}

func (RolePermissionModel) TableName() string { return "role_permissions" }

type UserRoleModel struct {
	ID         uuid.UUID  `json:"id"                   gorm:"column:id;type:uuid;primaryKey"`
	UserID     uuid.UUID  `json:"userId"               gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_user_roles_user_role,priority:1"`
	RoleID     uuid.UUID  `json:"roleId"               gorm:"column:role_id;type:uuid;not null;uniqueIndex:uq_user_roles_user_role,priority:2"`
	TenantID   uuid.UUID  `json:"tenantId"             gorm:"column:tenant_id;type:uuid;not null;index"`
	AssignedBy *uuid.UUID `json:"assignedBy,omitempty" gorm:"column:assigned_by;type:uuid"`
	AssignedAt time.Time  `json:"assignedAt"           gorm:"column:assigned_at;autoCreateTime"`

	Role *RoleModel `json:"role,omitempty" gorm:"foreignKey:RoleID;references:ID"`
}

func (UserRoleModel) TableName() string { return "user_roles" }

func (ur *UserRoleModel) BeforeCreate(tx *gorm.DB) error {
	if ur.ID == uuid.Nil {
		ur.ID = uuid.New()
	}
	return nil
}
