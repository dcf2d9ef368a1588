package dto

import (
	"github.com/google/uuid"

	authzModel "schoolku_backend/internals/features/platform/authz/model"
)

type CreateRoleRequest struct {
	Name        string   `json:"name"        validate:"required,min=2,max=100"`
	Description string   `json:"description" validate:"omitempty,max=500"`
	Permissions []string `json:"permissions" validate:"omitempty,dive,required"`
}

type SetPermissionsRequest struct {
	Permissions []string `json:"permissions" validate:"required,dive,required"`
}

type AssignRoleRequest struct {
	RoleID string `json:"roleId" validate:"required,uuid"`
}

type RoleResponse struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    *uuid.UUID `json:"tenantId,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	IsSystem    bool       `json:"isSystem"`
	Permissions []string   `json:"permissions"`
}

func FromRoleModel(r authzModel.RoleModel) RoleResponse {
	perms := make([]string, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		perms = append(perms, p.Name)
	}
	return RoleResponse{
		ID:          r.ID,
		TenantID:    r.TenantID,
		Name:        r.Name,
		Description: r.Description,
		IsSystem:    r.IsSystem,
		Permissions: perms,
	}
}

func FromRoleModels(rows []authzModel.RoleModel) []RoleResponse {
	out := make([]RoleResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromRoleModel(r))
	}
	return out
}
