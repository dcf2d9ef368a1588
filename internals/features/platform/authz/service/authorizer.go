package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	authzModel "schoolku_backend/internals/features/platform/authz/model"
)

/* =========================
   PermissionSet
========================= */

type PermissionSet map[string]struct{}

func NewPermissionSet(names ...string) PermissionSet {
	ps := make(PermissionSet, len(names))
	for _, n := range names {
		ps[n] = struct{}{}
	}
	return ps
}

func (p PermissionSet) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// HasAll is AND semantics: every required permission must be present.
func (p PermissionSet) HasAll(required ...string) bool {
	return len(p.Missing(required...)) == 0
}

func (p PermissionSet) Missing(required ...string) []string {
	var out []string
	for _, r := range required {
		if !p.Has(r) {
			out = append(out, r)
		}
	}
	return out
}

func (p PermissionSet) List() []string {
	out := make([]string, 0, len(p))
	for n := range p {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

/* =========================
   Authorizer
========================= */

// Authorizer resolves effective permissions: the union over every role the
// user holds in the tenant. System roles get no bypass; they only count
// through the permissions actually granted to them.
type Authorizer struct {
	DB *gorm.DB
}

func NewAuthorizer(db *gorm.DB) *Authorizer {
	return &Authorizer{DB: db}
}

const permissionsQuery = `
SELECT DISTINCT p.name
FROM user_roles ur
JOIN roles r             ON r.id = ur.role_id
JOIN role_permissions rp ON rp.role_id = r.id
JOIN permissions p       ON p.id = rp.permission_id
WHERE ur.user_id = ?
  AND ur.tenant_id = ?
  AND (r.tenant_id = ? OR r.is_system = ?)
  AND (r.is_system = ? OR p.resource <> ?)`

// Permissions ignores platform grants that reached a tenant role.
func (a *Authorizer) Permissions(ctx context.Context, userID, tenantID uuid.UUID) (PermissionSet, error) {
	var names []string
	if err := a.DB.WithContext(ctx).
		Raw(permissionsQuery, userID, tenantID, tenantID, true, true, "tenants").
		Scan(&names).Error; err != nil {
		return nil, errors.Wrap(err, "resolve permissions")
	}
	return NewPermissionSet(names...), nil
}

func (a *Authorizer) HasPermission(ctx context.Context, userID, tenantID uuid.UUID, permission string) (bool, error) {
	set, err := a.Permissions(ctx, userID, tenantID)
	if err != nil {
		return false, err
	}
	return set.Has(permission), nil
}

// Roles returns the roles a user holds in a tenant.
func (a *Authorizer) Roles(ctx context.Context, userID, tenantID uuid.UUID) ([]authzModel.RoleModel, error) {
	var roles []authzModel.RoleModel
	err := a.DB.WithContext(ctx).
		Model(&authzModel.RoleModel{}).
		Joins("JOIN user_roles ur ON ur.role_id = roles.id").
		Where("ur.user_id = ? AND ur.tenant_id = ?", userID, tenantID).
		Where("(roles.tenant_id = ? OR roles.is_system = ?)", tenantID, true).
		Order("roles.name ASC").
		Find(&roles).Error
	if err != nil {
		return nil, errors.Wrap(err, "resolve roles")
	}
	return roles, nil
}
