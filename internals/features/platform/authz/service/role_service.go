package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/constants"
	authzModel "schoolku_backend/internals/features/platform/authz/model"
	userModel "schoolku_backend/internals/features/users/user/model"
	helper "schoolku_backend/internals/helpers"
)

// RoleService manages tenant roles, their grants and user assignments.
type RoleService struct {
	DB *gorm.DB
}

func NewRoleService(db *gorm.DB) *RoleService {
	return &RoleService{DB: db}
}

/* =========================
   Permission catalog
========================= */

// EnsurePermissions upserts the global catalog and returns name -> id.
func EnsurePermissions(tx *gorm.DB, names []string) (map[string]uuid.UUID, error) {
	rows := make([]authzModel.PermissionModel, 0, len(names))
	for _, n := range names {
		res, act := constants.SplitPermission(n)
		rows = append(rows, authzModel.PermissionModel{
			ID:       uuid.New(),
			Name:     n,
			Resource: res,
			Action:   act,
		})
	}
	if len(rows) > 0 {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&rows).Error; err != nil {
			return nil, pkgerrors.Wrap(err, "upsert permissions")
		}
	}

	var existing []authzModel.PermissionModel
	if err := tx.Where("name IN ?", names).Find(&existing).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load permissions")
	}
	out := make(map[string]uuid.UUID, len(existing))
	for _, p := range existing {
		out[p.Name] = p.ID
	}
	return out, nil
}

// GrantPermissions adds role -> permission rows, ignoring ones already present.
func GrantPermissions(tx *gorm.DB, roleID uuid.UUID, ids map[string]uuid.UUID, names []string) error {
	rows := make([]authzModel.RolePermissionModel, 0, len(names))
	for _, n := range names {
		pid, ok := ids[n]
		if !ok {
			return helper.ErrValidation("unknown permission " + n)
		}
		rows = append(rows, authzModel.RolePermissionModel{RoleID: roleID, PermissionID: pid})
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

func (s *RoleService) ListPermissions(ctx context.Context) ([]authzModel.PermissionModel, error) {
	var perms []authzModel.PermissionModel
	err := s.DB.WithContext(ctx).Order("resource ASC, action ASC").Find(&perms).Error
	return perms, err
}

/* =========================
   Roles
========================= */

func (s *RoleService) attachPermissions(ctx context.Context, roles []authzModel.RoleModel) error {
	if len(roles) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(roles))
	for i, r := range roles {
		ids[i] = r.ID
	}
	var rows []struct {
		RoleID uuid.UUID
		authzModel.PermissionModel
	}
	if err := s.DB.WithContext(ctx).
		Table("role_permissions rp").
		Select("rp.role_id, p.*").
		Joins("JOIN permissions p ON p.id = rp.permission_id").
		Where("rp.role_id IN ?", ids).
		Order("p.name ASC").
		Scan(&rows).Error; err != nil {
		return err
	}
	byRole := map[uuid.UUID][]authzModel.PermissionModel{}
	for _, r := range rows {
		byRole[r.RoleID] = append(byRole[r.RoleID], r.PermissionModel)
	}
	for i := range roles {
		roles[i].Permissions = byRole[roles[i].ID]
	}
	return nil
}

func (s *RoleService) List(ctx context.Context, tenantID uuid.UUID) ([]authzModel.RoleModel, error) {
	var roles []authzModel.RoleModel
	if err := s.DB.WithContext(ctx).
		Where("tenant_id = ? OR is_system = ?", tenantID, true).
		Order("name ASC").
		Find(&roles).Error; err != nil {
		return nil, err
	}
	if err := s.attachPermissions(ctx, roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// findTenantRole loads a role owned by the tenant; system roles are read-only here.
func (s *RoleService) findTenantRole(tx *gorm.DB, tenantID, roleID uuid.UUID) (*authzModel.RoleModel, error) {
	var role authzModel.RoleModel
	if err := tx.Where("id = ? AND tenant_id = ?", roleID, tenantID).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("role")
		}
		return nil, err
	}
	return &role, nil
}

// tenantGrantable rejects platform permissions on tenant roles; only the
// system Super Admin role carries tenants:*.
func tenantGrantable(names []string) error {
	for _, n := range names {
		if constants.IsPlatformPermission(n) {
			return helper.ErrForbidden("permission " + n + " cannot be granted to a tenant role")
		}
	}
	return nil
}

func (s *RoleService) Create(ctx context.Context, tenantID uuid.UUID, name, description string, permissions []string) (*authzModel.RoleModel, error) {
	name = strings.TrimSpace(name)
	if err := tenantGrantable(permissions); err != nil {
		return nil, err
	}
	var role authzModel.RoleModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&authzModel.RoleModel{}).
			Where("tenant_id = ? AND LOWER(name) = LOWER(?)", tenantID, name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return helper.ErrConflict("role name already exists in this tenant")
		}

		tid := tenantID
		role = authzModel.RoleModel{TenantID: &tid, Name: name, Description: description}
		if err := tx.Create(&role).Error; err != nil {
			return err
		}
		if len(permissions) == 0 {
			return nil
		}
		ids, err := s.lookupPermissions(tx, permissions)
		if err != nil {
			return err
		}
		return GrantPermissions(tx, role.ID, ids, permissions)
	})
	if err != nil {
		return nil, err
	}
	roles := []authzModel.RoleModel{role}
	if err := s.attachPermissions(ctx, roles); err != nil {
		return nil, err
	}
	return &roles[0], nil
}

func (s *RoleService) lookupPermissions(tx *gorm.DB, names []string) (map[string]uuid.UUID, error) {
	var perms []authzModel.PermissionModel
	if err := tx.Where("name IN ?", names).Find(&perms).Error; err != nil {
		return nil, err
	}
	ids := make(map[string]uuid.UUID, len(perms))
	for _, p := range perms {
		ids[p.Name] = p.ID
	}
	return ids, nil
}

// SetPermissions replaces a role's grants in one transaction.
func (s *RoleService) SetPermissions(ctx context.Context, tenantID, roleID uuid.UUID, permissions []string) (*authzModel.RoleModel, error) {
	if err := tenantGrantable(permissions); err != nil {
		return nil, err
	}
	var role *authzModel.RoleModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := s.findTenantRole(tx, tenantID, roleID)
		if err != nil {
			return err
		}
		role = r
		ids, err := s.lookupPermissions(tx, permissions)
		if err != nil {
			return err
		}
		if err := tx.Where("role_id = ?", roleID).Delete(&authzModel.RolePermissionModel{}).Error; err != nil {
			return err
		}
		return GrantPermissions(tx, roleID, ids, permissions)
	})
	if err != nil {
		return nil, err
	}
	roles := []authzModel.RoleModel{*role}
	if err := s.attachPermissions(ctx, roles); err != nil {
		return nil, err
	}
	return &roles[0], nil
}

/* =========================
   Assignments
========================= */

// AssignRole gives a tenant user a role. The user and role must both belong
// to the tenant.
func (s *RoleService) AssignRole(ctx context.Context, tenantID, userID, roleID, assignedBy uuid.UUID) (*authzModel.UserRoleModel, error) {
	var ur authzModel.UserRoleModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user userModel.UserModel
		if err := tx.Where("id = ? AND tenant_id = ?", userID, tenantID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.ErrNotFound("user")
			}
			return err
		}
		if _, err := s.findTenantRole(tx, tenantID, roleID); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&authzModel.UserRoleModel{}).
			Where("user_id = ? AND role_id = ?", userID, roleID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return helper.ErrConflict("role already assigned to user")
		}
		by := assignedBy
		ur = authzModel.UserRoleModel{UserID: userID, RoleID: roleID, TenantID: tenantID, AssignedBy: &by}
		return tx.Create(&ur).Error
	})
	if err != nil {
		return nil, err
	}
	return &ur, nil
}

// AssignRoleByName is used when profiles are created; a missing role is not an error.
func AssignRoleByName(tx *gorm.DB, tenantID, userID uuid.UUID, roleName string, assignedBy *uuid.UUID) error {
	var role authzModel.RoleModel
	err := tx.Where("tenant_id = ? AND name = ?", tenantID, roleName).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	ur := authzModel.UserRoleModel{UserID: userID, RoleID: role.ID, TenantID: tenantID, AssignedBy: assignedBy}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&ur).Error
}

func (s *RoleService) RevokeRole(ctx context.Context, tenantID, userID, roleID uuid.UUID) error {
	res := s.DB.WithContext(ctx).
		Where("user_id = ? AND role_id = ? AND tenant_id = ?", userID, roleID, tenantID).
		Delete(&authzModel.UserRoleModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.ErrNotFound("role assignment")
	}
	return nil
}
