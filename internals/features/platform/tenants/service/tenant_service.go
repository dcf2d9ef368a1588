package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	authzModel "schoolku_backend/internals/features/platform/authz/model"
	authzService "schoolku_backend/internals/features/platform/authz/service"
	"schoolku_backend/internals/features/platform/tenants/dto"
	tenantModel "schoolku_backend/internals/features/platform/tenants/model"
	authHelper "schoolku_backend/internals/features/users/auth/helper"
	userModel "schoolku_backend/internals/features/users/user/model"
	helper "schoolku_backend/internals/helpers"
)

type TenantService struct {
	DB *gorm.DB
}

func NewTenantService(db *gorm.DB) *TenantService {
	return &TenantService{DB: db}
}

// defaultRoles is the creation order for non-admin roles at bootstrap.
var defaultRoles = []string{constants.RoleTeacher, constants.RoleParent, constants.RoleStudent}

// Bootstrap creates a tenant with its admin user and default roles.
// Everything happens in one transaction; any failure leaves no rows behind.
func (s *TenantService) Bootstrap(ctx context.Context, req dto.BootstrapTenantRequest) (*dto.BootstrapResponse, error) {
	domain := helper.NormalizeDomain(req.Domain)
	if domain == "" {
		return nil, helper.ErrValidation("validation failed", helper.FieldError{Field: "domain", Message: "domain is invalid"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	adminEmail := strings.ToLower(strings.TrimSpace(req.AdminEmail))

	hash, err := authHelper.HashPassword(req.AdminPassword)
	if err != nil {
		return nil, helper.ErrInternal("failed to hash password", err)
	}

	var out dto.BootstrapResponse
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dup int64
		if err := tx.Model(&tenantModel.TenantModel{}).
			Where("LOWER(email) = ? OR LOWER(domain) = ?", email, domain).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return helper.ErrConflict("tenant with this email or domain already exists")
		}

		ids, err := authzService.EnsurePermissions(tx, constants.AllPermissions)
		if err != nil {
			return err
		}

		tenant := tenantModel.TenantModel{
			Name:             strings.TrimSpace(req.Name),
			Email:            email,
			Domain:           domain,
			Address:          strings.TrimSpace(req.Address),
			Phone:            req.Phone,
			Status:           tenantModel.TenantTrial,
			SubscriptionPlan: req.SubscriptionPlan,
			Timezone:         req.Timezone,
		}
		if tenant.SubscriptionPlan == "" {
			tenant.SubscriptionPlan = "BASIC"
		}
		if tenant.Timezone == "" {
			tenant.Timezone = "UTC"
		}
		if err := tx.Create(&tenant).Error; err != nil {
			return conflictOr(err, "tenant with this email or domain already exists")
		}

		admin := userModel.UserModel{
			TenantID:  tenant.ID,
			Email:     adminEmail,
			Password:  hash,
			FirstName: strings.TrimSpace(req.AdminFirstName),
			LastName:  strings.TrimSpace(req.AdminLastName),
			Status:    userModel.UserActive,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return conflictOr(err, "admin email already registered")
		}

		adminRole, err := createRole(tx, tenant.ID, constants.RoleAdmin, constants.DefaultRoleDescriptions[constants.RoleAdmin], ids, constants.TenantAdminPermissions())
		if err != nil {
			return err
		}
		roleNames := []string{adminRole.Name}
		for _, name := range defaultRoles {
			if _, err := createRole(tx, tenant.ID, name, constants.DefaultRoleDescriptions[name], ids, constants.DefaultRoleGrants[name]); err != nil {
				return err
			}
			roleNames = append(roleNames, name)
		}

		if err := tx.Create(&authzModel.UserRoleModel{
			UserID:   admin.ID,
			RoleID:   adminRole.ID,
			TenantID: tenant.ID,
		}).Error; err != nil {
			return pkgerrors.Wrap(err, "assign admin role")
		}

		out = dto.BootstrapResponse{
			Tenant: tenant,
			Admin: dto.AdminSummary{
				ID:        admin.ID,
				Email:     admin.Email,
				FirstName: admin.FirstName,
				LastName:  admin.LastName,
			},
			Roles: roleNames,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func createRole(tx *gorm.DB, tenantID uuid.UUID, name, desc string, ids map[string]uuid.UUID, perms []string) (*authzModel.RoleModel, error) {
	tid := tenantID
	role := authzModel.RoleModel{TenantID: &tid, Name: name, Description: desc}
	if err := tx.Create(&role).Error; err != nil {
		return nil, pkgerrors.Wrapf(err, "create role %s", name)
	}
	if err := authzService.GrantPermissions(tx, role.ID, ids, perms); err != nil {
		return nil, err
	}
	return &role, nil
}

func conflictOr(err error, msg string) error {
	if helper.IsUniqueViolation(err) {
		return helper.ErrConflict(msg)
	}
	return err
}

/* =========================
   Queries
========================= */

// List is platform-wide and only reachable with tenants:read.
func (s *TenantService) List(ctx context.Context, search, status string, p helper.Params) ([]dto.TenantResponse, int64, error) {
	q := s.DB.WithContext(ctx).Model(&tenantModel.TenantModel{})
	if search != "" {
		like := helper.Like(search)
		q = q.Where("(LOWER(name) LIKE ? OR LOWER(domain) LIKE ? OR LOWER(email) LIKE ?)", like, like, like)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []tenantModel.TenantModel
	sortCols := map[string]string{"createdAt": "created_at", "name": "name", "domain": "domain"}
	if err := q.Order(p.OrderColumn(sortCols, "createdAt")).
		Limit(p.Limit).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	counts, err := s.userCounts(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.TenantResponse, 0, len(rows))
	for _, t := range rows {
		out = append(out, dto.FromTenantModel(t, counts[t.ID]))
	}
	return out, total, nil
}

func (s *TenantService) userCounts(ctx context.Context, rows []tenantModel.TenantModel) (map[uuid.UUID]int64, error) {
	out := make(map[uuid.UUID]int64, len(rows))
	if len(rows) == 0 {
		return out, nil
	}
	ids := make([]uuid.UUID, len(rows))
	for i, t := range rows {
		ids[i] = t.ID
	}
	var agg []struct {
		TenantID uuid.UUID
		N        int64
	}
	if err := s.DB.WithContext(ctx).Model(&userModel.UserModel{}).
		Select("tenant_id, COUNT(*) AS n").
		Where("tenant_id IN ?", ids).
		Group("tenant_id").
		Scan(&agg).Error; err != nil {
		return nil, err
	}
	for _, a := range agg {
		out[a.TenantID] = a.N
	}
	return out, nil
}

func (s *TenantService) Get(ctx context.Context, tenantID uuid.UUID) (*dto.TenantResponse, error) {
	var t tenantModel.TenantModel
	if err := s.DB.WithContext(ctx).First(&t, "id = ?", tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("tenant")
		}
		return nil, err
	}
	counts, err := s.userCounts(ctx, []tenantModel.TenantModel{t})
	if err != nil {
		return nil, err
	}
	resp := dto.FromTenantModel(t, counts[t.ID])
	return &resp, nil
}

// Update applies a partial update. tenants:update is a platform permission,
// so the target may be any tenant.
func (s *TenantService) Update(ctx context.Context, tenantID uuid.UUID, req dto.UpdateTenantRequest) (*dto.TenantResponse, error) {
	var t tenantModel.TenantModel
	if err := s.DB.WithContext(ctx).First(&t, "id = ?", tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("tenant")
		}
		return nil, err
	}
	req.Apply(&t)
	if err := s.DB.WithContext(ctx).Save(&t).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, t.ID)
}
