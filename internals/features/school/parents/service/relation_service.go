package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/parents/dto"
	parentModel "schoolku_backend/internals/features/school/parents/model"
	studentService "schoolku_backend/internals/features/school/students/service"
	helper "schoolku_backend/internals/helpers"
)

func (s *ParentService) loadRelation(tx *gorm.DB, tenantID, parentID, relationID uuid.UUID) (*dto.RelationResponse, error) {
	var r parentModel.ParentStudentRelationModel
	err := tx.Preload("Student").Preload("Student.User").
		Where("id = ? AND parent_id = ? AND tenant_id = ?", relationID, parentID, tenantID).
		First(&r).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("relation")
		}
		return nil, err
	}
	out := dto.FromRelationModel(r)
	return &out, nil
}

// CreateRelation links a student to a parent. Each (parent, student) pair
// exists at most once per tenant.
func (s *ParentService) CreateRelation(ctx context.Context, tenantID, parentID uuid.UUID, req dto.CreateRelationRequest) (*dto.RelationResponse, error) {
	var rel parentModel.ParentStudentRelationModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findParent(tx, tenantID, parentID); err != nil {
			return err
		}
		if _, err := studentService.FindStudent(tx, tenantID, req.StudentID); err != nil {
			return err
		}
		var n int64
		if err := tx.Model(&parentModel.ParentStudentRelationModel{}).
			Where("tenant_id = ? AND parent_id = ? AND student_id = ?", tenantID, parentID, req.StudentID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return helper.ErrConflict("relation already exists")
		}
		rel = parentModel.ParentStudentRelationModel{
			TenantID:     tenantID,
			ParentID:     parentID,
			StudentID:    req.StudentID,
			Relationship: parentModel.Relationship(req.Relationship),
			IsPrimary:    req.IsPrimary,
			IsEmergency:  req.IsEmergency,
			CanPickup:    req.CanPickup,
			Notes:        req.Notes,
		}
		if err := tx.Create(&rel).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return helper.ErrConflict("relation already exists")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.loadRelation(s.DB.WithContext(ctx), tenantID, parentID, rel.ID)
}

func (s *ParentService) ListRelations(ctx context.Context, tenantID, parentID uuid.UUID) ([]dto.RelationResponse, error) {
	db := s.DB.WithContext(ctx)
	if _, err := findParent(db, tenantID, parentID); err != nil {
		return nil, err
	}
	var rows []parentModel.ParentStudentRelationModel
	if err := db.Preload("Student").Preload("Student.User").
		Where("parent_id = ? AND tenant_id = ?", parentID, tenantID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]dto.RelationResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.FromRelationModel(r))
	}
	return out, nil
}

func (s *ParentService) UpdateRelation(ctx context.Context, tenantID, parentID, relationID uuid.UUID, req dto.UpdateRelationRequest) (*dto.RelationResponse, error) {
	db := s.DB.WithContext(ctx)
	if _, err := s.loadRelation(db, tenantID, parentID, relationID); err != nil {
		return nil, err
	}
	if upd := req.Updates(); len(upd) > 0 {
		if err := db.Model(&parentModel.ParentStudentRelationModel{}).
			Where("id = ? AND tenant_id = ?", relationID, tenantID).
			Updates(upd).Error; err != nil {
			return nil, err
		}
	}
	return s.loadRelation(db, tenantID, parentID, relationID)
}

func (s *ParentService) DeleteRelation(ctx context.Context, tenantID, parentID, relationID uuid.UUID) error {
	res := s.DB.WithContext(ctx).
		Where("id = ? AND parent_id = ? AND tenant_id = ?", relationID, parentID, tenantID).
		Delete(&parentModel.ParentStudentRelationModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.ErrNotFound("relation")
	}
	return nil
}
