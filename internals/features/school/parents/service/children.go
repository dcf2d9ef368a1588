package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	academicModel "schoolku_backend/internals/features/school/academics/model"
	academicService "schoolku_backend/internals/features/school/academics/service"
	classModel "schoolku_backend/internals/features/school/classes/model"
	parentModel "schoolku_backend/internals/features/school/parents/model"
	scheduleDTO "schoolku_backend/internals/features/school/schedules/dto"
	scheduleService "schoolku_backend/internals/features/school/schedules/service"
	helper "schoolku_backend/internals/helpers"
)

var (
	errNotGuardian   = helper.ErrForbidden("you are not authorized to view this student's data")
	errNotOwnProfile = helper.ErrForbidden("parents may only access their own children")
)

// ChildAccess identifies one parent-scoped read of a student's data.
type ChildAccess struct {
	TenantID  uuid.UUID
	CallerID  uuid.UUID
	ParentID  uuid.UUID
	StudentID uuid.UUID
}

// ownParentID returns the caller's own parent profile id, nil for staff.
func ownParentID(db *gorm.DB, tenantID, callerID uuid.UUID) (*uuid.UUID, error) {
	var own parentModel.ParentModel
	err := db.Select("id").Where("user_id = ? AND tenant_id = ?", callerID, tenantID).First(&own).Error
	switch {
	case err == nil:
		return &own.ID, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, err
	}
}

// AuthorizeParent pins a caller holding a parent profile to that profile.
// Staff without one pass through to the permission check alone.
func (s *ParentService) AuthorizeParent(ctx context.Context, tenantID, callerID, parentID uuid.UUID) error {
	own, err := ownParentID(s.DB.WithContext(ctx), tenantID, callerID)
	if err != nil {
		return err
	}
	if own != nil && *own != parentID {
		return errNotOwnProfile
	}
	return nil
}

// AuthorizeChild checks the relation on every call. A caller holding a
// parent profile may only act as that profile. A missing relation, even for
// an unknown student, is 403 so ids cannot be probed.
func (s *ParentService) AuthorizeChild(ctx context.Context, a ChildAccess) error {
	if err := s.AuthorizeParent(ctx, a.TenantID, a.CallerID, a.ParentID); err != nil {
		return err
	}
	db := s.DB.WithContext(ctx)

	var n int64
	if err := db.Model(&parentModel.ParentStudentRelationModel{}).
		Joins("JOIN students ON students.id = parent_student_relations.student_id AND students.deleted_at IS NULL").
		Joins("JOIN parents ON parents.id = parent_student_relations.parent_id AND parents.deleted_at IS NULL").
		Where("parent_student_relations.tenant_id = ? AND parent_student_relations.parent_id = ? AND parent_student_relations.student_id = ?",
			a.TenantID, a.ParentID, a.StudentID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return errNotGuardian
	}
	return nil
}

func (s *ParentService) ChildGrades(ctx context.Context, a ChildAccess, term string, p helper.Params) ([]academicModel.GradeModel, int64, error) {
	if err := s.AuthorizeChild(ctx, a); err != nil {
		return nil, 0, err
	}
	return s.Academics.ListGrades(ctx, a.TenantID, academicService.GradeFilter{StudentID: &a.StudentID, Term: term}, p)
}

func (s *ParentService) ChildAttendance(ctx context.Context, a ChildAccess, from, to *time.Time, p helper.Params) ([]academicModel.AttendanceRecordModel, int64, error) {
	if err := s.AuthorizeChild(ctx, a); err != nil {
		return nil, 0, err
	}
	return s.Academics.ListAttendance(ctx, a.TenantID, academicService.AttendanceFilter{StudentID: &a.StudentID, From: from, To: to}, p)
}

func (s *ParentService) ChildAcademicRecords(ctx context.Context, a ChildAccess, p helper.Params) ([]academicModel.AcademicRecordModel, int64, error) {
	if err := s.AuthorizeChild(ctx, a); err != nil {
		return nil, 0, err
	}
	return s.Academics.ListAcademicRecords(ctx, a.TenantID, academicService.RecordFilter{StudentID: &a.StudentID}, p)
}

func (s *ParentService) ChildHealthRecords(ctx context.Context, a ChildAccess, p helper.Params) ([]academicModel.HealthRecordModel, int64, error) {
	if err := s.AuthorizeChild(ctx, a); err != nil {
		return nil, 0, err
	}
	return s.Academics.ListHealthRecords(ctx, a.TenantID, academicService.HealthFilter{StudentID: &a.StudentID}, p)
}

// ChildSchedule lists schedules of the classes the student is actively
// enrolled in.
func (s *ParentService) ChildSchedule(ctx context.Context, a ChildAccess, from, to *time.Time, p helper.Params) ([]scheduleDTO.ScheduleResponse, int64, error) {
	if err := s.AuthorizeChild(ctx, a); err != nil {
		return nil, 0, err
	}
	var classIDs []uuid.UUID
	if err := s.DB.WithContext(ctx).Model(&classModel.StudentClassEnrollmentModel{}).
		Where("tenant_id = ? AND student_id = ? AND status = ?", a.TenantID, a.StudentID, classModel.EnrollmentActive).
		Pluck("class_id", &classIDs).Error; err != nil {
		return nil, 0, err
	}
	if classIDs == nil {
		classIDs = []uuid.UUID{}
	}
	return s.Schedules.List(ctx, a.TenantID, scheduleService.ListFilter{ClassIDs: classIDs, From: from, To: to}, p)
}
