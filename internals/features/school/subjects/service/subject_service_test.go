package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/features/school/subjects/dto"
	"schoolku_backend/internals/features/school/subjects/service"
	teacherModel "schoolku_backend/internals/features/school/teachers/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/testutil"
)

func TestSubjectCodeUniquePerTenant(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	a := testutil.SeedTenant(t, db, "alpha")
	b := testutil.SeedTenant(t, db, "beta")
	svc := service.NewSubjectService(db)

	m, err := svc.Create(ctx, a.ID, dto.CreateSubjectRequest{Name: "Mathematics", Code: " math-7 "})
	require.NoError(t, err)
	assert.Equal(t, "MATH-7", m.Code)
	assert.True(t, m.IsActive)

	_, err = svc.Create(ctx, a.ID, dto.CreateSubjectRequest{Name: "Maths again", Code: "MATH-7"})
	assert.True(t, helper.IsKind(err, helper.KindConflict))

	_, err = svc.Create(ctx, b.ID, dto.CreateSubjectRequest{Name: "Mathematics", Code: "MATH-7"})
	require.NoError(t, err)
}

func TestSubjectUpdateAndDelete(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	a := testutil.SeedTenant(t, db, "alpha")
	b := testutil.SeedTenant(t, db, "beta")
	svc := service.NewSubjectService(db)
	bio := testutil.SeedSubject(t, db, a.ID, "BIO")
	testutil.SeedSubject(t, db, a.ID, "CHEM")
	teacher := testutil.SeedTeacher(t, db, a.ID)
	require.NoError(t, db.Create(&teacherModel.TeacherSubjectModel{TenantID: a.ID, TeacherID: teacher.ID, SubjectID: bio.ID}).Error)

	chem := "chem"
	_, err := svc.Update(ctx, a.ID, bio.ID, dto.UpdateSubjectRequest{Code: &chem})
	assert.True(t, helper.IsKind(err, helper.KindConflict))

	credits := 4
	upd, err := svc.Update(ctx, a.ID, bio.ID, dto.UpdateSubjectRequest{Credits: &credits})
	require.NoError(t, err)
	assert.Equal(t, 4, upd.Credits)

	_, err = svc.Get(ctx, b.ID, bio.ID)
	assert.True(t, helper.IsKind(err, helper.KindNotFound))
	assert.True(t, helper.IsKind(svc.Delete(ctx, b.ID, bio.ID), helper.KindNotFound))

	require.NoError(t, svc.Delete(ctx, a.ID, bio.ID))
	var links int64
	require.NoError(t, db.Model(&teacherModel.TeacherSubjectModel{}).Where("subject_id = ?", bio.ID).Count(&links).Error)
	assert.Zero(t, links)

	rows, total, err := svc.List(ctx, a.ID, service.ListFilter{Search: "chem"}, helper.Params{Page: 1, Limit: 10, SortBy: "name", SortOrder: "asc"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "CHEM", rows[0].Code)
}
