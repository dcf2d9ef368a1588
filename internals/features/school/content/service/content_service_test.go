package service_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/content/dto"
	contentModel "schoolku_backend/internals/features/school/content/model"
	"schoolku_backend/internals/features/school/content/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/storage"
	"schoolku_backend/internals/testutil"
)

type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memStore) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = b
	m.types[key] = contentType
	return "https://cdn.test/" + key, nil
}

func (m *memStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

var pdf = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

func setup(t *testing.T) (*service.ContentService, *memStore, uuid.UUID, uuid.UUID) {
	db := testutil.NewDB(t)
	tn := testutil.SeedTenant(t, db, "alpha")
	admin := testutil.SeedAdmin(t, db, tn.ID)
	store := newMemStore()
	return service.NewContentService(db, store), store, tn.ID, admin.ID
}

func TestUploadDocument(t *testing.T) {
	svc, store, tenantID, actorID := setup(t)
	ctx := context.Background()
	subj := testutil.SeedSubject(t, svc.DB, tenantID, "BIO")

	m, err := svc.Upload(ctx, tenantID, actorID, dto.CreateContentRequest{Title: "Syllabus", SubjectID: &subj.ID},
		service.File{Name: "Silabus Biologi (Final).PDF", Data: pdf})
	require.NoError(t, err)
	assert.Equal(t, contentModel.ContentDocument, m.Type)
	assert.Equal(t, contentModel.ContentDraft, m.Status)
	assert.Equal(t, "application/pdf", m.MimeType)
	assert.Equal(t, "silabus-biologi-final.pdf", m.FileName)
	assert.True(t, strings.HasPrefix(m.StorageKey, tenantID.String()+"/content/"))
	assert.Equal(t, "https://cdn.test/"+m.StorageKey, m.URL)
	assert.Equal(t, pdf, store.objects[m.StorageKey])
}

func TestOpenIsTenantScoped(t *testing.T) {
	svc, store, tenantID, actorID := setup(t)
	ctx := context.Background()
	m, err := svc.Upload(ctx, tenantID, actorID, dto.CreateContentRequest{Title: "Syllabus"},
		service.File{Name: "syllabus.pdf", Data: pdf})
	require.NoError(t, err)

	got, rc, err := svc.Open(ctx, tenantID, m.ID)
	require.NoError(t, err)
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, pdf, b)
	assert.Equal(t, m.StorageKey, got.StorageKey)

	other := testutil.SeedTenant(t, svc.DB, "beta")
	_, _, err = svc.Open(ctx, other.ID, m.ID)
	assert.True(t, helper.IsKind(err, helper.KindNotFound))

	delete(store.objects, m.StorageKey)
	_, _, err = svc.Open(ctx, tenantID, m.ID)
	assert.True(t, helper.IsKind(err, helper.KindNotFound))
}

func TestUploadReencodesRasterImages(t *testing.T) {
	svc, store, tenantID, actorID := setup(t)

	m, err := svc.Upload(context.Background(), tenantID, actorID, dto.CreateContentRequest{Title: "Banner"},
		service.File{Name: "banner.png", Data: pngBytes(t, 2400, 600)})
	require.NoError(t, err)
	assert.Equal(t, contentModel.ContentImage, m.Type)
	assert.Equal(t, "image/webp", m.MimeType)
	assert.Equal(t, "banner.webp", m.FileName)
	assert.Equal(t, "image/png", m.Metadata["originalMime"])
	assert.Equal(t, "image/webp", store.types[m.StorageKey])

	cfg, err := webp.DecodeConfig(bytes.NewReader(store.objects[m.StorageKey]))
	require.NoError(t, err)
	assert.Equal(t, 1600, cfg.Width)
	assert.Equal(t, 400, cfg.Height)
}

func TestUploadRejections(t *testing.T) {
	svc, store, tenantID, actorID := setup(t)
	ctx := context.Background()
	req := dto.CreateContentRequest{Title: "x"}

	_, err := svc.Upload(ctx, tenantID, actorID, req, service.File{Name: "empty.txt"})
	assert.True(t, helper.IsKind(err, helper.KindValidation))

	elf := append([]byte("\x7fELF\x02\x01\x01"), make([]byte, 64)...)
	_, err = svc.Upload(ctx, tenantID, actorID, req, service.File{Name: "a.out", Data: elf})
	require.True(t, helper.IsKind(err, helper.KindValidation))
	assert.Contains(t, err.Error(), "not allowed")

	missing := uuid.New()
	_, err = svc.Upload(ctx, tenantID, actorID, dto.CreateContentRequest{Title: "x", ClassID: &missing},
		service.File{Name: "a.pdf", Data: pdf})
	assert.True(t, helper.IsKind(err, helper.KindNotFound))

	assert.Empty(t, store.objects)
}

func TestUploadRemovesObjectWhenInsertFails(t *testing.T) {
	svc, store, tenantID, actorID := setup(t)
	require.NoError(t, svc.DB.Callback().Create().Before("gorm:create").Register("test:fail_contents", func(db *gorm.DB) {
		if db.Statement.Table == "contents" {
			_ = db.AddError(gorm.ErrInvalidData)
		}
	}))

	_, err := svc.Upload(context.Background(), tenantID, actorID, dto.CreateContentRequest{Title: "x"},
		service.File{Name: "a.pdf", Data: pdf})
	require.Error(t, err)
	assert.Empty(t, store.objects)
}

func TestUpdateListDelete(t *testing.T) {
	svc, store, tenantID, actorID := setup(t)
	ctx := context.Background()
	other := testutil.SeedTenant(t, svc.DB, "beta")

	m, err := svc.Upload(ctx, tenantID, actorID, dto.CreateContentRequest{Title: "Worksheet"}, service.File{Name: "w.pdf", Data: pdf})
	require.NoError(t, err)
	_, err = svc.Upload(ctx, tenantID, actorID, dto.CreateContentRequest{Title: "Photo"}, service.File{Name: "p.png", Data: pngBytes(t, 10, 10)})
	require.NoError(t, err)

	pub := true
	status := "PUBLISHED"
	got, err := svc.Update(ctx, tenantID, m.ID, dto.UpdateContentRequest{IsPublic: &pub, Status: &status})
	require.NoError(t, err)
	assert.True(t, got.IsPublic)
	assert.Equal(t, contentModel.ContentPublished, got.Status)

	p := helper.Params{Page: 1, Limit: 10}
	rows, total, err := svc.List(ctx, tenantID, service.ListFilter{Type: "IMAGE"}, p)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Photo", rows[0].Title)

	_, total, err = svc.List(ctx, tenantID, service.ListFilter{Search: "work"}, p)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	_, err = svc.Get(ctx, other.ID, m.ID)
	assert.True(t, helper.IsKind(err, helper.KindNotFound))
	assert.True(t, helper.IsKind(svc.Delete(ctx, other.ID, m.ID), helper.KindNotFound))

	require.NoError(t, svc.Delete(ctx, tenantID, m.ID))
	_, ok := store.objects[m.StorageKey]
	assert.False(t, ok)
	_, err = svc.Get(ctx, tenantID, m.ID)
	assert.True(t, helper.IsKind(err, helper.KindNotFound))
}
