package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	classModel "schoolku_backend/internals/features/school/classes/model"
	"schoolku_backend/internals/features/school/content/dto"
	contentModel "schoolku_backend/internals/features/school/content/model"
	subjectModel "schoolku_backend/internals/features/school/subjects/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/storage"
	"schoolku_backend/internals/middlewares/metrics"
)

// MaxUploadBytes caps one uploaded file.
const MaxUploadBytes = 100 << 20

type ContentService struct {
	DB    *gorm.DB
	Store storage.Storage
	Now   func() time.Time
}

func NewContentService(db *gorm.DB, store storage.Storage) *ContentService {
	return &ContentService{DB: db, Store: store, Now: func() time.Time { return time.Now().UTC() }}
}

type File struct {
	Name string
	Data []byte
}

func checkRef(tx *gorm.DB, model any, tenantID uuid.UUID, id *uuid.UUID, what string) error {
	if id == nil {
		return nil
	}
	var n int64
	if err := tx.Model(model).Where("id = ? AND tenant_id = ?", *id, tenantID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return helper.ErrNotFound(what)
	}
	return nil
}

func checkRefs(tx *gorm.DB, tenantID uuid.UUID, subjectID, classID *uuid.UUID) error {
	if err := checkRef(tx, &subjectModel.SubjectModel{}, tenantID, subjectID, "subject"); err != nil {
		return err
	}
	return checkRef(tx, &classModel.ClassModel{}, tenantID, classID, "class")
}

func fileError(msg string) error {
	return helper.ErrValidation(msg, helper.FieldError{Field: "file", Message: msg})
}

// Upload sniffs and stores f, then records it. jpeg and png are stored as
// WebP. The object is removed again if the row cannot be written.
func (s *ContentService) Upload(ctx context.Context, tenantID, actorID uuid.UUID, req dto.CreateContentRequest, f File) (*contentModel.ContentModel, error) {
	if len(f.Data) == 0 {
		return nil, fileError("file is required")
	}
	if len(f.Data) > MaxUploadBytes {
		return nil, fileError("file exceeds the 100MB limit")
	}
	mime, category, ok := storage.Sniff(f.Data)
	if !ok {
		return nil, fileError("file type " + mime + " is not allowed")
	}
	db := s.DB.WithContext(ctx)
	if err := checkRefs(db, tenantID, req.SubjectID, req.ClassID); err != nil {
		return nil, err
	}

	data, name := f.Data, helper.SafeFilename(f.Name, 100)
	meta := datatypes.JSONMap{"originalName": f.Name, "originalSize": len(f.Data)}
	if storage.Rasterizable(mime) {
		webp, err := storage.ConvertToWebP(data, storage.DefaultWebPOptions)
		if err != nil {
			return nil, fileError("image could not be decoded")
		}
		meta["originalMime"] = mime
		data, mime = webp, "image/webp"
		name = strings.TrimSuffix(name, filepath.Ext(name)) + ".webp"
	}

	id := uuid.New()
	key := tenantID.String() + "/content/" + id.String() + "/" + name
	url, err := s.Store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), mime)
	if err != nil {
		return nil, helper.ErrInternal("failed to store file", err)
	}
	if url == "" {
		url = DownloadPath(id)
	}

	status := contentModel.ContentDraft
	if req.Status != "" {
		status = contentModel.ContentStatus(req.Status)
	}
	m := contentModel.ContentModel{
		ID:          id,
		TenantID:    tenantID,
		Title:       req.Title,
		Description: req.Description,
		Type:        contentModel.ContentType(category),
		Status:      status,
		FileName:    name,
		StorageKey:  key,
		URL:         url,
		MimeType:    mime,
		Size:        int64(len(data)),
		SubjectID:   req.SubjectID,
		ClassID:     req.ClassID,
		UploadedBy:  actorID,
		IsPublic:    req.IsPublic,
		Metadata:    meta,
	}
	if err := db.Create(&m).Error; err != nil {
		if derr := s.Store.Delete(ctx, key); derr != nil {
			zap.L().Warn("orphaned upload", zap.String("key", key), zap.Error(derr))
		}
		return nil, err
	}
	metrics.ContentUploadBytes.WithLabelValues(category).Add(float64(m.Size))
	return &m, nil
}

func (s *ContentService) find(tx *gorm.DB, tenantID, id uuid.UUID) (*contentModel.ContentModel, error) {
	var m contentModel.ContentModel
	if err := tx.Where("id = ? AND tenant_id = ?", id, tenantID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("content")
		}
		return nil, err
	}
	return &m, nil
}

func (s *ContentService) Get(ctx context.Context, tenantID, id uuid.UUID) (*contentModel.ContentModel, error) {
	return s.find(s.DB.WithContext(ctx), tenantID, id)
}

// DownloadPath is the authenticated route that streams a content file.
func DownloadPath(id uuid.UUID) string {
	return "/api/content/" + id.String() + "/file"
}

// Open returns the content row and its file for a caller in tenantID.
// The caller closes the reader.
func (s *ContentService) Open(ctx context.Context, tenantID, id uuid.UUID) (*contentModel.ContentModel, io.ReadCloser, error) {
	m, err := s.find(s.DB.WithContext(ctx), tenantID, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.Store.Open(ctx, m.StorageKey)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, nil, helper.ErrNotFound("content file")
	}
	if err != nil {
		return nil, nil, helper.ErrInternal("failed to read file", err)
	}
	return m, rc, nil
}

type ListFilter struct {
	Type      string
	Status    string
	SubjectID *uuid.UUID
	ClassID   *uuid.UUID
	Search    string
}

var contentSortColumns = map[string]string{
	"createdAt": "created_at",
	"title":     "title",
	"size":      "size",
	"type":      "type",
}

func (s *ContentService) List(ctx context.Context, tenantID uuid.UUID, f ListFilter, p helper.Params) ([]contentModel.ContentModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&contentModel.ContentModel{}).Where("tenant_id = ?", tenantID)
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.SubjectID != nil {
		q = q.Where("subject_id = ?", *f.SubjectID)
	}
	if f.ClassID != nil {
		q = q.Where("class_id = ?", *f.ClassID)
	}
	if f.Search != "" {
		like := helper.Like(f.Search)
		q = q.Where("(LOWER(title) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?)", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	rows := make([]contentModel.ContentModel, 0)
	if err := q.Order(p.OrderColumn(contentSortColumns, "createdAt")).
		Limit(p.Limit).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Update changes metadata only; the stored object is immutable.
func (s *ContentService) Update(ctx context.Context, tenantID, id uuid.UUID, req dto.UpdateContentRequest) (*contentModel.ContentModel, error) {
	db := s.DB.WithContext(ctx)
	m, err := s.find(db, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := checkRefs(db, tenantID, req.SubjectID, req.ClassID); err != nil {
		return nil, err
	}
	if upd := req.Updates(); len(upd) > 0 {
		if err := db.Model(m).Updates(upd).Error; err != nil {
			return nil, err
		}
	}
	return s.find(db, tenantID, id)
}

// Delete removes the row and then the object. A failed object delete is
// logged, not returned, since the row is already gone.
func (s *ContentService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	db := s.DB.WithContext(ctx)
	m, err := s.find(db, tenantID, id)
	if err != nil {
		return err
	}
	if err := db.Delete(m).Error; err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, m.StorageKey); err != nil {
		zap.L().Warn("content object delete failed", zap.String("key", m.StorageKey), zap.Error(err))
	}
	return nil
}
