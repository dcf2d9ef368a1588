package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ContentType string

const (
	ContentDocument ContentType = "DOCUMENT"
	ContentImage    ContentType = "IMAGE"
	ContentVideo    ContentType = "VIDEO"
	ContentAudio    ContentType = "AUDIO"
	ContentOther    ContentType = "OTHER"
)

type ContentStatus string

const (
	ContentDraft     ContentStatus = "DRAFT"
	ContentPublished ContentStatus = "PUBLISHED"
	ContentArchived  ContentStatus = "ARCHIVED"
)

type ContentModel struct {
	ID          uuid.UUID     `json:"id"                    gorm:"column:id;type:uuid;primaryKey"`
	TenantID    uuid.UUID     `json:"tenantId"              gorm:"column:tenant_id;type:uuid;not null;index"`
	Title       string        `json:"title"                 gorm:"column:title;type:varchar(200);not null"`
	Description *string       `json:"description,omitempty" gorm:"column:description;type:text"`
	Type        ContentType   `json:"type"                  gorm:"column:type;type:varchar(20);not null"`
	Status      ContentStatus `json:"status"                gorm:"column:status;type:varchar(20);not null;default:'DRAFT'"`

	FileName   string `json:"fileName"   gorm:"column:file_name;type:varchar(255);not null"`
	StorageKey string `json:"-"          gorm:"column:storage_key;type:varchar(500);not null"`
	URL        string `json:"url"        gorm:"column:url;type:text;not null"`
	MimeType   string `json:"mimeType"   gorm:"column:mime_type;type:varchar(120);not null"`
	Size       int64  `json:"size"       gorm:"column:size;not null"`

	SubjectID  *uuid.UUID        `json:"subjectId,omitempty" gorm:"column:subject_id;type:uuid;index"`
	ClassID    *uuid.UUID        `json:"classId,omitempty"   gorm:"column:class_id;type:uuid;index"`
	UploadedBy uuid.UUID         `json:"uploadedBy"          gorm:"column:uploaded_by;type:uuid;not null"`
	IsPublic   bool              `json:"isPublic"            gorm:"column:is_public;not null;default:false"`
	Metadata   datatypes.JSONMap `json:"metadata,omitempty"  gorm:"column:metadata"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at;autoUpdateTime"`
}

func (ContentModel) TableName() string { return "contents" }

func (c *ContentModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
