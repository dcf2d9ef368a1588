package controller

import (
	"io"
	"mime"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/content/dto"
	"schoolku_backend/internals/features/school/content/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/storage"
)

type ContentController struct {
	Svc *service.ContentService
}

func NewContentController(db *gorm.DB, store storage.Storage) *ContentController {
	return &ContentController{Svc: service.NewContentService(db, store)}
}

func readUpload(c *fiber.Ctx) (service.File, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return service.File{}, helper.ErrValidation("file is required",
			helper.FieldError{Field: "file", Message: "file is required"})
	}
	if fh.Size > service.MaxUploadBytes {
		return service.File{}, helper.ErrValidation("file exceeds the 100MB limit",
			helper.FieldError{Field: "file", Message: "file exceeds the 100MB limit"})
	}
	f, err := fh.Open()
	if err != nil {
		return service.File{}, helper.ErrInternal("failed to read upload", err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, service.MaxUploadBytes+1))
	if err != nil {
		return service.File{}, helper.ErrInternal("failed to read upload", err)
	}
	return service.File{Name: fh.Filename, Data: data}, nil
}

// POST /api/content (multipart/form-data)
func (ctl *ContentController) Upload(c *fiber.Ctx) error {
	who, err := helper.GetIdentity(c)
	if err != nil {
		return err
	}
	req, err := dto.FromForm(c)
	if err != nil {
		return err
	}
	file, err := readUpload(c)
	if err != nil {
		return err
	}
	out, err := ctl.Svc.Upload(c.UserContext(), who.TenantID, who.UserID, req, file)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "content uploaded", out)
}

// GET /api/content?type=&status=&subjectId=&classId=&search=
func (ctl *ContentController) List(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	f := service.ListFilter{
		Type:   strings.ToUpper(strings.TrimSpace(c.Query("type"))),
		Status: strings.ToUpper(strings.TrimSpace(c.Query("status"))),
		Search: strings.TrimSpace(c.Query("search")),
	}
	if f.SubjectID, err = helper.ParseUUIDQuery(c, "subjectId"); err != nil {
		return err
	}
	if f.ClassID, err = helper.ParseUUIDQuery(c, "classId"); err != nil {
		return err
	}
	p := helper.ParseFiber(c, "createdAt", "desc", helper.DefaultOpts)
	rows, total, err := ctl.Svc.List(c.UserContext(), tenantID, f, p)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "content fetched", rows, helper.BuildPagination(total, p.Page, p.Limit))
}

// GET /api/content/:id
func (ctl *ContentController) Get(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	out, err := ctl.Svc.Get(c.UserContext(), tenantID, id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "content fetched", out)
}

// GET /api/content/:id/file
func (ctl *ContentController) Download(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	m, body, err := ctl.Svc.Open(c.UserContext(), tenantID, id)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, m.MimeType)
	c.Set(fiber.HeaderContentDisposition, mime.FormatMediaType("inline", map[string]string{"filename": m.FileName}))
	c.Set(fiber.HeaderCacheControl, "private, no-store")
	// fasthttp closes body once it is written
	return c.SendStream(body, int(m.Size))
}

// PUT /api/content/:id
func (ctl *ContentController) Update(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateContentRequest
	if err := helper.ParseBody(c, nil, &req); err != nil {
		return err
	}
	out, err := ctl.Svc.Update(c.UserContext(), tenantID, id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "content updated", out)
}

// DELETE /api/content/:id
func (ctl *ContentController) Delete(c *fiber.Ctx) error {
	tenantID, err := helper.GetTenantIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Svc.Delete(c.UserContext(), tenantID, id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "content deleted", fiber.Map{"id": id})
}
