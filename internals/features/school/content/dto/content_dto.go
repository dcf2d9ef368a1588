package dto

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	helper "schoolku_backend/internals/helpers"
)

// CreateContentRequest carries the non-file multipart fields of an upload.
type CreateContentRequest struct {
	Title       string     `json:"title"       validate:"required,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=4000"`
	SubjectID   *uuid.UUID `json:"subjectId"`
	ClassID     *uuid.UUID `json:"classId"`
	IsPublic    bool       `json:"isPublic"`
	Status      string     `json:"status"      validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
}

func formUUID(c *fiber.Ctx, field string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(c.FormValue(field))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, helper.ErrValidation("validation failed",
			helper.FieldError{Field: field, Message: field + " must be a valid UUID"})
	}
	return &id, nil
}

// FromForm reads and validates the multipart form fields.
func FromForm(c *fiber.Ctx) (CreateContentRequest, error) {
	var (
		r   CreateContentRequest
		err error
	)
	r.Title = strings.TrimSpace(c.FormValue("title"))
	if d := strings.TrimSpace(c.FormValue("description")); d != "" {
		r.Description = &d
	}
	if r.SubjectID, err = formUUID(c, "subjectId"); err != nil {
		return r, err
	}
	if r.ClassID, err = formUUID(c, "classId"); err != nil {
		return r, err
	}
	if v := strings.TrimSpace(c.FormValue("isPublic")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return r, helper.ErrValidation("validation failed",
				helper.FieldError{Field: "isPublic", Message: "isPublic must be a boolean"})
		}
		r.IsPublic = b
	}
	r.Status = strings.ToUpper(strings.TrimSpace(c.FormValue("status")))
	return r, helper.ValidateStruct(nil, &r)
}

type UpdateContentRequest struct {
	Title       *string    `json:"title"       validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=4000"`
	SubjectID   *uuid.UUID `json:"subjectId"`
	ClassID     *uuid.UUID `json:"classId"`
	IsPublic    *bool      `json:"isPublic"`
	Status      *string    `json:"status"      validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
}

func (r UpdateContentRequest) Updates() map[string]any {
	m := map[string]any{}
	if r.Title != nil {
		m["title"] = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		m["description"] = *r.Description
	}
	if r.SubjectID != nil {
		m["subject_id"] = *r.SubjectID
	}
	if r.ClassID != nil {
		m["class_id"] = *r.ClassID
	}
	if r.IsPublic != nil {
		m["is_public"] = *r.IsPublic
	}
	if r.Status != nil {
		m["status"] = *r.Status
	}
	return m
}
