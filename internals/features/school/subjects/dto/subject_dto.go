package dto

import (
	"strings"

	subjectModel "schoolku_backend/internals/features/school/subjects/model"
)

type CreateSubjectRequest struct {
	Name        string  `json:"name"        validate:"required,max=150"`
	Code        string  `json:"code"        validate:"required,max=40"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Credits     int     `json:"credits"     validate:"min=0,max=60"`
	IsActive    *bool   `json:"isActive"`
}

func (r CreateSubjectRequest) ToModel() subjectModel.SubjectModel {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return subjectModel.SubjectModel{
		Name:        strings.TrimSpace(r.Name),
		Code:        NormalizeCode(r.Code),
		Description: r.Description,
		Credits:     r.Credits,
		IsActive:    active,
	}
}

type UpdateSubjectRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=1,max=150"`
	Code        *string `json:"code"        validate:"omitempty,min=1,max=40"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Credits     *int    `json:"credits"     validate:"omitempty,min=0,max=60"`
	IsActive    *bool   `json:"isActive"`
}

// Updates returns the column map for a partial update.
func (r UpdateSubjectRequest) Updates() map[string]any {
	m := map[string]any{}
	if r.Name != nil {
		m["name"] = strings.TrimSpace(*r.Name)
	}
	if r.Code != nil {
		m["code"] = NormalizeCode(*r.Code)
	}
	if r.Description != nil {
		m["description"] = *r.Description
	}
	if r.Credits != nil {
		m["credits"] = *r.Credits
	}
	if r.IsActive != nil {
		m["is_active"] = *r.IsActive
	}
	return m
}

// NormalizeCode upper-cases and trims a subject code.
func NormalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
