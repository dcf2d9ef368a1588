package dto

import (
	"time"

	"github.com/google/uuid"

	parentModel "schoolku_backend/internals/features/school/parents/model"
	helper "schoolku_backend/internals/helpers"
)

type CreateParentRequest struct {
	Email     string  `json:"email"     validate:"required,email,max=200"`
	Password  string  `json:"password"  validate:"required,min=8,max=72"`
	FirstName string  `json:"firstName" validate:"required,max=100"`
	LastName  string  `json:"lastName"  validate:"required,max=100"`
	Phone     *string `json:"phone"     validate:"omitempty,max=40"`

	Occupation       *string `json:"occupation"       validate:"omitempty,max=120"`
	Employer         *string `json:"employer"         validate:"omitempty,max=200"`
	AlternatePhone   *string `json:"alternatePhone"   validate:"omitempty,max=40"`
	Address          *string `json:"address"          validate:"omitempty,max=500"`
	EmergencyContact *string `json:"emergencyContact" validate:"omitempty,max=120"`
	EmergencyPhone   *string `json:"emergencyPhone"   validate:"omitempty,max=40"`
	DateOfBirth      *string `json:"dateOfBirth"`
	Gender           *string `json:"gender"           validate:"omitempty,oneof=MALE FEMALE OTHER"`
}

func (r CreateParentRequest) Profile() (parentModel.ParentModel, error) {
	dob, err := helper.ParseOptionalDate("dateOfBirth", r.DateOfBirth)
	if err != nil {
		return parentModel.ParentModel{}, err
	}
	return parentModel.ParentModel{
		Occupation:       r.Occupation,
		Employer:         r.Employer,
		Phone:            r.Phone,
		AlternatePhone:   r.AlternatePhone,
		Address:          r.Address,
		EmergencyContact: r.EmergencyContact,
		EmergencyPhone:   r.EmergencyPhone,
		DateOfBirth:      dob,
		Gender:           r.Gender,
		Status:           "ACTIVE",
	}, nil
}

type UpdateParentRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"lastName"  validate:"omitempty,min=1,max=100"`
	Phone     *string `json:"phone"     validate:"omitempty,max=40"`

	Occupation       *string `json:"occupation"       validate:"omitempty,max=120"`
	Employer         *string `json:"employer"         validate:"omitempty,max=200"`
	AlternatePhone   *string `json:"alternatePhone"   validate:"omitempty,max=40"`
	Address          *string `json:"address"          validate:"omitempty,max=500"`
	EmergencyContact *string `json:"emergencyContact" validate:"omitempty,max=120"`
	EmergencyPhone   *string `json:"emergencyPhone"   validate:"omitempty,max=40"`
	DateOfBirth      *string `json:"dateOfBirth"`
	Gender           *string `json:"gender"           validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Status           *string `json:"status"           validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

func (r UpdateParentRequest) Apply(p *parentModel.ParentModel) error {
	if r.DateOfBirth != nil {
		d, err := helper.ParseOptionalDate("dateOfBirth", r.DateOfBirth)
		if err != nil {
			return err
		}
		p.DateOfBirth = d
	}
	set := func(dst **string, v *string) {
		if v != nil {
			*dst = v
		}
	}
	set(&p.Phone, r.Phone)
	set(&p.Occupation, r.Occupation)
	set(&p.Employer, r.Employer)
	set(&p.AlternatePhone, r.AlternatePhone)
	set(&p.Address, r.Address)
	set(&p.EmergencyContact, r.EmergencyContact)
	set(&p.EmergencyPhone, r.EmergencyPhone)
	set(&p.Gender, r.Gender)
	if r.Status != nil {
		p.Status = *r.Status
	}
	return nil
}

/* =========================
   Relations
========================= */

type CreateRelationRequest struct {
	StudentID    uuid.UUID `json:"studentId"    validate:"required"`
	Relationship string    `json:"relationship" validate:"required,oneof=FATHER MOTHER GUARDIAN OTHER"`
	IsPrimary    bool      `json:"isPrimary"`
	IsEmergency  bool      `json:"isEmergency"`
	CanPickup    bool      `json:"canPickup"`
	Notes        *string   `json:"notes" validate:"omitempty,max=2000"`
}

type UpdateRelationRequest struct {
	Relationship *string `json:"relationship" validate:"omitempty,oneof=FATHER MOTHER GUARDIAN OTHER"`
	IsPrimary    *bool   `json:"isPrimary"`
	IsEmergency  *bool   `json:"isEmergency"`
	CanPickup    *bool   `json:"canPickup"`
	Notes        *string `json:"notes" validate:"omitempty,max=2000"`
}

// Updates lists changed columns; a map keeps explicit false values.
func (r UpdateRelationRequest) Updates() map[string]any {
	m := map[string]any{}
	if r.Relationship != nil {
		m["relationship"] = *r.Relationship
	}
	if r.IsPrimary != nil {
		m["is_primary"] = *r.IsPrimary
	}
	if r.IsEmergency != nil {
		m["is_emergency"] = *r.IsEmergency
	}
	if r.CanPickup != nil {
		m["can_pickup"] = *r.CanPickup
	}
	if r.Notes != nil {
		m["notes"] = *r.Notes
	}
	return m
}

type ChildBrief struct {
	ID        uuid.UUID `json:"id"`
	StudentID string    `json:"studentId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Status    string    `json:"status"`
}

type RelationResponse struct {
	ID           uuid.UUID   `json:"id"`
	ParentID     uuid.UUID   `json:"parentId"`
	Relationship string      `json:"relationship"`
	IsPrimary    bool        `json:"isPrimary"`
	IsEmergency  bool        `json:"isEmergency"`
	CanPickup    bool        `json:"canPickup"`
	Notes        *string     `json:"notes,omitempty"`
	Student      *ChildBrief `json:"student,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
}

func FromRelationModel(r parentModel.ParentStudentRelationModel) RelationResponse {
	out := RelationResponse{
		ID:           r.ID,
		ParentID:     r.ParentID,
		Relationship: string(r.Relationship),
		IsPrimary:    r.IsPrimary,
		IsEmergency:  r.IsEmergency,
		CanPickup:    r.CanPickup,
		Notes:        r.Notes,
		CreatedAt:    r.CreatedAt,
	}
	if s := r.Student; s != nil {
		out.Student = &ChildBrief{ID: s.ID, StudentID: s.StudentCode, Status: string(s.Status)}
		if s.User != nil {
			out.Student.FirstName = s.User.FirstName
			out.Student.LastName = s.User.LastName
		}
	}
	return out
}

type ParentResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Email     string    `json:"email,omitempty"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`

	Occupation       *string    `json:"occupation,omitempty"`
	Employer         *string    `json:"employer,omitempty"`
	Phone            *string    `json:"phone,omitempty"`
	AlternatePhone   *string    `json:"alternatePhone,omitempty"`
	Address          *string    `json:"address,omitempty"`
	EmergencyContact *string    `json:"emergencyContact,omitempty"`
	EmergencyPhone   *string    `json:"emergencyPhone,omitempty"`
	DateOfBirth      *time.Time `json:"dateOfBirth,omitempty"`
	Gender           *string    `json:"gender,omitempty"`
	Status           string     `json:"status"`

	ChildrenCount int                `json:"childrenCount"`
	Children      []RelationResponse `json:"children,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromParentModel(p parentModel.ParentModel) ParentResponse {
	out := ParentResponse{
		ID:               p.ID,
		UserID:           p.UserID,
		Occupation:       p.Occupation,
		Employer:         p.Employer,
		Phone:            p.Phone,
		AlternatePhone:   p.AlternatePhone,
		Address:          p.Address,
		EmergencyContact: p.EmergencyContact,
		EmergencyPhone:   p.EmergencyPhone,
		DateOfBirth:      p.DateOfBirth,
		Gender:           p.Gender,
		Status:           p.Status,
		ChildrenCount:    len(p.Relations),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.User != nil {
		out.Email = p.User.Email
		out.FirstName = p.User.FirstName
		out.LastName = p.User.LastName
	}
	for _, r := range p.Relations {
		out.Children = append(out.Children, FromRelationModel(r))
	}
	return out
}
