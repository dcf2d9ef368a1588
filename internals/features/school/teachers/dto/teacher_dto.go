package dto

import (
	"time"

	"github.com/google/uuid"

	teacherModel "schoolku_backend/internals/features/school/teachers/model"
	helper "schoolku_backend/internals/helpers"
)

type QualificationInput struct {
	Degree       string  `json:"degree"       validate:"required,max=120"`
	Institution  string  `json:"institution"  validate:"required,max=200"`
	FieldOfStudy *string `json:"fieldOfStudy" validate:"omitempty,max=200"`
	YearObtained *int    `json:"yearObtained" validate:"omitempty,min=1900,max=2100"`
	Grade        *string `json:"grade"        validate:"omitempty,max=40"`
}

func (q QualificationInput) ToModel(tenantID, teacherID uuid.UUID) teacherModel.TeacherQualificationModel {
	return teacherModel.TeacherQualificationModel{
		TenantID:     tenantID,
		TeacherID:    teacherID,
		Degree:       q.Degree,
		Institution:  q.Institution,
		FieldOfStudy: q.FieldOfStudy,
		YearObtained: q.YearObtained,
		Grade:        q.Grade,
	}
}

type CreateTeacherRequest struct {
	Email     string  `json:"email"     validate:"required,email,max=200"`
	Password  string  `json:"password"  validate:"required,min=8,max=72"`
	FirstName string  `json:"firstName" validate:"required,max=100"`
	LastName  string  `json:"lastName"  validate:"required,max=100"`
	Phone     *string `json:"phone"     validate:"omitempty,max=40"`

	// optional; generated when omitted
	TeacherID *string `json:"teacherId" validate:"omitempty,min=3,max=40"`

	DateOfBirth      *string `json:"dateOfBirth"`
	Gender           *string `json:"gender"           validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Address          *string `json:"address"          validate:"omitempty,max=500"`
	EmergencyContact *string `json:"emergencyContact" validate:"omitempty,max=120"`
	EmergencyPhone   *string `json:"emergencyPhone"   validate:"omitempty,max=40"`
	HireDate         *string `json:"hireDate"`
	EmploymentType   string  `json:"employmentType"   validate:"omitempty,oneof=FULL_TIME PART_TIME CONTRACT VISITING"`
	Specialization   *string `json:"specialization"   validate:"omitempty,max=200"`
	ExperienceYears  int     `json:"experienceYears"  validate:"min=0,max=80"`

	SubjectIDs     []uuid.UUID          `json:"subjectIds"`
	Qualifications []QualificationInput `json:"qualifications" validate:"dive"`
}

// Profile builds the teacher row (without ids or code) from the request.
func (r CreateTeacherRequest) Profile() (teacherModel.TeacherModel, error) {
	dob, err := helper.ParseOptionalDate("dateOfBirth", r.DateOfBirth)
	if err != nil {
		return teacherModel.TeacherModel{}, err
	}
	hire, err := helper.ParseOptionalDate("hireDate", r.HireDate)
	if err != nil {
		return teacherModel.TeacherModel{}, err
	}
	et := teacherModel.EmploymentType(r.EmploymentType)
	if et == "" {
		et = teacherModel.EmploymentFullTime
	}
	return teacherModel.TeacherModel{
		DateOfBirth:      dob,
		Gender:           r.Gender,
		Phone:            r.Phone,
		Address:          r.Address,
		EmergencyContact: r.EmergencyContact,
		EmergencyPhone:   r.EmergencyPhone,
		HireDate:         hire,
		EmploymentType:   et,
		Specialization:   r.Specialization,
		ExperienceYears:  r.ExperienceYears,
		Status:           teacherModel.TeacherActive,
	}, nil
}

type UpdateTeacherRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"lastName"  validate:"omitempty,min=1,max=100"`
	Phone     *string `json:"phone"     validate:"omitempty,max=40"`

	DateOfBirth      *string `json:"dateOfBirth"`
	Gender           *string `json:"gender"           validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Address          *string `json:"address"          validate:"omitempty,max=500"`
	EmergencyContact *string `json:"emergencyContact" validate:"omitempty,max=120"`
	EmergencyPhone   *string `json:"emergencyPhone"   validate:"omitempty,max=40"`
	HireDate         *string `json:"hireDate"`
	EmploymentType   *string `json:"employmentType"   validate:"omitempty,oneof=FULL_TIME PART_TIME CONTRACT VISITING"`
	Specialization   *string `json:"specialization"   validate:"omitempty,max=200"`
	ExperienceYears  *int    `json:"experienceYears"  validate:"omitempty,min=0,max=80"`
	Status           *string `json:"status"           validate:"omitempty,oneof=ACTIVE INACTIVE ON_LEAVE TERMINATED"`

	// nil keeps, empty slice clears
	Qualifications *[]QualificationInput `json:"qualifications" validate:"omitempty,dive"`
}

// Apply copies set profile fields onto t.
func (r UpdateTeacherRequest) Apply(t *teacherModel.TeacherModel) error {
	if r.DateOfBirth != nil {
		dob, err := helper.ParseOptionalDate("dateOfBirth", r.DateOfBirth)
		if err != nil {
			return err
		}
		t.DateOfBirth = dob
	}
	if r.HireDate != nil {
		hire, err := helper.ParseOptionalDate("hireDate", r.HireDate)
		if err != nil {
			return err
		}
		t.HireDate = hire
	}
	if r.Gender != nil {
		t.Gender = r.Gender
	}
	if r.Phone != nil {
		t.Phone = r.Phone
	}
	if r.Address != nil {
		t.Address = r.Address
	}
	if r.EmergencyContact != nil {
		t.EmergencyContact = r.EmergencyContact
	}
	if r.EmergencyPhone != nil {
		t.EmergencyPhone = r.EmergencyPhone
	}
	if r.EmploymentType != nil {
		t.EmploymentType = teacherModel.EmploymentType(*r.EmploymentType)
	}
	if r.Specialization != nil {
		t.Specialization = r.Specialization
	}
	if r.ExperienceYears != nil {
		t.ExperienceYears = *r.ExperienceYears
	}
	if r.Status != nil {
		t.Status = teacherModel.TeacherStatus(*r.Status)
	}
	return nil
}

type AssignSubjectRequest struct {
	SubjectID uuid.UUID `json:"subjectId" validate:"required"`
	IsPrimary bool      `json:"isPrimary"`
}

/* =========================
   Responses
========================= */

type SubjectBrief struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	IsPrimary bool      `json:"isPrimary"`
}

type TeacherResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	TeacherID string    `json:"teacherId"`
	Email     string    `json:"email,omitempty"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`

	DateOfBirth      *time.Time `json:"dateOfBirth,omitempty"`
	Gender           *string    `json:"gender,omitempty"`
	Phone            *string    `json:"phone,omitempty"`
	Address          *string    `json:"address,omitempty"`
	EmergencyContact *string    `json:"emergencyContact,omitempty"`
	EmergencyPhone   *string    `json:"emergencyPhone,omitempty"`
	HireDate         *time.Time `json:"hireDate,omitempty"`
	EmploymentType   string     `json:"employmentType"`
	Specialization   *string    `json:"specialization,omitempty"`
	ExperienceYears  int        `json:"experienceYears"`
	Status           string     `json:"status"`

	Subjects       []SubjectBrief                           `json:"subjects"`
	Qualifications []teacherModel.TeacherQualificationModel `json:"qualifications"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromTeacherModel(t teacherModel.TeacherModel) TeacherResponse {
	out := TeacherResponse{
		ID:               t.ID,
		UserID:           t.UserID,
		TeacherID:        t.TeacherCode,
		DateOfBirth:      t.DateOfBirth,
		Gender:           t.Gender,
		Phone:            t.Phone,
		Address:          t.Address,
		EmergencyContact: t.EmergencyContact,
		EmergencyPhone:   t.EmergencyPhone,
		HireDate:         t.HireDate,
		EmploymentType:   string(t.EmploymentType),
		Specialization:   t.Specialization,
		ExperienceYears:  t.ExperienceYears,
		Status:           string(t.Status),
		Subjects:         make([]SubjectBrief, 0, len(t.Subjects)),
		Qualifications:   t.Qualifications,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
	if out.Qualifications == nil {
		out.Qualifications = []teacherModel.TeacherQualificationModel{}
	}
	if t.User != nil {
		out.Email = t.User.Email
		out.FirstName = t.User.FirstName
		out.LastName = t.User.LastName
	}
	for _, ts := range t.Subjects {
		b := SubjectBrief{ID: ts.SubjectID, IsPrimary: ts.IsPrimary}
		if ts.Subject != nil {
			b.Name = ts.Subject.Name
			b.Code = ts.Subject.Code
		}
		out.Subjects = append(out.Subjects, b)
	}
	return out
}

func FromTeacherModels(rows []teacherModel.TeacherModel) []TeacherResponse {
	out := make([]TeacherResponse, 0, len(rows))
	for _, t := range rows {
		out = append(out, FromTeacherModel(t))
	}
	return out
}
