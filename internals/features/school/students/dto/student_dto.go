package dto

import (
	"time"

	"github.com/google/uuid"

	studentModel "schoolku_backend/internals/features/school/students/model"
	helper "schoolku_backend/internals/helpers"
)

type CreateStudentRequest struct {
	Email     string  `json:"email"     validate:"required,email,max=200"`
	Password  string  `json:"password"  validate:"required,min=8,max=72"`
	FirstName string  `json:"firstName" validate:"required,max=100"`
	LastName  string  `json:"lastName"  validate:"required,max=100"`
	Phone     *string `json:"phone"     validate:"omitempty,max=40"`

	StudentID *string `json:"studentId" validate:"omitempty,min=3,max=40"`

	DateOfBirth       *string `json:"dateOfBirth"`
	Gender            *string `json:"gender"            validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Address           *string `json:"address"           validate:"omitempty,max=500"`
	BloodGroup        *string `json:"bloodGroup"        validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	MedicalConditions *string `json:"medicalConditions" validate:"omitempty,max=2000"`
	AdmissionDate     *string `json:"admissionDate"`

	// enrolls the student right away when set
	ClassID *uuid.UUID `json:"classId"`
}

func (r CreateStudentRequest) Profile() (studentModel.StudentModel, error) {
	dob, err := helper.ParseOptionalDate("dateOfBirth", r.DateOfBirth)
	if err != nil {
		return studentModel.StudentModel{}, err
	}
	adm, err := helper.ParseOptionalDate("admissionDate", r.AdmissionDate)
	if err != nil {
		return studentModel.StudentModel{}, err
	}
	return studentModel.StudentModel{
		DateOfBirth:       dob,
		Gender:            r.Gender,
		Address:           r.Address,
		BloodGroup:        r.BloodGroup,
		MedicalConditions: r.MedicalConditions,
		AdmissionDate:     adm,
		Status:            studentModel.StudentActive,
	}, nil
}

type UpdateStudentRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"lastName"  validate:"omitempty,min=1,max=100"`
	Phone     *string `json:"phone"     validate:"omitempty,max=40"`

	DateOfBirth       *string `json:"dateOfBirth"`
	Gender            *string `json:"gender"            validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Address           *string `json:"address"           validate:"omitempty,max=500"`
	BloodGroup        *string `json:"bloodGroup"        validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	MedicalConditions *string `json:"medicalConditions" validate:"omitempty,max=2000"`
	AdmissionDate     *string `json:"admissionDate"`
	Status            *string `json:"status"            validate:"omitempty,oneof=ACTIVE INACTIVE GRADUATED TRANSFERRED"`
}

func (r UpdateStudentRequest) Apply(s *studentModel.StudentModel) error {
	if r.DateOfBirth != nil {
		d, err := helper.ParseOptionalDate("dateOfBirth", r.DateOfBirth)
		if err != nil {
			return err
		}
		s.DateOfBirth = d
	}
	if r.AdmissionDate != nil {
		d, err := helper.ParseOptionalDate("admissionDate", r.AdmissionDate)
		if err != nil {
			return err
		}
		s.AdmissionDate = d
	}
	if r.Gender != nil {
		s.Gender = r.Gender
	}
	if r.Address != nil {
		s.Address = r.Address
	}
	if r.BloodGroup != nil {
		s.BloodGroup = r.BloodGroup
	}
	if r.MedicalConditions != nil {
		s.MedicalConditions = r.MedicalConditions
	}
	if r.Status != nil {
		s.Status = studentModel.StudentStatus(*r.Status)
	}
	return nil
}

type ClassBrief struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	GradeLevel   string    `json:"gradeLevel"`
	AcademicYear string    `json:"academicYear"`
	Status       string    `json:"enrollmentStatus"`
}

type StudentResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	StudentID string    `json:"studentId"`
	Email     string    `json:"email,omitempty"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Phone     *string   `json:"phone,omitempty"`

	DateOfBirth       *time.Time `json:"dateOfBirth,omitempty"`
	Gender            *string    `json:"gender,omitempty"`
	Address           *string    `json:"address,omitempty"`
	BloodGroup        *string    `json:"bloodGroup,omitempty"`
	MedicalConditions *string    `json:"medicalConditions,omitempty"`
	AdmissionDate     *time.Time `json:"admissionDate,omitempty"`
	Status            string     `json:"status"`

	Classes []ClassBrief `json:"classes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromStudentModel(s studentModel.StudentModel) StudentResponse {
	out := StudentResponse{
		ID:                s.ID,
		UserID:            s.UserID,
		StudentID:         s.StudentCode,
		DateOfBirth:       s.DateOfBirth,
		Gender:            s.Gender,
		Address:           s.Address,
		BloodGroup:        s.BloodGroup,
		MedicalConditions: s.MedicalConditions,
		AdmissionDate:     s.AdmissionDate,
		Status:            string(s.Status),
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
	if s.User != nil {
		out.Email = s.User.Email
		out.FirstName = s.User.FirstName
		out.LastName = s.User.LastName
		out.Phone = s.User.Phone
	}
	return out
}
