// file: internals/features/finance/scholarships/dto/scholarship_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/finance/scholarships/model"
)

////////////////////////////////////////////////////////////////////////////////
// SCHOLARSHIPS — DTO
////////////////////////////////////////////////////////////////////////////////

type ScholarshipCreateDTO struct {
	ScholarshipName        string  `json:"scholarship_name" validate:"required,max=80"`
	ScholarshipType        string  `json:"scholarship_type" validate:"required,oneof=percentage fixed_amount"`
	ScholarshipBasis       string  `json:"scholarship_basis" validate:"required,oneof=merit need_based sports sibling staff_ward government custom"`
	ScholarshipValue       int64   `json:"scholarship_value" validate:"required,gt=0"`
	ScholarshipDescription *string `json:"scholarship_description,omitempty"`
}

type ScholarshipUpdateDTO struct {
	ScholarshipName        *string `json:"scholarship_name,omitempty" validate:"omitempty,max=80"`
	ScholarshipBasis       *string `json:"scholarship_basis,omitempty" validate:"omitempty,oneof=merit need_based sports sibling staff_ward government custom"`
	ScholarshipValue       *int64  `json:"scholarship_value,omitempty" validate:"omitempty,gt=0"`
	ScholarshipDescription *string `json:"scholarship_description,omitempty"`
	ScholarshipIsActive    *bool   `json:"scholarship_is_active,omitempty"`
}

type ScholarshipResponse struct {
	ScholarshipID          uuid.UUID `json:"scholarship_id"`
	ScholarshipSchoolID    uuid.UUID `json:"scholarship_school_id"`
	ScholarshipName        string    `json:"scholarship_name"`
	ScholarshipType        string    `json:"scholarship_type"`
	ScholarshipBasis       string    `json:"scholarship_basis"`
	ScholarshipValue       int64     `json:"scholarship_value"`
	ScholarshipDescription *string   `json:"scholarship_description,omitempty"`
	ScholarshipIsActive    bool      `json:"scholarship_is_active"`
	ScholarshipCreatedAt   time.Time `json:"scholarship_created_at"`
	ScholarshipUpdatedAt   time.Time `json:"scholarship_updated_at"`
}

////////////////////////////////////////////////////////////////////////////////
// STUDENT SCHOLARSHIP (assignment) — DTO
////////////////////////////////////////////////////////////////////////////////

type AssignScholarshipDTO struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	SessionID uuid.UUID `json:"session_id" validate:"required"`
	Remarks   *string   `json:"remarks,omitempty"`
}

type StudentScholarshipResponse struct {
	StudentScholarshipID             uuid.UUID `json:"student_scholarship_id"`
	StudentScholarshipSchoolID       uuid.UUID `json:"student_scholarship_school_id"`
	StudentScholarshipStudentID      uuid.UUID `json:"student_scholarship_student_id"`
	StudentScholarshipScholarshipID  uuid.UUID `json:"student_scholarship_scholarship_id"`
	StudentScholarshipSessionID      uuid.UUID `json:"student_scholarship_session_id"`
	StudentScholarshipDiscountAmount int64     `json:"student_scholarship_discount_amount"`
	StudentScholarshipRemarks        *string   `json:"student_scholarship_remarks,omitempty"`
	StudentScholarshipCreatedAt      time.Time `json:"student_scholarship_created_at"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func (in ScholarshipCreateDTO) ToModel(schoolID uuid.UUID) model.Scholarship {
	return model.Scholarship{
		ScholarshipSchoolID:    schoolID,
		ScholarshipName:        in.ScholarshipName,
		ScholarshipType:        model.ScholarshipType(in.ScholarshipType),
		ScholarshipBasis:       model.ScholarshipBasis(in.ScholarshipBasis),
		ScholarshipValue:       in.ScholarshipValue,
		ScholarshipDescription: in.ScholarshipDescription,
		ScholarshipIsActive:    true,
	}
}

func (in ScholarshipUpdateDTO) Apply(m *model.Scholarship) {
	if in.ScholarshipName != nil {
		m.ScholarshipName = *in.ScholarshipName
	}
	if in.ScholarshipBasis != nil {
		m.ScholarshipBasis = model.ScholarshipBasis(*in.ScholarshipBasis)
	}
	if in.ScholarshipValue != nil {
		m.ScholarshipValue = *in.ScholarshipValue
	}
	if in.ScholarshipDescription != nil {
		m.ScholarshipDescription = in.ScholarshipDescription
	}
	if in.ScholarshipIsActive != nil {
		m.ScholarshipIsActive = *in.ScholarshipIsActive
	}
}

func ToScholarshipResponse(m model.Scholarship) ScholarshipResponse {
	return ScholarshipResponse{
		ScholarshipID:          m.ScholarshipID,
		ScholarshipSchoolID:    m.ScholarshipSchoolID,
		ScholarshipName:        m.ScholarshipName,
		ScholarshipType:        string(m.ScholarshipType),
		ScholarshipBasis:       string(m.ScholarshipBasis),
		ScholarshipValue:       m.ScholarshipValue,
		ScholarshipDescription: m.ScholarshipDescription,
		ScholarshipIsActive:    m.ScholarshipIsActive,
		ScholarshipCreatedAt:   m.ScholarshipCreatedAt,
		ScholarshipUpdatedAt:   m.ScholarshipUpdatedAt,
	}
}

func ToScholarshipResponses(list []model.Scholarship) []ScholarshipResponse {
	out := make([]ScholarshipResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToScholarshipResponse(m))
	}
	return out
}

func ToStudentScholarshipResponse(m model.StudentScholarship) StudentScholarshipResponse {
	return StudentScholarshipResponse{
		StudentScholarshipID:             m.StudentScholarshipID,
		StudentScholarshipSchoolID:       m.StudentScholarshipSchoolID,
		StudentScholarshipStudentID:      m.StudentScholarshipStudentID,
		StudentScholarshipScholarshipID:  m.StudentScholarshipScholarshipID,
		StudentScholarshipSessionID:      m.StudentScholarshipSessionID,
		StudentScholarshipDiscountAmount: m.StudentScholarshipDiscountAmount,
		StudentScholarshipRemarks:        m.StudentScholarshipRemarks,
		StudentScholarshipCreatedAt:      m.StudentScholarshipCreatedAt,
	}
}
