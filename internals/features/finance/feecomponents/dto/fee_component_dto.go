// file: internals/features/finance/feecomponents/dto/fee_component_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/finance/feecomponents/model"
)

////////////////////////////////////////////////////////////////////////////////
// FEE COMPONENTS — DTO
////////////////////////////////////////////////////////////////////////////////

type FeeComponentCreateDTO struct {
	FeeComponentName        string  `json:"fee_component_name" validate:"required,max=80"`
	FeeComponentType        string  `json:"fee_component_type" validate:"required,oneof=tuition admission transport lab library sports exam uniform misc"`
	FeeComponentDescription *string `json:"fee_component_description,omitempty"`
}

// Update (partial)
type FeeComponentUpdateDTO struct {
	FeeComponentName        *string `json:"fee_component_name,omitempty" validate:"omitempty,max=80"`
	FeeComponentType        *string `json:"fee_component_type,omitempty" validate:"omitempty,oneof=tuition admission transport lab library sports exam uniform misc"`
	FeeComponentDescription *string `json:"fee_component_description,omitempty"`
	FeeComponentIsActive    *bool   `json:"fee_component_is_active,omitempty"`
}

type FeeComponentResponse struct {
	FeeComponentID          uuid.UUID `json:"fee_component_id"`
	FeeComponentSchoolID    uuid.UUID `json:"fee_component_school_id"`
	FeeComponentName        string    `json:"fee_component_name"`
	FeeComponentType        string    `json:"fee_component_type"`
	FeeComponentDescription *string   `json:"fee_component_description,omitempty"`
	FeeComponentIsActive    bool      `json:"fee_component_is_active"`
	FeeComponentCreatedAt   time.Time `json:"fee_component_created_at"`
	FeeComponentUpdatedAt   time.Time `json:"fee_component_updated_at"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func (in FeeComponentCreateDTO) ToModel(schoolID uuid.UUID) model.FeeComponent {
	return model.FeeComponent{
		FeeComponentSchoolID:    schoolID,
		FeeComponentName:        in.FeeComponentName,
		FeeComponentType:        model.FeeComponentType(in.FeeComponentType),
		FeeComponentDescription: in.FeeComponentDescription,
		FeeComponentIsActive:    true,
	}
}

func (in FeeComponentUpdateDTO) Apply(m *model.FeeComponent) {
	if in.FeeComponentName != nil {
		m.FeeComponentName = *in.FeeComponentName
	}
	if in.FeeComponentType != nil {
		m.FeeComponentType = model.FeeComponentType(*in.FeeComponentType)
	}
	if in.FeeComponentDescription != nil {
		m.FeeComponentDescription = in.FeeComponentDescription
	}
	if in.FeeComponentIsActive != nil {
		m.FeeComponentIsActive = *in.FeeComponentIsActive
	}
}

func ToFeeComponentResponse(m model.FeeComponent) FeeComponentResponse {
	return FeeComponentResponse{
		FeeComponentID:          m.FeeComponentID,
		FeeComponentSchoolID:    m.FeeComponentSchoolID,
		FeeComponentName:        m.FeeComponentName,
		FeeComponentType:        string(m.FeeComponentType),
		FeeComponentDescription: m.FeeComponentDescription,
		FeeComponentIsActive:    m.FeeComponentIsActive,
		FeeComponentCreatedAt:   m.FeeComponentCreatedAt,
		FeeComponentUpdatedAt:   m.FeeComponentUpdatedAt,
	}
}

func ToFeeComponentResponses(list []model.FeeComponent) []FeeComponentResponse {
	out := make([]FeeComponentResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToFeeComponentResponse(m))
	}
	return out
}
