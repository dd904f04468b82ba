// file: internals/features/finance/emiplans/dto/emi_plan_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/finance/emiplans/model"
)

type SplitPartDTO struct {
	Percent          int `json:"percent" validate:"required,gt=0,lte=100"`
	DueDaysFromStart int `json:"due_days_from_start" validate:"gte=0"`
}

type EMIPlanCreateDTO struct {
	Name             string         `json:"name" validate:"required,min=2,max=80"`
	InstallmentCount int            `json:"installment_count" validate:"required,min=1,max=36"`
	Split            []SplitPartDTO `json:"split" validate:"omitempty,dive"` // kosong = auto-generate
	IsDefault        bool           `json:"is_default"`
}

type EMIPlanUpdateDTO struct {
	Name      *string `json:"name" validate:"omitempty,min=2,max=80"`
	IsDefault *bool   `json:"is_default"`
}

type EMIPlanResponse struct {
	EMIPlanTemplateID               uuid.UUID         `json:"emi_plan_template_id"`
	EMIPlanTemplateName             string            `json:"emi_plan_template_name"`
	EMIPlanTemplateInstallmentCount int               `json:"emi_plan_template_installment_count"`
	EMIPlanTemplateSplit            []model.SplitPart `json:"emi_plan_template_split"`
	EMIPlanTemplateIsDefault        bool              `json:"emi_plan_template_is_default"`
	EMIPlanTemplateCreatedAt        time.Time         `json:"emi_plan_template_created_at"`
}

func ToSplitParts(in []SplitPartDTO) []model.SplitPart {
	out := make([]model.SplitPart, 0, len(in))
	for _, p := range in {
		out = append(out, model.SplitPart{Percent: p.Percent, DueDaysFromStart: p.DueDaysFromStart})
	}
	return out
}

func ToEMIPlanResponse(m model.EMIPlanTemplate) EMIPlanResponse {
	parts, _ := m.SplitParts()
	return EMIPlanResponse{
		EMIPlanTemplateID:               m.EMIPlanTemplateID,
		EMIPlanTemplateName:             m.EMIPlanTemplateName,
		EMIPlanTemplateInstallmentCount: m.EMIPlanTemplateInstallmentCount,
		EMIPlanTemplateSplit:            parts,
		EMIPlanTemplateIsDefault:        m.EMIPlanTemplateIsDefault,
		EMIPlanTemplateCreatedAt:        m.EMIPlanTemplateCreatedAt,
	}
}

func ToEMIPlanResponses(list []model.EMIPlanTemplate) []EMIPlanResponse {
	out := make([]EMIPlanResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToEMIPlanResponse(m))
	}
	return out
}
