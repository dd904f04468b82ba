// file: internals/features/finance/emiplans/model/emi_plan_template_model.go
package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SplitPart: satu slot split — persen dan offset hari dari start date.
type SplitPart struct {
	Percent          int `json:"percent"`
	DueDaysFromStart int `json:"due_days_from_start"`
}

// =========================================================
// MODEL — EMI plan template (pola split reusable)
// Invariant: Σ percent == 100 persis; len(split) == installment_count.
// =========================================================

type EMIPlanTemplate struct {
	// PK
	EMIPlanTemplateID uuid.UUID `gorm:"column:emi_plan_template_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"emi_plan_template_id"`

	// Tenant
	EMIPlanTemplateSchoolID uuid.UUID `gorm:"column:emi_plan_template_school_id;type:uuid;not null;index" json:"emi_plan_template_school_id"`

	EMIPlanTemplateName             string `gorm:"column:emi_plan_template_name;type:varchar(80);not null" json:"emi_plan_template_name"`
	EMIPlanTemplateInstallmentCount int    `gorm:"column:emi_plan_template_installment_count;not null;check:emi_plan_template_installment_count>=1" json:"emi_plan_template_installment_count"`

	// [{percent, due_days_from_start}] — JSONB
	EMIPlanTemplateSplitConfig datatypes.JSON `gorm:"column:emi_plan_template_split_config;type:jsonb;not null" json:"emi_plan_template_split_config"`

	// Satu default per school (dijaga di controller saat set true)
	EMIPlanTemplateIsDefault bool `gorm:"column:emi_plan_template_is_default;not null;default:false;index" json:"emi_plan_template_is_default"`

	// Timestamps
	EMIPlanTemplateCreatedAt time.Time      `gorm:"column:emi_plan_template_created_at;not null;autoCreateTime" json:"emi_plan_template_created_at"`
	EMIPlanTemplateUpdatedAt time.Time      `gorm:"column:emi_plan_template_updated_at;not null;autoUpdateTime" json:"emi_plan_template_updated_at"`
	EMIPlanTemplateDeletedAt gorm.DeletedAt `gorm:"column:emi_plan_template_deleted_at;index" json:"-"`
}

func (EMIPlanTemplate) TableName() string {
	return "emi_plan_templates"
}

// SplitParts meng-decode kolom JSONB ke slice SplitPart.
func (m EMIPlanTemplate) SplitParts() ([]SplitPart, error) {
	var parts []SplitPart
	if err := json.Unmarshal(m.EMIPlanTemplateSplitConfig, &parts); err != nil {
		return nil, err
	}
	return parts, nil
}

// EncodeSplitParts meng-encode slice SplitPart ke JSONB.
func EncodeSplitParts(parts []SplitPart) (datatypes.JSON, error) {
	b, err := json.Marshal(parts)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
