// file: internals/features/finance/feecomponents/model/fee_component_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — tipe fee component
// =========================================================

type FeeComponentType string

const (
	FeeComponentTypeTuition   FeeComponentType = "tuition"
	FeeComponentTypeAdmission FeeComponentType = "admission"
	FeeComponentTypeTransport FeeComponentType = "transport"
	FeeComponentTypeLab       FeeComponentType = "lab"
	FeeComponentTypeLibrary   FeeComponentType = "library"
	FeeComponentTypeSports    FeeComponentType = "sports"
	FeeComponentTypeExam      FeeComponentType = "exam"
	FeeComponentTypeUniform   FeeComponentType = "uniform"
	FeeComponentTypeMisc      FeeComponentType = "misc"
)

func (t FeeComponentType) Valid() bool {
	switch t {
	case FeeComponentTypeTuition, FeeComponentTypeAdmission, FeeComponentTypeTransport,
		FeeComponentTypeLab, FeeComponentTypeLibrary, FeeComponentTypeSports,
		FeeComponentTypeExam, FeeComponentTypeUniform, FeeComponentTypeMisc:
		return true
	}
	return false
}

// =========================================================
// MODEL
// =========================================================

type FeeComponent struct {
	// PK
	FeeComponentID uuid.UUID `gorm:"column:fee_component_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"fee_component_id"`

	// Tenant
	FeeComponentSchoolID uuid.UUID `gorm:"column:fee_component_school_id;type:uuid;not null;index:uniq_fee_component_name,unique,priority:1" json:"fee_component_school_id"`

	FeeComponentName        string           `gorm:"column:fee_component_name;type:varchar(80);not null;index:uniq_fee_component_name,unique,priority:2" json:"fee_component_name"`
	FeeComponentType        FeeComponentType `gorm:"column:fee_component_type;type:varchar(20);not null;index:ix_fee_component_type" json:"fee_component_type"`
	FeeComponentDescription *string          `gorm:"column:fee_component_description;type:text" json:"fee_component_description,omitempty"`

	// Soft-deactivate: komponen yang sudah direferensikan structure tidak
	// pernah di-hard-delete, hanya is_active=false.
	FeeComponentIsActive bool `gorm:"column:fee_component_is_active;not null;default:true;index:ix_fee_component_active" json:"fee_component_is_active"`

	// Timestamps
	FeeComponentCreatedAt time.Time      `gorm:"column:fee_component_created_at;not null;autoCreateTime" json:"fee_component_created_at"`
	FeeComponentUpdatedAt time.Time      `gorm:"column:fee_component_updated_at;not null;autoUpdateTime" json:"fee_component_updated_at"`
	FeeComponentDeletedAt gorm.DeletedAt `gorm:"column:fee_component_deleted_at;index" json:"-"`
}

func (FeeComponent) TableName() string {
	return "fee_components"
}
