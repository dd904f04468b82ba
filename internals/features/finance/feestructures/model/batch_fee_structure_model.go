// file: internals/features/finance/feestructures/model/batch_fee_structure_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// MODEL — batch fee structure (template per batch+session)
// Template saja: tidak pernah menampung pembayaran.
// =========================================================

type BatchFeeStructure struct {
	// PK
	BatchFeeStructureID uuid.UUID `gorm:"column:batch_fee_structure_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"batch_fee_structure_id"`

	// Tenant
	BatchFeeStructureSchoolID uuid.UUID `gorm:"column:batch_fee_structure_school_id;type:uuid;not null;index" json:"batch_fee_structure_school_id"`

	// Unik per (batch, session)
	BatchFeeStructureBatchID   uuid.UUID `gorm:"column:batch_fee_structure_batch_id;type:uuid;not null;index:uniq_batch_session,unique,priority:1" json:"batch_fee_structure_batch_id"`
	BatchFeeStructureSessionID uuid.UUID `gorm:"column:batch_fee_structure_session_id;type:uuid;not null;index:uniq_batch_session,priority:2,unique" json:"batch_fee_structure_session_id"`

	BatchFeeStructureName string `gorm:"column:batch_fee_structure_name;type:varchar(120);not null" json:"batch_fee_structure_name"`

	// = Σ line item amount (paise), dijaga oleh builder
	BatchFeeStructureTotalAmount int64 `gorm:"column:batch_fee_structure_total_amount;not null;check:batch_fee_structure_total_amount>=0" json:"batch_fee_structure_total_amount"`

	BatchFeeStructureIsActive bool `gorm:"column:batch_fee_structure_is_active;not null;default:true" json:"batch_fee_structure_is_active"`

	// Timestamps
	BatchFeeStructureCreatedAt time.Time      `gorm:"column:batch_fee_structure_created_at;not null;autoCreateTime" json:"batch_fee_structure_created_at"`
	BatchFeeStructureUpdatedAt time.Time      `gorm:"column:batch_fee_structure_updated_at;not null;autoUpdateTime" json:"batch_fee_structure_updated_at"`
	BatchFeeStructureDeletedAt gorm.DeletedAt `gorm:"column:batch_fee_structure_deleted_at;index" json:"-"`
}

func (BatchFeeStructure) TableName() string {
	return "batch_fee_structures"
}

// =========================================================
// MODEL — line item template
// =========================================================

type BatchFeeStructureItem struct {
	BatchFeeStructureItemID uuid.UUID `gorm:"column:batch_fee_structure_item_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"batch_fee_structure_item_id"`

	BatchFeeStructureItemStructureID uuid.UUID `gorm:"column:batch_fee_structure_item_structure_id;type:uuid;not null;index" json:"batch_fee_structure_item_structure_id"`

	// FK → fee_components
	BatchFeeStructureItemFeeComponentID uuid.UUID `gorm:"column:batch_fee_structure_item_fee_component_id;type:uuid;not null" json:"batch_fee_structure_item_fee_component_id"`

	// paise, > 0
	BatchFeeStructureItemAmount int64 `gorm:"column:batch_fee_structure_item_amount;not null;check:batch_fee_structure_item_amount>0" json:"batch_fee_structure_item_amount"`

	BatchFeeStructureItemCreatedAt time.Time `gorm:"column:batch_fee_structure_item_created_at;not null;autoCreateTime" json:"batch_fee_structure_item_created_at"`
}

func (BatchFeeStructureItem) TableName() string {
	return "batch_fee_structure_items"
}
