// file: internals/features/finance/feestructures/model/student_fee_structure_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// MODEL — student fee structure (satu per student+session)
//
// gross  = Σ original amount SEMUA item (yang di-waive tetap dihitung,
//          untuk audit visibility)
// net    = gross − Σ(waived) − scholarship − custom discount, floor 0
// pending = Σ(installment.amount − installment.paid) milik structure ini
// =========================================================

type StudentFeeStructure struct {
	// PK
	StudentFeeStructureID uuid.UUID `gorm:"column:student_fee_structure_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"student_fee_structure_id"`

	// Tenant
	StudentFeeStructureSchoolID uuid.UUID `gorm:"column:student_fee_structure_school_id;type:uuid;not null;index" json:"student_fee_structure_school_id"`

	// Unik per (student, session)
	StudentFeeStructureStudentID uuid.UUID `gorm:"column:student_fee_structure_student_id;type:uuid;not null;index:uniq_student_session,unique,priority:1" json:"student_fee_structure_student_id"`
	StudentFeeStructureSessionID uuid.UUID `gorm:"column:student_fee_structure_session_id;type:uuid;not null;index:uniq_student_session,unique,priority:2" json:"student_fee_structure_session_id"`

	// Asal: dicopy dari batch structure (nullable kalau ad hoc)
	StudentFeeStructureSourceBatchID *uuid.UUID `gorm:"column:student_fee_structure_source_batch_id;type:uuid;index" json:"student_fee_structure_source_batch_id,omitempty"`

	// Nominal turunan (paise)
	StudentFeeStructureGrossAmount          int64 `gorm:"column:student_fee_structure_gross_amount;not null;check:student_fee_structure_gross_amount>=0" json:"student_fee_structure_gross_amount"`
	StudentFeeStructureWaivedAmount         int64 `gorm:"column:student_fee_structure_waived_amount;not null;default:0" json:"student_fee_structure_waived_amount"`
	StudentFeeStructureScholarshipAmount    int64 `gorm:"column:student_fee_structure_scholarship_amount;not null;default:0" json:"student_fee_structure_scholarship_amount"`
	StudentFeeStructureCustomDiscountAmount int64 `gorm:"column:student_fee_structure_custom_discount_amount;not null;default:0" json:"student_fee_structure_custom_discount_amount"`
	StudentFeeStructureNetAmount            int64 `gorm:"column:student_fee_structure_net_amount;not null;check:student_fee_structure_net_amount>=0" json:"student_fee_structure_net_amount"`
	StudentFeeStructurePendingAmount        int64 `gorm:"column:student_fee_structure_pending_amount;not null;default:0" json:"student_fee_structure_pending_amount"`

	// Custom discount 1:1 (one-off per student, independen dari scholarship)
	StudentFeeStructureCustomDiscountType    *string `gorm:"column:student_fee_structure_custom_discount_type;type:varchar(20)" json:"student_fee_structure_custom_discount_type,omitempty"`
	StudentFeeStructureCustomDiscountValue   *int64  `gorm:"column:student_fee_structure_custom_discount_value" json:"student_fee_structure_custom_discount_value,omitempty"`
	StudentFeeStructureCustomDiscountRemarks *string `gorm:"column:student_fee_structure_custom_discount_remarks;type:text" json:"student_fee_structure_custom_discount_remarks,omitempty"`

	StudentFeeStructureRemarks *string `gorm:"column:student_fee_structure_remarks;type:text" json:"student_fee_structure_remarks,omitempty"`

	// Timestamps
	StudentFeeStructureCreatedAt time.Time      `gorm:"column:student_fee_structure_created_at;not null;autoCreateTime" json:"student_fee_structure_created_at"`
	StudentFeeStructureUpdatedAt time.Time      `gorm:"column:student_fee_structure_updated_at;not null;autoUpdateTime" json:"student_fee_structure_updated_at"`
	StudentFeeStructureDeletedAt gorm.DeletedAt `gorm:"column:student_fee_structure_deleted_at;index" json:"-"`
}

func (StudentFeeStructure) TableName() string {
	return "student_fee_structures"
}

// =========================================================
// MODEL — line item per student (bisa di-waive)
// =========================================================

type StudentFeeStructureItem struct {
	StudentFeeStructureItemID uuid.UUID `gorm:"column:student_fee_structure_item_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"student_fee_structure_item_id"`

	StudentFeeStructureItemStructureID uuid.UUID `gorm:"column:student_fee_structure_item_structure_id;type:uuid;not null;index" json:"student_fee_structure_item_structure_id"`

	StudentFeeStructureItemFeeComponentID uuid.UUID `gorm:"column:student_fee_structure_item_fee_component_id;type:uuid;not null" json:"student_fee_structure_item_fee_component_id"`

	// paise, > 0; waive TIDAK mengubah original (net yang berkurang, gross tetap)
	StudentFeeStructureItemOriginalAmount int64 `gorm:"column:student_fee_structure_item_original_amount;not null;check:student_fee_structure_item_original_amount>0" json:"student_fee_structure_item_original_amount"`

	StudentFeeStructureItemIsWaived     bool    `gorm:"column:student_fee_structure_item_is_waived;not null;default:false" json:"student_fee_structure_item_is_waived"`
	StudentFeeStructureItemWaiverReason *string `gorm:"column:student_fee_structure_item_waiver_reason;type:text" json:"student_fee_structure_item_waiver_reason,omitempty"`

	StudentFeeStructureItemCreatedAt time.Time `gorm:"column:student_fee_structure_item_created_at;not null;autoCreateTime" json:"student_fee_structure_item_created_at"`
}

func (StudentFeeStructureItem) TableName() string {
	return "student_fee_structure_items"
}
