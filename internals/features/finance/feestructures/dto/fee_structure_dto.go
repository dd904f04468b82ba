// file: internals/features/finance/feestructures/dto/fee_structure_dto.go
package dto

import (
	"errors"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/finance/feestructures/model"
)

// =========================================================
// REQUEST DTO — batch fee structure (template)
// =========================================================

type BatchFeeStructureItemDTO struct {
	FeeComponentID uuid.UUID `json:"fee_component_id" validate:"required"`
	Amount         int64     `json:"amount" validate:"required,gt=0"` // paise
}

type BatchFeeStructureCreateDTO struct {
	BatchID   uuid.UUID                  `json:"batch_id" validate:"required"`
	SessionID uuid.UUID                  `json:"session_id" validate:"required"`
	Name      string                     `json:"name" validate:"required,min=2,max=120"`
	Items     []BatchFeeStructureItemDTO `json:"items" validate:"required,min=1,dive"`
}

type BatchFeeStructureUpdateDTO struct {
	Name     *string                    `json:"name" validate:"omitempty,min=2,max=120"`
	IsActive *bool                      `json:"is_active"`
	Items    []BatchFeeStructureItemDTO `json:"items" validate:"omitempty,min=1,dive"` // nil = items tidak disentuh
}

// ItemsReplace membedakan tiga bentuk payload items pada update:
// nil = items tidak disentuh, array isi = REPLACE penuh, array kosong
// eksplisit ditolak (validator skip slice kosong karena omitempty, jadi
// cek panjangnya di sini — structure minimal satu line item).
func (d BatchFeeStructureUpdateDTO) ItemsReplace() ([]BatchFeeStructureItemDTO, bool, error) {
	if d.Items == nil {
		return nil, false, nil
	}
	if len(d.Items) == 0 {
		return nil, false, errors.New("items tidak boleh kosong")
	}
	return d.Items, true, nil
}

type ApplyBatchDTO struct {
	StudentIDs []uuid.UUID `json:"student_ids"` // kosong = seluruh murid aktif di batch
	Overwrite  bool        `json:"overwrite"`
}

// =========================================================
// REQUEST DTO — student fee structure (ad hoc / custom)
// =========================================================

type StudentFeeStructureItemDTO struct {
	FeeComponentID uuid.UUID `json:"fee_component_id" validate:"required"`
	OriginalAmount int64     `json:"original_amount" validate:"required,gt=0"`
	IsWaived       bool      `json:"is_waived"`
	WaiverReason   *string   `json:"waiver_reason" validate:"omitempty,min=3"`
}

type StudentFeeStructureCreateDTO struct {
	StudentID uuid.UUID                    `json:"student_id" validate:"required"`
	SessionID uuid.UUID                    `json:"session_id" validate:"required"`
	Items     []StudentFeeStructureItemDTO `json:"items" validate:"required,min=1,dive"`
	Remarks   *string                      `json:"remarks"`
}

// WaiveItemDTO menandai satu line item murid sebagai waived (atau un-waive).
type WaiveItemDTO struct {
	IsWaived     bool    `json:"is_waived"`
	WaiverReason *string `json:"waiver_reason" validate:"omitempty,min=3"`
}

type CustomDiscountDTO struct {
	Type    string  `json:"type" validate:"required,oneof=percentage fixed_amount"`
	Value   int64   `json:"value" validate:"required,gt=0"`
	Remarks *string `json:"remarks"`
}

// =========================================================
// RESPONSE DTO
// =========================================================

type BatchFeeStructureItemResponse struct {
	BatchFeeStructureItemID             uuid.UUID `json:"batch_fee_structure_item_id"`
	BatchFeeStructureItemFeeComponentID uuid.UUID `json:"batch_fee_structure_item_fee_component_id"`
	BatchFeeStructureItemAmount         int64     `json:"batch_fee_structure_item_amount"`
}

type BatchFeeStructureResponse struct {
	BatchFeeStructureID          uuid.UUID                       `json:"batch_fee_structure_id"`
	BatchFeeStructureBatchID     uuid.UUID                       `json:"batch_fee_structure_batch_id"`
	BatchFeeStructureSessionID   uuid.UUID                       `json:"batch_fee_structure_session_id"`
	BatchFeeStructureName        string                          `json:"batch_fee_structure_name"`
	BatchFeeStructureTotalAmount int64                           `json:"batch_fee_structure_total_amount"`
	BatchFeeStructureIsActive    bool                            `json:"batch_fee_structure_is_active"`
	Items                        []BatchFeeStructureItemResponse `json:"items,omitempty"`
}

type StudentFeeStructureItemResponse struct {
	StudentFeeStructureItemID             uuid.UUID `json:"student_fee_structure_item_id"`
	StudentFeeStructureItemFeeComponentID uuid.UUID `json:"student_fee_structure_item_fee_component_id"`
	StudentFeeStructureItemOriginalAmount int64     `json:"student_fee_structure_item_original_amount"`
	StudentFeeStructureItemIsWaived       bool      `json:"student_fee_structure_item_is_waived"`
	StudentFeeStructureItemWaiverReason   *string   `json:"student_fee_structure_item_waiver_reason,omitempty"`
}

type StudentFeeStructureResponse struct {
	StudentFeeStructureID                    uuid.UUID                         `json:"student_fee_structure_id"`
	StudentFeeStructureStudentID             uuid.UUID                         `json:"student_fee_structure_student_id"`
	StudentFeeStructureSessionID             uuid.UUID                         `json:"student_fee_structure_session_id"`
	StudentFeeStructureSourceBatchID         *uuid.UUID                        `json:"student_fee_structure_source_batch_id,omitempty"`
	StudentFeeStructureGrossAmount           int64                             `json:"student_fee_structure_gross_amount"`
	StudentFeeStructureWaivedAmount          int64                             `json:"student_fee_structure_waived_amount"`
	StudentFeeStructureScholarshipAmount     int64                             `json:"student_fee_structure_scholarship_amount"`
	StudentFeeStructureCustomDiscountAmount  int64                             `json:"student_fee_structure_custom_discount_amount"`
	StudentFeeStructureNetAmount             int64                             `json:"student_fee_structure_net_amount"`
	StudentFeeStructurePendingAmount         int64                             `json:"student_fee_structure_pending_amount"`
	StudentFeeStructureCustomDiscountType    *string                           `json:"student_fee_structure_custom_discount_type,omitempty"`
	StudentFeeStructureCustomDiscountValue   *int64                            `json:"student_fee_structure_custom_discount_value,omitempty"`
	StudentFeeStructureCustomDiscountRemarks *string                           `json:"student_fee_structure_custom_discount_remarks,omitempty"`
	Items                                    []StudentFeeStructureItemResponse `json:"items,omitempty"`
}

// =========================================================
// MAPPERS
// =========================================================

func ToBatchFeeStructureResponse(m model.BatchFeeStructure, items []model.BatchFeeStructureItem) BatchFeeStructureResponse {
	out := BatchFeeStructureResponse{
		BatchFeeStructureID:          m.BatchFeeStructureID,
		BatchFeeStructureBatchID:     m.BatchFeeStructureBatchID,
		BatchFeeStructureSessionID:   m.BatchFeeStructureSessionID,
		BatchFeeStructureName:        m.BatchFeeStructureName,
		BatchFeeStructureTotalAmount: m.BatchFeeStructureTotalAmount,
		BatchFeeStructureIsActive:    m.BatchFeeStructureIsActive,
	}
	for _, it := range items {
		out.Items = append(out.Items, BatchFeeStructureItemResponse{
			BatchFeeStructureItemID:             it.BatchFeeStructureItemID,
			BatchFeeStructureItemFeeComponentID: it.BatchFeeStructureItemFeeComponentID,
			BatchFeeStructureItemAmount:         it.BatchFeeStructureItemAmount,
		})
	}
	return out
}

func ToBatchFeeStructureResponses(list []model.BatchFeeStructure) []BatchFeeStructureResponse {
	out := make([]BatchFeeStructureResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToBatchFeeStructureResponse(m, nil))
	}
	return out
}

func ToStudentFeeStructureResponse(m model.StudentFeeStructure, items []model.StudentFeeStructureItem) StudentFeeStructureResponse {
	out := StudentFeeStructureResponse{
		StudentFeeStructureID:                    m.StudentFeeStructureID,
		StudentFeeStructureStudentID:             m.StudentFeeStructureStudentID,
		StudentFeeStructureSessionID:             m.StudentFeeStructureSessionID,
		StudentFeeStructureSourceBatchID:         m.StudentFeeStructureSourceBatchID,
		StudentFeeStructureGrossAmount:           m.StudentFeeStructureGrossAmount,
		StudentFeeStructureWaivedAmount:          m.StudentFeeStructureWaivedAmount,
		StudentFeeStructureScholarshipAmount:     m.StudentFeeStructureScholarshipAmount,
		StudentFeeStructureCustomDiscountAmount:  m.StudentFeeStructureCustomDiscountAmount,
		StudentFeeStructureNetAmount:             m.StudentFeeStructureNetAmount,
		StudentFeeStructurePendingAmount:         m.StudentFeeStructurePendingAmount,
		StudentFeeStructureCustomDiscountType:    m.StudentFeeStructureCustomDiscountType,
		StudentFeeStructureCustomDiscountValue:   m.StudentFeeStructureCustomDiscountValue,
		StudentFeeStructureCustomDiscountRemarks: m.StudentFeeStructureCustomDiscountRemarks,
	}
	for _, it := range items {
		out.Items = append(out.Items, StudentFeeStructureItemResponse{
			StudentFeeStructureItemID:             it.StudentFeeStructureItemID,
			StudentFeeStructureItemFeeComponentID: it.StudentFeeStructureItemFeeComponentID,
			StudentFeeStructureItemOriginalAmount: it.StudentFeeStructureItemOriginalAmount,
			StudentFeeStructureItemIsWaived:       it.StudentFeeStructureItemIsWaived,
			StudentFeeStructureItemWaiverReason:   it.StudentFeeStructureItemWaiverReason,
		})
	}
	return out
}

func ToStudentFeeStructureResponses(list []model.StudentFeeStructure) []StudentFeeStructureResponse {
	out := make([]StudentFeeStructureResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToStudentFeeStructureResponse(m, nil))
	}
	return out
}
