// file: internals/features/finance/feestructures/service/builder.go
//
// FeeStructureBuilder: rakit fee structure murid dari line item + potongan.
// Kebijakan waiver: item yang di-waive TETAP dihitung di gross (audit
// visibility) tapi dikeluarkan dari net.
package service

import (
	"strings"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/finance/feestructures/model"
	discount "schoolku_backend/internals/features/finance/scholarships/service"
	"schoolku_backend/internals/helpers/errs"
	"schoolku_backend/internals/helpers/money"
)

type LineItem struct {
	FeeComponentID uuid.UUID
	OriginalAmount money.Paise
	Waived         bool
	WaiverReason   *string
}

type Totals struct {
	Gross          money.Paise
	Waived         money.Paise
	Scholarship    money.Paise
	CustomDiscount money.Paise
	Net            money.Paise
}

// ComputeTotals menurunkan gross/net dari line item + potongan.
//
//	gross = Σ original (item waived ikut dihitung)
//	net   = gross − Σ(waived) − clamp(scholarship + custom, gross), floor 0
func ComputeTotals(items []LineItem, scholarship, custom money.Paise) (Totals, error) {
	if len(items) == 0 {
		return Totals{}, errs.Validation("fee structure butuh minimal 1 line item")
	}

	var gross, waived money.Paise
	for _, it := range items {
		if it.OriginalAmount <= 0 {
			return Totals{}, errs.Validation("amount line item harus > 0")
		}
		if it.Waived && (it.WaiverReason == nil || strings.TrimSpace(*it.WaiverReason) == "") {
			return Totals{}, errs.Validation("item yang di-waive wajib punya waiver reason")
		}
		gross += it.OriginalAmount
		if it.Waived {
			waived += it.OriginalAmount
		}
	}

	disc := discount.CombineDiscounts(gross, scholarship, custom)
	net := money.Max(0, gross-waived-disc)

	return Totals{
		Gross:          gross,
		Waived:         waived,
		Scholarship:    scholarship,
		CustomDiscount: custom,
		Net:            net,
	}, nil
}

// NewStructure materialisasi totals + line item jadi row siap insert.
// Pending awal = net (belum ada pembayaran).
func NewStructure(schoolID, studentID, sessionID uuid.UUID, sourceBatchID *uuid.UUID, items []LineItem, t Totals) (model.StudentFeeStructure, []model.StudentFeeStructureItem) {
	s := model.StudentFeeStructure{
		StudentFeeStructureSchoolID:             schoolID,
		StudentFeeStructureStudentID:            studentID,
		StudentFeeStructureSessionID:            sessionID,
		StudentFeeStructureSourceBatchID:        sourceBatchID,
		StudentFeeStructureGrossAmount:          int64(t.Gross),
		StudentFeeStructureWaivedAmount:         int64(t.Waived),
		StudentFeeStructureScholarshipAmount:    int64(t.Scholarship),
		StudentFeeStructureCustomDiscountAmount: int64(t.CustomDiscount),
		StudentFeeStructureNetAmount:            int64(t.Net),
		StudentFeeStructurePendingAmount:        int64(t.Net),
	}
	rows := make([]model.StudentFeeStructureItem, 0, len(items))
	for _, it := range items {
		rows = append(rows, model.StudentFeeStructureItem{
			StudentFeeStructureItemFeeComponentID: it.FeeComponentID,
			StudentFeeStructureItemOriginalAmount: int64(it.OriginalAmount),
			StudentFeeStructureItemIsWaived:       it.Waived,
			StudentFeeStructureItemWaiverReason:   it.WaiverReason,
		})
	}
	return s, rows
}
