// file: internals/features/finance/feestructures/service/recompute.go
//
// Recompute dipanggil tiap kali komponen potongan berubah (assign/unassign
// scholarship, set/hapus custom discount). Net baru DISEBAR ulang ke
// installment yang sudah ada — installment lunas tidak disentuh.
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/features/finance/feestructures/model"
	instModel "schoolku_backend/internals/features/finance/installments/model"
	instService "schoolku_backend/internals/features/finance/installments/service"
	scholarshipModel "schoolku_backend/internals/features/finance/scholarships/model"
	discount "schoolku_backend/internals/features/finance/scholarships/service"
	"schoolku_backend/internals/helpers/errs"
	"schoolku_backend/internals/helpers/money"
)

// Recompute me-lock structure, menjumlahkan ulang snapshot scholarship,
// menghitung ulang custom discount dari type/value tersimpan, lalu
// memperbarui net + pending + amount installment. Jalankan di dalam tx.
func Recompute(tx *gorm.DB, schoolID, structureID uuid.UUID) (*model.StudentFeeStructure, error) {
	var s model.StudentFeeStructure
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("student_fee_structure_id = ? AND student_fee_structure_school_id = ?", structureID, schoolID).
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("fee structure tidak ditemukan")
		}
		return nil, err
	}

	// Σ snapshot scholarship milik (student, session) ini
	var schTotal int64
	if err := tx.Model(&scholarshipModel.StudentScholarship{}).
		Where(`student_scholarship_school_id = ?
			AND student_scholarship_student_id = ?
			AND student_scholarship_session_id = ?`,
			schoolID, s.StudentFeeStructureStudentID, s.StudentFeeStructureSessionID).
		Select("COALESCE(SUM(student_scholarship_discount_amount), 0)").
		Scan(&schTotal).Error; err != nil {
		return nil, err
	}

	gross := money.Paise(s.StudentFeeStructureGrossAmount)

	var custom money.Paise
	if s.StudentFeeStructureCustomDiscountType != nil && s.StudentFeeStructureCustomDiscountValue != nil {
		c, err := discount.ComputeDiscount(gross, *s.StudentFeeStructureCustomDiscountType, *s.StudentFeeStructureCustomDiscountValue)
		if err != nil {
			return nil, err
		}
		custom = c
	}

	disc := discount.CombineDiscounts(gross, money.Paise(schTotal), custom)
	net := money.Max(0, gross-money.Paise(s.StudentFeeStructureWaivedAmount)-disc)

	s.StudentFeeStructureScholarshipAmount = schTotal
	s.StudentFeeStructureCustomDiscountAmount = int64(custom)
	s.StudentFeeStructureNetAmount = int64(net)

	var insts []instModel.Installment
	if err := tx.
		Where("installment_structure_id = ? AND installment_school_id = ?", structureID, schoolID).
		Order("installment_number ASC").
		Find(&insts).Error; err != nil {
		return nil, err
	}

	var pending int64
	if len(insts) > 0 {
		slots := make([]SpreadSlot, len(insts))
		for i, in := range insts {
			slots[i] = SpreadSlot{Amount: money.Paise(in.InstallmentAmount), Paid: money.Paise(in.InstallmentPaidAmount)}
		}
		amounts := SpreadNet(net, slots)

		today := time.Now()
		for i := range insts {
			newAmount := int64(amounts[i])
			newStatus := instService.DeriveStatus(amounts[i], money.Paise(insts[i].InstallmentPaidAmount), insts[i].InstallmentDueDate, today)
			if err := tx.Model(&instModel.Installment{}).
				Where("installment_id = ?", insts[i].InstallmentID).
				Updates(map[string]interface{}{
					"installment_amount": newAmount,
					"installment_status": newStatus,
				}).Error; err != nil {
				return nil, err
			}
			insts[i].InstallmentAmount = newAmount
			pending += insts[i].Outstanding()
		}
	} else {
		pending = int64(net)
	}

	s.StudentFeeStructurePendingAmount = pending
	if err := tx.Save(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// SpreadSlot adalah potret satu installment untuk keperluan sebar ulang.
type SpreadSlot struct {
	Amount money.Paise
	Paid   money.Paise
}

// SpreadNet membagi ulang net ke slot installment:
//   - slot lunas dikunci di amount lamanya,
//   - sisanya dibagi proporsional bobot amount lama (slot open terakhir
//     menampung remainder pembulatan),
//   - amount slot tidak boleh turun di bawah paid-nya; defisit diambil
//     dari slot open lain yang masih punya ruang.
//
// Kalau net baru sudah di bawah total yang terbayar, slot open parkir di
// paid masing-masing (Σ amount > net, pending jadi 0) — uang yang sudah
// diterima tidak dikoreksi mundur.
func SpreadNet(net money.Paise, slots []SpreadSlot) []money.Paise {
	out := make([]money.Paise, len(slots))

	var locked money.Paise
	var open []int
	var openWeight money.Paise
	for i, s := range slots {
		if s.Amount > 0 && s.Paid >= s.Amount {
			out[i] = s.Amount
			locked += s.Amount
			continue
		}
		open = append(open, i)
		openWeight += s.Amount
	}
	if len(open) == 0 {
		return out
	}

	target := money.Max(0, net-locked)

	var assigned money.Paise
	for k, i := range open {
		if k == len(open)-1 {
			out[i] = target - assigned
			break
		}
		var share money.Paise
		if openWeight > 0 {
			share = money.Paise(int64(target) * int64(slots[i].Amount) / int64(openWeight))
		} else {
			share = money.Paise(int64(target) / int64(len(open)))
		}
		out[i] = share
		assigned += share
	}

	var deficit money.Paise
	for _, i := range open {
		if out[i] < slots[i].Paid {
			deficit += slots[i].Paid - out[i]
			out[i] = slots[i].Paid
		}
	}
	for k := len(open) - 1; k >= 0 && deficit > 0; k-- {
		i := open[k]
		room := out[i] - slots[i].Paid
		if room <= 0 {
			continue
		}
		take := money.Min(room, deficit)
		out[i] -= take
		deficit -= take
	}

	return out
}
