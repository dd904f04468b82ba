// file: internals/features/finance/installments/service/ledger.go
//
// PaymentLedger: append payment ke installment. History tidak pernah
// dimutasi — koreksi = entry baru. Payment + update paid_amount + receipt
// jalan dalam SATU transaksi; row installment di-lock FOR UPDATE supaya dua
// pembayaran paralel tidak sama-sama lolos cek overpay.
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	fsModel "schoolku_backend/internals/features/finance/feestructures/model"
	"schoolku_backend/internals/features/finance/installments/model"
	"schoolku_backend/internals/helpers/errs"
	"schoolku_backend/internals/helpers/money"
)

// ValidatePaymentAmount: kontrak nominal pembayaran (murni, tanpa DB).
//   - amount ≤ 0 → Validation
//   - installment sudah lunas → Conflict
//   - amount > sisa tagihan → Conflict (tidak boleh overpay)
func ValidatePaymentAmount(instAmount, instPaid, pay money.Paise) error {
	if pay <= 0 {
		return errs.Validation("nominal pembayaran harus > 0")
	}
	if instPaid >= instAmount {
		return errs.Conflict("installment sudah lunas")
	}
	if outstanding := instAmount - instPaid; pay > outstanding {
		return errs.Conflict(fmt.Sprintf("nominal melebihi sisa tagihan (%s)", outstanding.String()))
	}
	return nil
}

type RecordPaymentInput struct {
	SchoolID       uuid.UUID
	InstallmentID  uuid.UUID
	Amount         money.Paise
	Mode           model.PaymentMode
	TransactionRef *string
	Remarks        *string
	ReceivedBy     uuid.UUID
}

type RecordPaymentResult struct {
	Payment     model.Payment
	Receipt     model.Receipt
	Installment model.Installment
}

/// RecordPayment mencatat pembayaran secara atomik:
// payment + paid_amount + status cache + receipt + pending structure —
// sukses semua atau gagal semua.
func RecordPayment(db *gorm.DB, in RecordPaymentInput) (RecordPaymentResult, error) {
	var res RecordPaymentResult

	err := db.Transaction(func(tx *gorm.DB) error {
		// 1) Lock row installment (serialisasi per-installment)
		var inst model.Installment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("installment_id = ? AND installment_school_id = ?", in.InstallmentID, in.SchoolID).
			First(&inst).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("installment tidak ditemukan")
			}
			return err
		}

		// 2) Guard nominal — saldo DB yang barusan di-lock yang otoritatif,
		//    bukan angka yang kebetulan dilihat UI
		if err := ValidatePaymentAmount(
			money.Paise(inst.InstallmentAmount),
			money.Paise(inst.InstallmentPaidAmount),
			in.Amount,
		); err != nil {
			return err
		}

		// 3) Append payment
		pay := model.Payment{
			PaymentSchoolID:       in.SchoolID,
			PaymentInstallmentID:  inst.InstallmentID,
			PaymentAmount:         int64(in.Amount),
			PaymentMode:           in.Mode,
			PaymentTransactionRef: in.TransactionRef,
			PaymentRemarks:        in.Remarks,
			PaymentReceivedAt:     time.Now(),
			PaymentReceivedBy:     in.ReceivedBy,
		}
		if err := tx.Create(&pay).Error; err != nil {
			return err
		}

		// 4) Update paid + refresh status cache
		inst.InstallmentPaidAmount += int64(in.Amount)
		inst.InstallmentStatus = DeriveStatus(
			money.Paise(inst.InstallmentAmount),
			money.Paise(inst.InstallmentPaidAmount),
			inst.InstallmentDueDate,
			time.Now(),
		)
		if err := tx.Model(&model.Installment{}).
			Where("installment_id = ?", inst.InstallmentID).
			Updates(map[string]any{
				"installment_paid_amount": inst.InstallmentPaidAmount,
				"installment_status":      inst.InstallmentStatus,
			}).Error; err != nil {
			return err
		}

		// 5) Receipt immutable 1:1, nomor urut per school per hari
		rcp, err := issueReceipt(tx, in.SchoolID, pay, inst.InstallmentID)
		if err != nil {
			return err
		}

		// 6) Pending structure = Σ sisa tagihan seluruh installment-nya
		if err := recomputeStructurePending(tx, inst.InstallmentStructureID); err != nil {
			return err
		}

		res = RecordPaymentResult{Payment: pay, Receipt: rcp, Installment: inst}
		return nil
	})
	if err != nil {
		return RecordPaymentResult{}, err
	}
	return res, nil
}

// receiptNo merakit nomor receipt human-readable: RCP-<hari>-<urutan 6 digit>.
func receiptNo(day string, seq int64) string {
	return fmt.Sprintf("RCP-%s-%06d", day, seq)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

const receiptNoMaxRetry = 5

// issueReceipt mengalokasikan nomor urut per school per hari. Count hari
// berjalan hanya kandidat nomor: lock FOR UPDATE-nya per-installment, jadi dua
// pembayaran paralel pada installment BERBEDA bisa membaca count yang sama.
// Unique index (receipt_school_id, receipt_no) yang jadi wasit — yang kalah
// balik ke savepoint dan menghitung ulang.
func issueReceipt(tx *gorm.DB, schoolID uuid.UUID, pay model.Payment, installmentID uuid.UUID) (model.Receipt, error) {
	day := time.Now().Format("20060102")

	for attempt := 0; attempt < receiptNoMaxRetry; attempt++ {
		if err := tx.SavePoint("sp_receipt").Error; err != nil {
			return model.Receipt{}, err
		}

		var seq int64
		if err := tx.Model(&model.Receipt{}).
			Where("receipt_school_id = ? AND receipt_no LIKE ?", schoolID, "RCP-"+day+"-%").
			Count(&seq).Error; err != nil {
			return model.Receipt{}, err
		}

		rcp := model.Receipt{
			ReceiptSchoolID:      schoolID,
			ReceiptPaymentID:     pay.PaymentID,
			ReceiptNo:            receiptNo(day, seq+1),
			ReceiptAmount:        pay.PaymentAmount,
			ReceiptInstallmentID: installmentID,
			ReceiptIssuedAt:      time.Now(),
		}
		err := tx.Create(&rcp).Error
		if err == nil {
			return rcp, nil
		}
		if !isUniqueViolation(err) {
			return model.Receipt{}, err
		}
		// nomor keburu dipakai transaksi lain — rollback insert-nya saja,
		// payment + paid_amount di atas savepoint tetap utuh
		if err := tx.RollbackTo("sp_receipt").Error; err != nil {
			return model.Receipt{}, err
		}
	}
	return model.Receipt{}, errs.Conflict("gagal mengalokasikan nomor receipt, silakan ulangi")
}

func recomputeStructurePending(tx *gorm.DB, structureID uuid.UUID) error {
	return tx.Model(&fsModel.StudentFeeStructure{}).
		Where("student_fee_structure_id = ?", structureID).
		Update("student_fee_structure_pending_amount", gorm.Expr(
			`(SELECT COALESCE(SUM(installment_amount - installment_paid_amount), 0)
			  FROM installments
			  WHERE installment_structure_id = ?
			    AND installment_deleted_at IS NULL)`, structureID)).Error
}
