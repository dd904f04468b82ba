// file: internals/features/finance/feestructures/service/apply.go
//
// Batch apply: salin batch fee structure ke tiap murid aktif di batch.
// Tiap murid jalan di TRANSAKSI SENDIRI — satu murid gagal tidak
// membatalkan murid lain. Hasil: {applied, skipped, errors}.
package service

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/features/finance/feestructures/model"
	instModel "schoolku_backend/internals/features/finance/installments/model"
	"schoolku_backend/internals/helpers/errs"
	"schoolku_backend/internals/helpers/money"
)

type ApplyBatchInput struct {
	SchoolID    uuid.UUID
	BatchStrID  uuid.UUID
	StudentIDs  []uuid.UUID // opsional; kosong = semua murid aktif di batch
	Overwrite   bool
	ActorUserID *uuid.UUID
}

type ApplyError struct {
	StudentID uuid.UUID `json:"student_id"`
	Message   string    `json:"message"`
}

type ApplyResult struct {
	Applied int          `json:"applied"`
	Skipped int          `json:"skipped"`
	Errors  []ApplyError `json:"errors"`
}

type overwritePayload struct {
	OldStructureID         uuid.UUID   `json:"old_structure_id"`
	OrphanedInstallmentIDs []uuid.UUID `json:"orphaned_installment_ids"`
	SourceBatchStructureID uuid.UUID   `json:"source_batch_structure_id"`
}

// ApplyBatchStructure mengaplikasikan template batch ke murid-murid.
// Murid yang sudah punya structure di session yang sama di-SKIP kecuali
// overwrite=true (overwrite tercatat sebagai audit event).
func ApplyBatchStructure(db *gorm.DB, in ApplyBatchInput) (ApplyResult, error) {
	var res ApplyResult
	res.Errors = []ApplyError{}

	var batch model.BatchFeeStructure
	if err := db.
		Where("batch_fee_structure_id = ? AND batch_fee_structure_school_id = ?", in.BatchStrID, in.SchoolID).
		First(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return res, errs.NotFound("batch fee structure tidak ditemukan")
		}
		return res, err
	}
	if !batch.BatchFeeStructureIsActive {
		return res, errs.State("batch fee structure sudah nonaktif")
	}

	var batchItems []model.BatchFeeStructureItem
	if err := db.
		Where("batch_fee_structure_item_structure_id = ?", batch.BatchFeeStructureID).
		Find(&batchItems).Error; err != nil {
		return res, err
	}
	if len(batchItems) == 0 {
		return res, errs.State("batch fee structure belum punya line item")
	}

	lineItems := make([]LineItem, 0, len(batchItems))
	for _, bi := range batchItems {
		lineItems = append(lineItems, LineItem{
			FeeComponentID: bi.BatchFeeStructureItemFeeComponentID,
			OriginalAmount: money.Paise(bi.BatchFeeStructureItemAmount),
		})
	}

	studentIDs := in.StudentIDs
	if len(studentIDs) == 0 {
		var err error
		studentIDs, err = resolveBatchStudents(db, in.SchoolID, batch.BatchFeeStructureBatchID)
		if err != nil {
			return res, err
		}
	}
	if len(studentIDs) == 0 {
		return res, errs.Validation("tidak ada murid aktif di batch ini")
	}

	for _, studentID := range studentIDs {
		err := applyToStudent(db, batch, lineItems, studentID, in)
		if err != nil && !errors.Is(err, errSkipExisting) {
			log.Printf("[APPLY] gagal apply ke student %s: %v", studentID, err)
		}
		res.tally(studentID, err)
	}

	return res, nil
}

// tally memetakan hasil per-murid ke counter: nil → applied, skip sentinel →
// skipped, sisanya masuk errors tanpa menghentikan murid lain.
func (r *ApplyResult) tally(studentID uuid.UUID, err error) {
	switch {
	case err == nil:
		r.Applied++
	case errors.Is(err, errSkipExisting):
		r.Skipped++
	default:
		r.Errors = append(r.Errors, ApplyError{StudentID: studentID, Message: err.Error()})
	}
}

// sentinel internal: structure sudah ada dan overwrite=false
var errSkipExisting = errors.New("structure sudah ada")

type existingAction int

const (
	applyFresh existingAction = iota
	applySkip
	applyOverwrite
)

// decideExisting menentukan nasib murid terhadap structure lama: tanpa
// structure → apply fresh; sudah ada → skip, kecuali overwrite diminta.
// Apply ulang dengan overwrite=false karenanya idempoten (applied=0).
func decideExisting(hasExisting, overwrite bool) existingAction {
	if !hasExisting {
		return applyFresh
	}
	if overwrite {
		return applyOverwrite
	}
	return applySkip
}

func applyToStudent(db *gorm.DB, batch model.BatchFeeStructure, lineItems []LineItem, studentID uuid.UUID, in ApplyBatchInput) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var existing model.StudentFeeStructure
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(`student_fee_structure_school_id = ?
				AND student_fee_structure_student_id = ?
				AND student_fee_structure_session_id = ?`,
				in.SchoolID, studentID, batch.BatchFeeStructureSessionID).
			First(&existing).Error

		hasExisting := false
		switch {
		case err == nil:
			hasExisting = true
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return err
		}

		switch decideExisting(hasExisting, in.Overwrite) {
		case applySkip:
			return errSkipExisting
		case applyOverwrite:
			if err := orphanExisting(tx, existing, batch.BatchFeeStructureID, in.ActorUserID); err != nil {
				return err
			}
		}

		totals, err := ComputeTotals(lineItems, 0, 0)
		if err != nil {
			return err
		}

		s, rows := NewStructure(in.SchoolID, studentID, batch.BatchFeeStructureSessionID, &batch.BatchFeeStructureID, lineItems, totals)
		if err := tx.Create(&s).Error; err != nil {
			return err
		}
		for i := range rows {
			rows[i].StudentFeeStructureItemStructureID = s.StudentFeeStructureID
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}

		// tarik snapshot scholarship yang mungkin sudah ter-assign duluan
		if _, err := Recompute(tx, in.SchoolID, s.StudentFeeStructureID); err != nil {
			return err
		}
		return nil
	})
}

// orphanExisting mencatat lalu soft-delete structure lama + installment-nya.
// Payment history TIDAK dihapus — tetap menunjuk ke installment orphan.
func orphanExisting(tx *gorm.DB, old model.StudentFeeStructure, sourceBatchStrID uuid.UUID, actor *uuid.UUID) error {
	var orphanIDs []uuid.UUID
	if err := tx.Model(&instModel.Installment{}).
		Where("installment_structure_id = ?", old.StudentFeeStructureID).
		Pluck("installment_id", &orphanIDs).Error; err != nil {
		return err
	}

	payload, err := json.Marshal(overwritePayload{
		OldStructureID:         old.StudentFeeStructureID,
		OrphanedInstallmentIDs: orphanIDs,
		SourceBatchStructureID: sourceBatchStrID,
	})
	if err != nil {
		return err
	}
	event := model.FeeAuditEvent{
		FeeAuditEventSchoolID:    old.StudentFeeStructureSchoolID,
		FeeAuditEventType:        model.FeeAuditEventStructureOverwritten,
		FeeAuditEventEntityID:    old.StudentFeeStructureID,
		FeeAuditEventPayload:     datatypes.JSON(payload),
		FeeAuditEventActorUserID: actor,
	}
	if err := tx.Create(&event).Error; err != nil {
		return err
	}

	if len(orphanIDs) > 0 {
		if err := tx.
			Where("installment_structure_id = ?", old.StudentFeeStructureID).
			Delete(&instModel.Installment{}).Error; err != nil {
			return err
		}
	}
	return tx.Delete(&old).Error
}

// resolveBatchStudents ambil murid aktif dari tabel keanggotaan batch
// (dimiliki modul akademik, cukup di-query mentah di sini).
func resolveBatchStudents(db *gorm.DB, schoolID, batchID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := db.Raw(`
		SELECT bs.batch_student_student_id
		FROM batch_students bs
		WHERE bs.batch_student_school_id = ?
		  AND bs.batch_student_batch_id = ?
		  AND bs.batch_student_is_active = TRUE
		  AND bs.batch_student_deleted_at IS NULL
		ORDER BY bs.batch_student_created_at
	`, schoolID, batchID).Scan(&ids).Error
	return ids, err
}
