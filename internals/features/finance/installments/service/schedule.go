// file: internals/features/finance/installments/service/schedule.go
//
// InstallmentScheduler: net amount + split → installment konkret.
// Aturan anti-drift: semua installment KECUALI terakhir dihitung
// round(net × percent / 100); yang terakhir = net − Σ(sebelumnya),
// supaya Σ amount == net PERSIS (tidak ada paise yang hilang/nambah).
package service

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	emiModel "schoolku_backend/internals/features/finance/emiplans/model"
	fsModel "schoolku_backend/internals/features/finance/feestructures/model"
	"schoolku_backend/internals/features/finance/installments/model"
	"schoolku_backend/internals/helpers/errs"
	"schoolku_backend/internals/helpers/money"
)

// SplitAmounts membagi net sesuai split dan merekonsiliasi remainder ke
// slot terakhir. Properti: Σ hasil == net, semua elemen ≥ 0.
func SplitAmounts(net money.Paise, parts []emiModel.SplitPart) ([]money.Paise, error) {
	if net < 0 {
		return nil, errs.Validation("net amount tidak boleh negatif")
	}
	if len(parts) == 0 {
		return nil, errs.Validation("split config kosong")
	}

	n := len(parts)
	amounts := make([]money.Paise, n)
	var sum money.Paise
	for i := 0; i < n-1; i++ {
		a := money.PercentOf(net, int64(parts[i].Percent))
		// guard untuk net seukuran paise: jangan sampai sum melewati net,
		// nanti slot terakhir negatif
		if sum+a > net {
			a = net - sum
		}
		amounts[i] = a
		sum += a
	}
	amounts[n-1] = net - sum // rekonsiliasi — wajib, bukan pembulatan independen
	return amounts, nil
}

// BuildInstallments merakit row installment (belum disimpan) dari net +
// start date + split.
func BuildInstallments(schoolID, structureID uuid.UUID, net money.Paise, startDate time.Time, parts []emiModel.SplitPart) ([]model.Installment, error) {
	amounts, err := SplitAmounts(net, parts)
	if err != nil {
		return nil, err
	}
	today := time.Now()
	out := make([]model.Installment, len(parts))
	for i, p := range parts {
		due := startDate.AddDate(0, 0, p.DueDaysFromStart)
		out[i] = model.Installment{
			InstallmentSchoolID:    schoolID,
			InstallmentStructureID: structureID,
			InstallmentNumber:      i + 1,
			InstallmentAmount:      int64(amounts[i]),
			InstallmentDueDate:     due,
			InstallmentPaidAmount:  0,
			InstallmentStatus:      DeriveStatus(amounts[i], 0, due, today),
		}
	}
	return out, nil
}

type GenerateScheduleInput struct {
	StructureID uuid.UUID
	SchoolID    uuid.UUID
	StartDate   time.Time
	Parts       []emiModel.SplitPart
	// Regenerasi saat sudah ada pembayaran HARUS dikonfirmasi eksplisit;
	// tanpa confirm → Conflict (pembayaran tercatat tidak boleh dibuang diam-diam).
	ConfirmRegenerate bool
	ActorUserID       uuid.UUID
}

// GenerateSchedule membuat (atau meregenerasi) jadwal installment untuk satu
// structure dalam SATU transaksi; structure di-lock FOR UPDATE selama
// check-then-write supaya tidak balapan dengan pencatatan pembayaran.
func GenerateSchedule(db *gorm.DB, in GenerateScheduleInput) ([]model.Installment, error) {
	var created []model.Installment

	err := db.Transaction(func(tx *gorm.DB) error {
		var structure fsModel.StudentFeeStructure
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("student_fee_structure_id = ? AND student_fee_structure_school_id = ?", in.StructureID, in.SchoolID).
			First(&structure).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("student fee structure tidak ditemukan")
			}
			return err
		}

		var existing []model.Installment
		if err := tx.
			Where("installment_structure_id = ?", in.StructureID).
			Find(&existing).Error; err != nil {
			return err
		}

		if len(existing) > 0 {
			hasPaid := false
			var orphaned []uuid.UUID
			for _, inst := range existing {
				if inst.InstallmentPaidAmount > 0 {
					hasPaid = true
					orphaned = append(orphaned, inst.InstallmentID)
				}
			}
			if hasPaid && !in.ConfirmRegenerate {
				return errs.Conflict("jadwal sudah punya pembayaran tercatat; regenerasi butuh konfirmasi eksplisit")
			}
			if hasPaid {
				// jejak audit: pembayaran lama ter-orphan oleh regenerasi
				payload, _ := json.Marshal(orphanPayload{OrphanedInstallmentIDs: orphaned})
				ev := fsModel.FeeAuditEvent{
					FeeAuditEventSchoolID:    in.SchoolID,
					FeeAuditEventType:        fsModel.FeeAuditEventScheduleRegenerated,
					FeeAuditEventEntityID:    in.StructureID,
					FeeAuditEventPayload:     payload,
					FeeAuditEventActorUserID: &in.ActorUserID,
				}
				if err := tx.Create(&ev).Error; err != nil {
					return err
				}
			}
			if err := tx.
				Where("installment_structure_id = ?", in.StructureID).
				Delete(&model.Installment{}).Error; err != nil {
				return err
			}
		}

		rows, err := BuildInstallments(in.SchoolID, in.StructureID, money.Paise(structure.StudentFeeStructureNetAmount), in.StartDate, in.Parts)
		if err != nil {
			return err
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}

		// jadwal baru → pending = net penuh
		if err := tx.Model(&fsModel.StudentFeeStructure{}).
			Where("student_fee_structure_id = ?", in.StructureID).
			Update("student_fee_structure_pending_amount", structure.StudentFeeStructureNetAmount).Error; err != nil {
			return err
		}

		created = rows
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

type orphanPayload struct {
	OrphanedInstallmentIDs []uuid.UUID `json:"orphaned_installment_ids"`
}
