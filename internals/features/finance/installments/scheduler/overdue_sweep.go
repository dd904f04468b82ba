// file: internals/features/finance/installments/scheduler/overdue_sweep.go
package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/installments/model"
)

// StartOverdueSweepScheduler menyegarkan cache status installment yang lewat
// due date tanpa ada write pembayaran (status cache hanya di-refresh saat
// write paid_amount — installment yang tidak pernah dibayar butuh sweep ini).
func StartOverdueSweepScheduler(db *gorm.DB) {
	go func() {
		intervalHours := 24
		if val := os.Getenv("OVERDUE_SWEEP_INTERVAL_HOURS"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
				intervalHours = parsed
			}
		}

		for {
			log.Println("[SWEEP] Menjalankan sweep status installment overdue...")

			today := time.Now().Format("2006-01-02")

			// upcoming/due yang belum dibayar sama sekali dan sudah lewat due date
			res := db.Model(&model.Installment{}).
				Where("installment_due_date <= ?", today).
				Where("installment_paid_amount = 0").
				Where("installment_status IN ?", []model.InstallmentStatus{
					model.InstallmentStatusUpcoming,
					model.InstallmentStatusDue,
				}).
				Update("installment_status", model.InstallmentStatusOverdue)
			if res.Error != nil {
				log.Printf("[SWEEP ERROR] Gagal update overdue: %v", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("[SWEEP] %d installment ditandai overdue", res.RowsAffected)
			}

			// partial yang lewat due date juga jadi overdue
			res = db.Model(&model.Installment{}).
				Where("installment_due_date <= ?", today).
				Where("installment_paid_amount > 0 AND installment_paid_amount < installment_amount").
				Where("installment_status = ?", model.InstallmentStatusPartial).
				Update("installment_status", model.InstallmentStatusOverdue)
			if res.Error != nil {
				log.Printf("[SWEEP ERROR] Gagal update partial→overdue: %v", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("[SWEEP] %d installment partial ditandai overdue", res.RowsAffected)
			}

			time.Sleep(time.Duration(intervalHours) * time.Hour)
		}
	}()
}
