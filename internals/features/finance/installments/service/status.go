// file: internals/features/finance/installments/service/status.go
package service

import (
	"time"

	"schoolku_backend/internals/features/finance/installments/model"
	"schoolku_backend/internals/helpers/money"
)

// DeriveStatus: SATU-SATUNYA sumber kebenaran status installment.
// Fungsi murni dari {amount, paid, dueDate, today} — kolom status di DB
// cuma cache hasil fungsi ini.
//
//	paid ≥ amount                  → paid (terminal)
//	paid == 0, today <  due        → upcoming
//	paid == 0, today ≥  due        → overdue
//	0 < paid < amount, today < due → partial
//	0 < paid < amount, today ≥ due → overdue (partial kalah oleh overdue
//	                                 begitu lewat due date, biar kasir aware)
//
// Perbandingan per-tanggal (jam diabaikan); jatuh tempo hari ini sudah
// dihitung lewat due.
func DeriveStatus(amount, paid money.Paise, dueDate, today time.Time) model.InstallmentStatus {
	if paid >= amount {
		return model.InstallmentStatusPaid
	}

	due := truncateToDate(dueDate)
	now := truncateToDate(today)
	pastDue := !now.Before(due)

	if paid <= 0 {
		if pastDue {
			return model.InstallmentStatusOverdue
		}
		return model.InstallmentStatusUpcoming
	}
	if pastDue {
		return model.InstallmentStatusOverdue
	}
	return model.InstallmentStatusPartial
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
