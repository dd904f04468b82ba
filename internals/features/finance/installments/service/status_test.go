package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"schoolku_backend/internals/features/finance/installments/model"
	"schoolku_backend/internals/helpers/money"
)

func TestDeriveStatus(t *testing.T) {
	today := time.Date(2026, 8, 26, 10, 30, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)
	amount := money.FromRupees(3_300)

	tests := []struct {
		name string
		paid money.Paise
		due  time.Time
		want model.InstallmentStatus
	}{
		{"unpaid before due", 0, tomorrow, model.InstallmentStatusUpcoming},
		{"unpaid past due", 0, yesterday, model.InstallmentStatusOverdue},
		{"unpaid due today counts overdue", 0, today, model.InstallmentStatusOverdue},
		{"partial before due", money.FromRupees(100), tomorrow, model.InstallmentStatusPartial},
		// partial yang lewat due jadi overdue, bukan partial
		{"partial past due overrides to overdue", money.Paise(100), yesterday, model.InstallmentStatusOverdue},
		{"exactly paid", amount, yesterday, model.InstallmentStatusPaid},
		{"paid is terminal regardless of due", amount, tomorrow, model.InstallmentStatusPaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(amount, tt.paid, tt.due, today))
		})
	}
}

func TestDeriveStatus_Deterministic(t *testing.T) {
	// fungsi murni: input sama → hasil sama, berapa kali pun dipanggil
	today := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	due := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	amount := money.FromRupees(1_000)
	paid := money.FromRupees(1)

	first := DeriveStatus(amount, paid, due, today)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, DeriveStatus(amount, paid, due, today))
	}
	assert.Equal(t, model.InstallmentStatusOverdue, first)
}
