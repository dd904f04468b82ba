// file: internals/features/finance/paymentlinks/service/state_test.go
package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/features/finance/paymentlinks/model"
	"schoolku_backend/internals/helpers/errs"
	"schoolku_backend/internals/helpers/money"
)

func linkWith(status model.PaymentLinkStatus, expiresAt time.Time) model.PaymentLink {
	return model.PaymentLink{PaymentLinkStatus: status, PaymentLinkExpiresAt: expiresAt}
}

func TestEffectiveStatus(t *testing.T) {
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		link model.PaymentLink
		want model.PaymentLinkStatus
	}{
		{"active belum expired", linkWith(model.PaymentLinkStatusActive, now.Add(time.Hour)), model.PaymentLinkStatusActive},
		{"active lewat expires_at → expired", linkWith(model.PaymentLinkStatusActive, now.Add(-time.Minute)), model.PaymentLinkStatusExpired},
		{"paid tetap paid meski lewat expires_at", linkWith(model.PaymentLinkStatusPaid, now.Add(-time.Hour)), model.PaymentLinkStatusPaid},
		{"cancelled tetap cancelled", linkWith(model.PaymentLinkStatusCancelled, now.Add(time.Hour)), model.PaymentLinkStatusCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectiveStatus(tt.link, now))
		})
	}
}

func TestValidateCancel(t *testing.T) {
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateCancel(linkWith(model.PaymentLinkStatusActive, now.Add(time.Hour)), now))

	// terminal semua
	for _, st := range []model.PaymentLinkStatus{
		model.PaymentLinkStatusPaid,
		model.PaymentLinkStatusExpired,
		model.PaymentLinkStatusCancelled,
	} {
		err := ValidateCancel(linkWith(st, now.Add(time.Hour)), now)
		require.Error(t, err, "status %s", st)
	}

	// active yang keburu expired juga tidak bisa dibatalkan
	err := ValidateCancel(linkWith(model.PaymentLinkStatusActive, now.Add(-time.Second)), now)
	require.Error(t, err)
}

func TestValidateSettle(t *testing.T) {
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateSettle(linkWith(model.PaymentLinkStatusActive, now.Add(time.Hour)), now))

	// notifikasi duplikat → Conflict, bukan error state
	err := ValidateSettle(linkWith(model.PaymentLinkStatusPaid, now.Add(time.Hour)), now)
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))

	err = ValidateSettle(linkWith(model.PaymentLinkStatusActive, now.Add(-time.Minute)), now)
	require.Error(t, err)
	assert.False(t, errs.IsConflict(err))
}

func TestSettlementAmount(t *testing.T) {
	linkAmount := money.FromRupees(5_000)

	t.Run("tagihan utuh → nominal link penuh", func(t *testing.T) {
		assert.Equal(t, linkAmount, SettlementAmount(linkAmount, linkAmount))
	})

	t.Run("kasir keburu terima tunai → dicatat sisa tagihan saja", func(t *testing.T) {
		// link dibekukan 5.000 tapi tunai 3.000 masuk duluan; yang bisa
		// dicatat tinggal 2.000 — sisanya urusan rekonsiliasi
		outstanding := money.FromRupees(2_000)
		assert.Equal(t, outstanding, SettlementAmount(linkAmount, outstanding))
	})

	t.Run("tagihan sudah lunas → tidak ada yang dicatat", func(t *testing.T) {
		assert.Equal(t, money.Paise(0), SettlementAmount(linkAmount, 0))
		assert.Equal(t, money.Paise(0), SettlementAmount(linkAmount, -1))
	})

	t.Run("sisa tagihan lebih besar dari link → tetap nominal link", func(t *testing.T) {
		assert.Equal(t, linkAmount, SettlementAmount(linkAmount, money.FromRupees(9_000)))
	})
}
