// file: internals/features/finance/paymentlinks/service/state.go
//
// Transisi status payment link. expired adalah status TURUNAN dari
// active ∧ now > expires_at — dipersist begitu teramati (webhook, cancel,
// atau saat link dibaca), supaya query by status tetap murah.
package service

import (
	"time"

	"schoolku_backend/internals/features/finance/paymentlinks/model"
	"schoolku_backend/internals/helpers/errs"
	"schoolku_backend/internals/helpers/money"
)

// EffectiveStatus mengembalikan status sebenarnya dari link: active yang
// sudah lewat expires_at dilaporkan expired meski kolomnya belum di-update.
func EffectiveStatus(link model.PaymentLink, now time.Time) model.PaymentLinkStatus {
	if link.PaymentLinkStatus == model.PaymentLinkStatusActive && now.After(link.PaymentLinkExpiresAt) {
		return model.PaymentLinkStatusExpired
	}
	return link.PaymentLinkStatus
}

// ValidateCancel: hanya link yang masih active (dan belum expired) yang
// bisa dibatalkan; sisanya terminal.
func ValidateCancel(link model.PaymentLink, now time.Time) error {
	switch EffectiveStatus(link, now) {
	case model.PaymentLinkStatusActive:
		return nil
	case model.PaymentLinkStatusPaid:
		return errs.State("payment link sudah dibayar")
	case model.PaymentLinkStatusExpired:
		return errs.State("payment link sudah kadaluarsa")
	default:
		return errs.State("payment link sudah dibatalkan")
	}
}

// SettlementAmount menentukan nominal yang dicatat ke ledger saat settlement.
// Nominal link dibekukan saat link dibuat, tapi sisa tagihan bisa mengecil
// kalau kasir keburu menerima pembayaran manual sebelum murid membayar lewat
// gateway. Yang dicatat min(nominal link, sisa tagihan); selisihnya (termasuk
// hasil 0 saat tagihan sudah lunas) uang yang sudah ditarik gateway tanpa
// tagihan padanan → dicatat sebagai audit event rekonsiliasi, notifikasi
// tetap di-ack supaya gateway berhenti retry.
func SettlementAmount(linkAmount, outstanding money.Paise) money.Paise {
	if outstanding <= 0 {
		return 0
	}
	return money.Min(linkAmount, outstanding)
}

// ValidateSettle: settlement hanya sah untuk link active yang belum lewat
// expires_at. Settlement untuk link yang sudah paid = duplikat notifikasi.
func ValidateSettle(link model.PaymentLink, now time.Time) error {
	switch EffectiveStatus(link, now) {
	case model.PaymentLinkStatusActive:
		return nil
	case model.PaymentLinkStatusPaid:
		return errs.Conflict("payment link sudah dibayar")
	case model.PaymentLinkStatusExpired:
		return errs.State("payment link sudah kadaluarsa")
	default:
		return errs.State("payment link sudah dibatalkan")
	}
}
