// file: internals/features/finance/scholarships/service/discount.go
//
// DiscountEngine: hitung potongan (scholarship / custom discount) terhadap
// gross. Aturan bisnis (bukan error suppression): hasil SELALU di-clamp ke
// [0, gross] supaya net tidak pernah negatif. Validasi domain nilai
// (persen > 100 dsb) ditolak di sini, bukan di-clamp.
package service

import (
	"schoolku_backend/internals/helpers/errs"
	"schoolku_backend/internals/helpers/money"
)

const (
	DiscountTypePercentage  = "percentage"
	DiscountTypeFixedAmount = "fixed_amount"
)

// ComputeDiscount menghitung satu potongan terhadap gross.
//   - percentage: round-half-up(gross × value / 100), clamp [0, gross]
//   - fixed_amount: min(value, gross) — tidak pernah melebihi gross
func ComputeDiscount(gross money.Paise, typ string, value int64) (money.Paise, error) {
	if gross < 0 {
		return 0, errs.Validation("gross amount tidak boleh negatif")
	}
	switch typ {
	case DiscountTypePercentage:
		if value <= 0 || value > 100 {
			return 0, errs.Validation("persentase harus di rentang 1..100")
		}
		return money.Clamp(money.PercentOf(gross, value), 0, gross), nil
	case DiscountTypeFixedAmount:
		if value <= 0 {
			return 0, errs.Validation("nominal potongan harus > 0")
		}
		return money.Min(money.Paise(value), gross), nil
	default:
		return 0, errs.Validation("tipe potongan tidak dikenal: " + typ)
	}
}

// CombineDiscounts menjumlahkan beberapa potongan (scholarship + custom)
// lalu clamp total ke gross.
func CombineDiscounts(gross money.Paise, parts ...money.Paise) money.Paise {
	var sum money.Paise
	for _, p := range parts {
		sum += p
	}
	return money.Clamp(sum, 0, gross)
}
