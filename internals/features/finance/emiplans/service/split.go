// file: internals/features/finance/emiplans/service/split.go
//
// EMISplitGenerator: dari jumlah installment → split persen yang jumlahnya
// PERSIS 100, plus offset due date. Remainder pembagian selalu masuk ke
// slot TERAKHIR (indeks count-1), bukan slot pertama.
package service

import (
	"schoolku_backend/internals/features/finance/emiplans/model"
	"schoolku_backend/internals/helpers/errs"
)

const (
	MinInstallmentCount = 1
	MaxInstallmentCount = 36
)

// GenerateSplit menghasilkan split default untuk count installment:
//
//	base      = floor(100 / count)
//	remainder = 100 − base×count   → ditambahkan ke slot terakhir
//	dueDays_i = i × floor(365 / count)
func GenerateSplit(count int) ([]model.SplitPart, error) {
	if count < MinInstallmentCount || count > MaxInstallmentCount {
		return nil, errs.Validation("installment count harus di rentang 1..36")
	}

	base := 100 / count
	remainder := 100 - base*count
	interval := 365 / count

	parts := make([]model.SplitPart, count)
	for i := 0; i < count; i++ {
		pct := base
		if i == count-1 {
			pct += remainder
		}
		parts[i] = model.SplitPart{
			Percent:          pct,
			DueDaysFromStart: i * interval,
		}
	}
	return parts, nil
}

// ValidateSplit memeriksa split yang disuplai caller: panjang harus sama
// dengan count, tiap persen > 0, offset tidak menurun, dan Σ persen == 100.
func ValidateSplit(count int, parts []model.SplitPart) error {
	if count < MinInstallmentCount || count > MaxInstallmentCount {
		return errs.Validation("installment count harus di rentang 1..36")
	}
	if len(parts) != count {
		return errs.Validation("panjang split config harus sama dengan installment count")
	}
	sum := 0
	prevDue := -1
	for _, p := range parts {
		if p.Percent <= 0 {
			return errs.Validation("tiap persen split harus > 0")
		}
		if p.DueDaysFromStart < 0 || p.DueDaysFromStart < prevDue {
			return errs.Validation("due days harus ≥ 0 dan tidak menurun")
		}
		prevDue = p.DueDaysFromStart
		sum += p.Percent
	}
	if sum != 100 {
		return errs.Validation("total persen split harus persis 100")
	}
	return nil
}
