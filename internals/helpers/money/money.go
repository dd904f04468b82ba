// file: internals/helpers/money/money.go
//
// Aritmetika uang fixed-point. Semua nominal engine disimpan sebagai paise
// (int64, 1/100 rupee) — tidak ada float di jalur uang, supaya rekonsiliasi
// installment di scheduler tidak kena drift pembulatan.
package money

import "fmt"

type Paise int64

// FromRupees mengubah rupee utuh ke paise.
func FromRupees(r int64) Paise { return Paise(r * 100) }

// PercentOf menghitung pct% dari p, dibulatkan half-up.
// pct di luar [0,100] dianggap tanggung jawab pemanggil (divalidasi di DTO).
func PercentOf(p Paise, pct int64) Paise {
	if p <= 0 || pct <= 0 {
		return 0
	}
	return Paise((int64(p)*pct + 50) / 100)
}

func Min(a, b Paise) Paise {
	if a < b {
		return a
	}
	return b
}

func Max(a, b Paise) Paise {
	if a > b {
		return a
	}
	return b
}

// Clamp membatasi p ke [lo, hi].
func Clamp(p, lo, hi Paise) Paise {
	if p < lo {
		return lo
	}
	if p > hi {
		return hi
	}
	return p
}

// String menampilkan "₹1234.50" (tanpa grouping, untuk log & receipt payload).
func (p Paise) String() string {
	neg := ""
	v := int64(p)
	if v < 0 {
		neg = "-"
		v = -v
	}
	return fmt.Sprintf("%s₹%d.%02d", neg, v/100, v%100)
}
