package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/helpers/money"
)

func TestComputeDiscount_Percentage(t *testing.T) {
	// Scholarship 25% pada gross 20.000 → potongan 5.000
	got, err := ComputeDiscount(money.FromRupees(20_000), DiscountTypePercentage, 25)
	require.NoError(t, err)
	assert.Equal(t, money.FromRupees(5_000), got)
}

func TestComputeDiscount_PercentageDomainRejected(t *testing.T) {
	// di luar domain DITOLAK, bukan di-clamp
	_, err := ComputeDiscount(money.FromRupees(100), DiscountTypePercentage, 101)
	assert.Error(t, err)

	_, err = ComputeDiscount(money.FromRupees(100), DiscountTypePercentage, 0)
	assert.Error(t, err)

	_, err = ComputeDiscount(money.FromRupees(100), DiscountTypePercentage, -5)
	assert.Error(t, err)
}

func TestComputeDiscount_FixedClampedToGross(t *testing.T) {
	// fixed 5.000 pada gross 4.000 → potongan 4.000 (net 0)
	got, err := ComputeDiscount(money.FromRupees(4_000), DiscountTypeFixedAmount, int64(money.FromRupees(5_000)))
	require.NoError(t, err)
	assert.Equal(t, money.FromRupees(4_000), got)
}

func TestComputeDiscount_UnknownType(t *testing.T) {
	_, err := ComputeDiscount(money.FromRupees(100), "cashback", 10)
	assert.Error(t, err)
}

func TestCombineDiscounts_ClampProperty(t *testing.T) {
	// Properti: untuk semua gross ≥ 0 dan kombinasi potongan apa pun,
	// 0 ≤ total ≤ gross (→ 0 ≤ net ≤ gross).
	grosses := []money.Paise{0, 1, 99, money.FromRupees(4_000), money.FromRupees(20_000), money.FromRupees(10_000_000)}
	for _, gross := range grosses {
		for _, a := range []money.Paise{0, 1, gross / 2, gross, gross * 2} {
			for _, b := range []money.Paise{0, gross / 3, gross} {
				total := CombineDiscounts(gross, a, b)
				assert.GreaterOrEqual(t, total, money.Paise(0), "gross=%d a=%d b=%d", gross, a, b)
				assert.LessOrEqual(t, total, gross, "gross=%d a=%d b=%d", gross, a, b)
			}
		}
	}
}

func TestCombineDiscounts_BothApply(t *testing.T) {
	// scholarship + custom keduanya mengurangi gross, independen satu sama lain
	gross := money.FromRupees(10_000)
	sch, err := ComputeDiscount(gross, DiscountTypePercentage, 10) // 1.000
	require.NoError(t, err)
	cus, err := ComputeDiscount(gross, DiscountTypeFixedAmount, int64(money.FromRupees(2_000)))
	require.NoError(t, err)
	assert.Equal(t, money.FromRupees(3_000), CombineDiscounts(gross, sch, cus))
}
