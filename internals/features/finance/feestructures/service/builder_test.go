// file: internals/features/finance/feestructures/service/builder_test.go
package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/helpers/errs"
	"schoolku_backend/internals/helpers/money"
)

func item(amount money.Paise) LineItem {
	return LineItem{FeeComponentID: uuid.New(), OriginalAmount: amount}
}

func waivedItem(amount money.Paise, reason string) LineItem {
	return LineItem{FeeComponentID: uuid.New(), OriginalAmount: amount, Waived: true, WaiverReason: &reason}
}

func TestComputeTotals_SimpleSum(t *testing.T) {
	got, err := ComputeTotals([]LineItem{item(500000), item(120000), item(30000)}, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, money.Paise(650000), got.Gross)
	assert.Equal(t, money.Paise(0), got.Waived)
	assert.Equal(t, money.Paise(650000), got.Net)
}

func TestComputeTotals_WaivedStaysInGross(t *testing.T) {
	got, err := ComputeTotals([]LineItem{item(500000), waivedItem(120000, "yatim piatu")}, 0, 0)
	require.NoError(t, err)

	// gross tetap, net turun sebesar item yang di-waive
	assert.Equal(t, money.Paise(620000), got.Gross)
	assert.Equal(t, money.Paise(120000), got.Waived)
	assert.Equal(t, money.Paise(500000), got.Net)
}

func TestComputeTotals_WaiverNeedsReason(t *testing.T) {
	empty := "   "
	_, err := ComputeTotals([]LineItem{
		{FeeComponentID: uuid.New(), OriginalAmount: 10000, Waived: true, WaiverReason: &empty},
	}, 0, 0)
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	_, err = ComputeTotals([]LineItem{
		{FeeComponentID: uuid.New(), OriginalAmount: 10000, Waived: true},
	}, 0, 0)
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestComputeTotals_RejectsEmptyAndNonPositive(t *testing.T) {
	_, err := ComputeTotals(nil, 0, 0)
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	_, err = ComputeTotals([]LineItem{item(0)}, 0, 0)
	require.Error(t, err)

	_, err = ComputeTotals([]LineItem{item(-500)}, 0, 0)
	require.Error(t, err)
}

func TestComputeTotals_DiscountsClampToGross(t *testing.T) {
	// scholarship + custom melebihi gross → net 0, bukan negatif
	got, err := ComputeTotals([]LineItem{item(400000)}, 300000, 250000)
	require.NoError(t, err)
	assert.Equal(t, money.Paise(0), got.Net)

	// kombinasi waiver + discount juga tidak boleh negatif
	got, err = ComputeTotals([]LineItem{item(400000), waivedItem(100000, "beasiswa penuh")}, 450000, 0)
	require.NoError(t, err)
	assert.Equal(t, money.Paise(0), got.Net)
}

func TestComputeTotals_PercentageScenario(t *testing.T) {
	// gross 2000000, scholarship 25% = 500000 → net 1500000
	got, err := ComputeTotals([]LineItem{item(1200000), item(800000)}, 500000, 0)
	require.NoError(t, err)
	assert.Equal(t, money.Paise(2000000), got.Gross)
	assert.Equal(t, money.Paise(1500000), got.Net)
}

func TestComputeTotals_NetNeverNegativeProperty(t *testing.T) {
	grosses := []money.Paise{1, 999, 40000, 650000, 10000000}
	discounts := []money.Paise{0, 1, 39999, 40000, 650000, 99999999}

	for _, g := range grosses {
		for _, sch := range discounts {
			for _, cus := range discounts {
				got, err := ComputeTotals([]LineItem{item(g)}, sch, cus)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, got.Net, money.Paise(0))
				assert.LessOrEqual(t, got.Net, got.Gross)
			}
		}
	}
}

func TestNewStructure_PendingStartsAtNet(t *testing.T) {
	items := []LineItem{item(500000), waivedItem(100000, "anak guru")}
	totals, err := ComputeTotals(items, 50000, 0)
	require.NoError(t, err)

	batchID := uuid.New()
	s, rows := NewStructure(uuid.New(), uuid.New(), uuid.New(), &batchID, items, totals)

	assert.Equal(t, int64(totals.Net), s.StudentFeeStructureNetAmount)
	assert.Equal(t, int64(totals.Net), s.StudentFeeStructurePendingAmount)
	require.Len(t, rows, 2)
	assert.True(t, rows[1].StudentFeeStructureItemIsWaived)
	assert.NotNil(t, rows[1].StudentFeeStructureItemWaiverReason)
}
