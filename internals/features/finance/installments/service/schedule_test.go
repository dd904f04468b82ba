package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"

	emiModel "schoolku_backend/internals/features/finance/emiplans/model"
	emiService "schoolku_backend/internals/features/finance/emiplans/service"
	"schoolku_backend/internals/helpers/money"
)

func TestSplitAmounts_ReconciliationProperty(t *testing.T) {
	// Properti: Σ amount == net PERSIS, untuk berbagai net × count.
	nets := []money.Paise{
		1, 2, 99, 101,
		money.FromRupees(1), money.FromRupees(999),
		money.FromRupees(10_000), money.FromRupees(33_333),
		money.FromRupees(10_000_000),
	}
	for count := 1; count <= 12; count++ {
		parts, err := emiService.GenerateSplit(count)
		require.NoError(t, err)

		for _, net := range nets {
			amounts, err := SplitAmounts(net, parts)
			require.NoError(t, err, "net=%d count=%d", net, count)
			require.Len(t, amounts, count)

			var sum money.Paise
			for _, a := range amounts {
				assert.GreaterOrEqual(t, a, money.Paise(0), "net=%d count=%d", net, count)
				sum += a
			}
			assert.Equal(t, net, sum, "net=%d count=%d", net, count)
		}
	}
}

func TestSplitAmounts_ConcreteThreeWay(t *testing.T) {
	// net 10.000 dengan split [33,33,34] → [3.300, 3.300, 3.400]
	parts, err := emiService.GenerateSplit(3)
	require.NoError(t, err)

	amounts, err := SplitAmounts(money.FromRupees(10_000), parts)
	require.NoError(t, err)
	assert.Equal(t, money.FromRupees(3_300), amounts[0])
	assert.Equal(t, money.FromRupees(3_300), amounts[1])
	assert.Equal(t, money.FromRupees(3_400), amounts[2])
}

func TestSplitAmounts_ZeroNet(t *testing.T) {
	parts, _ := emiService.GenerateSplit(4)
	amounts, err := SplitAmounts(0, parts)
	require.NoError(t, err)
	for _, a := range amounts {
		assert.Equal(t, money.Paise(0), a)
	}
}

func TestSplitAmounts_Rejects(t *testing.T) {
	parts, _ := emiService.GenerateSplit(2)
	_, err := SplitAmounts(-1, parts)
	assert.Error(t, err)
	_, err = SplitAmounts(money.FromRupees(100), nil)
	assert.Error(t, err)
}

func TestBuildInstallments_DueDatesAndNumbers(t *testing.T) {
	parts := []emiModel.SplitPart{
		{Percent: 50, DueDaysFromStart: 0},
		{Percent: 50, DueDaysFromStart: 180},
	}
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	rows, err := BuildInstallments(uuid.New(), uuid.New(), money.FromRupees(5_000), start, parts)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0].InstallmentNumber)
	assert.Equal(t, 2, rows[1].InstallmentNumber)
	assert.Equal(t, start, rows[0].InstallmentDueDate)
	assert.Equal(t, start.AddDate(0, 0, 180), rows[1].InstallmentDueDate)
	assert.Equal(t, int64(money.FromRupees(2_500)), rows[0].InstallmentAmount)
	assert.Equal(t, int64(money.FromRupees(2_500)), rows[1].InstallmentAmount)
}
