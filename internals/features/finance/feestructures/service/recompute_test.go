// file: internals/features/finance/feestructures/service/recompute_test.go
package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/helpers/money"
)

func sum(amounts []money.Paise) money.Paise {
	var s money.Paise
	for _, a := range amounts {
		s += a
	}
	return s
}

func TestSpreadNet_NoPayments_SumsToNet(t *testing.T) {
	slots := []SpreadSlot{{Amount: 330000}, {Amount: 330000}, {Amount: 340000}}

	// net turun 1000000 → 850000 (scholarship baru)
	got := SpreadNet(850000, slots)

	assert.Equal(t, money.Paise(850000), sum(got))
	for _, a := range got {
		assert.GreaterOrEqual(t, a, money.Paise(0))
	}
}

func TestSpreadNet_PaidSlotIsLocked(t *testing.T) {
	slots := []SpreadSlot{
		{Amount: 330000, Paid: 330000}, // lunas
		{Amount: 330000, Paid: 0},
		{Amount: 340000, Paid: 0},
	}

	got := SpreadNet(850000, slots)

	assert.Equal(t, money.Paise(330000), got[0])
	// sisanya menampung 520000
	assert.Equal(t, money.Paise(520000), got[1]+got[2])
	assert.Equal(t, money.Paise(850000), sum(got))
}

func TestSpreadNet_PartialPaymentFloorsAtPaid(t *testing.T) {
	slots := []SpreadSlot{
		{Amount: 500000, Paid: 450000}, // hampir lunas
		{Amount: 500000, Paid: 0},
	}

	// net anjlok ke 500000: slot pertama tidak boleh turun di bawah 450000
	got := SpreadNet(500000, slots)

	assert.GreaterOrEqual(t, got[0], money.Paise(450000))
	assert.Equal(t, money.Paise(500000), sum(got))
	for i, a := range got {
		assert.GreaterOrEqual(t, a, slots[i].Paid, "slot %d di bawah paid", i)
	}
}

func TestSpreadNet_NetBelowCollected_ParksAtPaid(t *testing.T) {
	slots := []SpreadSlot{
		{Amount: 500000, Paid: 400000},
		{Amount: 500000, Paid: 300000},
	}

	// sudah terkumpul 700000, net baru cuma 600000 → parkir di paid
	got := SpreadNet(600000, slots)

	assert.Equal(t, money.Paise(400000), got[0])
	assert.Equal(t, money.Paise(300000), got[1])
}

func TestSpreadNet_IncreaseSpreadsProportionally(t *testing.T) {
	slots := []SpreadSlot{{Amount: 250000}, {Amount: 250000}, {Amount: 250000}, {Amount: 250000}}

	// custom discount dicabut, net naik ke 1100000
	got := SpreadNet(1100000, slots)

	require.Equal(t, money.Paise(1100000), sum(got))
	// bobot sama → pembagian rata, remainder ke slot terakhir
	assert.Equal(t, money.Paise(275000), got[0])
	assert.Equal(t, money.Paise(275000), got[3])
}

func TestSpreadNet_SumProperty(t *testing.T) {
	nets := []money.Paise{0, 1, 99999, 650000, 1000001}
	base := []SpreadSlot{{Amount: 100000}, {Amount: 100000}, {Amount: 100000, Paid: 50000}, {Amount: 100001}}

	for _, net := range nets {
		got := SpreadNet(net, base)
		require.Len(t, got, len(base))
		for i, a := range got {
			assert.GreaterOrEqual(t, a, base[i].Paid)
		}
		// Σ == net selama net masih menutup yang sudah terbayar
		if net >= 50000 {
			assert.Equal(t, net, sum(got), "net=%d", net)
		}
	}
}
