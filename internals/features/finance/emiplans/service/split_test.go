package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/features/finance/emiplans/model"
)

func TestGenerateSplit_SumAlways100(t *testing.T) {
	// Properti: untuk semua count di [1,36], Σ percent == 100 persis.
	for count := 1; count <= 36; count++ {
		parts, err := GenerateSplit(count)
		require.NoError(t, err, "count=%d", count)
		require.Len(t, parts, count)

		sum := 0
		for _, p := range parts {
			sum += p.Percent
		}
		assert.Equal(t, 100, sum, "count=%d", count)
	}
}

func TestGenerateSplit_RemainderGoesToLast(t *testing.T) {
	// count=3 → [33, 33, 34], BUKAN [34, 33, 33]
	parts, err := GenerateSplit(3)
	require.NoError(t, err)
	assert.Equal(t, 33, parts[0].Percent)
	assert.Equal(t, 33, parts[1].Percent)
	assert.Equal(t, 34, parts[2].Percent)
}

func TestGenerateSplit_DueDayOffsets(t *testing.T) {
	parts, err := GenerateSplit(4)
	require.NoError(t, err)
	// floor(365/4) = 91
	for i, p := range parts {
		assert.Equal(t, i*91, p.DueDaysFromStart)
	}
}

func TestGenerateSplit_CountOutOfRange(t *testing.T) {
	_, err := GenerateSplit(0)
	assert.Error(t, err)
	_, err = GenerateSplit(37)
	assert.Error(t, err)
	_, err = GenerateSplit(-1)
	assert.Error(t, err)
}

func TestValidateSplit(t *testing.T) {
	ok := []model.SplitPart{{Percent: 50, DueDaysFromStart: 0}, {Percent: 50, DueDaysFromStart: 180}}
	assert.NoError(t, ValidateSplit(2, ok))

	tests := []struct {
		name  string
		count int
		parts []model.SplitPart
	}{
		{"sum not 100", 2, []model.SplitPart{{Percent: 50}, {Percent: 49, DueDaysFromStart: 10}}},
		{"len mismatch", 3, ok},
		{"zero percent", 2, []model.SplitPart{{Percent: 0}, {Percent: 100, DueDaysFromStart: 10}}},
		{"due days decreasing", 2, []model.SplitPart{{Percent: 50, DueDaysFromStart: 30}, {Percent: 50, DueDaysFromStart: 10}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateSplit(tt.count, tt.parts))
		})
	}
}
