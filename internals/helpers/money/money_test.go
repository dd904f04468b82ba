package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentOf(t *testing.T) {
	tests := []struct {
		name string
		p    Paise
		pct  int64
		want Paise
	}{
		{"simple", FromRupees(20_000), 25, FromRupees(5_000)},
		{"rounds half up", Paise(101), 50, Paise(51)}, // 50.5 → 51
		{"rounds down below half", Paise(1001), 33, Paise(330)},
		{"zero pct", FromRupees(100), 0, 0},
		{"zero amount", 0, 50, 0},
		{"hundred pct", Paise(12345), 100, Paise(12345)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PercentOf(tt.p, tt.pct))
		})
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, Paise(0), Clamp(-5, 0, 100))
	assert.Equal(t, Paise(100), Clamp(150, 0, 100))
	assert.Equal(t, Paise(42), Clamp(42, 0, 100))
}

func TestString(t *testing.T) {
	assert.Equal(t, "₹1234.50", Paise(123450).String())
	assert.Equal(t, "₹0.05", Paise(5).String())
	assert.Equal(t, "-₹10.00", Paise(-1000).String())
}
