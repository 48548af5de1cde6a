package stock

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPolicy_Classify(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		expected Level
	}{
		{
			name:     "zero quantity is out of stock",
			quantity: 0,
			expected: LevelOutOfStock,
		},
		{
			name:     "one is low stock",
			quantity: 1,
			expected: LevelLow,
		},
		{
			name:     "boundary five is low stock",
			quantity: 5,
			expected: LevelLow,
		},
		{
			name:     "boundary six is in stock",
			quantity: 6,
			expected: LevelIn,
		},
		{
			name:     "large quantity is in stock",
			quantity: 1000,
			expected: LevelIn,
		},
		{
			name:     "negative quantity treated as out of stock",
			quantity: -3,
			expected: LevelOutOfStock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Default.Classify(tt.quantity))
		})
	}
}

func TestPolicy_Classify_Partition(t *testing.T) {
	// Три категории разбивают неотрицательные числа без пропусков и пересечений
	for q := 0; q <= 100; q++ {
		level := Default.Classify(q)
		switch {
		case q == 0:
			require.Equal(t, LevelOutOfStock, level, "q=%d", q)
		case q <= 5:
			require.Equal(t, LevelLow, level, "q=%d", q)
		default:
			require.Equal(t, LevelIn, level, "q=%d", q)
		}
	}
}

func TestPolicy_PurchaseCeiling(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		expected int
	}{
		{
			name:     "zero stock gives zero ceiling",
			quantity: 0,
			expected: 0,
		},
		{
			name:     "below cap limited by stock",
			quantity: 3,
			expected: 3,
		},
		{
			name:     "at cap",
			quantity: 10,
			expected: 10,
		},
		{
			name:     "above cap limited by cap",
			quantity: 50,
			expected: 10,
		},
		{
			name:     "negative quantity clamped to zero",
			quantity: -1,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Default.PurchaseCeiling(tt.quantity))
		})
	}
}

func TestPolicy_CustomThresholds(t *testing.T) {
	p := Policy{LowStockMax: 2, PurchaseCap: 3}

	require.Equal(t, LevelLow, p.Classify(2))
	require.Equal(t, LevelIn, p.Classify(3))
	require.Equal(t, 3, p.PurchaseCeiling(100))
}
