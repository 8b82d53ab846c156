package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/recruiting-pipeline/internal/domain"
)

func TestLineAmount(t *testing.T) {
	tests := []struct {
		name     string
		ctc      float64
		pct      float64
		flat     float64
		payout   domain.PayoutOption
		expected int64
	}{
		{
			name:     "percentage of ctc",
			ctc:      1200000,
			pct:      8.33,
			payout:   domain.PayoutPercentage,
			expected: 99960,
		},
		{
			name:     "flat ignores ctc",
			ctc:      1200000,
			pct:      8.33,
			flat:     75000,
			payout:   domain.PayoutFlat,
			expected: 75000,
		},
		{
			name:     "both sums independent roundings",
			ctc:      1000000,
			pct:      5,
			flat:     50000,
			payout:   domain.PayoutBoth,
			expected: 100000,
		},
		{
			name:     "both rounds each component before summing",
			ctc:      10.1,
			pct:      5,
			flat:     0.5,
			payout:   domain.PayoutBoth,
			expected: 2, // round(0.505)=1 + round(0.5)=1, not round(1.005)=1
		},
		{
			name:     "zero inputs produce zero",
			payout:   domain.PayoutPercentage,
			expected: 0,
		},
		{
			name:     "unrecognized payout falls back to percentage",
			ctc:      500000,
			pct:      10,
			flat:     99999,
			payout:   domain.PayoutOption("MAGIC"),
			expected: 50000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LineAmount(tt.ctc, tt.pct, tt.flat, tt.payout))
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw      string
		expected float64
	}{
		{"1200000", 1200000},
		{"12,00,000", 1200000},
		{" 4500.50 ", 4500.5},
		{"", 0},
		{"n/a", 0},
		{"12LPA", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseAmount(tt.raw), "raw=%q", tt.raw)
	}
}
