package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTax(t *testing.T) {
	tests := []struct {
		name     string
		subtotal int64
		state    string
		expected TaxBreakdown
	}{
		{
			name:     "home state splits into cgst and sgst",
			subtotal: 100000,
			state:    "Karnataka",
			expected: TaxBreakdown{CGST: 9000, SGST: 9000, GrandTotal: 118000},
		},
		{
			name:     "home state match is case-insensitive",
			subtotal: 100000,
			state:    " karnataka ",
			expected: TaxBreakdown{CGST: 9000, SGST: 9000, GrandTotal: 118000},
		},
		{
			name:     "other state gets single igst",
			subtotal: 100000,
			state:    "Delhi",
			expected: TaxBreakdown{IGST: 18000, GrandTotal: 118000},
		},
		{
			name:     "blank state falls through to igst",
			subtotal: 50000,
			state:    "",
			expected: TaxBreakdown{IGST: 9000, GrandTotal: 59000},
		},
		{
			name:     "half is rounded per component then doubled",
			subtotal: 105, // 9% = 9.45 -> 9 each; 18% of 105 = 18.9 -> 19
			state:    "Karnataka",
			expected: TaxBreakdown{CGST: 9, SGST: 9, GrandTotal: 123},
		},
		{
			name:     "same subtotal inter-state rounds differently",
			subtotal: 105,
			state:    "Kerala",
			expected: TaxBreakdown{IGST: 19, GrandTotal: 124},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeTax(tt.subtotal, tt.state, ""))
		})
	}
}

func TestComputeTax_CustomHomeState(t *testing.T) {
	got := ComputeTax(100000, "Maharashtra", "Maharashtra")
	assert.Equal(t, TaxBreakdown{CGST: 9000, SGST: 9000, GrandTotal: 118000}, got)
}
