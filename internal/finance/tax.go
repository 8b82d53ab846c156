package finance

import "strings"

// DefaultHomeState is the jurisdiction whose invoices split GST into
// CGST+SGST halves. Everywhere else gets a single IGST line.
const DefaultHomeState = "Karnataka"

// gstRatePercent is the combined GST rate applied to placement fees.
const gstRatePercent = 18.0

// TaxBreakdown carries the GST components and the resulting total.
type TaxBreakdown struct {
	CGST       int64 `json:"cgst"`
	SGST       int64 `json:"sgst"`
	IGST       int64 `json:"igst"`
	GrandTotal int64 `json:"grand_total"`
}

// ComputeTax applies GST to an invoice subtotal. An intra-state billing
// address (matched against homeState, case-insensitively) splits the rate
// into two equal halves; anything else, including blank or unrecognized
// states, falls through to the single inter-state component.
//
// The half is rounded per component and then doubled. Halving a pre-rounded
// 18% figure can differ by a rupee, so the order here must not change.
func ComputeTax(subtotal int64, billingState, homeState string) TaxBreakdown {
	if homeState == "" {
		homeState = DefaultHomeState
	}
	if strings.EqualFold(strings.TrimSpace(billingState), homeState) {
		half := roundRupees(float64(subtotal) * gstRatePercent / 2 / 100)
		return TaxBreakdown{
			CGST:       half,
			SGST:       half,
			GrandTotal: subtotal + 2*half,
		}
	}
	tax := roundRupees(float64(subtotal) * gstRatePercent / 100)
	return TaxBreakdown{
		IGST:       tax,
		GrandTotal: subtotal + tax,
	}
}
