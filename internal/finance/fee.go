package finance

import (
	"math"
	"strconv"
	"strings"

	"github.com/spec-kit/recruiting-pipeline/internal/domain"
)

// LineAmount computes the placement fee for one candidate in whole rupees.
//
// Percentage takes round(ctc * percentage / 100), Flat takes the flat amount
// rounded, and Both rounds each component independently before summing. The
// two independent roundings under Both are load-bearing: rounding after the
// sum can differ by a rupee on .5 boundaries.
func LineAmount(ctc, agreementPercentage, flatPayAmount float64, payout domain.PayoutOption) int64 {
	switch payout {
	case domain.PayoutFlat:
		return roundRupees(flatPayAmount)
	case domain.PayoutBoth:
		return roundRupees(ctc*agreementPercentage/100) + roundRupees(flatPayAmount)
	default:
		// Percentage, and the fallback for unrecognized payout options.
		return roundRupees(ctc * agreementPercentage / 100)
	}
}

// ParseAmount reads a numeric field leniently: comma separators stripped,
// anything unparseable treated as zero.
func ParseAmount(raw string) float64 {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if cleaned == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0
	}
	return parsed
}

func roundRupees(v float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int64(math.Round(v))
}
