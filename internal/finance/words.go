package finance

import "strings"

var onesWords = [...]string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = [...]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// AmountInWords renders a non-negative rupee amount in the Indian numbering
// convention (Crore/Lakh/Thousand/Hundred), e.g.
// 1234567 -> "Twelve Lakh Thirty Four Thousand Five Hundred and Sixty Seven Only".
// "and" joins only the final two-digit group, and only when a higher group
// precedes it.
func AmountInWords(amount int64) string {
	if amount <= 0 {
		return "Zero Only"
	}

	crore := amount / 10000000
	amount %= 10000000
	lakh := amount / 100000
	amount %= 100000
	thousand := amount / 1000
	amount %= 1000
	hundred := amount / 100
	rest := amount % 100

	var parts []string
	if crore > 0 {
		// Amounts of 100 crore and up recurse so the crore group itself is
		// grouped the Indian way.
		if crore > 99 {
			parts = append(parts, strings.TrimSuffix(AmountInWords(crore), " Only"), "Crore")
		} else {
			parts = append(parts, twoDigitWords(crore), "Crore")
		}
	}
	if lakh > 0 {
		parts = append(parts, twoDigitWords(lakh), "Lakh")
	}
	if thousand > 0 {
		parts = append(parts, twoDigitWords(thousand), "Thousand")
	}
	if hundred > 0 {
		parts = append(parts, onesWords[hundred], "Hundred")
	}
	if rest > 0 {
		if len(parts) > 0 {
			parts = append(parts, "and")
		}
		parts = append(parts, twoDigitWords(rest))
	}
	parts = append(parts, "Only")
	return strings.Join(parts, " ")
}

func twoDigitWords(n int64) string {
	if n < 20 {
		return onesWords[n]
	}
	if n%10 == 0 {
		return tensWords[n/10]
	}
	return tensWords[n/10] + " " + onesWords[n%10]
}
