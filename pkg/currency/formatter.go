// Package currency formats rupee amounts for display.
package currency

import "strconv"

// FormatINR renders amount in whole rupees with the rupee sign and Indian
// digit grouping: the last three digits, then groups of two
// (₹1,50,000; ₹12,34,56,789).
func FormatINR(amount int64) string {
	negative := amount < 0
	digits := strconv.FormatInt(amount, 10)
	if negative {
		digits = digits[1:]
	}

	result := "₹" + groupIndian(digits)
	if negative {
		result = "-" + result
	}
	return result
}

func groupIndian(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	head, tail := s[:n-3], s[n-3:]
	out := make([]byte, 0, n+n/2)
	// An odd-length head starts with a single digit before the pairs.
	if len(head)%2 == 1 {
		out = append(out, head[0], ',')
		head = head[1:]
	}
	for i := 0; i < len(head); i += 2 {
		out = append(out, head[i], head[i+1], ',')
	}
	return string(append(out, tail...))
}
