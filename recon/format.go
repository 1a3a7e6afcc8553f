package recon

import "strconv"

// Report fields use fixed precision: 4 decimals for prices, 2 for
// percentages. Undefined values render as the empty string.

// Price formats an optional price to 4 decimal places.
func Price(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 4, 64)
}

// Percent formats an optional percentage to 2 decimal places.
func Percent(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

// Shares formats an optional share count.
func Shares(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
