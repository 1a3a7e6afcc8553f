package trade

import (
	"strconv"
	"strings"
)

// The parsers below implement the tracker's leniency policy: malformed
// numeric input degrades to zero (or to absent, for optional fields)
// instead of rejecting the record. Bad data should never abort a batch.

// ParseSide maps a free-form side or action string onto Buy or Sell by
// its first character, case-insensitive.
func ParseSide(s string) Side {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "b"):
		return Buy
	case strings.HasPrefix(s, "s"):
		return Sell
	}
	return Unknown
}

// NormalizeTicker trims and uppercases a symbol.
func NormalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeAction trims and lower-cases a recommendation action. Actions
// stay free text, but matching against "buy"/"sell" is case-insensitive,
// so normalization must happen on every read path, including hand-edited
// log files.
func NormalizeAction(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseQuantity parses a share count, coercing unparseable input to 0.
func ParseQuantity(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// ParsePrice parses a price, coercing unparseable or empty input to 0.
func ParsePrice(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseOptionalPrice parses a price that may legitimately be absent.
// Empty or unparseable input yields nil rather than zero, so callers can
// tell "no limit given" apart from a zero limit.
func ParseOptionalPrice(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParseOptionalShares parses a share count that may be absent.
func ParseOptionalShares(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}
