package trade

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-day format used throughout the tracker.
const DateLayout = "2006-01-02"

// ParseDate normalizes a user-supplied date string. The literal "today"
// (case-insensitive) resolves to the current calendar date. Anything that
// is not "today" or a valid YYYY-MM-DD date is a usage error.
func ParseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "today") {
		return time.Now().Format(DateLayout), nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("date must be YYYY-MM-DD or 'today', got %q", s)
	}
	return t.Format(DateLayout), nil
}
