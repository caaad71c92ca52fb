package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DisplayDateLayout is how dates are typed and shown (DD/MM/YYYY).
	DisplayDateLayout = "02/01/2006"
	// ISODateLayout is how dates travel on the wire (YYYY-MM-DD).
	ISODateLayout = "2006-01-02"
)

// DisplayToISO converts "31/12/2025" to "2025-12-31". Impossible dates such
// as 31/02/2025 are rejected by time.Parse.
func DisplayToISO(s string) (string, error) {
	t, err := time.Parse(DisplayDateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid display date %q: %w", s, err)
	}
	return t.Format(ISODateLayout), nil
}

// ISOToDisplay converts "2025-12-31" (or an RFC3339 timestamp) to "31/12/2025".
func ISOToDisplay(s string) (string, error) {
	t, err := ParseISODate(s)
	if err != nil {
		return "", err
	}
	return t.Format(DisplayDateLayout), nil
}

// ParseISODate accepts YYYY-MM-DD or RFC3339 and returns the calendar day in UTC.
func ParseISODate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(ISODateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid ISO date %q: %w", s, err)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// MonthKey returns "YYYY-MM" for an ISO date, or "" when it does not parse.
func MonthKey(iso string) string {
	t, err := ParseISODate(iso)
	if err != nil {
		return ""
	}
	return t.Format("2006-01")
}

// DisplayOrRaw formats an ISO date for display, falling back to the input.
func DisplayOrRaw(iso string) string {
	if d, err := ISOToDisplay(iso); err == nil {
		return d
	}
	return iso
}
