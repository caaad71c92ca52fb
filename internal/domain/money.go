package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// 1200 | 1.200 | 1.234.567 | 1200,5 | 1.200,50
	brlAmountPattern = regexp.MustCompile(`^(\d+|\d{1,3}(\.\d{3})+)(,\d{1,2})?$`)
	// 1200.5 | 1200.50
	dotDecimalPattern = regexp.MustCompile(`^\d+\.\d{1,2}$`)
)

// ParseBRL parses amounts typed in Brazilian format: "1200", "1.200,50",
// "R$ 1.200,50" or "1200.50". Dots followed by groups of three digits are
// thousands separators ("1.200" is one thousand two hundred). Any other
// shape, such as "1.200.50" or "1,200.50", is rejected.
func ParseBRL(s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimPrefix(raw, "R$")
	raw = strings.ReplaceAll(raw, " ", "")
	raw = strings.ReplaceAll(raw, "\u00a0", "")
	if raw == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	switch {
	case brlAmountPattern.MatchString(raw):
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.Replace(raw, ",", ".", 1)
	case dotDecimalPattern.MatchString(raw):
	default:
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// FormatBRL renders d as "R$ 1.234,56".
func FormatBRL(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	intPart, cents, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	sign := ""
	if d.IsNegative() && !d.Round(2).IsZero() {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%s", sign, b.String(), cents)
}

// ParsePercent parses "2%", "2,5" or "2.5" into a decimal percentage.
// An empty string is zero.
func ParsePercent(s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if raw == "" {
		return decimal.Zero, nil
	}
	raw = strings.Replace(raw, ",", ".", 1)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid percentage %q: %w", s, err)
	}
	return d, nil
}

// FormatPercent renders d as "2,5%".
func FormatPercent(d decimal.Decimal) string {
	return strings.Replace(d.String(), ".", ",", 1) + "%"
}
