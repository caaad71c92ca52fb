package domain_test

import (
	"testing"

	"github.com/boddenberg/bankup-app-go/internal/domain"
)

func TestDisplayToISO(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"31/12/2025", "2025-12-31", false},
		{"01/01/2000", "2000-01-01", false},
		{" 29/02/2024 ", "2024-02-29", false},
		{"29/02/2025", "", true},
		{"31/02/2025", "", true},
		{"2025-12-31", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := domain.DisplayToISO(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("DisplayToISO(%q): expected error, got %q", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("DisplayToISO(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("DisplayToISO(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestISOToDisplay(t *testing.T) {
	got, err := domain.ISOToDisplay("1990-05-17")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != "17/05/1990" {
		t.Errorf("expected '17/05/1990', got '%s'", got)
	}

	got, err = domain.ISOToDisplay("1990-05-17T00:00:00.000Z")
	if err != nil {
		t.Fatalf("expected RFC3339 to parse, got %v", err)
	}
	if got != "17/05/1990" {
		t.Errorf("expected '17/05/1990', got '%s'", got)
	}

	if _, err := domain.ISOToDisplay("17/05/1990"); err == nil {
		t.Error("expected error for display-formatted input")
	}
}

func TestDates_RoundTrip(t *testing.T) {
	for _, display := range []string{"01/01/1970", "28/02/2023", "29/02/2024", "15/08/2031", "31/12/1999"} {
		iso, err := domain.DisplayToISO(display)
		if err != nil {
			t.Fatalf("DisplayToISO(%q): %v", display, err)
		}
		back, err := domain.ISOToDisplay(iso)
		if err != nil {
			t.Fatalf("ISOToDisplay(%q): %v", iso, err)
		}
		if back != display {
			t.Errorf("round trip %q -> %q -> %q", display, iso, back)
		}
	}
}

func TestMonthKey(t *testing.T) {
	if got := domain.MonthKey("2025-03-09"); got != "2025-03" {
		t.Errorf("expected '2025-03', got '%s'", got)
	}
	if got := domain.MonthKey("garbage"); got != "" {
		t.Errorf("expected empty month key, got '%s'", got)
	}
}
