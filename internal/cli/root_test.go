package cli

import (
	"testing"
	"time"

	"github.com/julianstephens/habitual/internal/period"
)

func TestParseDayEmptyReturnsNow(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	got, err := ParseDay("", now)
	if err != nil {
		t.Fatalf("ParseDay failed: %v", err)
	}
	if !got.Equal(now) {
		t.Errorf("expected %v, got %v", now, got)
	}
}

func TestParseDayValidDate(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	got, err := ParseDay("2024-02-29", now)
	if err != nil {
		t.Fatalf("ParseDay failed: %v", err)
	}
	if got.Year() != 2024 || got.Month() != time.February || got.Day() != 29 {
		t.Errorf("expected 2024-02-29, got %v", got)
	}
	if got.Hour() != 12 {
		t.Errorf("expected noon anchor, got hour %d", got.Hour())
	}
	if got.Location() != now.Location() {
		t.Errorf("expected location %v, got %v", now.Location(), got.Location())
	}
}

func TestParseDayInvalidFormats(t *testing.T) {
	now := time.Now()
	for _, input := range []string{"02/29/2024", "2024-13-01", "yesterday", "2024-1-5"} {
		if _, err := ParseDay(input, now); err == nil {
			t.Errorf("expected error for input %q", input)
		}
	}
}

func TestPeriodNoun(t *testing.T) {
	tests := []struct {
		cadence  period.Cadence
		expected string
	}{
		{period.Daily, "today"},
		{period.Weekly, "this week"},
		{period.Monthly, "this month"},
	}
	for _, tt := range tests {
		if got := PeriodNoun(tt.cadence); got != tt.expected {
			t.Errorf("PeriodNoun(%s) = %q, expected %q", tt.cadence, got, tt.expected)
		}
	}
}

func TestTruncateTitle(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		width    int
		expected string
	}{
		{"pads short title", "Read", 8, "Read    "},
		{"exact width unchanged", "Exercise", 8, "Exercise"},
		{"truncates with ellipsis", "Practice guitar daily", 10, "Practic..."},
		{"narrow width hard cut", "Meditate", 4, "Medi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateTitle(tt.title, tt.width); got != tt.expected {
				t.Errorf("TruncateTitle(%q, %d) = %q, expected %q", tt.title, tt.width, got, tt.expected)
			}
		})
	}
}

func TestFormatCadenceNormalizes(t *testing.T) {
	if got := FormatCadence("WEEKLY"); got != "weekly" {
		t.Errorf("expected weekly, got %q", got)
	}
	if got := FormatCadence(""); got != "daily" {
		t.Errorf("expected daily default, got %q", got)
	}
}
