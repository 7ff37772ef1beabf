package period

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

func TestParseCadence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Cadence
	}{
		{name: "daily", in: "daily", want: Daily},
		{name: "weekly", in: "weekly", want: Weekly},
		{name: "monthly", in: "monthly", want: Monthly},
		{name: "mixed case", in: "WeeKLy", want: Weekly},
		{name: "padded", in: " monthly ", want: Monthly},
		{name: "empty falls back to daily", in: "", want: Daily},
		{name: "unknown falls back to daily", in: "fortnightly", want: Daily},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseCadence(tt.in); got != tt.want {
				t.Errorf("ParseCadence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		name    string
		instant time.Time
		cadence Cadence
		want    string
	}{
		{name: "daily", instant: date(2024, time.January, 5), cadence: Daily, want: "2024-01-05"},
		{name: "monthly", instant: date(2024, time.January, 5), cadence: Monthly, want: "2024-01"},
		{name: "weekly mid-year", instant: date(2024, time.June, 12), cadence: Weekly, want: "2024-W24"},
		{name: "weekly monday start of iso year", instant: date(2024, time.January, 1), cadence: Weekly, want: "2024-W01"},
		{name: "weekly sunday belongs to prior iso year", instant: date(2023, time.January, 1), cadence: Weekly, want: "2022-W52"},
		{name: "weekly late december in next iso year", instant: date(2024, time.December, 30), cadence: Weekly, want: "2025-W01"},
		{name: "weekly 53-week year", instant: date(2021, time.January, 1), cadence: Weekly, want: "2020-W53"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(tt.instant, tt.cadence); got != tt.want {
				t.Errorf("Key(%v, %q) = %q, want %q", tt.instant, tt.cadence, got, tt.want)
			}
		})
	}
}

func TestPrev(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		cadence Cadence
		want    string
	}{
		{name: "daily", key: "2024-01-05", cadence: Daily, want: "2024-01-04"},
		{name: "daily across month", key: "2024-03-01", cadence: Daily, want: "2024-02-29"},
		{name: "daily across year", key: "2024-01-01", cadence: Daily, want: "2023-12-31"},
		{name: "weekly", key: "2024-W24", cadence: Weekly, want: "2024-W23"},
		{name: "weekly rolls back to week 52", key: "2024-W01", cadence: Weekly, want: "2023-W52"},
		// Fixed 52-week rollback even though ISO 2020 has 53 weeks.
		{name: "weekly rollback ignores 53-week years", key: "2021-W01", cadence: Weekly, want: "2020-W52"},
		{name: "monthly", key: "2024-06", cadence: Monthly, want: "2024-05"},
		{name: "monthly across year", key: "2024-01", cadence: Monthly, want: "2023-12"},
		{name: "malformed key returned unchanged", key: "bogus", cadence: Weekly, want: "bogus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Prev(tt.key, tt.cadence); got != tt.want {
				t.Errorf("Prev(%q, %q) = %q, want %q", tt.key, tt.cadence, got, tt.want)
			}
		})
	}
}

// Prev must be the exact inverse of stepping Key back one period, away from
// the 53-week rollback edge.
func TestPrevInvertsKey(t *testing.T) {
	instants := []time.Time{
		date(2024, time.March, 14),
		date(2024, time.July, 1),
		date(2023, time.November, 20),
		date(2022, time.June, 6),
	}

	for _, instant := range instants {
		if got, want := Prev(Key(instant, Daily), Daily), Key(instant.AddDate(0, 0, -1), Daily); got != want {
			t.Errorf("daily: Prev(Key(%v)) = %q, want %q", instant, got, want)
		}
		if got, want := Prev(Key(instant, Weekly), Weekly), Key(instant.AddDate(0, 0, -7), Weekly); got != want {
			t.Errorf("weekly: Prev(Key(%v)) = %q, want %q", instant, got, want)
		}
		if got, want := Prev(Key(instant, Monthly), Monthly), Key(instant.AddDate(0, -1, 0), Monthly); got != want {
			t.Errorf("monthly: Prev(Key(%v)) = %q, want %q", instant, got, want)
		}
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name      string
		instant   time.Time
		cadence   Cadence
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "daily",
			instant:   date(2024, time.January, 10),
			cadence:   Daily,
			wantStart: time.Date(2024, time.January, 10, 0, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2024, time.January, 11, 0, 0, 0, 0, time.Local),
		},
		{
			name:      "weekly from a wednesday",
			instant:   date(2024, time.January, 10),
			cadence:   Weekly,
			wantStart: time.Date(2024, time.January, 8, 0, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2024, time.January, 15, 0, 0, 0, 0, time.Local),
		},
		{
			name:      "weekly from a sunday stays in same monday week",
			instant:   date(2024, time.January, 14),
			cadence:   Weekly,
			wantStart: time.Date(2024, time.January, 8, 0, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2024, time.January, 15, 0, 0, 0, 0, time.Local),
		},
		{
			name:      "monthly",
			instant:   date(2024, time.February, 20),
			cadence:   Monthly,
			wantStart: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := Window(tt.instant, tt.cadence)
			if !start.Equal(tt.wantStart) {
				t.Errorf("Window() start = %v, want %v", start, tt.wantStart)
			}
			if !end.Equal(tt.wantEnd) {
				t.Errorf("Window() end = %v, want %v", end, tt.wantEnd)
			}
		})
	}
}
