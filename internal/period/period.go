package period

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
)

// Cadence is the repetition unit of a habit.
type Cadence string

const (
	Daily   Cadence = "daily"
	Weekly  Cadence = "weekly"
	Monthly Cadence = "monthly"
)

// ParseCadence normalizes a cadence string. Matching is case-insensitive;
// anything unrecognized (including empty) behaves as daily.
func ParseCadence(s string) Cadence {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weekly":
		return Weekly
	case "monthly":
		return Monthly
	default:
		return Daily
	}
}

// Key maps an instant to its canonical period label under the given cadence:
// daily "YYYY-MM-DD", weekly "{isoYear}-W{week:02}" with Monday-start
// ISO-8601 week numbering, monthly "YYYY-MM". The instant's own location is
// used, so all callers see the same local calendar.
func Key(t time.Time, c Cadence) string {
	switch c {
	case Weekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case Monthly:
		return t.Format(constants.MonthFormat)
	default:
		return t.Format(constants.DateFormat)
	}
}

// Prev returns the label of the period immediately before key.
//
// Weekly rollback is a fixed 52 weeks: stepping back from week 1 always
// lands on week 52 of the prior year, even for ISO years that have 53
// weeks. The upstream data was produced with the same simplification, so
// keeping it preserves streak continuity for existing histories.
func Prev(key string, c Cadence) string {
	switch c {
	case Weekly:
		yearStr, weekStr, ok := strings.Cut(key, "-W")
		if !ok {
			return key
		}
		year, err1 := strconv.Atoi(yearStr)
		week, err2 := strconv.Atoi(weekStr)
		if err1 != nil || err2 != nil {
			return key
		}
		week--
		if week < 1 {
			year--
			week = 52
		}
		return fmt.Sprintf("%d-W%02d", year, week)
	case Monthly:
		t, err := time.Parse(constants.MonthFormat, key)
		if err != nil {
			return key
		}
		year, month := t.Year(), int(t.Month())-1
		if month < 1 {
			year--
			month = 12
		}
		return fmt.Sprintf("%d-%02d", year, month)
	default:
		t, err := time.Parse(constants.DateFormat, key)
		if err != nil {
			return key
		}
		return t.AddDate(0, 0, -1).Format(constants.DateFormat)
	}
}

// Window returns the half-open interval [start, end) of the period
// containing t. Weeks start on Monday, months on the first. The completion
// write path uses this to check whether the period already holds a
// completion before creating another.
func Window(t time.Time, c Cadence) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	switch c {
	case Weekly:
		sinceMonday := (int(start.Weekday()) + 6) % 7
		start = start.AddDate(0, 0, -sinceMonday)
		return start, start.AddDate(0, 0, 7)
	case Monthly:
		start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
		return start, start.AddDate(0, 1, 0)
	default:
		return start, start.AddDate(0, 0, 1)
	}
}
