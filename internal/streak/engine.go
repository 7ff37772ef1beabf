package streak

import (
	"time"

	"github.com/julianstephens/habitual/internal/period"
)

// Stats are the three streak statistics for one habit.
type Stats struct {
	// Current is the count of consecutive completed periods ending at and
	// including the present period. Zero whenever the present period has no
	// completion, regardless of past history.
	Current int `json:"current"`
	// Best is the longest consecutive run anywhere in history.
	Best int `json:"best"`
	// Total is the number of distinct completed periods.
	Total int `json:"total"`
}

// Compute derives the statistics for one habit from its period index. It is
// a pure function of (cadence, index, now): no state is retained between
// calls and the index is not mutated, so it is safe to run on every change
// notification without tracking deltas.
func Compute(c period.Cadence, idx Index, now time.Time) Stats {
	stats := Stats{Total: idx.Len()}

	// Walk back from the present period while each predecessor is present.
	for key := period.Key(now, c); idx.Has(key); key = period.Prev(key, c) {
		stats.Current++
	}

	// Longest run: one ascending pass, extending whenever the previous key
	// seen is the predecessor of the current one.
	running := 0
	prev := ""
	for _, key := range idx.Keys() {
		if prev != "" && period.Prev(key, c) == prev {
			running++
		} else {
			running = 1
		}
		if running > stats.Best {
			stats.Best = running
		}
		prev = key
	}

	return stats
}
