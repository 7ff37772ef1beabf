package streak

import (
	"sort"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/period"
)

// Index is the set of distinct periods in which a habit has at least one
// completion. Statistics are always computed over this set, never over the
// raw completion count.
type Index struct {
	keys           []string
	representative map[string]time.Time
}

// BuildIndex groups completions by period key under the given cadence.
// Duplicate completions in a period collapse to one entry; the earliest
// instant is kept as the period's representative. The representative is
// informational only and never feeds back into statistics.
func BuildIndex(completions []models.Completion, c period.Cadence) Index {
	representative := make(map[string]time.Time, len(completions))
	for _, completion := range completions {
		key := period.Key(completion.CompletedAt, c)
		if existing, ok := representative[key]; !ok || completion.CompletedAt.Before(existing) {
			representative[key] = completion.CompletedAt
		}
	}

	keys := make([]string, 0, len(representative))
	for key := range representative {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return Index{keys: keys, representative: representative}
}

// Keys returns the period labels in ascending order. The returned slice is
// shared; callers must not modify it.
func (i Index) Keys() []string {
	return i.keys
}

// Has reports whether the period with the given label holds a completion.
func (i Index) Has(key string) bool {
	_, ok := i.representative[key]
	return ok
}

// Representative returns the earliest completion instant recorded for the
// period, if any.
func (i Index) Representative(key string) (time.Time, bool) {
	t, ok := i.representative[key]
	return t, ok
}

// Len is the number of distinct completed periods.
func (i Index) Len() int {
	return len(i.keys)
}
