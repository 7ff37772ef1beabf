package streak

import (
	"sort"

	"github.com/julianstephens/habitual/internal/models"
)

// HabitStats pairs a habit with its computed statistics for presentation.
type HabitStats struct {
	Habit models.Habit `json:"habit"`
	Stats
}

// Rank returns the habits ordered by current streak descending, ties broken
// by best streak, then by total completed periods. The sort is stable and
// the input slice is left untouched.
func Rank(list []HabitStats) []HabitStats {
	ranked := make([]HabitStats, len(list))
	copy(ranked, list)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Current != ranked[j].Current {
			return ranked[i].Current > ranked[j].Current
		}
		if ranked[i].Best != ranked[j].Best {
			return ranked[i].Best > ranked[j].Best
		}
		return ranked[i].Total > ranked[j].Total
	})

	return ranked
}

// Top returns the first n ranked habits.
func Top(list []HabitStats, n int) []HabitStats {
	ranked := Rank(list)
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
