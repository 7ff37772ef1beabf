package streak

import (
	"testing"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/period"
)

func dailyCompletions(days ...string) []models.Completion {
	var out []models.Completion
	for _, day := range days {
		t, err := time.ParseInLocation("2006-01-02", day, time.Local)
		if err != nil {
			panic(err)
		}
		out = append(out, completionAt("h1", t.Add(9*time.Hour)))
	}
	return out
}

func TestComputeDailyGapScenario(t *testing.T) {
	// Completions on Jan 1-3, a gap on the 4th, then the 5th; "now" is the 5th.
	idx := BuildIndex(dailyCompletions("2024-01-01", "2024-01-02", "2024-01-03", "2024-01-05"), period.Daily)
	now := time.Date(2024, time.January, 5, 18, 0, 0, 0, time.Local)

	got := Compute(period.Daily, idx, now)
	want := Stats{Current: 1, Best: 3, Total: 4}
	if got != want {
		t.Errorf("Compute() = %+v, want %+v", got, want)
	}
}

func TestComputeWeeklyDeletionBreaksStreak(t *testing.T) {
	// ISO weeks 2024-W01..W03 completed, now in W03.
	w01 := time.Date(2024, time.January, 2, 10, 0, 0, 0, time.Local)
	w02 := time.Date(2024, time.January, 9, 10, 0, 0, 0, time.Local)
	w03 := time.Date(2024, time.January, 16, 10, 0, 0, 0, time.Local)
	now := time.Date(2024, time.January, 17, 10, 0, 0, 0, time.Local)

	all := []models.Completion{completionAt("h1", w01), completionAt("h1", w02), completionAt("h1", w03)}
	got := Compute(period.Weekly, BuildIndex(all, period.Weekly), now)
	want := Stats{Current: 3, Best: 3, Total: 3}
	if got != want {
		t.Errorf("Compute() with W01-W03 = %+v, want %+v", got, want)
	}

	// Deleting the W02 completion breaks the chain behind W03.
	remaining := []models.Completion{completionAt("h1", w01), completionAt("h1", w03)}
	got = Compute(period.Weekly, BuildIndex(remaining, period.Weekly), now)
	want = Stats{Current: 1, Best: 1, Total: 2}
	if got != want {
		t.Errorf("Compute() after deleting W02 = %+v, want %+v", got, want)
	}
}

func TestComputeMonthlyNoCompletions(t *testing.T) {
	got := Compute(period.Monthly, BuildIndex(nil, period.Monthly), time.Now())
	if got != (Stats{}) {
		t.Errorf("Compute() on empty index = %+v, want all zeros", got)
	}
}

func TestComputeCurrentZeroWithoutPresentPeriod(t *testing.T) {
	// History exists but today is not completed.
	idx := BuildIndex(dailyCompletions("2024-01-01", "2024-01-02", "2024-01-03"), period.Daily)
	now := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.Local)

	got := Compute(period.Daily, idx, now)
	if got.Current != 0 {
		t.Errorf("Current = %d, want 0 when the present period is absent", got.Current)
	}
	if got.Best != 3 || got.Total != 3 {
		t.Errorf("Best/Total = %d/%d, want 3/3", got.Best, got.Total)
	}
}

func TestComputeMonthlyAcrossYearBoundary(t *testing.T) {
	nov := time.Date(2023, time.November, 5, 10, 0, 0, 0, time.Local)
	dec := time.Date(2023, time.December, 20, 10, 0, 0, 0, time.Local)
	jan := time.Date(2024, time.January, 2, 10, 0, 0, 0, time.Local)
	now := time.Date(2024, time.January, 15, 8, 0, 0, 0, time.Local)

	idx := BuildIndex([]models.Completion{completionAt("h1", nov), completionAt("h1", dec), completionAt("h1", jan)}, period.Monthly)
	got := Compute(period.Monthly, idx, now)
	want := Stats{Current: 3, Best: 3, Total: 3}
	if got != want {
		t.Errorf("Compute() = %+v, want %+v", got, want)
	}
}

func TestComputeIdempotent(t *testing.T) {
	idx := BuildIndex(dailyCompletions("2024-02-01", "2024-02-02"), period.Daily)
	now := time.Date(2024, time.February, 2, 22, 0, 0, 0, time.Local)

	first := Compute(period.Daily, idx, now)
	second := Compute(period.Daily, idx, now)
	if first != second {
		t.Errorf("repeated Compute() differed: %+v vs %+v", first, second)
	}
}

func TestComputeTotalCountsPeriodsNotEvents(t *testing.T) {
	day := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.Local)
	completions := []models.Completion{
		completionAt("h1", day.Add(8*time.Hour)),
		completionAt("h1", day.Add(13*time.Hour)),
		completionAt("h1", day.Add(21*time.Hour)),
	}

	got := Compute(period.Daily, BuildIndex(completions, period.Daily), day.Add(23*time.Hour))
	if got.Total != 1 {
		t.Errorf("Total = %d, want 1 for three completions on one day", got.Total)
	}
}

func TestRankOrdering(t *testing.T) {
	habit := func(id string) models.Habit { return models.Habit{ID: id, Title: id} }

	a := HabitStats{Habit: habit("a"), Stats: Stats{Current: 5, Best: 5, Total: 5}}
	b := HabitStats{Habit: habit("b"), Stats: Stats{Current: 5, Best: 6, Total: 2}}
	c := HabitStats{Habit: habit("c"), Stats: Stats{Current: 2, Best: 9, Total: 9}}

	list := []HabitStats{a, b, c}
	ranked := Rank(list)

	wantOrder := []string{"b", "a", "c"}
	for i, want := range wantOrder {
		if ranked[i].Habit.ID != want {
			t.Errorf("Rank()[%d] = %q, want %q", i, ranked[i].Habit.ID, want)
		}
	}

	// The input order must be untouched.
	if list[0].Habit.ID != "a" || list[1].Habit.ID != "b" || list[2].Habit.ID != "c" {
		t.Errorf("Rank() mutated its input: %v", []string{list[0].Habit.ID, list[1].Habit.ID, list[2].Habit.ID})
	}
}

func TestRankTotalBreaksRemainingTies(t *testing.T) {
	habit := func(id string) models.Habit { return models.Habit{ID: id, Title: id} }

	x := HabitStats{Habit: habit("x"), Stats: Stats{Current: 3, Best: 4, Total: 7}}
	y := HabitStats{Habit: habit("y"), Stats: Stats{Current: 3, Best: 4, Total: 9}}

	ranked := Rank([]HabitStats{x, y})
	if ranked[0].Habit.ID != "y" {
		t.Errorf("Rank()[0] = %q, want %q (higher total wins)", ranked[0].Habit.ID, "y")
	}
}

func TestTop(t *testing.T) {
	habit := func(id string) models.Habit { return models.Habit{ID: id, Title: id} }

	list := []HabitStats{
		{Habit: habit("a"), Stats: Stats{Current: 1}},
		{Habit: habit("b"), Stats: Stats{Current: 3}},
		{Habit: habit("c"), Stats: Stats{Current: 2}},
	}

	top := Top(list, 2)
	if len(top) != 2 {
		t.Fatalf("Top(2) returned %d items", len(top))
	}
	if top[0].Habit.ID != "b" || top[1].Habit.ID != "c" {
		t.Errorf("Top(2) = [%s %s], want [b c]", top[0].Habit.ID, top[1].Habit.ID)
	}

	if got := Top(list, 10); len(got) != 3 {
		t.Errorf("Top(10) returned %d items, want 3", len(got))
	}
}
