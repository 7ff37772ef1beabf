package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := New(filepath.Join(t.TempDir(), "habitual.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testHabit(title, cadence string) models.Habit {
	now := time.Now()
	return models.Habit{
		ID:        uuid.New().String(),
		UserID:    "local",
		Title:     title,
		Cadence:   cadence,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestHabitRoundTrip(t *testing.T) {
	store := newTestStore(t)

	habit := testHabit("Read", "daily")
	habit.Description = "20 pages"
	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("AddHabit() error = %v", err)
	}

	got, err := store.GetHabit(habit.ID)
	if err != nil {
		t.Fatalf("GetHabit() error = %v", err)
	}
	if got.Title != "Read" || got.Description != "20 pages" || got.Cadence != "daily" {
		t.Errorf("GetHabit() = %+v, want title/description/cadence round-tripped", got)
	}

	byTitle, err := store.GetHabitByTitle("local", "Read")
	if err != nil {
		t.Fatalf("GetHabitByTitle() error = %v", err)
	}
	if byTitle.ID != habit.ID {
		t.Errorf("GetHabitByTitle() id = %s, want %s", byTitle.ID, habit.ID)
	}
}

func TestGetHabitNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetHabit("missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetHabit() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteAndRestoreHabit(t *testing.T) {
	store := newTestStore(t)

	habit := testHabit("Run", "weekly")
	if err := store.AddHabit(habit); err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteHabit(habit.ID); err != nil {
		t.Fatalf("DeleteHabit() error = %v", err)
	}
	if _, err := store.GetHabit(habit.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetHabit() after delete error = %v, want ErrNotFound", err)
	}

	// Still visible when deleted rows are included.
	all, err := store.GetAllHabits("local", true)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0].DeletedAt == nil {
		t.Errorf("GetAllHabits(includeDeleted) = %+v, want one soft-deleted habit", all)
	}

	if err := store.RestoreHabit(habit.ID); err != nil {
		t.Fatalf("RestoreHabit() error = %v", err)
	}
	if _, err := store.GetHabit(habit.ID); err != nil {
		t.Errorf("GetHabit() after restore error = %v", err)
	}

	if err := store.RestoreHabit(habit.ID); err == nil {
		t.Error("RestoreHabit() on non-deleted habit succeeded, want error")
	}
}

func TestUpdateHabitStreak(t *testing.T) {
	store := newTestStore(t)

	habit := testHabit("Meditate", "daily")
	if err := store.AddHabit(habit); err != nil {
		t.Fatal(err)
	}

	last := time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC)
	if err := store.UpdateHabitStreak(habit.ID, 7, last); err != nil {
		t.Fatalf("UpdateHabitStreak() error = %v", err)
	}

	got, err := store.GetHabit(habit.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.StreakCount != 7 {
		t.Errorf("StreakCount = %d, want 7", got.StreakCount)
	}
	if got.LastCompleted == nil || !got.LastCompleted.Equal(last) {
		t.Errorf("LastCompleted = %v, want %v", got.LastCompleted, last)
	}

	if err := store.UpdateHabitStreak("missing", 1, last); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("UpdateHabitStreak() on missing habit error = %v, want ErrNotFound", err)
	}
}

func TestCompletionListingAndPaging(t *testing.T) {
	store := newTestStore(t)

	habit := testHabit("Write", "daily")
	if err := store.AddHabit(habit); err != nil {
		t.Fatal(err)
	}

	base := time.Date(2024, time.April, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		completion := models.Completion{
			ID:          uuid.New().String(),
			HabitID:     habit.ID,
			UserID:      "local",
			CompletedAt: base.AddDate(0, 0, i),
			CreatedAt:   base.AddDate(0, 0, i),
		}
		if err := store.AddCompletion(completion); err != nil {
			t.Fatalf("AddCompletion() error = %v", err)
		}
	}

	// First page of 3, then the short second page.
	page1, err := store.ListCompletions("local", habit.ID, base, 3, 0)
	if err != nil {
		t.Fatalf("ListCompletions() error = %v", err)
	}
	if len(page1) != 3 {
		t.Errorf("first page length = %d, want 3", len(page1))
	}

	page2, err := store.ListCompletions("local", habit.ID, base, 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(page2) != 2 {
		t.Errorf("second page length = %d, want 2", len(page2))
	}

	// since filter excludes earlier completions.
	later, err := store.ListCompletions("local", "", base.AddDate(0, 0, 3), 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(later) != 2 {
		t.Errorf("ListCompletions(since day 3) length = %d, want 2", len(later))
	}

	// Ascending order by completion instant.
	if !page1[0].CompletedAt.Before(page1[1].CompletedAt) {
		t.Errorf("completions not in ascending order: %v then %v", page1[0].CompletedAt, page1[1].CompletedAt)
	}
}

func TestListCompletionsBetween(t *testing.T) {
	store := newTestStore(t)

	habit := testHabit("Stretch", "weekly")
	if err := store.AddHabit(habit); err != nil {
		t.Fatal(err)
	}

	inWindow := time.Date(2024, time.April, 3, 9, 0, 0, 0, time.UTC)
	outOfWindow := time.Date(2024, time.April, 10, 9, 0, 0, 0, time.UTC)
	for _, at := range []time.Time{inWindow, outOfWindow} {
		err := store.AddCompletion(models.Completion{
			ID: uuid.New().String(), HabitID: habit.ID, UserID: "local",
			CompletedAt: at, CreatedAt: at,
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	from := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.April, 8, 0, 0, 0, 0, time.UTC)
	got, err := store.ListCompletionsBetween("local", habit.ID, from, to)
	if err != nil {
		t.Fatalf("ListCompletionsBetween() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ListCompletionsBetween() length = %d, want 1", len(got))
	}
	if !got[0].CompletedAt.Equal(inWindow) {
		t.Errorf("ListCompletionsBetween() returned %v, want %v", got[0].CompletedAt, inWindow)
	}
}

func TestDeleteCompletion(t *testing.T) {
	store := newTestStore(t)

	habit := testHabit("Journal", "daily")
	if err := store.AddHabit(habit); err != nil {
		t.Fatal(err)
	}

	at := time.Date(2024, time.May, 2, 21, 0, 0, 0, time.UTC)
	completion := models.Completion{
		ID: uuid.New().String(), HabitID: habit.ID, UserID: "local",
		CompletedAt: at, CreatedAt: at,
	}
	if err := store.AddCompletion(completion); err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteCompletion(completion.ID); err != nil {
		t.Fatalf("DeleteCompletion() error = %v", err)
	}
	if _, err := store.GetCompletion(completion.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetCompletion() after delete error = %v, want ErrNotFound", err)
	}
	if err := store.DeleteCompletion(completion.ID); err == nil {
		t.Error("DeleteCompletion() twice succeeded, want error")
	}
}

func TestWritesPublishChanges(t *testing.T) {
	store := newTestStore(t)
	sub := store.Changes().Subscribe()
	defer sub.Close()

	habit := testHabit("Cook", "daily")
	if err := store.AddHabit(habit); err != nil {
		t.Fatal(err)
	}

	select {
	case change := <-sub.C:
		if change.Resource != storage.ResourceHabits || change.Kind != storage.Created {
			t.Errorf("change = %+v, want habits/created", change)
		}
	case <-time.After(time.Second):
		t.Fatal("no change published for AddHabit")
	}
}
