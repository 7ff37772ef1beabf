package habits

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/period"
	"github.com/julianstephens/habitual/internal/streak"
)

type AddHabitMsg struct{}

type MarkHabitMsg struct {
	ID string
}

type UnmarkHabitMsg struct {
	ID string
}

type DeleteHabitMsg struct {
	ID string
}

type RestoreHabitMsg struct {
	ID string
}

type Item struct {
	Habit     models.Habit
	Stats     streak.Stats
	IsMarked  bool
	IsDeleted bool
}

func (i Item) Title() string {
	title := i.Habit.Title
	if i.IsDeleted {
		return "[DELETED] " + title
	}
	if i.IsMarked {
		return "✓ " + title
	}
	return "○ " + title
}

func (i Item) Description() string {
	if i.IsDeleted {
		return "can restore with 'r'"
	}
	cadence := period.ParseCadence(i.Habit.Cadence)
	return fmt.Sprintf("%s · streak %d · best %d · total %d", cadence, i.Stats.Current, i.Stats.Best, i.Stats.Total)
}

func (i Item) FilterValue() string { return i.Habit.Title }

type KeyMap struct {
	Add     key.Binding
	Mark    key.Binding
	Unmark  key.Binding
	Delete  key.Binding
	Restore key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Mark: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mark done"),
		),
		Unmark: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unmark"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restore"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

// New builds the habit list. Per-habit statistics arrive separately through
// SetHabits once the first recompute finishes.
func New(habits []models.Habit, stats map[string]streak.Stats, width, height int) Model {
	l := list.New(buildItems(habits, stats), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Mark, keys.Unmark, keys.Delete, keys.Restore}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Mark, keys.Unmark, keys.Delete, keys.Restore}
	}

	return Model{list: l, keys: keys}
}

func buildItems(habits []models.Habit, stats map[string]streak.Stats) []list.Item {
	items := make([]list.Item, len(habits))
	for i, h := range habits {
		s := stats[h.ID]
		items[i] = Item{
			Habit: h,
			Stats: s,
			// A live current streak means the present period is completed.
			IsMarked:  h.DeletedAt == nil && s.Current > 0,
			IsDeleted: h.DeletedAt != nil,
		}
	}
	return items
}

func (m *Model) SetHabits(habits []models.Habit, stats map[string]streak.Stats) {
	m.list.SetItems(buildItems(habits, stats))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Mark):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if !i.IsDeleted && !i.IsMarked {
					return m, func() tea.Msg { return MarkHabitMsg{ID: i.Habit.ID} }
				}
			}
		case key.Matches(msg, m.keys.Unmark):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if !i.IsDeleted && i.IsMarked {
					return m, func() tea.Msg { return UnmarkHabitMsg{ID: i.Habit.ID} }
				}
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if !i.IsDeleted {
					return m, func() tea.Msg { return DeleteHabitMsg{ID: i.Habit.ID} }
				}
			}
		case key.Matches(msg, m.keys.Restore):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if i.IsDeleted {
					return m, func() tea.Msg { return RestoreHabitMsg{ID: i.Habit.ID} }
				}
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
