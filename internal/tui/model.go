package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/streak"
	"github.com/julianstephens/habitual/internal/tracker"
	"github.com/julianstephens/habitual/internal/tui/components/habits"
	"github.com/julianstephens/habitual/internal/tui/components/streaks"
)

// trackerUpdateMsg signals that a streak recompute finished.
type trackerUpdateMsg struct{}

type HabitFormModel struct {
	Title       string
	Cadence     string
	Description string
}

type Model struct {
	store   storage.Provider
	userID  string
	tracker *tracker.Tracker
	cancel  context.CancelFunc

	state            constants.SessionState
	keys             KeyMap
	help             help.Model
	habitsModel      habits.Model
	streaksModel     streaks.Model
	form             *huh.Form
	habitForm        *HabitFormModel
	habitToDeleteID  string
	habitToRestoreID string
	statusMsg        string
	quitting         bool
	width            int
	height           int
}

func NewModel(store storage.Provider, userID string) Model {
	habitsList, _ := store.GetAllHabits(userID, true)
	hm := habits.New(habitsList, nil, 0, 0)
	sm := streaks.New(0, 0)

	ctx, cancel := context.WithCancel(context.Background())
	tr := tracker.New(store, userID)
	tr.Start(ctx)

	return Model{
		store:        store,
		userID:       userID,
		tracker:      tr,
		cancel:       cancel,
		state:        constants.StateHabits,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		habitsModel:  hm,
		streaksModel: sm,
	}
}

// waitForUpdate blocks until the next recompute finishes.
func waitForUpdate(tr *tracker.Tracker) tea.Cmd {
	return func() tea.Msg {
		<-tr.Updates()
		return trackerUpdateMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return waitForUpdate(m.tracker)
}

// refreshFromTracker pulls the latest snapshot into both views.
func (m *Model) refreshFromTracker() {
	stats, ready := m.tracker.Snapshot()
	if !ready {
		return
	}
	m.streaksModel.SetStats(stats)

	byID := make(map[string]streak.Stats, len(stats))
	for _, s := range stats {
		byID[s.Habit.ID] = s.Stats
	}
	habitsList, err := m.store.GetAllHabits(m.userID, true)
	if err != nil {
		return
	}
	m.habitsModel.SetHabits(habitsList, byID)
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == constants.StateHabits {
		keys = append(keys, habits.DefaultKeyMap().Add, habits.DefaultKeyMap().Mark)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	if m.state == constants.StateHabits {
		hk := habits.DefaultKeyMap()
		actions = []key.Binding{hk.Add, hk.Mark, hk.Unmark, hk.Delete, hk.Restore}
	}

	return [][]key.Binding{global, navigation, actions}
}
