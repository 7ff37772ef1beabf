package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/tracker"
	"github.com/julianstephens/habitual/internal/tui/components/habits"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.habitsModel.SetSize(msg.Width-4, msg.Height-6)
		m.streaksModel.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case trackerUpdateMsg:
		m.refreshFromTracker()
		return m, waitForUpdate(m.tracker)
	}

	if m.state == constants.StateAddHabit {
		return m.updateAddHabit(msg)
	}
	if m.state == constants.StateConfirmDelete {
		return m.updateConfirmDelete(msg)
	}
	if m.state == constants.StateConfirmRestore {
		return m.updateConfirmRestore(msg)
	}

	if handled, cmd := m.handleHabitMessages(msg); handled {
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.ShiftTab):
			m.statusMsg = ""
			if m.state == constants.StateHabits {
				m.state = constants.StateStreaks
			} else {
				m.state = constants.StateHabits
			}
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateHabits:
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	case constants.StateStreaks:
		m.streaksModel, cmd = m.streaksModel.Update(msg)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = constants.StateHabits
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		now := time.Now()
		habit := models.Habit{
			ID:          uuid.New().String(),
			UserID:      m.userID,
			Title:       m.habitForm.Title,
			Description: m.habitForm.Description,
			Cadence:     m.habitForm.Cadence,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		habit.NormalizeCadence()
		if err := m.store.AddHabit(habit); err == nil {
			m.state = constants.StateHabits
			m.refreshFromTracker()
		} else {
			// Stay in the form so the user can retry or cancel with ESC
			m.form.State = huh.StateNormal
		}
	case huh.StateAborted:
		m.state = constants.StateHabits
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			if m.habitToDeleteID != "" {
				if err := m.store.DeleteHabit(m.habitToDeleteID); err == nil {
					m.refreshFromTracker()
				}
				m.habitToDeleteID = ""
			}
			m.state = constants.StateHabits
		case "n", "N", "esc":
			m.habitToDeleteID = ""
			m.state = constants.StateHabits
		}
	}
	return m, nil
}

func (m Model) updateConfirmRestore(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			if m.habitToRestoreID != "" {
				if err := m.store.RestoreHabit(m.habitToRestoreID); err == nil {
					m.refreshFromTracker()
				}
				m.habitToRestoreID = ""
			}
			m.state = constants.StateHabits
		case "n", "N", "esc":
			m.habitToRestoreID = ""
			m.state = constants.StateHabits
		}
	}
	return m, nil
}

func (m *Model) handleHabitMessages(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case habits.AddHabitMsg:
		m.habitForm = &HabitFormModel{Cadence: "daily"}
		m.form = NewHabitForm(m.habitForm)
		m.state = constants.StateAddHabit
		return true, m.form.Init()

	case habits.MarkHabitMsg:
		result, err := tracker.Complete(m.store, m.userID, msg.ID, time.Now())
		if err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", err)
			return true, nil
		}
		if result.AlreadyDone {
			m.statusMsg = "Already completed " + periodNoun(result.Cadence) + "!"
		} else {
			m.statusMsg = fmt.Sprintf("Nice! Current streak: %d", result.Current)
		}
		return true, nil

	case habits.UnmarkHabitMsg:
		if _, err := tracker.Uncomplete(m.store, m.userID, msg.ID, time.Now()); err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", err)
		} else {
			m.statusMsg = ""
		}
		return true, nil

	case habits.DeleteHabitMsg:
		m.habitToDeleteID = msg.ID
		m.state = constants.StateConfirmDelete
		return true, nil

	case habits.RestoreHabitMsg:
		m.habitToRestoreID = msg.ID
		m.state = constants.StateConfirmRestore
		return true, nil
	}
	return false, nil
}
