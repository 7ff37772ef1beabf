package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/period"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateHabits:
		content = docStyle.Render(m.habitsModel.View())
	case constants.StateStreaks:
		content = docStyle.Render(m.streaksModel.View())
	case constants.StateAddHabit:
		content = m.form.View()
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	case constants.StateConfirmRestore:
		content = m.viewConfirmRestore()
	}

	var status string
	if m.statusMsg != "" {
		status = statusStyle.Render(m.statusMsg)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		status,
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	tabs := []string{
		inactiveTabStyle.Render("Habits"),
		inactiveTabStyle.Render("Streaks"),
	}
	switch m.state {
	case constants.StateHabits, constants.StateAddHabit, constants.StateConfirmDelete, constants.StateConfirmRestore:
		tabs[0] = activeTabStyle.Render("Habits")
	case constants.StateStreaks:
		tabs[1] = activeTabStyle.Render("Streaks")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Delete this habit? Its history is kept and it can be restored."),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewConfirmRestore() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			warningStyle.Render("Restore this habit?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func periodNoun(c period.Cadence) string {
	switch c {
	case period.Weekly:
		return "this week"
	case period.Monthly:
		return "this month"
	default:
		return "today"
	}
}
