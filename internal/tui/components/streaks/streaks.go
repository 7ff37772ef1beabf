package streaks

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/period"
	"github.com/julianstephens/habitual/internal/streak"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			MarginBottom(1)

	podiumStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 2).
			MarginRight(1)

	titleStyle = lipgloss.NewStyle().Bold(true)

	statStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	flameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// Model renders ranked streak statistics: a podium for the top habits and a
// row per habit below it.
type Model struct {
	stats  []streak.HabitStats
	ready  bool
	width  int
	height int
}

func New(width, height int) Model {
	return Model{width: width, height: height}
}

// SetStats replaces the displayed statistics. The input is expected to be
// ranked already.
func (m *Model) SetStats(stats []streak.HabitStats) {
	m.stats = stats
	m.ready = true
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		return dimStyle.Render("\n  Computing streaks...")
	}
	if len(m.stats) == 0 {
		return dimStyle.Render("\n  No habits yet. Add one on the Habits tab.")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Top Streaks"))
	b.WriteString("\n")
	b.WriteString(m.viewPodium())
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render("All Habits"))
	b.WriteString("\n")
	b.WriteString(m.viewRows())
	return b.String()
}

func (m Model) viewPodium() string {
	medals := []string{"🥇", "🥈", "🥉"}

	top := m.stats
	if len(top) > constants.TopStreakCount {
		top = top[:constants.TopStreakCount]
	}

	cards := make([]string, 0, len(top))
	for i, s := range top {
		card := lipgloss.JoinVertical(lipgloss.Center,
			medals[i]+" "+titleStyle.Render(s.Habit.Title),
			flameStyle.Render(fmt.Sprintf("🔥 %d", s.Current)),
			statStyle.Render(fmt.Sprintf("best %d", s.Best)),
		)
		cards = append(cards, podiumStyle.Render(card))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m Model) viewRows() string {
	var rows []string
	for _, s := range m.stats {
		cadence := period.ParseCadence(s.Habit.Cadence)
		row := fmt.Sprintf("%s  %s",
			titleStyle.Render(s.Habit.Title),
			statStyle.Render(fmt.Sprintf("(%s)  current %d · best %d · total %d",
				cadence, s.Current, s.Best, s.Total)))
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}
