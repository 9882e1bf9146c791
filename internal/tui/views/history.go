package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/liftlog-dev/liftlog/internal/apperr"
	"github.com/liftlog-dev/liftlog/internal/gym"
	"github.com/liftlog-dev/liftlog/internal/tui"
)

const historyFallback = "Could not load the history."

// HistoryModel is the view model for the exercise history screen.
type HistoryModel struct {
	days    []gym.HistoryDay
	offset  int
	loading bool
	spinner spinner.Model
	errText string
	width   int
	height  int
}

// NewHistoryModel creates the history view; data arrives via
// HistoryLoadedMsg.
func NewHistoryModel(width, height int) HistoryModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))

	return HistoryModel{
		loading: true,
		spinner: sp,
		width:   width,
		height:  height,
	}
}

// Init returns the initial command for the history view.
func (m HistoryModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages for the history view.
func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyUp:
			if m.offset > 0 {
				m.offset--
			}
		case tui.KeyDown:
			if m.offset < len(m.lines())-1 {
				m.offset++
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tui.HistoryLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errText = apperr.Display(msg.Err, historyFallback)
			return m, nil
		}
		m.days = msg.Days
		m.offset = 0
		m.errText = ""

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// lines flattens the day-grouped history into display lines.
func (m HistoryModel) lines() []string {
	var out []string
	for _, day := range m.days {
		out = append(out, tui.TitleStyle.Render(day.Title))
		for _, entry := range day.Entries {
			out = append(out, fmt.Sprintf("  %s  %-24s %s", entry.Hour, entry.Name, tui.DimStyle.Render(entry.Group)))
		}
		out = append(out, "")
	}
	return out
}

// View renders the history view.
func (m HistoryModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Exercise history"))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading history...")
	case m.errText != "":
		b.WriteString(tui.ErrorStyle.Render(m.errText))
	case len(m.days) == 0:
		b.WriteString(tui.DimStyle.Render("No exercises registered yet.\nLet's train today?"))
	default:
		lines := m.lines()
		visible := m.height - 10
		if visible < 3 {
			visible = 3
		}
		end := m.offset + visible
		if end > len(lines) {
			end = len(lines)
		}
		b.WriteString(strings.Join(lines[m.offset:end], "\n"))
	}
	b.WriteString("\n\n")

	b.WriteString(tui.DimStyle.Render("↑/↓: Scroll    Tab: Screen"))

	return tui.BoxStyle.Width(m.width - 4).Render(b.String())
}
