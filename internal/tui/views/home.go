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

const (
	groupsFallback    = "Could not load the muscle groups."
	exercisesFallback = "Could not load the exercises."
)

// OpenExerciseMsg is sent when the user selects an exercise.
type OpenExerciseMsg struct {
	ExerciseID string
}

// GroupSelectedMsg is sent when the user moves to another muscle group;
// the app responds by loading that group's exercises.
type GroupSelectedMsg struct {
	Group string
}

// HomeModel is the view model for the exercise browser.
type HomeModel struct {
	userName  string
	groups    []string
	group     int // selected group index
	exercises []gym.Exercise
	cursor    int
	loading   bool
	spinner   spinner.Model
	errText   string
	width     int
	height    int
}

// NewHomeModel creates a new HomeModel; the group list arrives later via
// GroupsLoadedMsg.
func NewHomeModel(userName string, width, height int) HomeModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))

	return HomeModel{
		userName: userName,
		loading:  true,
		spinner:  sp,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the home view.
func (m HomeModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages for the home view.
func (m HomeModel) Update(msg tea.Msg) (HomeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyLeft:
			return m.selectGroup(m.group - 1)
		case tui.KeyRight:
			return m.selectGroup(m.group + 1)
		case tui.KeyUp:
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case tui.KeyDown:
			if m.cursor < len(m.exercises)-1 {
				m.cursor++
			}
			return m, nil
		case tui.KeyEnter:
			if m.cursor < len(m.exercises) {
				id := m.exercises[m.cursor].ID
				return m, func() tea.Msg { return OpenExerciseMsg{ExerciseID: id} }
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tui.GroupsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errText = apperr.Display(msg.Err, groupsFallback)
			return m, nil
		}
		m.groups = msg.Groups
		m.errText = ""
		if len(m.groups) > 0 {
			m.group = 0
			m.loading = true
			group := m.groups[0]
			return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
				return GroupSelectedMsg{Group: group}
			})
		}
		return m, nil

	case tui.ExercisesLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errText = apperr.Display(msg.Err, exercisesFallback)
			return m, nil
		}
		m.exercises = msg.Exercises
		m.cursor = 0
		m.errText = ""
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m HomeModel) selectGroup(idx int) (HomeModel, tea.Cmd) {
	if idx < 0 || idx >= len(m.groups) || idx == m.group {
		return m, nil
	}
	m.group = idx
	m.loading = true
	m.errText = ""
	group := m.groups[idx]
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		return GroupSelectedMsg{Group: group}
	})
}

// View renders the home view.
func (m HomeModel) View() string {
	var b strings.Builder

	greeting := "Hello"
	if m.userName != "" {
		greeting = "Hello, " + m.userName
	}
	b.WriteString(tui.TitleStyle.Render(greeting))
	b.WriteString("  ")
	b.WriteString(tui.DimStyle.Render("Time to train"))
	b.WriteString("\n\n")

	// Muscle group selector.
	var tabs []string
	for i, group := range m.groups {
		if i == m.group {
			tabs = append(tabs, tui.ActiveTabStyle.Render(group))
		} else {
			tabs = append(tabs, tui.InactiveTabStyle.Render(group))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, tabs...))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading...")
	case m.errText != "":
		b.WriteString(tui.ErrorStyle.Render(m.errText))
	case len(m.exercises) == 0:
		b.WriteString(tui.DimStyle.Render("No exercises in this group."))
	default:
		b.WriteString(fmt.Sprintf("Exercises (%d)\n\n", len(m.exercises)))
		for i, exercise := range m.exercises {
			line := fmt.Sprintf("%-28s %d sets x %d reps", exercise.Name, exercise.Series, exercise.Repetitions)
			if i == m.cursor {
				b.WriteString(tui.SelectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	b.WriteString(tui.DimStyle.Render("←/→: Group    ↑/↓: Exercise    Enter: Detail    Tab: Screen"))

	return tui.BoxStyle.Width(m.width - 4).Render(b.String())
}
