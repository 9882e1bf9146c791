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
	exerciseFallback = "Could not load the exercise."
	registerFallback = "Could not register the exercise."
)

// BackToHomeMsg is sent when the user leaves the exercise detail.
type BackToHomeMsg struct{}

// RegisterExerciseMsg is sent when the user marks the exercise as done.
type RegisterExerciseMsg struct {
	ExerciseID string
}

// ExerciseModel is the view model for the exercise detail screen.
type ExerciseModel struct {
	exerciseID  string
	exercise    *gym.Exercise
	loading     bool
	registering bool
	registered  bool
	spinner     spinner.Model
	errText     string
	width       int
	height      int
}

// NewExerciseModel creates the detail view for one exercise; the data
// arrives later via ExerciseLoadedMsg.
func NewExerciseModel(exerciseID string, width, height int) ExerciseModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))

	return ExerciseModel{
		exerciseID: exerciseID,
		loading:    true,
		spinner:    sp,
		width:      width,
		height:     height,
	}
}

// Init returns the initial command for the exercise view.
func (m ExerciseModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages for the exercise view.
func (m ExerciseModel) Update(msg tea.Msg) (ExerciseModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyEsc:
			return m, func() tea.Msg { return BackToHomeMsg{} }
		case tui.KeyEnter, "r":
			if m.exercise != nil && !m.registering {
				m.registering = true
				m.errText = ""
				id := m.exerciseID
				return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
					return RegisterExerciseMsg{ExerciseID: id}
				})
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tui.ExerciseLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errText = apperr.Display(msg.Err, exerciseFallback)
			return m, nil
		}
		m.exercise = msg.Exercise
		m.errText = ""
		return m, nil

	case tui.HistoryRegisteredMsg:
		m.registering = false
		if msg.Err != nil {
			m.errText = apperr.Display(msg.Err, registerFallback)
			return m, nil
		}
		m.registered = true
		return m, nil

	case spinner.TickMsg:
		if m.loading || m.registering {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// View renders the exercise view.
func (m ExerciseModel) View() string {
	var b strings.Builder

	switch {
	case m.loading:
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading exercise...")
	case m.exercise == nil:
		b.WriteString(tui.ErrorStyle.Render(m.errText))
	default:
		b.WriteString(tui.TitleStyle.Render(m.exercise.Name))
		b.WriteString("  ")
		b.WriteString(tui.DimStyle.Render(m.exercise.Group))
		b.WriteString("\n\n")

		if m.exercise.Demo != "" {
			b.WriteString(tui.DimStyle.Render("Demo: " + m.exercise.Demo))
			b.WriteString("\n\n")
		}

		b.WriteString(fmt.Sprintf("Sets: %d    Reps: %d\n\n", m.exercise.Series, m.exercise.Repetitions))

		switch {
		case m.registering:
			b.WriteString(m.spinner.View())
			b.WriteString(" Registering...")
		case m.registered:
			b.WriteString(tui.SuccessStyle.Render("Exercise registered in your history."))
		case m.errText != "":
			b.WriteString(tui.ErrorStyle.Render(m.errText))
		}
	}
	b.WriteString("\n\n")

	b.WriteString(tui.DimStyle.Render("Enter: Mark as done    Esc: Back"))

	return tui.BoxStyle.Width(m.width - 4).Render(b.String())
}
