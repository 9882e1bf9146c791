package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/liftlog-dev/liftlog/internal/apperr"
	"github.com/liftlog-dev/liftlog/internal/tui"
)

const signUpFallback = "Could not create the account. Try again later."

// SubmitSignUpMsg is sent when the user submits the account form.
type SubmitSignUpMsg struct {
	Name     string
	Email    string
	Password string
	Confirm  string
}

// GotoSignInMsg is sent when the user returns to the sign-in screen.
type GotoSignInMsg struct{}

// SignUpModel is the view model for the account creation screen.
type SignUpModel struct {
	inputs  []textinput.Model // name, email, password, confirm
	focus   int
	loading bool
	spinner spinner.Model
	errText string
	width   int
	height  int
}

// NewSignUpModel creates a new SignUpModel.
func NewSignUpModel(width, height int) SignUpModel {
	labels := []string{"Name", "E-mail", "Password", "Confirm password"}
	inputs := make([]textinput.Model, len(labels))
	for i, label := range labels {
		ti := textinput.New()
		ti.Placeholder = label
		ti.CharLimit = 254
		ti.Width = 40
		if i >= 2 {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '*'
			ti.CharLimit = 72
		}
		inputs[i] = ti
	}
	inputs[0].Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))

	return SignUpModel{
		inputs:  inputs,
		spinner: sp,
		width:   width,
		height:  height,
	}
}

// Init returns the initial command for the sign-up view.
func (m SignUpModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the sign-up view.
func (m SignUpModel) Update(msg tea.Msg) (SignUpModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch msg.String() {
		case tui.KeyEsc:
			return m, func() tea.Msg { return GotoSignInMsg{} }
		case tui.KeyTab, tui.KeyDown:
			return m.setFocus((m.focus + 1) % len(m.inputs)), nil
		case tui.KeyUp:
			return m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs)), nil
		case tui.KeyEnter:
			if m.focus < len(m.inputs)-1 {
				return m.setFocus(m.focus + 1), nil
			}
			return m.submit()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tui.SignUpResultMsg:
		m.loading = false
		if msg.Err != nil {
			m.errText = apperr.Display(msg.Err, signUpFallback)
		}
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmds []tea.Cmd
	for i := range m.inputs {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m SignUpModel) submit() (SignUpModel, tea.Cmd) {
	name := strings.TrimSpace(m.inputs[0].Value())
	email := strings.TrimSpace(m.inputs[1].Value())
	password := m.inputs[2].Value()
	confirm := m.inputs[3].Value()

	if name == "" || email == "" || password == "" {
		m.errText = "Fill in all fields."
		return m, nil
	}

	m.loading = true
	m.errText = ""
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		return SubmitSignUpMsg{Name: name, Email: email, Password: password, Confirm: confirm}
	})
}

func (m SignUpModel) setFocus(focus int) SignUpModel {
	m.focus = focus
	for i := range m.inputs {
		if i == focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

// View renders the sign-up view.
func (m SignUpModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("liftlog"))
	b.WriteString("\n\n")
	b.WriteString("Create your account\n\n")

	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(" Creating account...")
	} else if m.errText != "" {
		b.WriteString(tui.ErrorStyle.Render(m.errText))
	}
	b.WriteString("\n\n")

	b.WriteString(tui.DimStyle.Render("Enter: Next/Submit    Esc: Back to sign in"))

	return centerBox(b.String(), m.width, m.height)
}
