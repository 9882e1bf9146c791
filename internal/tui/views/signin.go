// Package views provides TUI view components for the liftlog application.
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

// signInFallback is this screen's generic message for transport failures.
const signInFallback = "Could not sign in. Try again later."

// SubmitSignInMsg is sent when the user submits credentials.
type SubmitSignInMsg struct {
	Email    string
	Password string
}

// GotoSignUpMsg is sent when the user wants the account creation screen.
type GotoSignUpMsg struct{}

// SignInModel is the view model for the sign-in screen.
type SignInModel struct {
	email    textinput.Model
	password textinput.Model
	focus    int
	loading  bool
	spinner  spinner.Model
	notice   string
	errText  string
	width    int
	height   int
}

// NewSignInModel creates a new SignInModel. notice is shown above the
// form, e.g. after a forced sign-out.
func NewSignInModel(notice string, width, height int) SignInModel {
	email := textinput.New()
	email.Placeholder = "E-mail"
	email.CharLimit = 254
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'
	password.CharLimit = 72
	password.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))

	return SignInModel{
		email:    email,
		password: password,
		spinner:  sp,
		notice:   notice,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the sign-in view.
func (m SignInModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the sign-in view.
func (m SignInModel) Update(msg tea.Msg) (SignInModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch msg.String() {
		case tui.KeyEnter:
			if m.focus == 0 {
				return m.setFocus(1), nil
			}
			email := strings.TrimSpace(m.email.Value())
			password := m.password.Value()
			if email == "" || password == "" {
				m.errText = "Fill in e-mail and password."
				return m, nil
			}
			m.loading = true
			m.errText = ""
			return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
				return SubmitSignInMsg{Email: email, Password: password}
			})
		case tui.KeyTab, tui.KeyDown:
			return m.setFocus((m.focus + 1) % 2), nil
		case tui.KeyUp:
			return m.setFocus((m.focus + 1) % 2), nil
		case "ctrl+n":
			return m, func() tea.Msg { return GotoSignUpMsg{} }
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tui.SignInResultMsg:
		m.loading = false
		if msg.Err != nil {
			m.errText = apperr.Display(msg.Err, signInFallback)
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

	return m.updateInputs(msg)
}

func (m SignInModel) setFocus(focus int) SignInModel {
	m.focus = focus
	if focus == 0 {
		m.email.Focus()
		m.password.Blur()
	} else {
		m.email.Blur()
		m.password.Focus()
	}
	return m
}

func (m SignInModel) updateInputs(msg tea.Msg) (SignInModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.email, cmd = m.email.Update(msg)
	cmds = append(cmds, cmd)
	m.password, cmd = m.password.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View renders the sign-in view.
func (m SignInModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("liftlog"))
	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("Train your mind and your body"))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(tui.WarningStyle.Render(m.notice))
		b.WriteString("\n\n")
	}

	b.WriteString("Access your account\n\n")
	b.WriteString(m.email.View())
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(" Signing in...")
	} else if m.errText != "" {
		b.WriteString(tui.ErrorStyle.Render(m.errText))
	}
	b.WriteString("\n\n")

	b.WriteString(tui.DimStyle.Render("Enter: Sign in    Ctrl+N: Create account    Ctrl+C: Exit"))

	return centerBox(b.String(), m.width, m.height)
}

// centerBox wraps content in the standard box and pads it toward the
// vertical center of the window.
func centerBox(content string, width, height int) string {
	boxed := tui.BoxStyle.Width(width - 4).Render(content)

	contentHeight := lipgloss.Height(boxed)
	if height > contentHeight {
		padding := (height - contentHeight) / 3
		if padding > 0 {
			boxed = strings.Repeat("\n", padding) + boxed
		}
	}
	return boxed
}
