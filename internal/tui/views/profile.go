package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/liftlog-dev/liftlog/internal/apperr"
	"github.com/liftlog-dev/liftlog/internal/session"
	"github.com/liftlog-dev/liftlog/internal/tui"
)

const profileFallback = "Could not update the profile."

// SubmitProfileMsg is sent when the user saves profile changes.
type SubmitProfileMsg struct {
	Update session.ProfileUpdate
}

// SignOutRequestedMsg is sent when the user asks to sign out.
type SignOutRequestedMsg struct{}

// ProfileModel is the view model for the profile screen. E-mail is shown
// but not editable; the server treats it as immutable.
type ProfileModel struct {
	email   string
	inputs  []textinput.Model // name, avatar, old password, new password, confirm
	focus   int
	saving  bool
	saved   bool
	spinner spinner.Model
	errText string
	width   int
	height  int
}

// NewProfileModel creates the profile view pre-filled with user data.
func NewProfileModel(user *session.User, width, height int) ProfileModel {
	labels := []string{"Name", "Avatar", "Current password", "New password", "Confirm new password"}
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

	email := ""
	if user != nil {
		email = user.Email
		inputs[0].SetValue(user.Name)
		inputs[1].SetValue(user.Avatar)
	}
	inputs[0].Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))

	return ProfileModel{
		email:   email,
		inputs:  inputs,
		spinner: sp,
		width:   width,
		height:  height,
	}
}

// Init returns the initial command for the profile view.
func (m ProfileModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the profile view.
func (m ProfileModel) Update(msg tea.Msg) (ProfileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.saving {
			return m, nil
		}
		switch msg.String() {
		case "ctrl+d":
			return m, func() tea.Msg { return SignOutRequestedMsg{} }
		case tui.KeyDown:
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

	case tui.ProfileSavedMsg:
		m.saving = false
		if msg.Err != nil {
			m.errText = apperr.Display(msg.Err, profileFallback)
			return m, nil
		}
		m.saved = true
		m.errText = ""
		for i := 2; i < len(m.inputs); i++ {
			m.inputs[i].SetValue("")
		}
		return m, nil

	case spinner.TickMsg:
		if m.saving {
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

func (m ProfileModel) submit() (ProfileModel, tea.Cmd) {
	newPassword := m.inputs[3].Value()
	confirm := m.inputs[4].Value()
	if newPassword != confirm {
		m.errText = "Passwords do not match."
		return m, nil
	}

	update := session.ProfileUpdate{
		Name:        strings.TrimSpace(m.inputs[0].Value()),
		Avatar:      strings.TrimSpace(m.inputs[1].Value()),
		Password:    newPassword,
		OldPassword: m.inputs[2].Value(),
	}

	m.saving = true
	m.saved = false
	m.errText = ""
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		return SubmitProfileMsg{Update: update}
	})
}

func (m ProfileModel) setFocus(focus int) ProfileModel {
	m.focus = focus
	m.saved = false
	for i := range m.inputs {
		if i == focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

// View renders the profile view.
func (m ProfileModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Profile"))
	b.WriteString("\n\n")

	b.WriteString(tui.DimStyle.Render("E-mail: " + m.email + " (read-only)"))
	b.WriteString("\n\n")

	for i := range m.inputs {
		if i == 2 {
			b.WriteString("\nChange password\n")
		}
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.saving:
		b.WriteString(m.spinner.View())
		b.WriteString(" Saving...")
	case m.saved:
		b.WriteString(tui.SuccessStyle.Render("Profile updated."))
	case m.errText != "":
		b.WriteString(tui.ErrorStyle.Render(m.errText))
	}
	b.WriteString("\n\n")

	b.WriteString(tui.DimStyle.Render("Enter: Next/Save    Ctrl+D: Sign out    Tab: Screen"))

	return tui.BoxStyle.Width(m.width - 4).Render(b.String())
}
