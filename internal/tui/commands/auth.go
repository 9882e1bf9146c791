// Package commands provides tea.Cmd wrappers around the session manager
// and gym service so views never block the update loop.
package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/liftlog-dev/liftlog/internal/session"
	"github.com/liftlog-dev/liftlog/internal/tui"
)

// SignInCmd signs in with the given credentials.
func SignInCmd(manager *session.Manager, email, password string) tea.Cmd {
	return func() tea.Msg {
		return tui.SignInResultMsg{Err: manager.SignIn(context.Background(), email, password)}
	}
}

// SignUpCmd creates an account and signs in.
func SignUpCmd(manager *session.Manager, name, email, password, confirm string) tea.Cmd {
	return func() tea.Msg {
		return tui.SignUpResultMsg{Err: manager.SignUp(context.Background(), name, email, password, confirm)}
	}
}

// SignOutCmd signs out and reports the resulting session change through
// the manager's subscription channel; it emits no message itself.
func SignOutCmd(manager *session.Manager) tea.Cmd {
	return func() tea.Msg {
		manager.SignOut()
		return nil
	}
}

// SaveProfileCmd sends a profile update.
func SaveProfileCmd(manager *session.Manager, update session.ProfileUpdate) tea.Cmd {
	return func() tea.Msg {
		return tui.ProfileSavedMsg{Err: manager.UpdateProfile(context.Background(), update)}
	}
}

// ListenSessionCmd waits for the next session change. The app re-issues it
// after every received message to keep the subscription armed.
func ListenSessionCmd(ch <-chan tui.SessionChangedMsg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}
