// Package app provides the main TUI application that wires all views together.
package app

import (
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/liftlog-dev/liftlog/internal/config"
	"github.com/liftlog-dev/liftlog/internal/gym"
	"github.com/liftlog-dev/liftlog/internal/session"
	"github.com/liftlog-dev/liftlog/internal/tui"
	"github.com/liftlog-dev/liftlog/internal/tui/commands"
	"github.com/liftlog-dev/liftlog/internal/tui/views"
)

// sessionExpiredNotice is shown on the sign-in screen after a forced
// sign-out (failed token refresh).
const sessionExpiredNotice = "Your session has expired. Sign in again."

// App is the main TUI application that wires all views together.
type App struct {
	model   *tui.Model
	manager *session.Manager
	service *gym.Service

	// sessionCh receives session manager transitions; the subscription
	// callback pushes into it and ListenSessionCmd pulls from it.
	sessionCh chan tui.SessionChangedMsg

	// expectSignOut marks a user-requested sign-out so it is not
	// presented as an expired session.
	expectSignOut bool

	signInView   views.SignInModel
	signUpView   views.SignUpModel
	homeView     views.HomeModel
	exerciseView views.ExerciseModel
	historyView  views.HistoryModel
	profileView  views.ProfileModel
}

// New creates the App. When a session was restored at startup the app
// opens on the home screen; otherwise on sign-in.
func New(cfg *config.Config, manager *session.Manager, service *gym.Service) *App {
	model := tui.NewModel(cfg)

	app := &App{
		model:     model,
		manager:   manager,
		service:   service,
		sessionCh: make(chan tui.SessionChangedMsg, 8),
	}

	manager.Subscribe(func(state session.State, sess session.Session) {
		msg := tui.SessionChangedMsg{State: state, User: sess.User}
		select {
		case app.sessionCh <- msg:
		default:
			// UI lagging behind; drop intermediate transitions.
		}
	})

	if manager.State() == session.Authenticated {
		model.State = tui.StateHome
		app.homeView = views.NewHomeModel(app.userName(), model.Width, model.Height)
	} else {
		app.signInView = views.NewSignInModel("", model.Width, model.Height)
	}

	return app
}

// Init returns the initial command for the TUI.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{commands.ListenSessionCmd(a.sessionCh)}
	if a.model.State == tui.StateHome {
		cmds = append(cmds, a.homeView.Init(), commands.LoadGroupsCmd(a.service))
	} else {
		cmds = append(cmds, a.signInView.Init())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.model.Width = msg.Width
		a.model.Height = msg.Height
		return a.routeToActiveView(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyCtrlC:
			return a, tea.Quit
		case tui.KeyTab:
			if a.signedInScreen() {
				return a.cycleTab()
			}
		}

	case tui.SessionChangedMsg:
		return a.handleSessionChange(msg)

	// Navigation and submission messages emitted by views.
	case views.GotoSignUpMsg:
		a.model.State = tui.StateSignUp
		a.signUpView = views.NewSignUpModel(a.model.Width, a.model.Height)
		return a, a.signUpView.Init()

	case views.GotoSignInMsg:
		a.model.State = tui.StateSignIn
		a.signInView = views.NewSignInModel("", a.model.Width, a.model.Height)
		return a, a.signInView.Init()

	case views.SubmitSignInMsg:
		return a.routeWith(msg, commands.SignInCmd(a.manager, msg.Email, msg.Password))

	case views.SubmitSignUpMsg:
		return a.routeWith(msg, commands.SignUpCmd(a.manager, msg.Name, msg.Email, msg.Password, msg.Confirm))

	case tui.SignInResultMsg:
		if msg.Err == nil {
			return a.enterHome()
		}
		return a.routeToActiveView(msg)

	case tui.SignUpResultMsg:
		if msg.Err == nil {
			return a.enterHome()
		}
		return a.routeToActiveView(msg)

	case views.GroupSelectedMsg:
		return a.routeWith(msg, commands.LoadExercisesCmd(a.service, msg.Group))

	case views.OpenExerciseMsg:
		a.model.State = tui.StateExercise
		a.exerciseView = views.NewExerciseModel(msg.ExerciseID, a.model.Width, a.model.Height)
		return a, tea.Batch(a.exerciseView.Init(), commands.LoadExerciseCmd(a.service, msg.ExerciseID))

	case views.BackToHomeMsg:
		a.model.State = tui.StateHome
		a.model.Tab = tui.TabHome
		return a, nil

	case views.RegisterExerciseMsg:
		return a.routeWith(msg, commands.RegisterHistoryCmd(a.service, msg.ExerciseID))

	case views.SubmitProfileMsg:
		return a.routeWith(msg, commands.SaveProfileCmd(a.manager, msg.Update))

	case views.SignOutRequestedMsg:
		a.expectSignOut = true
		return a, commands.SignOutCmd(a.manager)
	}

	return a.routeToActiveView(msg)
}

// handleSessionChange reacts to manager transitions pushed through the
// subscription, re-arming the listener each time.
func (a *App) handleSessionChange(msg tui.SessionChangedMsg) (tea.Model, tea.Cmd) {
	listen := commands.ListenSessionCmd(a.sessionCh)

	if msg.State == session.SignedOut && a.model.State != tui.StateSignIn && a.model.State != tui.StateSignUp {
		notice := sessionExpiredNotice
		if a.expectSignOut {
			notice = ""
			a.expectSignOut = false
		}
		a.model.State = tui.StateSignIn
		a.model.Tab = tui.TabHome
		a.signInView = views.NewSignInModel(notice, a.model.Width, a.model.Height)
		return a, tea.Batch(listen, a.signInView.Init())
	}

	return a, listen
}

// enterHome switches to the home screen after authentication.
func (a *App) enterHome() (tea.Model, tea.Cmd) {
	a.model.State = tui.StateHome
	a.model.Tab = tui.TabHome
	a.homeView = views.NewHomeModel(a.userName(), a.model.Width, a.model.Height)
	return a, tea.Batch(a.homeView.Init(), commands.LoadGroupsCmd(a.service))
}

func (a *App) userName() string {
	if user := a.manager.Current(); user != nil {
		return user.Name
	}
	return ""
}

// signedInScreen reports whether the current screen is behind auth.
func (a *App) signedInScreen() bool {
	switch a.model.State {
	case tui.StateHome, tui.StateHistory, tui.StateProfile:
		return true
	default:
		return false
	}
}

// cycleTab rotates Home -> History -> Profile.
func (a *App) cycleTab() (tea.Model, tea.Cmd) {
	switch a.model.Tab {
	case tui.TabHome:
		a.model.Tab = tui.TabHistory
		a.model.State = tui.StateHistory
		a.historyView = views.NewHistoryModel(a.model.Width, a.model.Height)
		return a, tea.Batch(a.historyView.Init(), commands.LoadHistoryCmd(a.service))
	case tui.TabHistory:
		a.model.Tab = tui.TabProfile
		a.model.State = tui.StateProfile
		a.profileView = views.NewProfileModel(a.manager.Current(), a.model.Width, a.model.Height)
		return a, a.profileView.Init()
	default:
		a.model.Tab = tui.TabHome
		a.model.State = tui.StateHome
		return a, nil
	}
}

// routeWith forwards msg to the active view and batches the given
// command with whatever the view returns.
func (a *App) routeWith(msg tea.Msg, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	_, viewCmd := a.routeToActiveView(msg)
	return a, tea.Batch(cmd, viewCmd)
}

// routeToActiveView dispatches msg to the view for the current state.
func (a *App) routeToActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.model.State {
	case tui.StateSignIn:
		a.signInView, cmd = a.signInView.Update(msg)
	case tui.StateSignUp:
		a.signUpView, cmd = a.signUpView.Update(msg)
	case tui.StateHome:
		a.homeView, cmd = a.homeView.Update(msg)
	case tui.StateExercise:
		a.exerciseView, cmd = a.exerciseView.Update(msg)
	case tui.StateHistory:
		a.historyView, cmd = a.historyView.Update(msg)
	case tui.StateProfile:
		a.profileView, cmd = a.profileView.Update(msg)
	}
	return a, cmd
}

// View renders the active view plus the tab bar when signed in.
func (a *App) View() string {
	var content string
	switch a.model.State {
	case tui.StateSignIn:
		content = a.signInView.View()
	case tui.StateSignUp:
		content = a.signUpView.View()
	case tui.StateHome:
		content = a.homeView.View()
	case tui.StateExercise:
		content = a.exerciseView.View()
	case tui.StateHistory:
		content = a.historyView.View()
	case tui.StateProfile:
		content = a.profileView.View()
	}

	if a.signedInScreen() {
		content = lipgloss.JoinVertical(lipgloss.Left, content, a.tabBar())
	}
	return content
}

func (a *App) tabBar() string {
	labels := []string{"Home", "History", "Profile"}
	var rendered []string
	for i, label := range labels {
		if tui.Tab(i) == a.model.Tab {
			rendered = append(rendered, tui.ActiveTabStyle.Render(label))
		} else {
			rendered = append(rendered, tui.InactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, rendered...)
}
