package tui

import "github.com/liftlog-dev/liftlog/internal/config"

// ViewState represents the current screen of the TUI.
type ViewState int

const (
	StateSignIn ViewState = iota
	StateSignUp
	StateHome
	StateExercise
	StateHistory
	StateProfile
)

// Tab represents the bottom tab bar entries shown while signed in.
type Tab int

const (
	TabHome Tab = iota
	TabHistory
	TabProfile
)

// Model holds shared TUI state passed between the app and its views.
type Model struct {
	Cfg    *config.Config
	Width  int
	Height int
	State  ViewState
	Tab    Tab
}

// NewModel creates the shared model with a sane default size; the real
// size arrives with the first WindowSizeMsg.
func NewModel(cfg *config.Config) *Model {
	return &Model{
		Cfg:    cfg,
		Width:  80,
		Height: 24,
		State:  StateSignIn,
	}
}
