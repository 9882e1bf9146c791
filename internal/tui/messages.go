package tui

import (
	"github.com/liftlog-dev/liftlog/internal/gym"
	"github.com/liftlog-dev/liftlog/internal/session"
)

// ============================================================================
// Session Messages
// ============================================================================

// SessionChangedMsg is pushed whenever the session manager transitions
// state, including forced sign-outs after a failed token refresh.
type SessionChangedMsg struct {
	State session.State
	User  *session.User
}

// SignInResultMsg carries the outcome of a sign-in attempt.
type SignInResultMsg struct {
	Err error
}

// SignUpResultMsg carries the outcome of a sign-up attempt.
type SignUpResultMsg struct {
	Err error
}

// ProfileSavedMsg carries the outcome of a profile update.
type ProfileSavedMsg struct {
	Err error
}

// ============================================================================
// Catalog and History Messages
// ============================================================================

// GroupsLoadedMsg carries the muscle group list.
type GroupsLoadedMsg struct {
	Groups []string
	Err    error
}

// ExercisesLoadedMsg carries the exercises of one muscle group.
type ExercisesLoadedMsg struct {
	Group     string
	Exercises []gym.Exercise
	Err       error
}

// ExerciseLoadedMsg carries a single exercise detail.
type ExerciseLoadedMsg struct {
	Exercise *gym.Exercise
	Err      error
}

// HistoryLoadedMsg carries the day-grouped exercise history.
type HistoryLoadedMsg struct {
	Days []gym.HistoryDay
	Err  error
}

// HistoryRegisteredMsg carries the outcome of registering an exercise.
type HistoryRegisteredMsg struct {
	Err error
}
