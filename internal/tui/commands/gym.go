package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/liftlog-dev/liftlog/internal/gym"
	"github.com/liftlog-dev/liftlog/internal/tui"
)

// LoadGroupsCmd fetches the muscle group list.
func LoadGroupsCmd(service *gym.Service) tea.Cmd {
	return func() tea.Msg {
		groups, err := service.Groups(context.Background())
		return tui.GroupsLoadedMsg{Groups: groups, Err: err}
	}
}

// LoadExercisesCmd fetches the exercises of one muscle group.
func LoadExercisesCmd(service *gym.Service, group string) tea.Cmd {
	return func() tea.Msg {
		exercises, err := service.ExercisesByGroup(context.Background(), group)
		return tui.ExercisesLoadedMsg{Group: group, Exercises: exercises, Err: err}
	}
}

// LoadExerciseCmd fetches one exercise detail.
func LoadExerciseCmd(service *gym.Service, id string) tea.Cmd {
	return func() tea.Msg {
		exercise, err := service.Exercise(context.Background(), id)
		return tui.ExerciseLoadedMsg{Exercise: exercise, Err: err}
	}
}

// LoadHistoryCmd fetches the day-grouped history.
func LoadHistoryCmd(service *gym.Service) tea.Cmd {
	return func() tea.Msg {
		days, err := service.History(context.Background())
		return tui.HistoryLoadedMsg{Days: days, Err: err}
	}
}

// RegisterHistoryCmd registers a completed exercise.
func RegisterHistoryCmd(service *gym.Service, exerciseID string) tea.Cmd {
	return func() tea.Msg {
		return tui.HistoryRegisteredMsg{Err: service.RegisterHistory(context.Background(), exerciseID)}
	}
}
