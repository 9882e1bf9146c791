// Package gym exposes the exercise catalog and training history endpoints.
// All computation happens server-side; this is a thin typed layer over the
// API client, sharing its error normalization.
package gym

import (
	"context"
	"fmt"

	"github.com/liftlog-dev/liftlog/internal/api"
	"github.com/liftlog-dev/liftlog/internal/log"
)

// Exercise is a catalog entry. Series and Repetitions describe the
// prescribed sets; Demo and Thumb reference server-hosted imagery.
type Exercise struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Group       string `json:"group"`
	Demo        string `json:"demo"`
	Thumb       string `json:"thumb"`
	Series      int    `json:"series"`
	Repetitions int    `json:"repetitions"`
}

// HistoryEntry is one completed exercise in the user's log.
type HistoryEntry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Group     string `json:"group"`
	Hour      string `json:"hour"`
	CreatedAt string `json:"created_at"`
}

// HistoryDay groups history entries under a day title, mirroring the
// section-list shape the server returns.
type HistoryDay struct {
	Title   string         `json:"title"`
	Entries []HistoryEntry `json:"data"`
}

// Service fetches catalog and history data through the API client.
type Service struct {
	client *api.Client
	logger *log.Logger // optional
}

// NewService creates a Service over the given client.
func NewService(client *api.Client, logger *log.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// Groups returns the muscle group names.
func (s *Service) Groups(ctx context.Context) ([]string, error) {
	var groups []string
	if err := s.client.Get(ctx, "/groups", &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// ExercisesByGroup returns the exercises for one muscle group.
func (s *Service) ExercisesByGroup(ctx context.Context, group string) ([]Exercise, error) {
	var exercises []Exercise
	if err := s.client.Get(ctx, "/exercises/bygroup/"+group, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// Exercise returns the detail for a single exercise.
func (s *Service) Exercise(ctx context.Context, id string) (*Exercise, error) {
	var exercise Exercise
	if err := s.client.Get(ctx, "/exercises/"+id, &exercise); err != nil {
		return nil, err
	}
	return &exercise, nil
}

// RegisterHistory records a completed exercise in the user's history.
func (s *Service) RegisterHistory(ctx context.Context, exerciseID string) error {
	body := struct {
		ExerciseID string `json:"exercise_id"`
	}{exerciseID}

	if err := s.client.Post(ctx, "/history", body, nil); err != nil {
		return err
	}
	if s.logger != nil {
		_ = s.logger.Append(log.LogEvent{Event: log.EventHistoryRegistered, ExerciseID: exerciseID})
	}
	return nil
}

// History returns the user's completed exercises grouped by day, newest
// day first as served by the API.
func (s *Service) History(ctx context.Context) ([]HistoryDay, error) {
	var days []HistoryDay
	if err := s.client.Get(ctx, "/history", &days); err != nil {
		return nil, err
	}
	return days, nil
}

// String implements fmt.Stringer for list rendering.
func (e Exercise) String() string {
	return fmt.Sprintf("%s (%dx%d)", e.Name, e.Series, e.Repetitions)
}
