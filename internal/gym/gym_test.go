package gym

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/liftlog-dev/liftlog/internal/api"
	"github.com/liftlog-dev/liftlog/internal/apperr"
)

func newService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewService(api.New(srv.URL, time.Second), nil)
}

func TestGroups(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/groups", r.URL.Path)
		_, _ = w.Write([]byte(`["costas","biceps","triceps","ombro"]`))
	})

	groups, err := svc.Groups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 4)
	require.Equal(t, "costas", groups[0])
}

func TestExercisesByGroup(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/exercises/bygroup/costas", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"1","name":"Remada curvada","group":"costas","series":3,"repetitions":12}]`))
	})

	exercises, err := svc.ExercisesByGroup(context.Background(), "costas")
	require.NoError(t, err)
	require.Len(t, exercises, 1)
	require.Equal(t, "Remada curvada (3x12)", exercises[0].String())
}

func TestExerciseDetail(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/exercises/7", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"7","name":"Pulley frente","group":"costas","demo":"pulley.gif","thumb":"pulley.png","series":4,"repetitions":10}`))
	})

	exercise, err := svc.Exercise(context.Background(), "7")
	require.NoError(t, err)
	require.Equal(t, "Pulley frente", exercise.Name)
	require.Equal(t, "pulley.gif", exercise.Demo)
}

func TestRegisterHistory(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/history", r.URL.Path)
		var body struct {
			ExerciseID string `json:"exercise_id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "7", body.ExerciseID)
		w.WriteHeader(http.StatusCreated)
	})

	require.NoError(t, svc.RegisterHistory(context.Background(), "7"))
}

func TestHistoryGroupedByDay(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/history", r.URL.Path)
		_, _ = w.Write([]byte(`[{"title":"26.08.26","data":[{"id":"h1","name":"Remada curvada","group":"costas","hour":"08:12"}]}]`))
	})

	days, err := svc.History(context.Background())
	require.NoError(t, err)
	require.Len(t, days, 1)
	require.Equal(t, "26.08.26", days[0].Title)
	require.Equal(t, "Remada curvada", days[0].Entries[0].Name)
}

func TestServerErrorsAreNormalized(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Exercise not found."}`))
	})

	_, err := svc.Exercise(context.Background(), "missing")
	require.Error(t, err)
	require.True(t, apperr.IsDomain(err))
	require.Equal(t, "Exercise not found.", apperr.Display(err, "Could not load the exercise."))
}
