package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/liftlog-dev/liftlog/internal/apperr"
)

// fakeTokens is a TokenSource whose refresh behavior the test controls.
type fakeTokens struct {
	mu       sync.Mutex
	token    string
	refreshn atomic.Int32
	fail     bool
	delay    time.Duration
}

func (f *fakeTokens) AccessToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeTokens) Refresh(_ context.Context) error {
	f.refreshn.Add(1)
	time.Sleep(f.delay)
	if f.fail {
		return &apperr.AppError{Status: http.StatusUnauthorized}
	}
	f.mu.Lock()
	f.token = "fresh-token"
	f.mu.Unlock()
	return nil
}

func TestGetDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/groups", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`["costas","biceps"]`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	var groups []string
	require.NoError(t, c.Get(context.Background(), "/groups", &groups))
	require.Equal(t, []string{"costas", "biceps"}, groups)
}

func TestServerMessageBecomesDomainError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"E-mail already in use."}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	err := c.Post(context.Background(), "/users", map[string]string{"name": "ana"}, nil)
	require.Error(t, err)
	require.True(t, apperr.IsDomain(err))
	require.Equal(t, "E-mail already in use.", apperr.Display(err, "fallback"))
}

func TestNetworkFailureIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL, time.Second)
	err := c.Get(context.Background(), "/groups", nil)
	require.Error(t, err)
	require.False(t, apperr.IsDomain(err))
	require.Equal(t, "Could not load groups.", apperr.Display(err, "Could not load groups."))
}

func TestUnauthorizedRefreshesAndRetriesOnce(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Header.Get("Authorization") != "Bearer fresh-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tokens := &fakeTokens{token: "stale-token"}
	c := New(srv.URL, time.Second)
	c.SetTokenSource(tokens)

	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, c.Get(context.Background(), "/history", &out))
	require.True(t, out.OK)
	require.Equal(t, int32(1), tokens.refreshn.Load())
	require.Equal(t, int32(2), calls.Load()) // original + one retry
}

func TestRefreshFailurePropagatesOriginalUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"token expired"}`))
	}))
	defer srv.Close()

	tokens := &fakeTokens{token: "stale-token", fail: true}
	c := New(srv.URL, time.Second)
	c.SetTokenSource(tokens)

	err := c.Get(context.Background(), "/history", nil)
	require.Error(t, err)
	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, http.StatusUnauthorized, appErr.Status)
	require.Equal(t, int32(1), tokens.refreshn.Load())
}

func TestConcurrentUnauthorizedSharesOneRefresh(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh-token" {
			// Hold both initial requests until each has arrived, so
			// their 401s race into the refresh path together.
			<-release
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	// The slow refresh keeps the first flight open long enough for the
	// second 401 to join it instead of starting its own.
	tokens := &fakeTokens{token: "stale-token", delay: 200 * time.Millisecond}
	c := New(srv.URL, 5*time.Second)
	c.SetTokenSource(tokens)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var out []string
			errs[i] = c.Get(context.Background(), "/history", &out)
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, int32(1), tokens.refreshn.Load())
}

func TestRefreshEndpointDoesNotRecurse(t *testing.T) {
	tokens := &fakeTokens{token: "stale-token"}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"refresh token revoked"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	c.SetTokenSource(tokens)

	err := c.Post(context.Background(), "/token/refresh", map[string]string{"refresh_token": "x"}, nil)
	require.Error(t, err)
	require.Equal(t, int32(0), tokens.refreshn.Load())
}
