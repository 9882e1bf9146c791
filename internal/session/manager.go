package session

import (
	"context"
	"errors"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/liftlog-dev/liftlog/internal/api"
	"github.com/liftlog-dev/liftlog/internal/apperr"
	"github.com/liftlog-dev/liftlog/internal/log"
)

// ErrNotSignedIn is returned by operations that require an authenticated
// session when there is none.
var ErrNotSignedIn = errors.New("not signed in")

// Manager owns the in-memory session and its persisted record. It is the
// only writer of both. Mutating operations are serialized: a second call
// issued while one is in flight waits for it.
//
// Manager implements api.TokenSource, so the HTTP client pulls the current
// access token from it and routes 401-triggered refreshes back into Refresh.
type Manager struct {
	client *api.Client
	store  *Store
	logger *log.Logger // optional, best-effort

	opMu      sync.Mutex // serializes mutating operations
	refreshMu sync.Mutex // serializes Refresh, which may run mid-operation

	mu    sync.RWMutex // guards state, sess, subs
	state State
	sess  Session
	subs  []func(State, Session)
}

// NewManager creates a Manager backed by the given client and store, and
// registers itself as the client's token source.
func NewManager(client *api.Client, store *Store, logger *log.Logger) *Manager {
	m := &Manager{client: client, store: store, logger: logger}
	client.SetTokenSource(m)
	return m
}

// Subscribe registers fn to be called after every state transition and
// after profile changes. fn runs on the calling operation's goroutine and
// must not invoke mutating Manager operations.
func (m *Manager) Subscribe(fn func(State, Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// State returns the current state of the session state machine.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Current returns a copy of the signed-in user, or nil when signed out.
func (m *Manager) Current() *User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.sess.User == nil {
		return nil
	}
	u := *m.sess.User
	return &u
}

// AccessToken implements api.TokenSource.
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sess.Token
}

// SignIn exchanges credentials for a session. On success the session is
// stored in memory, persisted, and the state becomes Authenticated. On
// failure the pre-call session is left untouched.
func (m *Manager) SignIn(ctx context.Context, email, password string) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()
	return m.signInLocked(ctx, email, password)
}

func (m *Manager) signInLocked(ctx context.Context, email, password string) error {
	prev := m.State()
	m.transition(Authenticating)

	var resp authResponse
	if err := m.client.Post(ctx, "/sign-in", credentials{Email: email, Password: password}, &resp); err != nil {
		m.transition(prev)
		return err
	}

	sess := Session{User: &resp.User, Token: resp.Token, RefreshToken: resp.RefreshToken}
	m.setSession(sess)
	m.persist(sess)
	m.transition(Authenticated)
	m.logEvent(log.LogEvent{Event: log.EventSignedIn, UserID: resp.User.ID, Email: resp.User.Email})
	return nil
}

// SignUp creates an account and immediately signs in with the same
// credentials; account creation alone does not establish a session.
// The password confirmation is checked before any request is sent.
func (m *Manager) SignUp(ctx context.Context, name, email, password, confirm string) error {
	if password != confirm {
		return &apperr.AppError{Message: "Passwords do not match.", Domain: true}
	}

	m.opMu.Lock()
	defer m.opMu.Unlock()

	body := struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{name, email, password}

	if err := m.client.Post(ctx, "/users", body, nil); err != nil {
		return err
	}
	m.logEvent(log.LogEvent{Event: log.EventSignedUp, Email: email})

	return m.signInLocked(ctx, email, password)
}

// SignOut clears the in-memory session and the persisted record. It always
// succeeds locally regardless of network reachability.
func (m *Manager) SignOut() {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	user := m.Current()
	m.setSession(Session{})
	if err := m.store.Clear(); err != nil {
		m.logEvent(log.LogEvent{Event: log.EventSignedOut, Error: err.Error()})
	} else if user != nil {
		m.logEvent(log.LogEvent{Event: log.EventSignedOut, UserID: user.ID})
	}
	m.transition(SignedOut)
}

// Refresh exchanges the stored refresh token for a new token pair. On
// success the session is updated and persisted. On failure the session is
// cleared, storage is wiped, and the state becomes SignedOut — the only
// operation whose failure forces a sign-out.
//
// Refresh implements api.TokenSource and is invoked by the HTTP client's
// single-flight 401 retry, possibly in the middle of another operation,
// so it deliberately does not take the operation lock.
func (m *Manager) Refresh(ctx context.Context) error {
	m.refreshMu.Lock()
	defer m.refreshMu.Unlock()

	m.mu.RLock()
	refreshToken := m.sess.RefreshToken
	user := m.sess.User
	m.mu.RUnlock()

	if refreshToken == "" {
		return ErrNotSignedIn
	}

	m.transition(RefreshingToken)

	var resp tokenPair
	body := struct {
		RefreshToken string `json:"refresh_token"`
	}{refreshToken}

	if err := m.client.Post(ctx, "/token/refresh", body, &resp); err != nil {
		m.setSession(Session{})
		_ = m.store.Clear()
		m.logEvent(log.LogEvent{Event: log.EventRefreshFailed, Error: err.Error()})
		m.transition(SignedOut)
		return err
	}

	m.mu.Lock()
	m.sess.Token = resp.Token
	m.sess.RefreshToken = resp.RefreshToken
	sess := m.sess
	m.mu.Unlock()

	m.persist(sess)
	m.transition(Authenticated)
	if user != nil {
		m.logEvent(log.LogEvent{Event: log.EventTokenRefreshed, UserID: user.ID})
	}
	return nil
}

// UpdateProfile sends the changed fields to the server and applies them
// locally only after the server confirms. A failed update leaves both the
// in-memory and persisted profile untouched.
func (m *Manager) UpdateProfile(ctx context.Context, update ProfileUpdate) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	if m.State() != Authenticated {
		return ErrNotSignedIn
	}

	if err := m.client.Put(ctx, "/users", update, nil); err != nil {
		return err
	}

	m.mu.Lock()
	if m.sess.User != nil {
		user := *m.sess.User
		if update.Name != "" {
			user.Name = update.Name
		}
		if update.Avatar != "" {
			user.Avatar = update.Avatar
		}
		m.sess.User = &user
	}
	sess := m.sess
	m.mu.Unlock()

	m.persist(sess)
	m.notify()
	if sess.User != nil {
		m.logEvent(log.LogEvent{Event: log.EventProfileUpdated, UserID: sess.User.ID})
	}
	return nil
}

// Restore loads the persisted session at startup. A record with
// parseable-looking tokens moves the state to Authenticated without a
// network round trip; actual expiry is validated lazily by the first
// authorized request, which triggers a refresh on 401. Storage read
// failures and unparseable records are treated as "no session".
func (m *Manager) Restore() error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	sess, err := m.store.Load()
	if err != nil || sess.Empty() {
		return nil
	}

	if !looksLikeToken(sess.Token) {
		// Old-shape or corrupt record. Drop it rather than restoring a
		// session that can never authorize a request.
		_ = m.store.Clear()
		return nil
	}

	m.setSession(sess)
	m.transition(Authenticated)
	m.logEvent(log.LogEvent{Event: log.EventSessionRestored, UserID: sess.User.ID})
	return nil
}

// looksLikeToken reports whether raw parses as a JWT. The signature is not
// (and cannot be) verified client-side; this only filters out garbage.
func looksLikeToken(raw string) bool {
	_, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	return err == nil
}

func (m *Manager) setSession(sess Session) {
	m.mu.Lock()
	m.sess = sess
	m.mu.Unlock()
}

// persist writes the session record. Persistence failures are logged and
// otherwise swallowed: the in-memory session stays valid for this run.
func (m *Manager) persist(sess Session) {
	if err := m.store.Save(sess); err != nil {
		m.logEvent(log.LogEvent{Event: log.EventStorageError, Error: err.Error()})
	}
}

// transition moves the state machine and notifies subscribers.
func (m *Manager) transition(state State) {
	m.mu.Lock()
	m.state = state
	m.mu.Unlock()
	m.notify()
}

func (m *Manager) notify() {
	m.mu.RLock()
	state := m.state
	sess := m.sess
	subs := make([]func(State, Session), len(m.subs))
	copy(subs, m.subs)
	m.mu.RUnlock()

	for _, fn := range subs {
		fn(state, sess)
	}
}

func (m *Manager) logEvent(event log.LogEvent) {
	if m.logger != nil {
		_ = m.logger.Append(event)
	}
}

// credentials is the /sign-in request body.
type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is the /sign-in response body.
type authResponse struct {
	User         User   `json:"user"`
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// tokenPair is the /token/refresh response body.
type tokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}
