package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "liftlog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)

	sess := Session{
		User:         &User{ID: "u1", Name: "Ana", Email: "ana@example.com", Avatar: "ana.png"},
		Token:        "access-token",
		RefreshToken: "refresh-token",
	}
	require.NoError(t, store.Save(sess))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, sess, loaded)
}

func TestStoreRoundTripAbsentAvatar(t *testing.T) {
	store := newTestStore(t)

	sess := Session{
		User:         &User{ID: "u2", Name: "Bruno", Email: "bruno@example.com"},
		Token:        "access-token",
		RefreshToken: "refresh-token",
	}
	require.NoError(t, store.Save(sess))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, sess, loaded)
	require.Empty(t, loaded.User.Avatar)
}

func TestStoreLoadEmpty(t *testing.T) {
	store := newTestStore(t)

	loaded, err := store.Load()
	require.NoError(t, err)
	require.True(t, loaded.Empty())
}

func TestStoreSaveOverwrites(t *testing.T) {
	store := newTestStore(t)

	first := Session{User: &User{ID: "u1", Name: "Ana", Email: "a@example.com"}, Token: "t1", RefreshToken: "r1"}
	second := Session{User: &User{ID: "u1", Name: "Ana Maria", Email: "a@example.com"}, Token: "t2", RefreshToken: "r2"}
	require.NoError(t, store.Save(first))
	require.NoError(t, store.Save(second))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, second, loaded)
}

func TestStoreClearIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Clear()) // nothing stored yet

	sess := Session{User: &User{ID: "u1", Name: "Ana", Email: "a@example.com"}, Token: "t", RefreshToken: "r"}
	require.NoError(t, store.Save(sess))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())

	loaded, err := store.Load()
	require.NoError(t, err)
	require.True(t, loaded.Empty())
}

func TestStoreCorruptRecordLoadsAsEmpty(t *testing.T) {
	store := newTestStore(t)

	_, err := store.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)`,
		sessionKey, `{"user": 42, not json`,
	)
	require.NoError(t, err)

	loaded, err := store.Load()
	require.NoError(t, err)
	require.True(t, loaded.Empty())
}
