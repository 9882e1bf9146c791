package session

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// sessionKey is the fixed key the session record lives under. There is no
// schema versioning: a record that fails to parse loads as "no session".
const sessionKey = "session"

// Store provides SQLite-backed persistence for the session record.
type Store struct {
	db *sql.DB
}

// NewStore opens the SQLite database at dbPath and creates tables if they don't exist.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(schema)
	return err
}

// Save serializes the session and durably writes it under the fixed key,
// overwriting any prior record.
func (s *Store) Save(sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		sessionKey, string(data), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}

	return nil
}

// Load returns the last saved session. A missing record or one that fails
// to parse loads as an empty session, never as an error.
func (s *Store) Load() (Session, error) {
	row := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, sessionKey)

	var value string
	err := row.Scan(&value)
	if err == sql.ErrNoRows {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("read session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(value), &sess); err != nil {
		// Old or corrupt record shape. Treat as no session.
		return Session{}, nil
	}

	return sess, nil
}

// Clear removes the persisted record. Idempotent: clearing an empty store
// is not an error.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, sessionKey)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	return nil
}
