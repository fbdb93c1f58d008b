// ============================================================================
// HeLang - Saint He's programming language
// ============================================================================
//
// Package:     store
// Description: SQLite persistence for interactive sessions
// Author:      lwd-temp
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	heerror "github.com/lwd-temp/helang/foundation/core/error"
	helog "github.com/lwd-temp/helang/foundation/core/log"
	"github.com/lwd-temp/helang/foundation/helang/env"
	"github.com/lwd-temp/helang/foundation/helang/u8"
)

// Session is a saved interactive session
type Session struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Bindings  int       `json:"bindings"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Entry is one executed line of a session
type Entry struct {
	Seq       int       `json:"seq"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// Config holds configuration for the SQLite store
type Config struct {
	Path   string
	Logger *helog.Logger
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Path: "./data/helang.db",
	}
}

// Store keeps sessions, their variable snapshots and their history
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	logger *helog.Logger
}

// Open opens (and creates if needed) the database at cfg.Path
func Open(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		cfg.Path = DefaultConfig().Path
	}
	if cfg.Logger == nil {
		cfg.Logger = helog.GetDefault()
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, dbError(err, "failed to create directory", "store.Open")
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on")
	if err != nil {
		return nil, dbError(err, "failed to open database", "store.Open")
	}

	s := &Store{db: db, logger: cfg.Logger.WithField("component", "store")}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, dbError(err, "failed to initialize schema", "store.Open")
	}

	s.logger.Debug("Session store opened", helog.Fields{"path": cfg.Path})
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS bindings (
		session_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (session_id, position),
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS history (
		session_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		source TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (session_id, seq),
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_updated ON sessions(updated_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// CreateSession registers a new session and returns it
func (s *Store) CreateSession(ctx context.Context, name string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	session := &Session{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, session.ID, session.Name, session.CreatedAt, session.UpdatedAt)
	if err != nil {
		return nil, dbError(err, "failed to create session", "store.CreateSession")
	}

	return session, nil
}

// RenameSession changes the name of a session
func (s *Store) RenameSession(ctx context.Context, sessionID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `UPDATE sessions SET name = ?, updated_at = ? WHERE id = ?`,
		name, time.Now().UTC(), sessionID)
	if err != nil {
		return dbError(err, "failed to rename session", "store.RenameSession")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sessionNotFound(sessionID, "store.RenameSession")
	}
	return nil
}

// SaveSnapshot replaces the stored bindings of a session
func (s *Store) SaveSnapshot(ctx context.Context, sessionID string, bindings []env.Binding) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return dbError(err, "failed to begin transaction", "store.SaveSnapshot")
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE sessions SET updated_at = ? WHERE id = ?`, time.Now().UTC(), sessionID)
	if err != nil {
		return dbError(err, "failed to update session", "store.SaveSnapshot")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sessionNotFound(sessionID, "store.SaveSnapshot")
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM bindings WHERE session_id = ?`, sessionID); err != nil {
		return dbError(err, "failed to clear bindings", "store.SaveSnapshot")
	}

	for i, b := range bindings {
		value, err := json.Marshal(b.Value)
		if err != nil {
			return heerror.Wrap(err, "failed to encode binding").
				WithCode(heerror.CodeInternal).
				WithDetail("name", b.Name)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO bindings (session_id, position, name, value)
			VALUES (?, ?, ?, ?)
		`, sessionID, i, b.Name, string(value)); err != nil {
			return dbError(err, "failed to save binding", "store.SaveSnapshot")
		}
	}

	if err := tx.Commit(); err != nil {
		return dbError(err, "failed to commit snapshot", "store.SaveSnapshot")
	}

	s.logger.Debug("Snapshot saved", helog.Fields{"session_id": sessionID, "bindings": len(bindings)})
	return nil
}

// LoadSnapshot returns the stored bindings of a session in declaration order
func (s *Store) LoadSnapshot(ctx context.Context, sessionID string) ([]env.Binding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.requireSession(ctx, sessionID, "store.LoadSnapshot"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, value FROM bindings
		WHERE session_id = ?
		ORDER BY position ASC
	`, sessionID)
	if err != nil {
		return nil, dbError(err, "failed to load snapshot", "store.LoadSnapshot")
	}
	defer rows.Close()

	var bindings []env.Binding
	for rows.Next() {
		var name, raw string
		if err := rows.Scan(&name, &raw); err != nil {
			return nil, dbError(err, "failed to scan binding", "store.LoadSnapshot")
		}

		var decoded interface{}
		if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
			return nil, dbError(err, "failed to decode binding "+name, "store.LoadSnapshot")
		}
		value, err := u8.FromAny(decoded)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, env.Binding{Name: name, Value: value})
	}

	if err := rows.Err(); err != nil {
		return nil, dbError(err, "failed to load snapshot", "store.LoadSnapshot")
	}
	return bindings, nil
}

// AppendHistory records one executed line and returns its sequence number
func (s *Store) AppendHistory(ctx context.Context, sessionID, source string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireSession(ctx, sessionID, "store.AppendHistory"); err != nil {
		return 0, err
	}

	var seq int
	row := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM history WHERE session_id = ?`, sessionID)
	if err := row.Scan(&seq); err != nil {
		return 0, dbError(err, "failed to allocate history entry", "store.AppendHistory")
	}

	now := time.Now().UTC()
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO history (session_id, seq, source, created_at)
		VALUES (?, ?, ?, ?)
	`, sessionID, seq, source, now); err != nil {
		return 0, dbError(err, "failed to append history", "store.AppendHistory")
	}
	if _, err := s.db.ExecContext(ctx, `UPDATE sessions SET updated_at = ? WHERE id = ?`, now, sessionID); err != nil {
		return 0, dbError(err, "failed to update session", "store.AppendHistory")
	}

	return seq, nil
}

// History returns the executed lines of a session, oldest first. A
// non-positive limit returns everything.
func (s *Store) History(ctx context.Context, sessionID string, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.requireSession(ctx, sessionID, "store.History"); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, source, created_at FROM history
		WHERE session_id = ?
		ORDER BY seq ASC
		LIMIT ?
	`, sessionID, limit)
	if err != nil {
		return nil, dbError(err, "failed to load history", "store.History")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Seq, &e.Source, &e.CreatedAt); err != nil {
			return nil, dbError(err, "failed to scan history", "store.History")
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "failed to load history", "store.History")
	}
	return entries, nil
}

// ListSessions returns sessions, most recently updated first
func (s *Store) ListSessions(ctx context.Context, limit int) ([]*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.name, s.created_at, s.updated_at,
			(SELECT COUNT(*) FROM bindings b WHERE b.session_id = s.id)
		FROM sessions s
		ORDER BY s.updated_at DESC, s.created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, dbError(err, "failed to list sessions", "store.ListSessions")
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		var session Session
		if err := rows.Scan(&session.ID, &session.Name, &session.CreatedAt, &session.UpdatedAt, &session.Bindings); err != nil {
			return nil, dbError(err, "failed to scan session", "store.ListSessions")
		}
		sessions = append(sessions, &session)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "failed to list sessions", "store.ListSessions")
	}
	return sessions, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) requireSession(ctx context.Context, sessionID, op string) error {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions WHERE id = ?`, sessionID).Scan(&exists)
	if err != nil {
		return dbError(err, "failed to look up session", op)
	}
	if exists == 0 {
		return sessionNotFound(sessionID, op)
	}
	return nil
}

func sessionNotFound(id, op string) error {
	return heerror.Newf(heerror.CodeNotFound, "session %s not found", id).
		WithOperation(op).
		WithDetail("session_id", id)
}

func dbError(err error, message, op string) error {
	return heerror.Wrap(err, message).
		WithCode(heerror.CodeDatabaseError).
		WithOperation(op)
}
