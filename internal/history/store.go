// Package history persists finished generate and build operations in a SQLite ledger so that
// recent activity per site can be listed after the fact.
package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/sitebuilder/internal/events"
	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

// DefaultLimit bounds Recent when the caller passes a non-positive limit.
const DefaultLimit = 20

// Store is a SQLite-backed operation ledger. It implements events.Sink.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens (creating if needed) the ledger at path. Use ":memory:" for an in-memory ledger.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, historyError(err, "create history directory").WithContext("path", path).Build()
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, historyError(err, "open history database").WithContext("path", path).Build()
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, historyError(err, "initialize history schema").WithContext("path", path).Build()
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS operations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		op_id TEXT NOT NULL,
		event_type TEXT NOT NULL,
		site TEXT NOT NULL,
		path TEXT,
		files INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		message TEXT,
		timestamp INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_operations_site ON operations(site);
	CREATE INDEX IF NOT EXISTS idx_operations_timestamp ON operations(timestamp);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append records e.
func (s *Store) Append(ctx context.Context, e events.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO operations (op_id, event_type, site, path, files, duration_ms, message, timestamp) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		e.OpID, e.Type, e.Site, e.Path, e.Files, e.DurationMs, e.Message, ts.UnixMilli(),
	)
	if err != nil {
		return historyError(err, "append operation").WithContext("site", e.Site).Build()
	}
	return nil
}

// Publish implements events.Sink.
func (s *Store) Publish(ctx context.Context, e events.Event) error {
	return s.Append(ctx, e)
}

// Recent returns up to limit operations, newest first. An empty site matches all sites.
func (s *Store) Recent(ctx context.Context, site string, limit int) ([]events.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = DefaultLimit
	}
	query := "SELECT op_id, event_type, site, path, files, duration_ms, message, timestamp FROM operations"
	args := []any{}
	if site != "" {
		query += " WHERE site = ?"
		args = append(args, site)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, historyError(err, "query operations").Build()
	}
	defer func() { _ = rows.Close() }()

	var out []events.Event
	for rows.Next() {
		var (
			e       events.Event
			path    sql.NullString
			message sql.NullString
			tsMilli int64
		)
		if err := rows.Scan(&e.OpID, &e.Type, &e.Site, &path, &e.Files, &e.DurationMs, &message, &tsMilli); err != nil {
			return nil, historyError(err, "scan operation").Build()
		}
		e.Path = path.String
		e.Message = message.String
		e.Timestamp = time.UnixMilli(tsMilli)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, historyError(err, "iterate operations").Build()
	}
	return out, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

func historyError(err error, msg string) *errors.ErrorBuilder {
	return errors.WrapError(err, errors.CategoryHistory, msg)
}
