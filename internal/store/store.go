// Package store provides the SQLite-backed HR ticket store. Tickets raised
// through the assistant are persisted across restarts so HR staff can pick
// them up later through the admin listing.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // register "sqlite" driver
)

// StatusOpen is the status assigned to every newly created ticket.
const StatusOpen = "Open"

// Ticket is a persisted escalation request.
type Ticket struct {
	// ID is the public ticket identifier, e.g. "HR-20260823153045-9F3A21BC".
	ID string `json:"ticket_id"`
	// Issue is the free-form problem description.
	Issue string `json:"issue"`
	// UserID is the optional employee ID of the requester.
	UserID string `json:"user_id,omitempty"`
	// Status is the ticket lifecycle state.
	Status string `json:"status"`
	// CreatedAt is when the ticket was persisted.
	CreatedAt time.Time `json:"created_at"`
}

// TicketStore persists and lists tickets. Implementations must be safe for
// concurrent use.
type TicketStore interface {
	// Create persists a new open ticket and returns it with its assigned ID.
	Create(ctx context.Context, issue, userID string) (Ticket, error)
	// Recent returns up to n tickets, newest first.
	Recent(ctx context.Context, n int) ([]Ticket, error)
	// Close releases any resources held by the store.
	Close() error
}

// SQLiteStore is a TicketStore backed by a local SQLite database.
type SQLiteStore struct {
	// db is the underlying database connection pool.
	db *sql.DB
}

// NewTicketID generates a public ticket identifier: a second-resolution
// timestamp plus a short random suffix, matching the format HR staff already
// recognize from the previous system.
func NewTicketID() string {
	ts := time.Now().Format("20060102150405")
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("HR-%s-%s", ts, suffix)
}

// DefaultDBPath returns the default path for the ticket database. It
// resolves to ~/.hrdesk/tickets.db, creating the directory if needed.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("store: could not determine home directory: %w", err)
	}
	dir := filepath.Join(home, ".hrdesk")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("store: could not create %s: %w", dir, err)
	}
	return filepath.Join(dir, "tickets.db"), nil
}

// Open opens (or creates) a SQLiteStore at the given path and runs the schema
// migration. Use ":memory:" for an in-memory database in tests.
func Open(path string) (*SQLiteStore, error) {
	// WAL mode improves concurrent read performance and is safe for single-host use.
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	// Limit to a single writer connection to avoid SQLITE_BUSY under concurrent writes.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// migrate creates the schema if it does not already exist.
func (s *SQLiteStore) migrate() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS tickets (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    ticket_id    TEXT    NOT NULL UNIQUE,
    issue        TEXT    NOT NULL,
    user_id      TEXT    NOT NULL DEFAULT '',
    status       TEXT    NOT NULL,
    created_at   INTEGER NOT NULL  -- Unix timestamp (seconds)
);
CREATE INDEX IF NOT EXISTS idx_tickets_created
    ON tickets (created_at);
`
	if _, err := s.db.Exec(ddl); err != nil {
		return fmt.Errorf("store: migrate: %w", err)
	}
	return nil
}

// Create persists a new open ticket and returns it with its assigned ID.
func (s *SQLiteStore) Create(ctx context.Context, issue, userID string) (Ticket, error) {
	t := Ticket{
		ID:        NewTicketID(),
		Issue:     issue,
		UserID:    userID,
		Status:    StatusOpen,
		CreatedAt: time.Now(),
	}

	const q = `INSERT INTO tickets (ticket_id, issue, user_id, status, created_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, q, t.ID, t.Issue, t.UserID, t.Status, t.CreatedAt.Unix()); err != nil {
		return Ticket{}, fmt.Errorf("store: create ticket: %w", err)
	}
	return t, nil
}

// Recent returns up to n tickets, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, n int) ([]Ticket, error) {
	const q = `
SELECT ticket_id, issue, user_id, status, created_at
FROM   tickets
ORDER  BY created_at DESC, id DESC
LIMIT  ?`

	rows, err := s.db.QueryContext(ctx, q, n)
	if err != nil {
		return nil, fmt.Errorf("store: recent: %w", err)
	}
	defer rows.Close()

	var tickets []Ticket
	for rows.Next() {
		var t Ticket
		var ts int64
		if err := rows.Scan(&t.ID, &t.Issue, &t.UserID, &t.Status, &ts); err != nil {
			return nil, fmt.Errorf("store: recent scan: %w", err)
		}
		t.CreatedAt = time.Unix(ts, 0)
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: recent rows: %w", err)
	}
	return tickets, nil
}

// Ping reports whether the database is reachable. Used by readiness probes.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("store: ping: %w", err)
	}
	return nil
}

// Close releases the database connection pool.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("store: close: %w", err)
	}
	return nil
}
