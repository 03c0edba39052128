package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/devbrowser/backend/internal/logging"

	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed schema.sql
var schemaFS embed.FS

var (
	ErrTabNotFound      = errors.New("tab not found")
	ErrBookmarkNotFound = errors.New("bookmark not found")
	ErrHistoryNotFound  = errors.New("history entry not found")
)

// List caps mirror what the companion UI can display.
const (
	maxTabs      = 100
	maxBookmarks = 1000

	defaultHistoryLimit = 100
)

// Store persists tabs, bookmarks and history entries in SQLite.
// db should typically be the SQLite DB at <storage root>/devbrowser.db.
type Store struct {
	db     *sql.DB
	logger logging.Logger
}

// NewStore returns a Store and runs migrations from schema.sql.
// The caller owns db and is responsible for closing it.
func NewStore(db *sql.DB, logger logging.Logger) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	if logger == nil {
		return nil, errors.New("store: nil logger provided")
	}

	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schemaSQL)); err != nil {
		return nil, fmt.Errorf("failed to execute schema: %w", err)
	}

	return &Store{db: db, logger: logger.With(logging.Field{Key: "component", Value: "store"})}, nil
}

// ─── Tabs ──────────────────────────────────────────────────────────────

// CreateTab inserts a new open tab record.
func (s *Store) CreateTab(ctx context.Context, url, title, favicon string) (*Tab, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tabs (id, url, title, favicon, created_at)
         VALUES (?, ?, ?, ?, ?)`,
		id, url, title, favicon, now.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert tab: %w", err)
	}

	return &Tab{
		ID:        id,
		URL:       url,
		Title:     title,
		Favicon:   favicon,
		CreatedAt: now,
	}, nil
}

// ListTabs returns open tabs in the order they were opened.
func (s *Store) ListTabs(ctx context.Context) ([]Tab, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, url, title, favicon, created_at
         FROM tabs
         ORDER BY created_at ASC
         LIMIT ?`, maxTabs)
	if err != nil {
		return nil, fmt.Errorf("query tabs: %w", err)
	}
	defer rows.Close()

	out := []Tab{}
	for rows.Next() {
		var t Tab
		var createdAt int64
		if err := rows.Scan(&t.ID, &t.URL, &t.Title, &t.Favicon, &createdAt); err != nil {
			return nil, fmt.Errorf("scan tab: %w", err)
		}
		t.CreatedAt = time.Unix(createdAt, 0).UTC()
		out = append(out, t)
	}
	return out, rows.Err()
}

// DeleteTab removes a tab by id.
func (s *Store) DeleteTab(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "tabs", id, ErrTabNotFound)
}

// ─── Bookmarks ─────────────────────────────────────────────────────────

// CreateBookmark inserts a bookmark. An empty folder falls back to "Default".
func (s *Store) CreateBookmark(ctx context.Context, url, title, favicon, folder string) (*Bookmark, error) {
	if folder == "" {
		folder = "Default"
	}

	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bookmarks (id, url, title, favicon, folder, created_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		id, url, title, favicon, folder, now.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert bookmark: %w", err)
	}

	return &Bookmark{
		ID:        id,
		URL:       url,
		Title:     title,
		Favicon:   favicon,
		Folder:    folder,
		CreatedAt: now,
	}, nil
}

// ListBookmarks returns bookmarks, newest first.
func (s *Store) ListBookmarks(ctx context.Context) ([]Bookmark, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, url, title, favicon, folder, created_at
         FROM bookmarks
         ORDER BY created_at DESC, id
         LIMIT ?`, maxBookmarks)
	if err != nil {
		return nil, fmt.Errorf("query bookmarks: %w", err)
	}
	defer rows.Close()

	out := []Bookmark{}
	for rows.Next() {
		var b Bookmark
		var createdAt int64
		if err := rows.Scan(&b.ID, &b.URL, &b.Title, &b.Favicon, &b.Folder, &createdAt); err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		b.CreatedAt = time.Unix(createdAt, 0).UTC()
		out = append(out, b)
	}
	return out, rows.Err()
}

// DeleteBookmark removes a bookmark by id.
func (s *Store) DeleteBookmark(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "bookmarks", id, ErrBookmarkNotFound)
}

// ─── History ───────────────────────────────────────────────────────────

// RecordVisit upserts a history entry for url. A repeat visit increments
// visit_count atomically and refreshes visit_time; a first visit inserts a
// fresh row with visit_count 1. The returned entry reflects the new state.
func (s *Store) RecordVisit(ctx context.Context, url, title, favicon string) (*HistoryEntry, error) {
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if rb := tx.Rollback(); rb != nil && rb != sql.ErrTxDone {
			s.logger.Warn("rollback failed", logging.Field{Key: "error", Value: rb.Error()})
		}
	}()

	res, err := tx.ExecContext(ctx,
		`UPDATE history
         SET visit_time = ?, visit_count = visit_count + 1
         WHERE url = ?`,
		now.Unix(), url,
	)
	if err != nil {
		return nil, fmt.Errorf("update history: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		id := uuid.New().String()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO history (id, url, title, favicon, visit_time, visit_count)
             VALUES (?, ?, ?, ?, ?, 1)`,
			id, url, title, favicon, now.Unix(),
		); err != nil {
			return nil, fmt.Errorf("insert history: %w", err)
		}
	}

	entry, err := s.historyByURL(ctx, tx, url)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return entry, nil
}

func (s *Store) historyByURL(ctx context.Context, tx *sql.Tx, url string) (*HistoryEntry, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT id, url, title, favicon, visit_time, visit_count
         FROM history
         WHERE url = ?
         LIMIT 1`, url)

	var e HistoryEntry
	var visitTime int64
	if err := row.Scan(&e.ID, &e.URL, &e.Title, &e.Favicon, &visitTime, &e.VisitCount); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrHistoryNotFound
		}
		return nil, fmt.Errorf("scan history: %w", err)
	}
	e.VisitTime = time.Unix(visitTime, 0).UTC()
	return &e, nil
}

// ListHistory returns history entries, most recently visited first.
// limit <= 0 uses the default.
func (s *Store) ListHistory(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, url, title, favicon, visit_time, visit_count
         FROM history
         ORDER BY visit_time DESC, id
         LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	out := []HistoryEntry{}
	for rows.Next() {
		var e HistoryEntry
		var visitTime int64
		if err := rows.Scan(&e.ID, &e.URL, &e.Title, &e.Favicon, &visitTime, &e.VisitCount); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.VisitTime = time.Unix(visitTime, 0).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

// DeleteHistoryEntry removes a single history entry by id.
func (s *Store) DeleteHistoryEntry(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "history", id, ErrHistoryNotFound)
}

// ClearHistory removes all history entries.
func (s *Store) ClearHistory(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	s.logger.Info("cleared history")
	return nil
}

// ─── helpers ───────────────────────────────────────────────────────────

// deleteByID deletes one row from table, mapping zero affected rows to the
// caller's sentinel. table is always one of the fixed names above.
func (s *Store) deleteByID(ctx context.Context, table, id string, notFound error) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
