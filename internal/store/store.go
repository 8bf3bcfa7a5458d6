// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists content items, drafts and the curation log in
// SQLite.
//
// Ingestion idempotency lives here: content_items.content_hash is UNIQUE
// and inserts ignore conflicts, so re-ingesting a feed never duplicates a
// row. Slugs are unique among pending and published drafts through a
// partial unique index; inserts probe for a free slug and suffix -2, -3
// and so on.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/pdiddy/guide-curator/pkg/types"
)

// Sentinel errors.
var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyProcessed  = errors.New("content item already processed")
	ErrInvalidTransition = errors.New("invalid draft status transition")
)

// timeLayout is fixed-width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store is the SQLite persistence boundary. It is safe for concurrent use;
// SQLite serializes writers.
type Store struct {
	db    *sql.DB
	log   *zap.Logger
	now   func() time.Time
	newID func() (string, error)
}

// Open opens or creates the database at cfg.Path and applies the schema.
func Open(cfg types.StoreConfig, logger *zap.Logger) (*Store, error) {
	if cfg.Path == "" {
		return nil, errors.New("store path is empty")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Store{
		db:    db,
		log:   logger,
		now:   func() time.Time { return time.Now().UTC() },
		newID: newDraftID,
	}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func newDraftID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS content_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source_id TEXT NOT NULL,
			source_type TEXT NOT NULL,
			trust_category TEXT NOT NULL DEFAULT '',
			evidence_tier TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL,
			url TEXT NOT NULL,
			published_at TEXT,
			content_hash TEXT NOT NULL UNIQUE,
			summary TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL DEFAULT '[]',
			raw_payload TEXT NOT NULL DEFAULT '{}',
			processed INTEGER NOT NULL DEFAULT 0,
			is_duplicate INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_content_items_processed ON content_items(processed, id)`,
		`CREATE TABLE IF NOT EXISTS drafts (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			summary TEXT NOT NULL DEFAULT '',
			steps TEXT NOT NULL DEFAULT '[]',
			examples TEXT NOT NULL DEFAULT '[]',
			role TEXT NOT NULL DEFAULT '',
			industries TEXT NOT NULL DEFAULT '[]',
			tools TEXT NOT NULL DEFAULT '[]',
			evidence_tier TEXT NOT NULL DEFAULT '',
			risk_level TEXT NOT NULL DEFAULT 'low',
			quality_score INTEGER NOT NULL DEFAULT 0,
			quality_category TEXT NOT NULL DEFAULT '',
			sources TEXT NOT NULL DEFAULT '[]',
			status TEXT NOT NULL,
			slug TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			origin TEXT NOT NULL,
			content_item_id INTEGER REFERENCES content_items(id),
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			published_at TEXT
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_drafts_live_slug ON drafts(slug) WHERE status IN ('pending', 'published')`,
		`CREATE INDEX IF NOT EXISTS idx_drafts_status_category ON drafts(status, category)`,
		`CREATE TABLE IF NOT EXISTS curation_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			content_item_id INTEGER NOT NULL REFERENCES content_items(id),
			outcome TEXT NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			draft_id TEXT REFERENCES drafts(id),
			scores TEXT NOT NULL DEFAULT '{}',
			created_at TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func exec(ctx context.Context, e execer, b sq.Sqlizer) (sql.Result, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}
	return e.ExecContext(ctx, query, args...)
}

func query(ctx context.Context, e execer, b sq.Sqlizer) (*sql.Rows, error) {
	q, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}
	return e.QueryContext(ctx, q, args...)
}

func queryRow(ctx context.Context, e execer, b sq.Sqlizer) (*sql.Row, error) {
	q, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}
	return e.QueryRowContext(ctx, q, args...), nil
}

// inTx runs fn in a transaction, committing on success.
func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func marshalJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

func unmarshalJSON(raw string, v any) error {
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), v)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseTimePtr(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	t := parseTime(ns.String)
	return &t
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
