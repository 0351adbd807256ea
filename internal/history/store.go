// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite log of conversion attempts so that past
// anchor positions and failures can be inspected with `dtx2tex history`.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/pdiddy/dtx2tex/pkg/types"
)

// DefaultPath is the database location used when none is configured.
const DefaultPath = ".dtx2tex/history.db"

const defaultLimit = 20

// Store manages the history database.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewStore opens or creates the history database at cfg.Path and ensures
// the schema exists. A nil logger disables logging.
func NewStore(cfg types.HistoryConfig, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, logger: logger.With(zap.String("db", path))}
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

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			input TEXT NOT NULL,
			output TEXT NOT NULL,
			status TEXT NOT NULL,
			error_kind TEXT,
			error TEXT,
			documentclass_line INTEGER,
			begindocument_line INTEGER,
			docinput_line INTEGER,
			enddocument_line INTEGER,
			endinput_line INTEGER,
			pairs INTEGER,
			lines_in INTEGER,
			lines_out INTEGER,
			started_at TEXT NOT NULL,
			duration_ns INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_input ON runs(input)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts run and returns its assigned ID.
func (s *Store) Record(ctx context.Context, run types.Run) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (input, output, status, error_kind, error,
			documentclass_line, begindocument_line, docinput_line, enddocument_line, endinput_line,
			pairs, lines_in, lines_out, started_at, duration_ns)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Input, run.Output, string(run.Status), run.ErrorKind, run.Error,
		run.Anchors.DocumentClass, run.Anchors.BeginDocument, run.Anchors.DocInput,
		run.Anchors.EndDocument, run.Anchors.EndInput,
		run.Pairs, run.LinesIn, run.LinesOut,
		run.StartedAt.UTC().Format(time.RFC3339Nano), int64(run.Duration),
	)
	if err != nil {
		return 0, fmt.Errorf("recording run for %s: %w", run.Input, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}
	s.logger.Debug("recorded run",
		zap.Int64("id", id),
		zap.String("input", run.Input),
		zap.String("status", string(run.Status)))
	return id, nil
}

// ListOptions filters List.
type ListOptions struct {
	// Input restricts results to one input file.
	Input string
	// Limit caps the number of runs returned (default 20).
	Limit int
}

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.Run, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	query := `SELECT id, input, output, status, error_kind, error,
			documentclass_line, begindocument_line, docinput_line, enddocument_line, endinput_line,
			pairs, lines_in, lines_out, started_at, duration_ns
		FROM runs`
	var args []any
	if opts.Input != "" {
		query += ` WHERE input = ?`
		args = append(args, opts.Input)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.Run
	for rows.Next() {
		var (
			r         types.Run
			status    string
			errKind   sql.NullString
			errText   sql.NullString
			startedAt string
			duration  int64
		)
		if err := rows.Scan(&r.ID, &r.Input, &r.Output, &status, &errKind, &errText,
			&r.Anchors.DocumentClass, &r.Anchors.BeginDocument, &r.Anchors.DocInput,
			&r.Anchors.EndDocument, &r.Anchors.EndInput,
			&r.Pairs, &r.LinesIn, &r.LinesOut, &startedAt, &duration); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Status = types.RunStatus(status)
		r.ErrorKind = errKind.String
		r.Error = errText.String
		r.Duration = time.Duration(duration)
		if t, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
			r.StartedAt = t
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}
