package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/dgallion1/vivamark/internal/comment"
	"github.com/dgallion1/vivamark/internal/extract"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	pdf_path    TEXT NOT NULL,
	created_at  TEXT NOT NULL,
	pages       INTEGER NOT NULL,
	annotations INTEGER NOT NULL,
	emitted     INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS comments (
	run_id      TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	page        INTEGER NOT NULL,
	line        INTEGER NOT NULL,
	kind        TEXT NOT NULL,
	text        TEXT NOT NULL,
	highlighted TEXT NOT NULL,
	context     TEXT NOT NULL,
	chapter     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_comments_run ON comments(run_id);
`

// Store archives extraction runs in sqlite so earlier passes over a
// thesis remain queryable after the report files are overwritten.
type Store struct {
	db *sql.DB
}

// Run is one archived extraction pass.
type Run struct {
	ID          string
	PDFPath     string
	CreatedAt   time.Time
	Pages       int
	Annotations int
	Emitted     int
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun records one extraction pass and its comments in a single
// transaction. Returns the generated run id.
func (s *Store) SaveRun(ctx context.Context, pdfPath string, stats extract.StatsSnapshot, comments []comment.Comment) (string, error) {
	id := newRunID()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, pdf_path, created_at, pages, annotations, emitted) VALUES (?, ?, ?, ?, ?, ?)`,
		id, pdfPath, time.Now().UTC().Format(time.RFC3339), stats.Pages, stats.Annotations, stats.Emitted)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO comments (run_id, page, line, kind, text, highlighted, context, chapter) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range comments {
		if _, err := stmt.ExecContext(ctx, id, c.Page, c.Line, string(c.Kind), c.Text, c.Highlighted, c.Context, c.Chapter); err != nil {
			return "", fmt.Errorf("insert comment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// Runs lists archived runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, pdf_path, created_at, pages, annotations, emitted FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &r.PDFPath, &created, &r.Pages, &r.Annotations, &r.Emitted); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			r.CreatedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Comments returns the archived comments for a run in report order.
func (s *Store) Comments(ctx context.Context, runID string) ([]comment.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT page, line, kind, text, highlighted, context, chapter FROM comments WHERE run_id = ? ORDER BY page, line`,
		runID)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	var comments []comment.Comment
	for rows.Next() {
		var c comment.Comment
		var kind string
		if err := rows.Scan(&c.Page, &c.Line, &kind, &c.Text, &c.Highlighted, &c.Context, &c.Chapter); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		c.Kind = comment.Kind(kind)
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
