// Package reportdb archives end-of-harvest statistics reports in SQLite.
package reportdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nstehr/elerium/elerium-core/agent"
)

// Store appends reports to a single table. It satisfies agent.Reporter.
type Store struct {
	db *sql.DB
}

func OpenSQLite(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS reports (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	team           TEXT    NOT NULL,
	drone          INTEGER NOT NULL,
	representative INTEGER NOT NULL,
	tick           INTEGER NOT NULL,
	dist_empty     REAL    NOT NULL,
	dist_partial   REAL    NOT NULL,
	dist_full      REAL    NOT NULL,
	pct_empty      INTEGER NOT NULL,
	pct_partial    INTEGER NOT NULL,
	pct_full       INTEGER NOT NULL,
	created_at     TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS reports_team ON reports(team, id);`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

// Report inserts r.
func (s *Store) Report(ctx context.Context, r agent.Report) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO reports (team, drone, representative, tick,
	dist_empty, dist_partial, dist_full,
	pct_empty, pct_partial, pct_full, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Team, r.Drone, r.Representative, r.Tick,
		r.Distance.Empty, r.Distance.Partial, r.Distance.Full,
		r.EmptyPct, r.PartialPct, r.FullPct,
		r.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// list returns the reports for team, oldest first. An empty team lists all.
func (s *Store) list(ctx context.Context, team string) ([]agent.Report, error) {
	q := `SELECT team, drone, representative, tick,
	dist_empty, dist_partial, dist_full,
	pct_empty, pct_partial, pct_full, created_at
FROM reports`
	var args []any
	if team != "" {
		q += ` WHERE team = ?`
		args = append(args, team)
	}
	q += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var out []agent.Report
	for rows.Next() {
		var (
			r       agent.Report
			created string
		)
		if err := rows.Scan(&r.Team, &r.Drone, &r.Representative, &r.Tick,
			&r.Distance.Empty, &r.Distance.Partial, &r.Distance.Full,
			&r.EmptyPct, &r.PartialPct, &r.FullPct, &created); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", created, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
