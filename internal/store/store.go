// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store keeps a SQLite history of pipeline runs and the cleaned rows
// each run produced, and answers the summary queries behind the report
// command.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/purchase-wrangler/pkg/types"
)

// ErrNoRuns is returned by queries that default to the latest run when the
// database holds none.
var ErrNoRuns = errors.New("no runs recorded")

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Run describes one recorded pipeline invocation.
type Run struct {
	ID        int64     `json:"id" yaml:"id"`
	Input     string    `json:"input" yaml:"input"`
	Output    string    `json:"output" yaml:"output"`
	StartedAt time.Time `json:"started_at" yaml:"started_at"`
	Rows      int       `json:"rows" yaml:"rows"`
}

// CitySummary aggregates one city's purchases within a run. Rows with no
// city are grouped under the empty string.
type CitySummary struct {
	City      string  `json:"city" yaml:"city"`
	Purchases int     `json:"purchases" yaml:"purchases"`
	Priced    int     `json:"priced" yaml:"priced"`
	Total     float64 `json:"total" yaml:"total"`
}

// Open opens or creates the database at path, creating its directory and
// schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
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
			started_at TEXT NOT NULL,
			row_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS purchases (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			line INTEGER NOT NULL,
			name TEXT,
			age INTEGER,
			city TEXT,
			product TEXT,
			price REAL,
			purchase_date TEXT,
			PRIMARY KEY (run_id, line)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_purchases_city ON purchases(run_id, city)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveRun records run and its rows in one transaction and returns the new
// run ID. run.ID is ignored and run.Rows is taken from len(recs).
func (s *Store) SaveRun(ctx context.Context, run Run, recs []types.CleanRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (input, output, started_at, row_count) VALUES (?, ?, ?, ?)`,
		run.Input, run.Output, run.StartedAt.UTC().Format(time.RFC3339Nano), len(recs),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO purchases (run_id, line, name, age, city, product, price, purchase_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range recs {
		var date sql.NullString
		if r.PurchaseDate != nil {
			date = sql.NullString{String: r.PurchaseDate.Format(types.DateLayout), Valid: true}
		}
		var age sql.NullInt64
		if r.Age != nil {
			age = sql.NullInt64{Int64: int64(*r.Age), Valid: true}
		}
		var price sql.NullFloat64
		if r.Price != nil {
			price = sql.NullFloat64{Float64: *r.Price, Valid: true}
		}
		_, err := stmt.ExecContext(ctx,
			runID, r.Line, nullString(r.Name), age,
			nullString(r.City), nullString(r.Product), price, date,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting line %d: %w", r.Line, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Runs lists recorded runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input, output, started_at, row_count FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started string
		if err := rows.Scan(&r.ID, &r.Input, &r.Output, &started, &r.Rows); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// resolveRun returns runID, or the latest run's ID when runID is zero.
func (s *Store) resolveRun(ctx context.Context, runID int64) (int64, error) {
	if runID != 0 {
		return runID, nil
	}
	err := s.db.QueryRowContext(ctx, `SELECT id FROM runs ORDER BY id DESC LIMIT 1`).Scan(&runID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNoRuns
	}
	if err != nil {
		return 0, fmt.Errorf("finding latest run: %w", err)
	}
	return runID, nil
}

// Records returns the rows of a run in line order. A zero runID selects the
// latest run.
func (s *Store) Records(ctx context.Context, runID int64) ([]types.CleanRecord, error) {
	runID, err := s.resolveRun(ctx, runID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT line, name, age, city, product, price, purchase_date
		 FROM purchases WHERE run_id = ? ORDER BY line`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying purchases: %w", err)
	}
	defer rows.Close()

	var recs []types.CleanRecord
	for rows.Next() {
		var (
			r                         types.CleanRecord
			name, city, product, date sql.NullString
			age                       sql.NullInt64
			price                     sql.NullFloat64
		)
		if err := rows.Scan(&r.Line, &name, &age, &city, &product, &price, &date); err != nil {
			return nil, fmt.Errorf("scanning purchase: %w", err)
		}
		if name.Valid {
			r.Name = &name.String
		}
		if age.Valid {
			r.Age = types.Ptr(int(age.Int64))
		}
		if city.Valid {
			r.City = &city.String
		}
		if product.Valid {
			r.Product = &product.String
		}
		if price.Valid {
			r.Price = &price.Float64
		}
		if date.Valid {
			if d, err := time.Parse(types.DateLayout, date.String); err == nil {
				r.PurchaseDate = &d
			}
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// CitySummaries aggregates a run's purchases by city, largest total first.
// A zero runID selects the latest run.
func (s *Store) CitySummaries(ctx context.Context, runID int64) ([]CitySummary, error) {
	runID, err := s.resolveRun(ctx, runID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT COALESCE(city, ''), COUNT(*), COUNT(price), COALESCE(SUM(price), 0)
		 FROM purchases WHERE run_id = ?
		 GROUP BY COALESCE(city, '')
		 ORDER BY 4 DESC, 1`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying city summary: %w", err)
	}
	defer rows.Close()

	var out []CitySummary
	for rows.Next() {
		var c CitySummary
		if err := rows.Scan(&c.City, &c.Purchases, &c.Priced, &c.Total); err != nil {
			return nil, fmt.Errorf("scanning city summary: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}
