// Package picks persists velocity-scan results in SQLite so that picks
// from several runs can be compared or exported without re-reading the
// SU outputs.
package picks

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/cwbudde/algo-velan/velan"
)

//go:embed migrations/*.sql
var migrations embed.FS

// ErrNoRun is returned by RecordCDP before BeginRun.
var ErrNoRun = errors.New("picks: no active run")

// Store writes picks for one run at a time.
type Store struct {
	db    *sql.DB
	runID uuid.UUID
}

// Open opens or creates the database at path and applies migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("picks: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if err := migrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrateUp(db *sql.DB) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("picks: load migrations: %w", err)
	}
	drv, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("picks: migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", drv)
	if err != nil {
		return fmt.Errorf("picks: migrate: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("picks: migrate up: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RunInfo describes the parameters of a run.
type RunInfo struct {
	Input string
	C0    float64
	C1    float64
	NC    int
	APH   float64
	Tau   float64
}

// Run is a stored run.
type Run struct {
	ID        uuid.UUID
	CreatedAt time.Time
	RunInfo
}

// BeginRun registers a new run; subsequent RecordCDP calls belong to it.
func (s *Store) BeginRun(ctx context.Context, info RunInfo) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, input, c0, c1, nc, aph, tau) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id.String(), time.Now().UTC().Format(time.RFC3339Nano), info.Input, info.C0, info.C1, info.NC, info.APH, info.Tau)
	if err != nil {
		return uuid.Nil, fmt.Errorf("picks: insert run: %w", err)
	}
	s.runID = id
	return id, nil
}

// RecordCDP stores every sample of res for cdp under the active run.
func (s *Store) RecordCDP(ctx context.Context, cdp int32, dt float64, res *velan.Result) error {
	if s.runID == uuid.Nil {
		return ErrNoRun
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("picks: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO picks (run_id, cdp, sample, time_s, velocity, coherence, stack) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("picks: prepare: %w", err)
	}
	defer stmt.Close()

	run := s.runID.String()
	for i := 0; i < res.Len(); i++ {
		if _, err := stmt.ExecContext(ctx, run, cdp, i, float64(i)*dt, res.Velocity[i], res.Coherence[i], res.Stack[i]); err != nil {
			return fmt.Errorf("picks: insert cdp %d sample %d: %w", cdp, i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("picks: commit cdp %d: %w", cdp, err)
	}
	return nil
}

// Pick is one stored sample.
type Pick struct {
	Sample    int
	Time      float64
	Velocity  float64
	Coherence float64
	Stack     float64
}

// Picks returns the stored samples of cdp for run, ordered by sample.
func (s *Store) Picks(ctx context.Context, run uuid.UUID, cdp int32) ([]Pick, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sample, time_s, velocity, coherence, stack FROM picks WHERE run_id = ? AND cdp = ? ORDER BY sample`,
		run.String(), cdp)
	if err != nil {
		return nil, fmt.Errorf("picks: query: %w", err)
	}
	defer rows.Close()

	var out []Pick
	for rows.Next() {
		var p Pick
		if err := rows.Scan(&p.Sample, &p.Time, &p.Velocity, &p.Coherence, &p.Stack); err != nil {
			return nil, fmt.Errorf("picks: scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Runs lists stored runs, oldest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, input, c0, c1, nc, aph, tau FROM runs ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("picks: query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r      Run
			id, at string
		)
		if err := rows.Scan(&id, &at, &r.Input, &r.C0, &r.C1, &r.NC, &r.APH, &r.Tau); err != nil {
			return nil, fmt.Errorf("picks: scan run: %w", err)
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("picks: run id %q: %w", id, err)
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, fmt.Errorf("picks: run time %q: %w", at, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
