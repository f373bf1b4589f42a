package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	"github.com/pthm-cable/forage/config"
)

// Store keeps the generation history of every run in a SQLite database so
// runs with different seeds or configs can be compared with SQL.
// A nil *Store is valid and records nothing.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the database at path.
// Returns nil if path is empty (store disabled).
func OpenStore(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, nil
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// One connection serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	slog.Info("recording runs", "db", path)
	return &Store{db: db}, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			seed       INTEGER NOT NULL,
			config     TEXT NOT NULL,
			started_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS generations (
			run_id           INTEGER NOT NULL REFERENCES runs(id),
			generation       INTEGER NOT NULL,
			tick             INTEGER NOT NULL,
			animals          INTEGER NOT NULL,
			min_fitness      REAL NOT NULL,
			max_fitness      REAL NOT NULL,
			avg_fitness      REAL NOT NULL,
			std_fitness      REAL NOT NULL,
			median_fitness   REAL NOT NULL,
			p90_fitness      REAL NOT NULL,
			total_collisions INTEGER NOT NULL,
			duration_ms      INTEGER NOT NULL,
			PRIMARY KEY (run_id, generation)
		);
	`)
	return err
}

// BeginRun records a new run and returns its id.
func (s *Store) BeginRun(ctx context.Context, seed int64, cfg *config.Config) (int64, error) {
	if s == nil {
		return 0, nil
	}
	cfgYAML, err := yaml.Marshal(cfg)
	if err != nil {
		return 0, fmt.Errorf("marshaling config: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (seed, config) VALUES (?, ?)`, seed, string(cfgYAML))
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	return res.LastInsertId()
}

// SaveGeneration records one generation of a run.
func (s *Store) SaveGeneration(ctx context.Context, runID int64, g GenerationStats) error {
	if s == nil {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO generations (
			run_id, generation, tick, animals,
			min_fitness, max_fitness, avg_fitness, std_fitness, median_fitness, p90_fitness,
			total_collisions, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, g.Generation, g.Tick, g.Animals,
		g.MinFitness, g.MaxFitness, g.AvgFitness, g.StdFitness, g.MedianFitness, g.P90Fitness,
		g.TotalCollisions, g.DurationMS)
	if err != nil {
		return fmt.Errorf("inserting generation %d: %w", g.Generation, err)
	}
	return nil
}

// Generations returns the recorded generations of a run in order.
func (s *Store) Generations(ctx context.Context, runID int64) ([]GenerationStats, error) {
	if s == nil {
		return nil, errors.New("store disabled")
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT generation, tick, animals,
			min_fitness, max_fitness, avg_fitness, std_fitness, median_fitness, p90_fitness,
			total_collisions, duration_ms
		FROM generations WHERE run_id = ? ORDER BY generation
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GenerationStats
	for rows.Next() {
		var g GenerationStats
		if err := rows.Scan(&g.Generation, &g.Tick, &g.Animals,
			&g.MinFitness, &g.MaxFitness, &g.AvgFitness, &g.StdFitness, &g.MedianFitness, &g.P90Fitness,
			&g.TotalCollisions, &g.DurationMS); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}
