// Package runlog records simulation runs in SQLite for offline inspection
// and fixture export. It is tooling for the drivers; the engine core never
// touches it and stays fully in-memory.
package runlog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielpatrickdp/plasma-twin/internal/plasma"
	"github.com/danielpatrickdp/plasma-twin/internal/twin"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id       TEXT PRIMARY KEY,
	description  TEXT,
	config_json  TEXT,
	created_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS run_ticks (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id           TEXT NOT NULL,
	tick             INTEGER NOT NULL,
	elapsed_time     REAL NOT NULL,
	temperature      REAL NOT NULL,
	density          REAL NOT NULL,
	confinement_time REAL NOT NULL,
	fusion_power     REAL NOT NULL,
	stability        REAL NOT NULL,
	phase            TEXT NOT NULL,
	decision_json    TEXT,
	created_at       TEXT NOT NULL,
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);

CREATE INDEX IF NOT EXISTS idx_run_ticks_lookup ON run_ticks(run_id, tick);
`

// #endregion schema

// #region types

// Run identifies one recorded simulation run.
type Run struct {
	RunID       string
	Description string
	ConfigJSON  string
	CreatedAt   time.Time
}

// TickRow is one recorded tick.
type TickRow struct {
	RunID           string
	Tick            int
	ElapsedTime     float64
	Temperature     float64
	Density         float64
	ConfinementTime float64
	FusionPower     float64
	Stability       float64
	Phase           string
	DecisionJSON    string
	CreatedAt       time.Time
}

// State reconstructs a plasma state from the recorded scalars.
func (r TickRow) State() plasma.State {
	return plasma.State{
		Temperature:     r.Temperature,
		Density:         r.Density,
		ConfinementTime: r.ConfinementTime,
		FusionPower:     r.FusionPower,
		Stability:       r.Stability,
		Phase:           plasma.Phase(r.Phase),
		ElapsedTime:     r.ElapsedTime,
	}
}

// #endregion types

// #region store

// Store manages run recordings in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB.
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion store

// #region create-run

// CreateRun inserts a new run row with a fresh UUID and the serialized
// configuration.
func (s *Store) CreateRun(description string, cfg any) (Run, error) {
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return Run{}, fmt.Errorf("marshal config: %w", err)
	}

	run := Run{
		RunID:       uuid.New().String(),
		Description: description,
		ConfigJSON:  string(cfgJSON),
		CreatedAt:   time.Now().UTC(),
	}

	_, err = s.db.Exec(
		`INSERT INTO runs (run_id, description, config_json, created_at) VALUES (?, ?, ?, ?)`,
		run.RunID, run.Description, run.ConfigJSON, run.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// #endregion create-run

// #region record-tick

// RecordTick persists one tick result under the given run.
func (s *Store) RecordTick(runID string, res twin.TickResult) error {
	var decisionPtr any
	if res.Decision != nil {
		b, err := json.Marshal(res.Decision)
		if err != nil {
			return fmt.Errorf("marshal decision: %w", err)
		}
		decisionPtr = string(b)
	}

	_, err := s.db.Exec(
		`INSERT INTO run_ticks
		 (run_id, tick, elapsed_time, temperature, density, confinement_time,
		  fusion_power, stability, phase, decision_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		res.Tick,
		res.State.ElapsedTime,
		res.State.Temperature,
		res.State.Density,
		res.State.ConfinementTime,
		res.State.FusionPower,
		res.State.Stability,
		string(res.State.Phase),
		decisionPtr,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert tick: %w", err)
	}
	return nil
}

// #endregion record-tick

// #region queries

// Ticks returns all recorded ticks for a run in tick order.
func (s *Store) Ticks(runID string) ([]TickRow, error) {
	rows, err := s.db.Query(
		`SELECT run_id, tick, elapsed_time, temperature, density, confinement_time,
		        fusion_power, stability, phase, decision_json, created_at
		 FROM run_ticks WHERE run_id = ? ORDER BY tick ASC`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query ticks: %w", err)
	}
	defer rows.Close()

	var out []TickRow
	for rows.Next() {
		var r TickRow
		var decisionJSON sql.NullString
		var createdStr string
		if err := rows.Scan(&r.RunID, &r.Tick, &r.ElapsedTime, &r.Temperature, &r.Density,
			&r.ConfinementTime, &r.FusionPower, &r.Stability, &r.Phase, &decisionJSON, &createdStr); err != nil {
			return nil, fmt.Errorf("scan tick: %w", err)
		}
		if decisionJSON.Valid {
			r.DecisionJSON = decisionJSON.String
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Runs returns all recorded runs, most recent first.
func (s *Store) Runs() ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT run_id, description, config_json, created_at FROM runs ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var desc, cfgJSON sql.NullString
		var createdStr string
		if err := rows.Scan(&r.RunID, &desc, &cfgJSON, &createdStr); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if desc.Valid {
			r.Description = desc.String
		}
		if cfgJSON.Valid {
			r.ConfigJSON = cfgJSON.String
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		out = append(out, r)
	}
	return out, rows.Err()
}

// LatestRun returns the most recent run, or nil if none exists.
func (s *Store) LatestRun() (*Run, error) {
	runs, err := s.Runs()
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// #endregion queries
