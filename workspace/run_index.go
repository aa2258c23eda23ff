package workspace

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/msfrag/fragid/pipeline"
)

// RunRecord is one row of the run index: the run's ID and timing, which
// experiment it ran against, and what the top candidate was.
type RunRecord struct {
	ID          string
	ExperimentID string
	StartedAt   time.Time
	FinishedAt  time.Time
	TopFormula  string
	TopScore    float64
}

// RunIndex is a small sqlite-backed local store of past identification
// runs, grounded on ChrisMcGann/DBKey's sqlite.Writer: schema created on
// open, one prepared statement per write path, typed accessor methods.
type RunIndex struct {
	db         *sql.DB
	insertStmt *sql.Stmt
}

// OpenRunIndex opens (creating if absent) the sqlite database at path.
func OpenRunIndex(path string) (*RunIndex, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("workspace: opening run index: %w", err)
	}

	idx := &RunIndex{db: db}
	if err := idx.createSchema(); err != nil {
		db.Close()

		return nil, err
	}
	if err := idx.prepareStatements(); err != nil {
		db.Close()

		return nil, err
	}

	return idx, nil
}

func (idx *RunIndex) createSchema() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		experiment_id TEXT NOT NULL,
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL,
		top_formula TEXT,
		top_score REAL
	);
	`
	if _, err := idx.db.Exec(schema); err != nil {
		return fmt.Errorf("workspace: creating run index schema: %w", err)
	}

	return nil
}

func (idx *RunIndex) prepareStatements() error {
	stmt, err := idx.db.Prepare(`
		INSERT INTO runs (id, experiment_id, started_at, finished_at, top_formula, top_score)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("workspace: preparing insert statement: %w", err)
	}
	idx.insertStmt = stmt

	return nil
}

// RecordRun inserts a new row for one completed Identify call, deriving a
// fresh run ID via uuid.NewString. Results is assumed already sorted by
// rank; an empty slice records a run with no top candidate.
func (idx *RunIndex) RecordRun(experimentID string, started, finished time.Time, results []pipeline.IdentificationResult) (string, error) {
	id := uuid.NewString()

	var topFormula string
	var topScore float64
	if len(results) > 0 {
		topFormula = results[0].Formula.String()
		topScore = results[0].Score
	}

	_, err := idx.insertStmt.Exec(id, experimentID, started.UTC().Format(time.RFC3339), finished.UTC().Format(time.RFC3339), topFormula, topScore)
	if err != nil {
		return "", fmt.Errorf("workspace: recording run: %w", err)
	}

	return id, nil
}

// Run looks up a single run by ID.
func (idx *RunIndex) Run(id string) (RunRecord, error) {
	row := idx.db.QueryRow(`SELECT id, experiment_id, started_at, finished_at, top_formula, top_score FROM runs WHERE id = ?`, id)

	var rec RunRecord
	var started, finished string
	if err := row.Scan(&rec.ID, &rec.ExperimentID, &started, &finished, &rec.TopFormula, &rec.TopScore); err != nil {
		if err == sql.ErrNoRows {
			return RunRecord{}, ErrNotFound
		}

		return RunRecord{}, fmt.Errorf("workspace: querying run: %w", err)
	}
	rec.StartedAt, _ = time.Parse(time.RFC3339, started)
	rec.FinishedAt, _ = time.Parse(time.RFC3339, finished)

	return rec, nil
}

// RunsForExperiment returns every recorded run for experimentID, most
// recent first.
func (idx *RunIndex) RunsForExperiment(experimentID string) ([]RunRecord, error) {
	rows, err := idx.db.Query(
		`SELECT id, experiment_id, started_at, finished_at, top_formula, top_score
		 FROM runs WHERE experiment_id = ? ORDER BY started_at DESC`,
		experimentID,
	)
	if err != nil {
		return nil, fmt.Errorf("workspace: querying runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var rec RunRecord
		var started, finished string
		if err := rows.Scan(&rec.ID, &rec.ExperimentID, &started, &finished, &rec.TopFormula, &rec.TopScore); err != nil {
			return nil, fmt.Errorf("workspace: scanning run: %w", err)
		}
		rec.StartedAt, _ = time.Parse(time.RFC3339, started)
		rec.FinishedAt, _ = time.Parse(time.RFC3339, finished)
		out = append(out, rec)
	}

	return out, rows.Err()
}

// Close closes the prepared statement and the underlying database.
func (idx *RunIndex) Close() error {
	if idx.insertStmt != nil {
		idx.insertStmt.Close()
	}

	return idx.db.Close()
}
