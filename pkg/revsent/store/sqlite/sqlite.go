package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/revsent/pkg/revsent/internalerr"
	"github.com/cognicore/revsent/pkg/revsent/store"
)

// timeLayout is fixed width so started_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db  *sql.DB
	ids *store.IDGenerator
}

// OpenSQLite opens a SQLite database with WAL mode enabled and creates
// the schema if needed. Pragmas are part of the DSN so that every pooled
// connection enforces foreign keys.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	// Initialize schema
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{
		db:  db,
		ids: store.NewIDGenerator(),
	}, nil
}

func dsn(path string) string {
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	input TEXT NOT NULL,
	output TEXT NOT NULL,
	started_at TEXT NOT NULL,
	elapsed_ns INTEGER NOT NULL,
	row_count INTEGER NOT NULL,
	threshold INTEGER NOT NULL,
	labels TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);

CREATE TABLE IF NOT EXISTS run_scores (
	run_id TEXT NOT NULL,
	row_index INTEGER NOT NULL,
	lemma TEXT NOT NULL,
	neg REAL NOT NULL,
	neu REAL NOT NULL,
	pos REAL NOT NULL,
	compound REAL NOT NULL,
	sentiment TEXT NOT NULL,
	PRIMARY KEY(run_id, row_index),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS run_vocabulary (
	run_id TEXT NOT NULL,
	token TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY(run_id, token),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun inserts a run with its scores and vocabulary in one transaction
func (s *sqliteStore) SaveRun(ctx context.Context, run store.Run) (string, error) {
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	if run.ID == "" {
		run.ID = s.ids.New(run.StartedAt)
	}

	labels, err := json.Marshal(run.Labels)
	if err != nil {
		return "", err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, run.ID).Scan(&exists)
	if err != nil {
		return "", err
	}
	if exists > 0 {
		return "", fmt.Errorf("run %s: %w", run.ID, internalerr.ErrDuplicate)
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO runs (id, input, output, started_at, elapsed_ns, row_count, threshold, labels)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Input,
		run.Output,
		run.StartedAt.UTC().Format(timeLayout),
		int64(run.Elapsed),
		run.Rows,
		run.Threshold,
		string(labels),
	)
	if err != nil {
		return "", err
	}

	if err := insertScores(ctx, tx, run.ID, run.Scores); err != nil {
		return "", err
	}
	if err := insertVocabulary(ctx, tx, run.ID, run.Vocabulary); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return run.ID, nil
}

func insertScores(ctx context.Context, tx *sql.Tx, runID string, scores []store.Score) error {
	if len(scores) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO run_scores (run_id, row_index, lemma, neg, neu, pos, compound, sentiment)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, sc := range scores {
		if _, err := stmt.ExecContext(ctx, runID, sc.Row, sc.Lemma, sc.Neg, sc.Neu, sc.Pos, sc.Compound, sc.Sentiment); err != nil {
			return err
		}
	}
	return nil
}

func insertVocabulary(ctx context.Context, tx *sql.Tx, runID string, vocab []store.VocabEntry) error {
	if len(vocab) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO run_vocabulary (run_id, token, count) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, v := range vocab {
		if _, err := stmt.ExecContext(ctx, runID, v.Token, v.Count); err != nil {
			return err
		}
	}
	return nil
}

const runColumns = `id, input, output, started_at, elapsed_ns, row_count, threshold, labels`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (store.Run, error) {
	var (
		run       store.Run
		startedAt string
		elapsed   int64
		labels    string
	)
	if err := row.Scan(&run.ID, &run.Input, &run.Output, &startedAt, &elapsed, &run.Rows, &run.Threshold, &labels); err != nil {
		return store.Run{}, err
	}

	t, err := time.Parse(timeLayout, startedAt)
	if err != nil {
		return store.Run{}, fmt.Errorf("run %s started_at: %w", run.ID, err)
	}
	run.StartedAt = t
	run.Elapsed = time.Duration(elapsed)

	if err := json.Unmarshal([]byte(labels), &run.Labels); err != nil {
		return store.Run{}, fmt.Errorf("run %s labels: %w", run.ID, err)
	}
	return run, nil
}

// GetRun returns run metadata and vocabulary
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return store.Run{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT token, count FROM run_vocabulary
WHERE run_id = ?
ORDER BY count DESC, token ASC`, id)
	if err != nil {
		return store.Run{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var v store.VocabEntry
		if err := rows.Scan(&v.Token, &v.Count); err != nil {
			return store.Run{}, err
		}
		run.Vocabulary = append(run.Vocabulary, v)
	}
	return run, rows.Err()
}

// ListRuns returns runs newest first
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = -1 // no limit in SQLite
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT `+runColumns+` FROM runs
ORDER BY started_at DESC, id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []store.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunScores returns the scores of a run in row order
func (s *sqliteStore) RunScores(ctx context.Context, id string) ([]store.Score, error) {
	var exists int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, id).Scan(&exists); err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT row_index, lemma, neg, neu, pos, compound, sentiment FROM run_scores
WHERE run_id = ?
ORDER BY row_index`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := []store.Score{}
	for rows.Next() {
		var sc store.Score
		if err := rows.Scan(&sc.Row, &sc.Lemma, &sc.Neg, &sc.Neu, &sc.Pos, &sc.Compound, &sc.Sentiment); err != nil {
			return nil, err
		}
		scores = append(scores, sc)
	}
	return scores, rows.Err()
}
