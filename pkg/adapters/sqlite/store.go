// Package sqlite provides a RunStore backed by an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	key        TEXT PRIMARY KEY,
	machine    TEXT NOT NULL,
	verdict    TEXT NOT NULL DEFAULT '',
	error_kind TEXT NOT NULL DEFAULT '',
	steps      INTEGER NOT NULL,
	created_at INTEGER NOT NULL,
	payload    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_machine ON runs (machine, created_at);
`

// Store implements ports.RunStore on SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := MemoryPath
	if path != MemoryPath {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One writer at a time; an in-memory database also lives on a single connection.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// Save upserts the run.
func (s *Store) Save(ctx context.Context, key string, run *domain.Run) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("run key is required")
	}
	payload, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}

	created := run.Started
	if created.IsZero() {
		created = time.Now()
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO runs (key, machine, verdict, error_kind, steps, created_at, payload)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (key) DO UPDATE SET
	machine = excluded.machine,
	verdict = excluded.verdict,
	error_kind = excluded.error_kind,
	steps = excluded.steps,
	created_at = excluded.created_at,
	payload = excluded.payload
`,
		key,
		run.Machine,
		run.Verdict,
		run.ErrKind,
		run.Steps,
		created.UTC().UnixMilli(),
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

// Load retrieves the run stored under key.
func (s *Store) Load(ctx context.Context, key string) (*domain.Run, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	var payload string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT payload FROM runs WHERE key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load run: %w", err)
	}

	var run domain.Run
	if err := json.Unmarshal([]byte(payload), &run); err != nil {
		return nil, fmt.Errorf("decode run: %w", err)
	}
	return &run, nil
}

// Delete removes the run stored under key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM runs WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	return nil
}

// List returns stored keys, oldest first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT key FROM runs ORDER BY created_at, key`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan run key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run keys: %w", err)
	}
	return keys, nil
}

// CountByVerdict summarises stored runs of one machine.
// Failed runs are counted under their error kind.
func (s *Store) CountByVerdict(ctx context.Context, machine string) (map[string]int, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT CASE WHEN error_kind != '' THEN error_kind ELSE verdict END AS outcome, COUNT(*)
FROM runs
WHERE machine = ?
GROUP BY outcome
`, machine)
	if err != nil {
		return nil, fmt.Errorf("count runs: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[outcome] = n
	}
	return counts, rows.Err()
}
