// Package storage provides SQLite-based persistence for recorded games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// ErrNotFound is returned when a recording does not exist.
var ErrNotFound = errors.New("storage: recording not found")

// Store manages the SQLite database connection for recordings.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS recordings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL DEFAULT '',
			grid_rows INTEGER NOT NULL,
			grid_columns INTEGER NOT NULL,
			interval_ms INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			score INTEGER NOT NULL,
			end_reason TEXT NOT NULL,
			started_at INTEGER NOT NULL,
			ended_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_recordings_started ON recordings(started_at DESC);

		CREATE TABLE IF NOT EXISTS recording_inputs (
			recording_id INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			tick INTEGER NOT NULL,
			direction INTEGER NOT NULL,
			PRIMARY KEY (recording_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRecording stores a finished game and its inputs.
// Returns the ID of the inserted record.
func (s *Store) SaveRecording(rec snake.Recording) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO recordings
		 (player, grid_rows, grid_columns, interval_ms, seed, ticks, score, end_reason, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Player,
		rec.Rows,
		rec.Columns,
		rec.Interval.Milliseconds(),
		rec.Seed,
		int64(rec.Ticks),
		rec.Score,
		rec.Reason.String(),
		rec.StartedAt.UnixMilli(),
		rec.EndedAt.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save recording: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO recording_inputs (recording_id, seq, tick, direction) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare input insert: %w", err)
	}
	defer stmt.Close()

	for i, in := range rec.Inputs {
		if _, err := stmt.Exec(id, i, int64(in.Tick), int(in.Dir)); err != nil {
			return 0, fmt.Errorf("storage: cannot save input %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit recording: %w", err)
	}
	return id, nil
}

// Recordings retrieves the most recent recordings, newest first.
// Inputs are not loaded; use Recording for a replayable copy.
func (s *Store) Recordings(limit int) ([]snake.Recording, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+recordingColumns+`
		 FROM recordings
		 ORDER BY started_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recordings: %w", err)
	}
	defer rows.Close()

	var recs []snake.Recording
	for rows.Next() {
		rec, err := scanRecording(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return recs, nil
}

// Recording retrieves a recording with its inputs.
func (s *Store) Recording(id int64) (snake.Recording, error) {
	row := s.db.QueryRow(
		`SELECT `+recordingColumns+` FROM recordings WHERE id = ?`,
		id,
	)
	rec, err := scanRecording(row)
	if errors.Is(err, sql.ErrNoRows) {
		return snake.Recording{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return snake.Recording{}, err
	}

	rows, err := s.db.Query(
		`SELECT tick, direction FROM recording_inputs
		 WHERE recording_id = ?
		 ORDER BY seq`,
		id,
	)
	if err != nil {
		return snake.Recording{}, fmt.Errorf("storage: cannot query inputs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tick int64
		var dir int
		if err := rows.Scan(&tick, &dir); err != nil {
			return snake.Recording{}, fmt.Errorf("storage: cannot scan input: %w", err)
		}
		rec.Inputs = append(rec.Inputs, snake.Input{Tick: uint64(tick), Dir: snake.Direction(dir)})
	}

	if err := rows.Err(); err != nil {
		return snake.Recording{}, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return rec, nil
}

// DeleteRecording removes a recording and its inputs.
func (s *Store) DeleteRecording(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM recordings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete recording: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	if _, err := tx.Exec("DELETE FROM recording_inputs WHERE recording_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete inputs: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// Prune keeps the newest keep recordings and deletes the rest.
// A keep of zero or less deletes nothing. Returns the number removed.
func (s *Store) Prune(keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	keepIDs := `SELECT id FROM recordings ORDER BY started_at DESC, id DESC LIMIT ?`

	if _, err := tx.Exec(
		`DELETE FROM recording_inputs WHERE recording_id NOT IN (`+keepIDs+`)`,
		keep,
	); err != nil {
		return 0, fmt.Errorf("storage: cannot prune inputs: %w", err)
	}

	res, err := tx.Exec(`DELETE FROM recordings WHERE id NOT IN (`+keepIDs+`)`, keep)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prune recordings: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count pruned recordings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit prune: %w", err)
	}
	return n, nil
}

// Count returns the number of stored recordings.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM recordings").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count recordings: %w", err)
	}
	return n, nil
}

const recordingColumns = `id, player, grid_rows, grid_columns, interval_ms, seed, ticks, score,
	end_reason, started_at, ended_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecording(row scanner) (snake.Recording, error) {
	var (
		rec        snake.Recording
		intervalMS int64
		ticks      int64
		reason     string
		startedAt  int64
		endedAt    int64
	)

	err := row.Scan(
		&rec.ID,
		&rec.Player,
		&rec.Rows,
		&rec.Columns,
		&intervalMS,
		&rec.Seed,
		&ticks,
		&rec.Score,
		&reason,
		&startedAt,
		&endedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, err
	}
	if err != nil {
		return rec, fmt.Errorf("storage: cannot scan recording: %w", err)
	}

	rec.Interval = time.Duration(intervalMS) * time.Millisecond
	rec.Ticks = uint64(ticks)
	if r, err := snake.ParseEndReason(reason); err == nil {
		rec.Reason = r
	}
	rec.StartedAt = time.UnixMilli(startedAt)
	rec.EndedAt = time.UnixMilli(endedAt)

	return rec, nil
}

