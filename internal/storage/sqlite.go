// Package storage keeps the run journal for a game process.
// Runs live in an in-memory SQLite database (pure-Go modernc.org/sqlite
// driver, no CGO) and disappear when the process exits.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrClosed is returned by every Journal method after Close.
var ErrClosed = errors.New("storage: journal closed")

// DefaultRecent is the row count used when a non-positive limit is given.
const DefaultRecent = 10

// Journal records finished runs for the lifetime of the process.
// It is safe for concurrent use; SSH sessions share one journal.
type Journal struct {
	mu     sync.RWMutex
	db     *sql.DB
	closed bool
}

// Run is one finished game.
type Run struct {
	ID         int64
	Player     string
	Score      int
	Collisions int
	Duration   time.Duration
	EndedAt    time.Time
}

// Stats aggregates the runs of one player.
type Stats struct {
	Player   string
	Runs     int
	Best     int
	AvgScore float64
	LastRun  time.Time
}

// OpenJournal opens the named in-memory journal. Journals opened with the
// same name in one process share their data.
func OpenJournal(name string) (*Journal, error) {
	if name == "" {
		name = "flappy"
	}
	dsn := "file:" + url.PathEscape(name) + "?mode=memory&cache=shared"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open journal: %w", err)
	}
	// One long-lived connection keeps the in-memory database alive and
	// serializes writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to journal: %w", err)
	}

	j := &Journal{db: db}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return j, nil
}

func (j *Journal) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			collisions INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			ended_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player, id DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(player, score DESC);
	`

	_, err := j.db.Exec(schema)
	return err
}

// Close releases the journal. Further calls return ErrClosed.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	j.closed = true
	return j.db.Close()
}

// Record stores a finished run and returns its ID.
// A zero EndedAt is replaced with the current time.
func (j *Journal) Record(run Run) (int64, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return 0, ErrClosed
	}

	if run.EndedAt.IsZero() {
		run.EndedAt = time.Now()
	}

	result, err := j.db.Exec(
		`INSERT INTO runs (player, score, collisions, duration_ms, ended_at)
		 VALUES (?, ?, ?, ?, ?)`,
		run.Player, run.Score, run.Collisions, run.Duration.Milliseconds(), run.EndedAt.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Recent returns the player's latest runs, newest first.
func (j *Journal) Recent(player string, limit int) ([]Run, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return nil, ErrClosed
	}

	if limit <= 0 {
		limit = DefaultRecent
	}

	rows, err := j.db.Query(
		`SELECT id, player, score, collisions, duration_ms, ended_at
		 FROM runs
		 WHERE player = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMs, endedMs int64
		if err := rows.Scan(&r.ID, &r.Player, &r.Score, &r.Collisions, &durationMs, &endedMs); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		r.EndedAt = time.UnixMilli(endedMs)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// Best returns the player's highest score, or 0 with no runs.
func (j *Journal) Best(player string) (int, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return 0, ErrClosed
	}

	var score sql.NullInt64
	err := j.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE player = ?",
		player,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Count returns how many runs the player has finished.
func (j *Journal) Count(player string) (int, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return 0, ErrClosed
	}

	var n int
	if err := j.db.QueryRow("SELECT COUNT(*) FROM runs WHERE player = ?", player).Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count runs: %w", err)
	}
	return n, nil
}

// PlayerStats aggregates the player's runs.
func (j *Journal) PlayerStats(player string) (Stats, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return Stats{}, ErrClosed
	}

	stats := Stats{Player: player}
	var lastMs int64
	err := j.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(MAX(ended_at), 0)
		 FROM runs WHERE player = ?`,
		player,
	).Scan(&stats.Runs, &stats.Best, &stats.AvgScore, &lastMs)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot get player stats: %w", err)
	}
	if lastMs > 0 {
		stats.LastRun = time.UnixMilli(lastMs)
	}

	return stats, nil
}
