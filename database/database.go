package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"vibes-bot/models"

	_ "github.com/mattn/go-sqlite3" // Import the SQLite3 driver
)

// Journal records refresh runs in a sqlite database. It is an audit log
// only; snapshots are never restored from it.
type Journal struct {
	db *sql.DB
}

// InitDB opens (or creates) the journal database at dbPath.
func InitDB(dbPath string) (*Journal, error) {
	// Ensure the directory for the database file exists.
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := createRunsTable(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create refresh_runs table: %w", err)
	}

	slog.Info("Connected to the journal database", "path", dbPath)
	return &Journal{db: db}, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

func createRunsTable(db *sql.DB) error {
	query := `
    CREATE TABLE IF NOT EXISTS refresh_runs (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        started_at INTEGER NOT NULL,
        finished_at INTEGER NOT NULL,
        posts INTEGER DEFAULT 0,
        comments INTEGER DEFAULT 0,
        skipped INTEGER DEFAULT 0,
        positive INTEGER DEFAULT 0,
        negative INTEGER DEFAULT 0,
        happiness_index REAL DEFAULT 0,
        status TEXT NOT NULL,
        error TEXT DEFAULT ''
    );`
	if _, err := db.Exec(query); err != nil {
		return err
	}

	if _, err := db.Exec("CREATE INDEX IF NOT EXISTS idx_runs_started ON refresh_runs(started_at);"); err != nil {
		slog.Warn("Failed to create journal index", "error", err)
	}
	return nil
}

// RecordRun appends one refresh run to the journal.
func (j *Journal) RecordRun(ctx context.Context, run models.RefreshRun) error {
	query := `
    INSERT INTO refresh_runs (
        started_at, finished_at, posts, comments, skipped, positive, negative, happiness_index, status, error
    ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	stmt, err := j.db.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement for saving run: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		run.StartedAt,
		run.FinishedAt,
		run.Posts,
		run.Comments,
		run.Skipped,
		run.Positive,
		run.Negative,
		run.HappinessIndex,
		run.Status,
		run.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to execute statement for saving run started at %d: %w", run.StartedAt, err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (j *Journal) RecentRuns(ctx context.Context, limit int) ([]models.RefreshRun, error) {
	rows, err := j.db.QueryContext(ctx, `
    SELECT id, started_at, finished_at, posts, comments, skipped, positive, negative, happiness_index, status, error
    FROM refresh_runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query refresh runs: %w", err)
	}
	defer rows.Close()

	var runs []models.RefreshRun
	for rows.Next() {
		var r models.RefreshRun
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.Posts, &r.Comments, &r.Skipped,
			&r.Positive, &r.Negative, &r.HappinessIndex, &r.Status, &r.Error); err != nil {
			return nil, fmt.Errorf("failed to scan refresh run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
