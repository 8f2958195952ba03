package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// PruneRuns deletes journal rows that started more than retentionDays ago
// and returns how many were removed.
func (j *Journal) PruneRuns(ctx context.Context, now time.Time, retentionDays int) (int64, error) {
	cutoff := now.AddDate(0, 0, -retentionDays).Unix()

	stmt, err := j.db.PrepareContext(ctx, "DELETE FROM refresh_runs WHERE started_at < ?")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare delete statement: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old runs: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	slog.Info("Pruned refresh journal", "rows", rowsAffected, "retention_days", retentionDays)
	return rowsAffected, nil
}
