package models

// Refresh run outcomes stored in the journal.
const (
	RunStatusOK     = "ok"
	RunStatusFailed = "failed"
)

// RefreshRun is one journal row describing a refresh cycle.
type RefreshRun struct {
	ID             int64   `db:"id"`
	StartedAt      int64   `db:"started_at"`  // Unix seconds
	FinishedAt     int64   `db:"finished_at"` // Unix seconds
	Posts          int     `db:"posts"`
	Comments       int     `db:"comments"`
	Skipped        int     `db:"skipped"`
	Positive       int     `db:"positive"`
	Negative       int     `db:"negative"`
	HappinessIndex float64 `db:"happiness_index"`
	Status         string  `db:"status"`
	Error          string  `db:"error"`
}
