package vibes

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"vibes-bot/models"
	"vibes-bot/sentiment"
)

// Fetcher returns the latest batch of posts from the scraped page.
type Fetcher interface {
	FetchPosts(ctx context.Context) ([]models.RawPost, error)
}

// RunRecorder receives a journal entry for every finished refresh.
type RunRecorder interface {
	RecordRun(ctx context.Context, run models.RefreshRun) error
}

// RefresherConfig carries the optional knobs of a Refresher.
type RefresherConfig struct {
	Interval      time.Duration
	Location      *time.Location
	ExcludeMarker string
	Recorder      RunRecorder
}

// Refresher runs the fetch, score, publish cycle. At most one cycle runs at a time.
type Refresher struct {
	fetcher Fetcher
	scorer  sentiment.Scorer
	store   *Store
	cfg     RefresherConfig
	now     func() time.Time

	mu sync.Mutex
}

func NewRefresher(fetcher Fetcher, scorer sentiment.Scorer, store *Store, cfg RefresherConfig) *Refresher {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Refresher{
		fetcher: fetcher,
		scorer:  scorer,
		store:   store,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Interval is the time between the starts of two scheduled refreshes.
func (r *Refresher) Interval() time.Duration {
	return r.cfg.Interval
}

// Refresh fetches a new batch, scores it and publishes the resulting snapshot.
// If fetching fails the published snapshot is left untouched. A call made
// while another refresh is running returns ErrRefreshInProgress.
func (r *Refresher) Refresh(ctx context.Context) (*Snapshot, error) {
	if !r.mu.TryLock() {
		return nil, ErrRefreshInProgress
	}
	defer r.mu.Unlock()

	startedAt := r.now().In(r.cfg.Location)
	slog.InfoContext(ctx, "Refresh started", "at", startedAt)

	posts, err := r.fetcher.FetchPosts(ctx)
	if err != nil {
		err = fmt.Errorf("fetch posts: %w", err)
		r.record(ctx, models.RefreshRun{
			StartedAt:  startedAt.Unix(),
			FinishedAt: r.now().Unix(),
			Status:     models.RunStatusFailed,
			Error:      err.Error(),
		})
		return nil, err
	}

	agg := Aggregate(posts, r.scorer)
	snap := BuildSnapshot(agg, startedAt, r.cfg.Interval, r.cfg.Location, r.cfg.ExcludeMarker)
	r.store.Publish(snap)

	slog.InfoContext(ctx, "Refresh published",
		"posts", len(snap.AllPosts),
		"comments", snap.Comments,
		"skipped", snap.Skipped,
		"positive", len(snap.Positive),
		"negative", len(snap.Negative),
		"happiness", snap.HappinessIndex,
		"next", snap.NextRefresh)

	r.record(ctx, models.RefreshRun{
		StartedAt:      startedAt.Unix(),
		FinishedAt:     r.now().Unix(),
		Posts:          len(snap.AllPosts),
		Comments:       snap.Comments,
		Skipped:        snap.Skipped,
		Positive:       len(snap.Positive),
		Negative:       len(snap.Negative),
		HappinessIndex: snap.HappinessIndex,
		Status:         models.RunStatusOK,
	})
	return snap, nil
}

func (r *Refresher) record(ctx context.Context, run models.RefreshRun) {
	if r.cfg.Recorder == nil {
		return
	}
	if err := r.cfg.Recorder.RecordRun(ctx, run); err != nil {
		slog.WarnContext(ctx, "Recording refresh run failed", "error", err)
	}
}
