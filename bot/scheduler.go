package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"vibes-bot/utils"
	"vibes-bot/vibes"
)

// ErrSchedulerStopped is returned by Refresh once Stop has been called.
var ErrSchedulerStopped = errors.New("scheduler stopped")

// Refresher runs one refresh cycle.
type Refresher interface {
	Refresh(ctx context.Context) (*vibes.Snapshot, error)
	Interval() time.Duration
}

// Pruner removes old journal rows.
type Pruner interface {
	PruneRuns(ctx context.Context, now time.Time, retentionDays int) (int64, error)
}

// Scheduler triggers refreshes on a fixed interval measured from the start
// of the previous run. Overlapping runs are skipped.
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	job       cron.Job
	atStartup bool
	now       func() time.Time

	mu      sync.Mutex
	entryID cron.EntryID
	stopped bool
	wg      sync.WaitGroup

	pruner        Pruner
	retentionDays int

	ctx    context.Context
	cancel context.CancelFunc
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithJournalPruning prunes journal rows older than retentionDays once a day.
func WithJournalPruning(p Pruner, retentionDays int) SchedulerOption {
	return func(s *Scheduler) {
		s.pruner = p
		s.retentionDays = retentionDays
	}
}

// NewScheduler creates a scheduler for refresher. With atStartup set, the
// first refresh runs as soon as Start is called.
func NewScheduler(refresher Refresher, atStartup bool, opts ...SchedulerOption) *Scheduler {
	logger := cronLogger{}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		cron:      cron.New(cron.WithLogger(logger)),
		refresher: refresher,
		atStartup: atStartup,
		now:       time.Now,
		ctx:       ctx,
		cancel:    cancel,
	}
	s.job = cron.NewChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)).Then(cron.FuncJob(s.runRefresh))
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start schedules the jobs.
func (s *Scheduler) Start() error {
	slog.Info("Initializing scheduler...")
	s.mu.Lock()
	s.entryID = s.cron.Schedule(everyFrom(s.now(), s.refresher.Interval()), s.job)
	s.mu.Unlock()

	if s.pruner != nil && s.retentionDays > 0 {
		if _, err := s.cron.AddFunc("@daily", s.prune); err != nil {
			return fmt.Errorf("could not set up journal pruning: %w", err)
		}
	}
	s.cron.Start()
	slog.Info("Refresh scheduled", "interval", s.refresher.Interval())

	if s.atStartup {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			slog.Info("Performing initial refresh on startup...")
			s.job.Run()
		}()
	} else {
		slog.Info("Skipping initial refresh on startup as per configuration.")
	}
	return nil
}

// Stop stops the cron jobs and waits for running refreshes to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	s.cancel()
	<-s.cron.Stop().Done()
	s.wg.Wait()
	slog.Info("Scheduler stopped.")
}

// Refresh runs a refresh outside the schedule. When the refresh actually
// ran, the schedule is re-armed so the next run comes one interval after
// this one began.
func (s *Scheduler) Refresh(ctx context.Context) (*vibes.Snapshot, error) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil, ErrSchedulerStopped
	}
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()

	startedAt := s.now()
	snap, err := s.refresher.Refresh(ctx)
	if errors.Is(err, vibes.ErrRefreshInProgress) {
		return nil, err
	}
	if snap != nil && !snap.LastRefreshed.IsZero() {
		startedAt = snap.LastRefreshed
	}
	s.rearm(startedAt)
	return snap, err
}

// NextRun is the next scheduled refresh, zero before Start.
func (s *Scheduler) NextRun() time.Time {
	s.mu.Lock()
	id := s.entryID
	s.mu.Unlock()
	if id == 0 {
		return time.Time{}
	}
	return s.cron.Entry(id).Next
}

func (s *Scheduler) rearm(from time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entryID == 0 {
		return
	}
	s.cron.Remove(s.entryID)
	s.entryID = s.cron.Schedule(everyFrom(from, s.refresher.Interval()), s.job)
	slog.Info("Refresh schedule re-armed", "next", from.Add(s.refresher.Interval()))
}

func (s *Scheduler) runRefresh() {
	_, err := s.refresher.Refresh(s.ctx)
	switch {
	case errors.Is(err, vibes.ErrRefreshInProgress):
		slog.Info("Skipping scheduled refresh, another refresh is running")
	case err != nil:
		// The previous snapshot stays published; the next run is already scheduled.
		utils.Error("Scheduler", "Refresh", err.Error())
	}
}

func (s *Scheduler) prune() {
	if _, err := s.pruner.PruneRuns(s.ctx, time.Now(), s.retentionDays); err != nil {
		utils.Warn("Scheduler", "PruneJournal", err.Error())
	}
}

// fixedInterval fires every interval after anchor, the start of the last
// refresh.
type fixedInterval struct {
	anchor time.Time
	every  time.Duration
}

func everyFrom(anchor time.Time, every time.Duration) fixedInterval {
	if every <= 0 {
		every = time.Second
	}
	return fixedInterval{anchor: anchor, every: every}
}

// Next returns the first anchor + k*every, k >= 1, later than t.
func (f fixedInterval) Next(t time.Time) time.Time {
	k := int64(1)
	if t.After(f.anchor) {
		k = int64(t.Sub(f.anchor)/f.every) + 1
	}
	return f.anchor.Add(time.Duration(k) * f.every)
}

// cronLogger routes cron's logging to slog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
