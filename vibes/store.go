// Package vibes turns scraped posts into the published good/bad vibes lists.
package vibes

import (
	"errors"
	"sync/atomic"
	"time"

	"vibes-bot/models"
)

var (
	// ErrNoData is returned by read operations when there is nothing to show.
	ErrNoData = errors.New("no data")
	// ErrRefreshInProgress is returned when a refresh is already running.
	ErrRefreshInProgress = errors.New("refresh already in progress")
)

// Store holds the currently published snapshot. A single writer replaces it
// wholesale; readers never take a lock.
type Store struct {
	current atomic.Pointer[Snapshot]
}

func NewStore() *Store {
	return &Store{}
}

// Publish replaces the current snapshot.
func (s *Store) Publish(snap *Snapshot) {
	s.current.Store(snap)
}

// Current returns the published snapshot, or nil before the first refresh.
// Callers that read several fields should read them all from one Current call.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

func (s *Store) TopPositive(n int) ([]models.ScoredPost, error) {
	return s.Current().TopPositive(n)
}

func (s *Store) TopNegative(n int) ([]models.ScoredPost, error) {
	return s.Current().TopNegative(n)
}

// HappinessIndex returns the index of the current snapshot.
func (s *Store) HappinessIndex() (float64, error) {
	snap := s.Current()
	if snap == nil {
		return 0, ErrNoData
	}
	return snap.HappinessIndex, nil
}

// RefreshTimes returns when the current snapshot was built and when the next
// one is due.
func (s *Store) RefreshTimes() (last, next time.Time, err error) {
	snap := s.Current()
	if snap == nil {
		return time.Time{}, time.Time{}, ErrNoData
	}
	return snap.LastRefreshed, snap.NextRefresh, nil
}
