package vibes

import (
	"sort"
	"strings"
	"time"

	"vibes-bot/models"
)

// DefaultTopN is how many posts a top list returns when no size is given.
const DefaultTopN = 5

// Snapshot is one fully built refresh result. It is never modified after
// BuildSnapshot returns.
type Snapshot struct {
	AllPosts       []models.ScoredPost
	Positive       []models.ScoredPost
	Negative       []models.ScoredPost
	HappinessIndex float64
	Comments       int
	Skipped        int
	LastRefreshed  time.Time
	NextRefresh    time.Time
}

// BuildSnapshot partitions the aggregated posts by score sign, drops posts
// whose link contains excludeMarker and sorts both partitions by score,
// highest first. Negative posts therefore come least negative first.
func BuildSnapshot(agg Aggregation, startedAt time.Time, interval time.Duration, loc *time.Location, excludeMarker string) *Snapshot {
	if loc == nil {
		loc = time.UTC
	}
	last := startedAt.In(loc)

	snap := &Snapshot{
		AllPosts:       agg.Posts,
		Positive:       []models.ScoredPost{},
		Negative:       []models.ScoredPost{},
		HappinessIndex: agg.HappinessIndex(),
		Comments:       agg.Count,
		Skipped:        agg.Skipped,
		LastRefreshed:  last,
		NextRefresh:    last.Add(interval),
	}

	for _, p := range agg.Posts {
		if excluded(p.Link, excludeMarker) {
			continue
		}
		switch {
		case p.Score > 0:
			snap.Positive = append(snap.Positive, p)
		case p.Score < 0:
			snap.Negative = append(snap.Negative, p)
		}
	}

	byScoreDesc(snap.Positive)
	// TODO: confirm with product whether bad vibes should list the most negative posts first.
	byScoreDesc(snap.Negative)

	return snap
}

func excluded(link, marker string) bool {
	return marker != "" && strings.Contains(link, marker)
}

func byScoreDesc(posts []models.ScoredPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Score > posts[j].Score
	})
}

// TopPositive returns up to n positive posts, or ErrNoData if there are none.
func (s *Snapshot) TopPositive(n int) ([]models.ScoredPost, error) {
	if s == nil {
		return nil, ErrNoData
	}
	return top(s.Positive, n)
}

// TopNegative returns up to n negative posts, or ErrNoData if there are none.
func (s *Snapshot) TopNegative(n int) ([]models.ScoredPost, error) {
	if s == nil {
		return nil, ErrNoData
	}
	return top(s.Negative, n)
}

func top(posts []models.ScoredPost, n int) ([]models.ScoredPost, error) {
	if len(posts) == 0 {
		return nil, ErrNoData
	}
	if n <= 0 {
		n = DefaultTopN
	}
	if n > len(posts) {
		n = len(posts)
	}
	out := make([]models.ScoredPost, n)
	copy(out, posts[:n])
	return out, nil
}
