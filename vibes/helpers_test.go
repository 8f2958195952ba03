package vibes

import (
	"context"
	"fmt"
	"sync"

	"vibes-bot/models"
	"vibes-bot/sentiment"
)

func strPtr(s string) *string { return &s }

// rawPost builds a post whose comments are named by the compound score the
// table scorer should return for them.
func rawPost(id, link string, compounds ...float64) models.RawPost {
	p := models.RawPost{
		PostID:   id,
		PostText: "text " + id,
		PostURL:  "https://facebook.com/" + id,
		Link:     link,
		Comments: len(compounds),
	}
	for _, c := range compounds {
		p.CommentsFull = append(p.CommentsFull, models.RawComment{Text: strPtr(fmt.Sprintf("%g", c))})
	}
	return p
}

// tableScorer parses the comment text as the compound score.
var tableScorer = sentiment.ScorerFunc(func(text string) (models.SentimentScore, error) {
	var v float64
	if _, err := fmt.Sscanf(text, "%g", &v); err != nil {
		return models.SentimentScore{}, fmt.Errorf("not a score: %q", text)
	}
	return models.SentimentScore{Compound: v}, nil
})

type mockFetcher struct {
	mu    sync.Mutex
	posts []models.RawPost
	err   error
	calls int
	block chan struct{}
}

func (m *mockFetcher) FetchPosts(_ context.Context) ([]models.RawPost, error) {
	m.mu.Lock()
	m.calls++
	block := m.block
	m.mu.Unlock()
	if block != nil {
		<-block
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.posts, m.err
}

type mockRecorder struct {
	mu   sync.Mutex
	runs []models.RefreshRun
}

func (m *mockRecorder) RecordRun(_ context.Context, run models.RefreshRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, run)
	return nil
}

func (m *mockRecorder) getRuns() []models.RefreshRun {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.RefreshRun, len(m.runs))
	copy(out, m.runs)
	return out
}

func rawScored(gen int) models.ScoredPost {
	return models.ScoredPost{PostID: fmt.Sprintf("gen-%d", gen), Link: "l", Score: 1}
}
