package vibes

import (
	"log/slog"

	"github.com/sourcegraph/conc/iter"

	"vibes-bot/models"
	"vibes-bot/sentiment"
)

// Aggregation is the result of scoring one batch of posts.
type Aggregation struct {
	Posts   []models.ScoredPost
	Sum     float64 // sum of every comment compound in the batch
	Count   int     // number of scored comments in the batch
	Skipped int     // comment records dropped during normalization
}

// HappinessIndex is the mean compound over all comments, or 0 with no comments.
func (a Aggregation) HappinessIndex() float64 {
	if a.Count == 0 {
		return 0
	}
	return a.Sum / float64(a.Count)
}

type scoredResult struct {
	post    models.ScoredPost
	skipped int
}

// Aggregate scores every comment of every post. Posts are scored
// concurrently; the batch totals are summed in input order so the result is
// the same on every run for the same input.
func Aggregate(posts []models.RawPost, scorer sentiment.Scorer) Aggregation {
	results := iter.Map(posts, func(p *models.RawPost) scoredResult {
		return scorePost(*p, scorer)
	})

	agg := Aggregation{Posts: make([]models.ScoredPost, 0, len(results))}
	for _, r := range results {
		for _, s := range r.post.Sentiments {
			agg.Sum += s.Compound
		}
		agg.Count += len(r.post.Sentiments)
		agg.Skipped += r.skipped
		agg.Posts = append(agg.Posts, r.post)
	}
	return agg
}

func scorePost(post models.RawPost, scorer sentiment.Scorer) scoredResult {
	texts, skipped := NormalizeComments(post)

	scored := models.ScoredPost{
		PostID:     post.PostID,
		PostText:   post.PostText,
		PostURL:    post.PostURL,
		Link:       post.Link,
		Comments:   post.Comments,
		Sentiments: make([]models.SentimentScore, 0, len(texts)),
	}
	for _, text := range texts {
		s, err := scorer.Score(text)
		if err != nil {
			// A comment the scorer cannot handle counts as neutral.
			slog.Warn("Scoring comment failed, treating as neutral", "post", post.PostID, "error", err)
			s = models.SentimentScore{}
		}
		scored.Sentiments = append(scored.Sentiments, s)
		scored.Score += s.Compound
	}
	return scoredResult{post: scored, skipped: skipped}
}
