// Package sentiment scores free text with VADER.
package sentiment

import (
	"fmt"

	"github.com/jonreiter/govader"

	"vibes-bot/models"
)

// Scorer turns a piece of text into a sentiment score with a compound
// polarity in [-1, 1].
type Scorer interface {
	Score(text string) (models.SentimentScore, error)
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(text string) (models.SentimentScore, error)

func (f ScorerFunc) Score(text string) (models.SentimentScore, error) {
	return f(text)
}

// VaderScorer scores text with the govader analyzer after stripping
// markdown, markup and links.
type VaderScorer struct {
	polarity func(text string) govader.Sentiment
}

func NewVaderScorer() *VaderScorer {
	return &VaderScorer{polarity: govader.NewSentimentIntensityAnalyzer().PolarityScores}
}

// Score implements Scorer. A panic inside the analyzer is returned as an error.
func (v *VaderScorer) Score(text string) (score models.SentimentScore, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("vader analyzer panicked: %v", r)
		}
	}()

	plain := PlainText(text)
	if plain == "" {
		return models.SentimentScore{Neutral: 1}, nil
	}

	s := v.polarity(plain)
	return models.SentimentScore{
		Compound: clamp(s.Compound),
		Positive: s.Positive,
		Negative: s.Negative,
		Neutral:  s.Neutral,
	}, nil
}

func clamp(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	}
	return v
}
