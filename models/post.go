package models

import "encoding/json"

// RawPost is a post as returned by the page scraper.
type RawPost struct {
	PostID       string       `json:"post_id"`
	PostText     string       `json:"post_text"`
	PostURL      string       `json:"post_url"`
	Link         string       `json:"link"`
	Comments     int          `json:"comments"`
	CommentsFull []RawComment `json:"comments_full"`
}

// RawComment is a single scraped comment record. Text is nil when the
// record carried no usable comment_text: missing, null or not a string.
type RawComment struct {
	CommentID     string  `json:"comment_id,omitempty"`
	CommenterName string  `json:"commenter_name,omitempty"`
	Text          *string `json:"comment_text"`
}

// UnmarshalJSON never fails: a record of the wrong shape decodes to a
// comment without text, which the normalizer skips.
func (c *RawComment) UnmarshalJSON(data []byte) error {
	*c = RawComment{}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	c.CommentID = stringField(fields, "comment_id")
	c.CommenterName = stringField(fields, "commenter_name")
	if raw, ok := fields["comment_text"]; ok {
		var text string
		if json.Unmarshal(raw, &text) == nil && string(raw) != "null" {
			c.Text = &text
		}
	}
	return nil
}

func stringField(fields map[string]json.RawMessage, key string) string {
	var v string
	if raw, ok := fields[key]; ok {
		_ = json.Unmarshal(raw, &v)
	}
	return v
}

// SentimentScore is the scorer output for one piece of text.
type SentimentScore struct {
	Compound float64 `json:"compound"`
	Positive float64 `json:"pos"`
	Negative float64 `json:"neg"`
	Neutral  float64 `json:"neu"`
}

// ScoredPost is a post with its comments scored. Score is the sum of the
// comment compounds, not their mean.
type ScoredPost struct {
	PostID     string           `json:"post_id"`
	PostText   string           `json:"post_text"`
	PostURL    string           `json:"post_url"`
	Link       string           `json:"link"`
	Comments   int              `json:"comments"`
	Sentiments []SentimentScore `json:"sentiments"`
	Score      float64          `json:"score"`
}
