package vibes

import (
	"log/slog"

	"vibes-bot/models"
)

// NormalizeComments flattens a post's raw comment records into their texts,
// keeping source order. Records without a comment_text field are skipped and
// counted; a post without comments yields an empty slice.
func NormalizeComments(post models.RawPost) ([]string, int) {
	texts := make([]string, 0, len(post.CommentsFull))
	skipped := 0
	for i, c := range post.CommentsFull {
		if c.Text == nil {
			slog.Warn("Skipping comment without text", "post", post.PostID, "index", i, "comment", c.CommentID)
			skipped++
			continue
		}
		texts = append(texts, *c.Text)
	}
	return texts, skipped
}
