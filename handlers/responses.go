package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"vibes-bot/command"
	"vibes-bot/models"
	"vibes-bot/vibes"
)

const timeLayout = "2006-01-02 15:04 MST"

const (
	// maxMessageLength is Discord's limit on message content.
	maxMessageLength = 2000
	maxErrorLength   = 120
	moreRunsReserve  = 40
)

const helpText = `**Vibes bot** reads the comments under the latest news posts and tells you how people feel about them.

/start - show the menu
/goodvibes - posts whose comments are the most positive
/badvibes - posts whose comments are the most negative
/happiness - average mood across every comment scored
/help - show this message

Results are refreshed every few hours.`

// Kind selects which top list to render.
type Kind int

const (
	Positive Kind = iota
	Negative
)

// Menu is the button row shown after every answer.
func Menu() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Good vibes", Style: discordgo.SuccessButton, CustomID: command.GoodVibes},
				discordgo.Button{Label: "Bad vibes", Style: discordgo.DangerButton, CustomID: command.BadVibes},
			},
		},
	}
}

func StartMessage() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content:    "Hi, what kind of news do you want to read today?\nPlease choose a side.",
		Components: Menu(),
	}
}

func HelpMessage() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content:    helpText,
		Components: Menu(),
	}
}

// VibesMessage renders up to n links of one partition of snap, followed by
// the refresh times and the menu. All fields come from the same snapshot.
func VibesMessage(snap *vibes.Snapshot, kind Kind, n int) *discordgo.InteractionResponseData {
	var (
		posts []models.ScoredPost
		err   error
		empty string
	)
	switch kind {
	case Negative:
		posts, err = snap.TopNegative(n)
		empty = "No negative vibes today!"
	default:
		posts, err = snap.TopPositive(n)
		empty = "No positive vibes today!"
	}

	var sb strings.Builder
	if errors.Is(err, vibes.ErrNoData) {
		sb.WriteString(empty)
	} else {
		for i, p := range posts {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, postLink(p))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(refreshFooter(snap))

	return &discordgo.InteractionResponseData{
		Content:    sb.String(),
		Components: Menu(),
	}
}

// HappinessMessage renders the happiness index of snap.
func HappinessMessage(snap *vibes.Snapshot) *discordgo.InteractionResponseData {
	var content string
	if snap == nil {
		content = "No data right now, the first refresh has not finished yet."
	} else {
		content = fmt.Sprintf("Happiness index: **%+.3f** (%s) across %d comments.\n%s",
			snap.HappinessIndex, mood(snap.HappinessIndex), snap.Comments, refreshFooter(snap))
	}
	return &discordgo.InteractionResponseData{
		Content:    content,
		Components: Menu(),
	}
}

// StatusMessage renders journal rows for admins.
func StatusMessage(runs []models.RefreshRun, loc *time.Location) *discordgo.InteractionResponseData {
	if len(runs) == 0 {
		return &discordgo.InteractionResponseData{
			Content: "No refresh runs recorded.",
			Flags:   discordgo.MessageFlagsEphemeral,
		}
	}

	var sb strings.Builder
	used := 0
	for idx, r := range runs {
		line := statusLine(r, loc)
		n := utf8.RuneCountInString(line)
		if used+n > maxMessageLength-moreRunsReserve {
			fmt.Fprintf(&sb, "…and %d more runs.", len(runs)-idx)
			break
		}
		sb.WriteString(line)
		used += n
	}
	return &discordgo.InteractionResponseData{
		Content: sb.String(),
		Flags:   discordgo.MessageFlagsEphemeral,
	}
}

func statusLine(r models.RefreshRun, loc *time.Location) string {
	started := time.Unix(r.StartedAt, 0).In(loc).Format(timeLayout)
	took := time.Duration(r.FinishedAt-r.StartedAt) * time.Second
	if r.Status == models.RunStatusOK {
		return fmt.Sprintf("✅ %s (%s): %d posts, %d comments, +%d/-%d, index %+.3f\n",
			started, took, r.Posts, r.Comments, r.Positive, r.Negative, r.HappinessIndex)
	}
	return fmt.Sprintf("❌ %s (%s): %s\n", started, took, truncate(r.Error, maxErrorLength))
}

// truncate shortens s to at most n runes on a single line.
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

func postLink(p models.ScoredPost) string {
	if p.Link != "" {
		return p.Link
	}
	return p.PostURL
}

func refreshFooter(snap *vibes.Snapshot) string {
	if snap == nil {
		return "No refresh has completed yet."
	}
	return fmt.Sprintf("Last refreshed: %s\nNext refresh: %s",
		snap.LastRefreshed.Format(timeLayout), snap.NextRefresh.Format(timeLayout))
}

func mood(index float64) string {
	switch {
	case index >= 0.05:
		return "good vibes"
	case index <= -0.05:
		return "bad vibes"
	}
	return "neutral"
}
