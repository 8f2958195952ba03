// Package handlers answers Discord interactions from the published vibes.
package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"vibes-bot/bot"
	"vibes-bot/models"
	"vibes-bot/utils"
	"vibes-bot/vibes"
)

// Responder is the part of a Discord session used to answer interactions.
type Responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Refresher runs one refresh cycle on demand.
type Refresher interface {
	Refresh(ctx context.Context) (*vibes.Snapshot, error)
}

// RunLister reads the refresh journal.
type RunLister interface {
	RecentRuns(ctx context.Context, limit int) ([]models.RefreshRun, error)
}

// Handler holds what the command handlers need to answer.
type Handler struct {
	store     *vibes.Store
	refresher Refresher
	journal   RunLister
	auth      *utils.Auth
	topN      int
	location  *time.Location
}

// New creates a Handler. journal may be nil when the journal is disabled.
func New(store *vibes.Store, refresher Refresher, journal RunLister, auth *utils.Auth, topN int, loc *time.Location) *Handler {
	if topN <= 0 {
		topN = vibes.DefaultTopN
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		store:     store,
		refresher: refresher,
		journal:   journal,
		auth:      auth,
		topN:      topN,
		location:  loc,
	}
}

// Register all handlers to the bot.
func Register(b *bot.Bot, h *Handler) {
	b.Session.AddHandler(h.InteractionCreate)

	// Add a ready handler to log when the bot is connected.
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		slog.Info("Logged in", "user", s.State.User.Username, "guilds", len(r.Guilds))
	})
}
