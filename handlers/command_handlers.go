package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"vibes-bot/utils"
	"vibes-bot/vibes"
)

const defaultStatusRuns = 5

// HandleRefresh acknowledges /refresh immediately and reports the outcome
// of the refresh as a followup message.
func (h *Handler) HandleRefresh(r Responder, i *discordgo.InteractionCreate) {
	respond(r, i, &discordgo.InteractionResponseData{
		Content: "Refreshing the vibes, this can take a few minutes...",
		Flags:   discordgo.MessageFlagsEphemeral,
	})

	go func() {
		snap, err := h.refresher.Refresh(context.Background())

		var content string
		switch {
		case errors.Is(err, vibes.ErrRefreshInProgress):
			content = "A refresh is already running, try again once it finishes."
		case err != nil:
			utils.Error("Handlers", "ManualRefresh", err.Error())
			content = fmt.Sprintf("❌ Refresh failed: %v. The previous results are still served.", err)
		default:
			content = fmt.Sprintf("✅ Refresh done: %d posts, %d positive, %d negative.",
				len(snap.AllPosts), len(snap.Positive), len(snap.Negative))
		}

		if _, err := r.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		}); err != nil {
			slog.Warn("Sending refresh followup failed", "error", err)
		}
	}()
}

// HandleStatus lists the most recent journal entries.
func (h *Handler) HandleStatus(r Responder, i *discordgo.InteractionCreate) {
	if h.journal == nil {
		respond(r, i, &discordgo.InteractionResponseData{
			Content: "The refresh journal is disabled.",
			Flags:   discordgo.MessageFlagsEphemeral,
		})
		return
	}

	limit := defaultStatusRuns
	if i.Type == discordgo.InteractionApplicationCommand {
		for _, opt := range i.ApplicationCommandData().Options {
			if opt.Name == "runs" {
				limit = int(opt.IntValue())
			}
		}
	}

	runs, err := h.journal.RecentRuns(context.Background(), limit)
	if err != nil {
		slog.Warn("Reading refresh journal failed", "error", err)
		respond(r, i, &discordgo.InteractionResponseData{
			Content: "Error: could not read the refresh journal.",
			Flags:   discordgo.MessageFlagsEphemeral,
		})
		return
	}
	respond(r, i, StatusMessage(runs, h.location))
}
