package handlers

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"vibes-bot/command"
	"vibes-bot/utils"
)

var commandPermissions = map[string]string{
	command.Start:     utils.LevelGuest,
	command.Help:      utils.LevelGuest,
	command.GoodVibes: utils.LevelGuest,
	command.BadVibes:  utils.LevelGuest,
	command.Happiness: utils.LevelGuest,
	command.Refresh:   utils.LevelAdmin,
	command.Status:    utils.LevelAdmin,
}

// CommandDispatcher performs permission checks and then dispatches the
// interaction to the handler for name.
func (h *Handler) CommandDispatcher(r Responder, i *discordgo.InteractionCreate, name string) {
	if requiredLevel, ok := commandPermissions[name]; ok && !h.auth.CheckPermission(i, requiredLevel) {
		respond(r, i, &discordgo.InteractionResponseData{
			Content: "🚫 You do not have permission to run this command.",
			Flags:   discordgo.MessageFlagsEphemeral,
		})
		return
	}

	switch name {
	case command.Start:
		respond(r, i, StartMessage())
	case command.Help:
		respond(r, i, HelpMessage())
	case command.GoodVibes:
		respond(r, i, VibesMessage(h.store.Current(), Positive, h.topN))
	case command.BadVibes:
		respond(r, i, VibesMessage(h.store.Current(), Negative, h.topN))
	case command.Happiness:
		respond(r, i, HappinessMessage(h.store.Current()))
	case command.Refresh:
		h.HandleRefresh(r, i)
	case command.Status:
		h.HandleStatus(r, i)
	default:
		respond(r, i, &discordgo.InteractionResponseData{
			Content: "🚫 Internal error: unknown command.",
			Flags:   discordgo.MessageFlagsEphemeral,
		})
	}
}

func respond(r Responder, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) {
	err := r.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		slog.Warn("Responding to interaction failed", "interaction", i.ID, "error", err)
	}
}
