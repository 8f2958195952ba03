package handlers

import (
	"github.com/bwmarrin/discordgo"
)

// InteractionCreate handles slash commands and menu button presses.
func (h *Handler) InteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	h.Dispatch(s, i)
}

// Dispatch routes an interaction to its command handler.
func (h *Handler) Dispatch(r Responder, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		h.CommandDispatcher(r, i, i.ApplicationCommandData().Name)
	case discordgo.InteractionMessageComponent:
		h.CommandDispatcher(r, i, i.MessageComponentData().CustomID)
	}
}
