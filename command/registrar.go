package command

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Command is an interface for application commands.
type Command interface {
	Definition() *discordgo.ApplicationCommand
}

// AllCommands holds all the command instances.
var AllCommands = []Command{
	&SimpleCommand{Name: Start, Description: "Show the vibes menu"},
	&SimpleCommand{Name: Help, Description: "Show what this bot can do"},
	&SimpleCommand{Name: GoodVibes, Description: "Posts with the most positive comments"},
	&SimpleCommand{Name: BadVibes, Description: "Posts with the most negative comments"},
	&SimpleCommand{Name: Happiness, Description: "Overall mood of the latest comments"},
	&SimpleCommand{Name: Refresh, Description: "Scrape and score the page now", AdminOnly: true},
	&StatusCommand{},
}

// GetCommandDefinitions returns a slice of all command definitions.
func GetCommandDefinitions() []*discordgo.ApplicationCommand {
	defs := make([]*discordgo.ApplicationCommand, len(AllCommands))
	for i, cmd := range AllCommands {
		defs[i] = cmd.Definition()
	}
	return defs
}

// Overwriter is the part of a Discord session used to register commands.
type Overwriter interface {
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// Register replaces the application's commands with AllCommands. An empty
// guildID registers them globally.
func Register(s Overwriter, appID, guildID string) error {
	if _, err := s.ApplicationCommandBulkOverwrite(appID, guildID, GetCommandDefinitions()); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}
	return nil
}
