package command

import "github.com/bwmarrin/discordgo"

// Command and button names.
const (
	Start     = "start"
	Help      = "help"
	GoodVibes = "goodvibes"
	BadVibes  = "badvibes"
	Happiness = "happiness"
	Refresh   = "refresh"
	Status    = "status"
)

var adminPermissions int64 = discordgo.PermissionManageGuild

// SimpleCommand is a command without options.
type SimpleCommand struct {
	Name        string
	Description string
	AdminOnly   bool
}

// Definition returns the application command definition.
func (c *SimpleCommand) Definition() *discordgo.ApplicationCommand {
	def := &discordgo.ApplicationCommand{
		Name:        c.Name,
		Description: c.Description,
	}
	if c.AdminOnly {
		def.DefaultMemberPermissions = &adminPermissions
	}
	return def
}

// StatusCommand defines the /status command.
type StatusCommand struct{}

// Definition returns the application command definition.
func (c *StatusCommand) Definition() *discordgo.ApplicationCommand {
	minRuns := 1.0
	return &discordgo.ApplicationCommand{
		Name:                     Status,
		Description:              "Show the most recent refresh runs",
		DefaultMemberPermissions: &adminPermissions,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "runs",
				Description: "How many runs to show (default 5)",
				Type:        discordgo.ApplicationCommandOptionInteger,
				Required:    false,
				MinValue:    &minRuns,
				MaxValue:    20,
			},
		},
	}
}
