package bot

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"vibes-bot/command"
	"vibes-bot/utils"
)

// Bot encapsulates the bot's state.
type Bot struct {
	Session   *discordgo.Session
	GuildID   string
	scheduler *Scheduler
}

// NewBot creates and initializes a new Bot instance.
func NewBot(token, guildID string) (*Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("no bot token provided")
	}

	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	dg.Identify.Intents = discordgo.IntentsGuilds

	return &Bot{
		Session: dg,
		GuildID: guildID,
	}, nil
}

// Start registers handlers, opens the session, registers the slash commands
// and starts the refresh scheduler.
func (b *Bot) Start(registerHandlers func(*Bot), scheduler *Scheduler, adminChannelID string) error {
	registerHandlers(b)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	utils.InitLogger(b.Session, adminChannelID)

	if err := command.Register(b.Session, b.Session.State.User.ID, b.GuildID); err != nil {
		slog.Error("Cannot register commands", "error", err)
	}

	b.scheduler = scheduler
	if err := scheduler.Start(); err != nil {
		b.Session.Close()
		return err
	}

	slog.Info("Bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop gracefully closes the bot's session.
func (b *Bot) Stop() {
	if b.scheduler != nil {
		b.scheduler.Stop()
	}
	if b.Session != nil {
		b.Session.Close()
	}
	slog.Info("Bot stopped gracefully.")
}

// Run starts the bot and blocks until the process receives SIGINT or SIGTERM.
func (b *Bot) Run(registerHandlers func(*Bot), scheduler *Scheduler, adminChannelID string) error {
	if err := b.Start(registerHandlers, scheduler, adminChannelID); err != nil {
		return err
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	b.Stop()
	return nil
}
