package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"
	_ "time/tzdata"

	"vibes-bot/bot"
	"vibes-bot/config"
	"vibes-bot/database"
	"vibes-bot/handlers"
	"vibes-bot/scraper"
	"vibes-bot/sentiment"
	"vibes-bot/utils"
	"vibes-bot/vibes"
)

func main() {
	if err := run(); err != nil {
		slog.Error("vibes-bot exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	config.LoadConfig()
	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	utils.SetupLogging(settings.Log.Level)

	credentials, err := scraper.LoadCredentials(settings.Scraper.CookiesFile)
	if err != nil {
		return fmt.Errorf("cannot load scraper credentials: %w", err)
	}

	fetcher, err := scraper.NewPostClient(
		settings.Scraper.Address,
		time.Duration(settings.Scraper.TimeoutSeconds)*time.Second,
		settings.Scraper.Page,
		[]scraper.FetchOption{
			scraper.WithCredentials(credentials),
			scraper.WithPages(settings.Scraper.Pages),
			scraper.WithPostsPerPage(settings.Scraper.PostsPerPage),
		},
	)
	if err != nil {
		return fmt.Errorf("cannot create scraper client: %w", err)
	}
	defer fetcher.Close()

	refresherCfg := vibes.RefresherConfig{
		Interval:      config.Interval(settings),
		Location:      config.Location(settings),
		ExcludeMarker: settings.Vibes.ExcludeMarker,
	}

	var (
		runLister     handlers.RunLister
		schedulerOpts []bot.SchedulerOption
	)
	if settings.Journal.DBPath != "" {
		journal, err := database.InitDB(settings.Journal.DBPath)
		if err != nil {
			return fmt.Errorf("cannot open refresh journal: %w", err)
		}
		defer journal.Close()

		refresherCfg.Recorder = journal
		runLister = journal
		schedulerOpts = append(schedulerOpts, bot.WithJournalPruning(journal, settings.Journal.RetentionDays))
	}

	store := vibes.NewStore()
	refresher := vibes.NewRefresher(fetcher, sentiment.NewVaderScorer(), store, refresherCfg)
	scheduler := bot.NewScheduler(refresher, settings.Refresh.AtStartup, schedulerOpts...)

	b, err := bot.NewBot(settings.Bot.Token, settings.Bot.GuildID)
	if err != nil {
		return fmt.Errorf("error initializing bot: %w", err)
	}

	h := handlers.New(store, scheduler, runLister, utils.NewAuth(settings.Commands.Auth), settings.Vibes.TopN, refresherCfg.Location)
	register := func(b *bot.Bot) { handlers.Register(b, h) }

	if err := b.Run(register, scheduler, settings.Bot.AdminChannelID); err != nil {
		return fmt.Errorf("error running bot: %w", err)
	}
	return nil
}
