package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"vibes-bot/models"
)

var defaults = map[string]any{
	"bot.token":                 "",
	"bot.guild_id":              "",
	"bot.admin_channel_id":      "",
	"scraper.address":           "localhost:50051",
	"scraper.page":              "TheStraitsTimes",
	"scraper.cookies_file":      "cookie.txt",
	"scraper.pages":             1,
	"scraper.posts_per_page":    50,
	"scraper.timeout_seconds":   600,
	"refresh.interval_seconds":  10800,
	"refresh.timezone":          "Asia/Singapore",
	"refresh.at_startup":        true,
	"vibes.exclude_marker":      "t.me/",
	"vibes.top_n":               5,
	"journal.db_path":           "data/journal.db",
	"journal.retention_days":    31,
	"log.level":                 "info",
	"commands.auth.developers":  []string{},
	"commands.auth.admin_roles": []string{},
}

// LoadConfig loads configuration from several sources:
//  1. .env (environment variables)
//  2. config.yaml (base configuration)
//  3. config/vibes.json (merged on top of the base)
//
// Environment variables override file settings with the same key, with
// '.' replaced by '_' (bot.token -> BOT_TOKEN).
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, skipping.")
	}

	for key, value := range defaults {
		viper.SetDefault(key, value)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Info("No config.yaml found, using environment variables and defaults.")
		} else {
			panic(fmt.Errorf("fatal error reading config.yaml: %w", err))
		}
	}

	viper.SetConfigName("vibes")
	viper.SetConfigType("json")
	viper.AddConfigPath("./config")

	if err := viper.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Info("No config/vibes.json found, skipping merge.")
		} else {
			panic(fmt.Errorf("fatal error merging config/vibes.json: %w", err))
		}
	}
}

// Load decodes the loaded configuration and validates it.
func Load() (*models.Settings, error) {
	var settings models.Settings
	if err := viper.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := Validate(&settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Validate reports the first setting that would keep the bot from running.
func Validate(s *models.Settings) error {
	if s.Bot.Token == "" {
		return errors.New("no bot token provided, set BOT_TOKEN in your .env or config file")
	}
	if s.Scraper.Address == "" {
		return errors.New("scraper.address is required")
	}
	if s.Scraper.Page == "" {
		return errors.New("scraper.page is required")
	}
	if s.Refresh.IntervalSeconds <= 0 {
		return fmt.Errorf("refresh.interval_seconds must be positive, got %d", s.Refresh.IntervalSeconds)
	}
	if _, err := time.LoadLocation(s.Refresh.Timezone); err != nil {
		return fmt.Errorf("refresh.timezone %q: %w", s.Refresh.Timezone, err)
	}
	if s.Vibes.TopN <= 0 {
		return fmt.Errorf("vibes.top_n must be positive, got %d", s.Vibes.TopN)
	}
	return nil
}

// Interval returns the refresh interval as a duration.
func Interval(s *models.Settings) time.Duration {
	return time.Duration(s.Refresh.IntervalSeconds) * time.Second
}

// Location returns the reference time zone for refresh timestamps.
func Location(s *models.Settings) *time.Location {
	loc, err := time.LoadLocation(s.Refresh.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
