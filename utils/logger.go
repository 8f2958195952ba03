package utils

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"
)

const (
	ColorInfo  = 0x00ff00 // Green
	ColorWarn  = 0xffff00 // Yellow
	ColorError = 0xff0000 // Red
)

// ChannelSender is the part of a Discord session used to mirror logs.
type ChannelSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var (
	session   ChannelSender
	channelID string
)

// SetupLogging installs a tint handler as the default slog logger.
// level is one of debug, info, warn, error (default info).
func SetupLogging(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      logLevel,
		TimeFormat: time.DateTime,
	})
	slog.SetDefault(slog.New(handler))
}

// InitLogger enables mirroring of Info/Warn/Error to an admin channel.
func InitLogger(s ChannelSender, adminChannelID string) {
	session = s
	channelID = adminChannelID
	if channelID == "" {
		slog.Warn("bot.admin_channel_id is not set, logging to channel is disabled")
	}
}

// Log writes a log line and, when configured, posts it to the admin channel.
func Log(level, module, operation, details string) {
	attrs := []any{"module", module, "operation", operation, "details", details}
	var color int
	switch level {
	case "WARN":
		color = ColorWarn
		slog.Warn(operation, attrs...)
	case "ERROR":
		color = ColorError
		slog.Error(operation, attrs...)
	default:
		color = ColorInfo
		slog.Info(operation, attrs...)
	}

	if session == nil || channelID == "" {
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("Log Level: %s", level),
		Color:     color,
		Timestamp: time.Now().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Module",
				Value:  module,
				Inline: true,
			},
			{
				Name:   "Operation",
				Value:  operation,
				Inline: true,
			},
			{
				Name:  "Details",
				Value: details,
			},
		},
	}

	if _, err := session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		slog.Warn("Error sending log message to Discord", "error", err)
	}
}

// Info logs an informational message.
func Info(module, operation, details string) {
	Log("INFO", module, operation, details)
}

// Warn logs a warning message.
func Warn(module, operation, details string) {
	Log("WARN", module, operation, details)
}

// Error logs an error message.
func Error(module, operation, details string) {
	Log("ERROR", module, operation, details)
}
