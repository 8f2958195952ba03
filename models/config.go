package models

// Settings is the decoded form of config.yaml merged with the environment.
type Settings struct {
	Bot      BotConfig      `json:"bot" mapstructure:"bot"`
	Scraper  ScraperConfig  `json:"scraper" mapstructure:"scraper"`
	Refresh  RefreshConfig  `json:"refresh" mapstructure:"refresh"`
	Vibes    VibesConfig    `json:"vibes" mapstructure:"vibes"`
	Journal  JournalConfig  `json:"journal" mapstructure:"journal"`
	Log      LogConfig      `json:"log" mapstructure:"log"`
	Commands CommandsConfig `json:"commands" mapstructure:"commands"`
}

// BotConfig holds the Discord connection settings.
type BotConfig struct {
	Token          string `json:"token" mapstructure:"token"`
	GuildID        string `json:"guild_id" mapstructure:"guild_id"` // empty registers commands globally
	AdminChannelID string `json:"admin_channel_id" mapstructure:"admin_channel_id"`
}

// ScraperConfig describes the page to scrape and how to reach the scraper sidecar.
type ScraperConfig struct {
	Address        string `json:"address" mapstructure:"address"`
	Page           string `json:"page" mapstructure:"page"`
	CookiesFile    string `json:"cookies_file" mapstructure:"cookies_file"`
	Pages          int    `json:"pages" mapstructure:"pages"`
	PostsPerPage   int    `json:"posts_per_page" mapstructure:"posts_per_page"`
	TimeoutSeconds int    `json:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// RefreshConfig controls the refresh cadence.
type RefreshConfig struct {
	IntervalSeconds int    `json:"interval_seconds" mapstructure:"interval_seconds"`
	Timezone        string `json:"timezone" mapstructure:"timezone"`
	AtStartup       bool   `json:"at_startup" mapstructure:"at_startup"`
}

// VibesConfig controls how the top lists are built and served.
type VibesConfig struct {
	ExcludeMarker string `json:"exclude_marker" mapstructure:"exclude_marker"`
	TopN          int    `json:"top_n" mapstructure:"top_n"`
}

// JournalConfig points at the sqlite refresh journal. An empty DBPath disables it.
type JournalConfig struct {
	DBPath        string `json:"db_path" mapstructure:"db_path"`
	RetentionDays int    `json:"retention_days" mapstructure:"retention_days"`
}

type LogConfig struct {
	Level string `json:"level" mapstructure:"level"`
}

// CommandsConfig holds the permission lists for admin commands.
type CommandsConfig struct {
	Auth AuthConfig `json:"auth" mapstructure:"auth"`
}

type AuthConfig struct {
	Developers []string `json:"developers" mapstructure:"developers"`
	AdminRoles []string `json:"admin_roles" mapstructure:"admin_roles"`
}
