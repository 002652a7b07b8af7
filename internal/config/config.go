package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv    = "BOOKBOT_CONFIG"
	botTokenEnv      = "BOT_TOKEN"
	sourceChannelEnv = "CHANNEL_USERNAME"
	archiveChatEnv   = "ARCHIVE_CHAT_ID"
	databasePathEnv  = "DATABASE_PATH"
)

// Config holds high-level settings required across both processes.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Database DatabaseConfig `yaml:"database"`
	Telegram TelegramConfig `yaml:"telegram"`
	Bot      BotConfig      `yaml:"bot"`
	Scraper  ScraperConfig  `yaml:"scraper"`
	Rules    RulesConfig    `yaml:"rules"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DatabaseConfig locates the SQLite catalog file.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// TelegramConfig wires platform credentials and channel identities.
type TelegramConfig struct {
	BotToken      string `yaml:"botToken"`
	SourceChannel string `yaml:"sourceChannel"`
	ArchiveChatID int64  `yaml:"archiveChatId"`
}

// BotConfig shapes the interactive bot process.
type BotConfig struct {
	Mode       string `yaml:"mode"` // polling or webhook
	WebhookURL string `yaml:"webhookUrl"`
	ListenAddr string `yaml:"listenAddr"`
	Workers    int    `yaml:"workers"`
}

// ScraperConfig shapes the ingestion process.
type ScraperConfig struct {
	Source       string   `yaml:"source"`      // candidate source strategy name
	PublishMode  string   `yaml:"publishMode"` // forward or upload
	Limit        int      `yaml:"limit"`
	Interval     string   `yaml:"interval"` // Go duration string; non-zero enables daemon mode
	AllowedTypes []string `yaml:"allowedTypes"`
}

// RunInterval parses the interval string; zero means one-shot mode.
func (s ScraperConfig) RunInterval() time.Duration {
	if s.Interval == "" {
		return 0
	}
	d, err := time.ParseDuration(s.Interval)
	if err != nil {
		log.Printf("config: invalid scraper interval %q, running one-shot", s.Interval)
		return 0
	}
	return d
}

// RuleConfig is one ordered keyword-to-label mapping entry.
type RuleConfig struct {
	Keyword string `yaml:"keyword"`
	Label   string `yaml:"label"`
}

// RulesConfig overrides the built-in classification tables. Order in the YAML
// file is match order.
type RulesConfig struct {
	Categories []RuleConfig `yaml:"categories"`
	Authors    []RuleConfig `yaml:"authors"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(botTokenEnv); v != "" {
		c.Telegram.BotToken = v
	}

	if v := os.Getenv(sourceChannelEnv); v != "" {
		c.Telegram.SourceChannel = v
	}

	if v := os.Getenv(archiveChatEnv); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			log.Printf("config: invalid %s=%q: %v", archiveChatEnv, v, err)
		} else {
			c.Telegram.ArchiveChatID = id
		}
	}

	if v := os.Getenv(databasePathEnv); v != "" {
		c.Database.Path = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Database.Path != "" {
		base.Database = override.Database
	}

	if override.Telegram.BotToken != "" {
		base.Telegram.BotToken = override.Telegram.BotToken
	}
	if override.Telegram.SourceChannel != "" {
		base.Telegram.SourceChannel = override.Telegram.SourceChannel
	}
	if override.Telegram.ArchiveChatID != 0 {
		base.Telegram.ArchiveChatID = override.Telegram.ArchiveChatID
	}

	if override.Bot.Mode != "" {
		base.Bot.Mode = override.Bot.Mode
	}
	if override.Bot.WebhookURL != "" {
		base.Bot.WebhookURL = override.Bot.WebhookURL
	}
	if override.Bot.ListenAddr != "" {
		base.Bot.ListenAddr = override.Bot.ListenAddr
	}
	if override.Bot.Workers > 0 {
		base.Bot.Workers = override.Bot.Workers
	}

	if override.Scraper.Source != "" {
		base.Scraper.Source = override.Scraper.Source
	}
	if override.Scraper.PublishMode != "" {
		base.Scraper.PublishMode = override.Scraper.PublishMode
	}
	if override.Scraper.Limit > 0 {
		base.Scraper.Limit = override.Scraper.Limit
	}
	if override.Scraper.Interval != "" {
		base.Scraper.Interval = override.Scraper.Interval
	}
	if len(override.Scraper.AllowedTypes) > 0 {
		base.Scraper.AllowedTypes = override.Scraper.AllowedTypes
	}

	if len(override.Rules.Categories) > 0 {
		base.Rules.Categories = override.Rules.Categories
	}
	if len(override.Rules.Authors) > 0 {
		base.Rules.Authors = override.Rules.Authors
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging:  LoggingConfig{Level: "info"},
		Database: DatabaseConfig{Path: "data/books.db"},
		Bot: BotConfig{
			Mode:       "polling",
			ListenAddr: ":8000",
			Workers:    1,
		},
		Scraper: ScraperConfig{
			Source:      "preview",
			PublishMode: "forward",
			Limit:       1000,
			AllowedTypes: []string{
				"application/pdf",
				"application/epub+zip",
				"application/msword",
				"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
				"application/x-mobipocket-ebook",
			},
		},
	}
}
