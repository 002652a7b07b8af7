package app

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Daniel-1961/Christain-Book-Bot/internal/classify"
	"github.com/Daniel-1961/Christain-Book-Bot/internal/config"
	"github.com/Daniel-1961/Christain-Book-Bot/internal/infrastructure/preview"
	"github.com/Daniel-1961/Christain-Book-Bot/internal/infrastructure/scheduler"
	"github.com/Daniel-1961/Christain-Book-Bot/internal/infrastructure/storage"
	"github.com/Daniel-1961/Christain-Book-Bot/internal/infrastructure/telegram"
	"github.com/Daniel-1961/Christain-Book-Bot/internal/logging"
	"github.com/Daniel-1961/Christain-Book-Bot/internal/source"
	"github.com/Daniel-1961/Christain-Book-Bot/internal/usecase"
)

// BotApp wires the interactive bot process.
type BotApp struct {
	bot  *telegram.Bot
	repo *storage.SQLiteRepository
}

// NewBot builds the bot process from configuration. Setup failures (bad
// credentials, unreachable store) are fatal here; everything later degrades
// per item or per request.
func NewBot(cfg config.Config, baseLogger *slog.Logger) (*BotApp, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	repo, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("connect bot api: %w", err)
	}

	publisher := telegram.NewPublisher(api, cfg.Telegram.ArchiveChatID, cfg.Scraper.PublishMode,
		logging.Component(baseLogger, "publisher"))
	queries := usecase.NewQueryService(repo, publisher, logging.Component(baseLogger, "queries"))
	bot := telegram.NewBot(api, queries, cfg.Bot, logging.Component(baseLogger, "bot"))

	return &BotApp{bot: bot, repo: repo}, nil
}

// Run consumes updates until the context is canceled.
func (a *BotApp) Run(ctx context.Context) error {
	return a.bot.Run(ctx)
}

// Close releases the catalog handle.
func (a *BotApp) Close() error {
	return a.repo.Close()
}

// ScraperApp wires the ingestion process.
type ScraperApp struct {
	cfg      config.Config
	ingestor *usecase.Ingestor
	repo     *storage.SQLiteRepository
	logger   *slog.Logger
}

// NewScraper builds the ingestion process from configuration.
func NewScraper(cfg config.Config, baseLogger *slog.Logger) (*ScraperApp, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	repo, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("connect bot api: %w", err)
	}

	registry := source.NewRegistry()
	registry.Register(preview.NewScanner(nil, logging.Component(baseLogger, "source.preview")))

	candidates := source.NewChannelSource(registry, cfg.Scraper.Source,
		cfg.Telegram.SourceChannel, logging.Component(baseLogger, "source"))

	publisher := telegram.NewPublisher(api, cfg.Telegram.ArchiveChatID, cfg.Scraper.PublishMode,
		logging.Component(baseLogger, "publisher"))

	classifier := classify.New(
		toRuleSet(cfg.Rules.Categories),
		toRuleSet(cfg.Rules.Authors),
	)

	ingestor := usecase.NewIngestor(usecase.IngestDeps{
		Source:       candidates,
		Repository:   repo,
		Publisher:    publisher,
		Classifier:   classifier,
		AllowedTypes: cfg.Scraper.AllowedTypes,
		Limit:        cfg.Scraper.Limit,
		Logger:       logging.Component(baseLogger, "pipeline"),
	})

	return &ScraperApp{cfg: cfg, ingestor: ingestor, repo: repo, logger: baseLogger}, nil
}

// Run performs a single ingestion pass, or keeps re-running on the configured
// interval in daemon mode.
func (a *ScraperApp) Run(ctx context.Context) error {
	interval := a.cfg.Scraper.RunInterval()
	if interval <= 0 {
		_, err := a.ingestor.Run(ctx)
		return err
	}

	sched := usecase.NewScheduler(scheduler.NewIntervalScheduler(interval), a.ingestor)
	if err := sched.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return sched.Stop(context.Background())
}

// Close releases the catalog handle.
func (a *ScraperApp) Close() error {
	return a.repo.Close()
}

func toRuleSet(rules []config.RuleConfig) classify.RuleSet {
	if len(rules) == 0 {
		return nil // classifier falls back to the built-in tables
	}
	set := make(classify.RuleSet, 0, len(rules))
	for _, rule := range rules {
		set = append(set, classify.Rule{Keyword: rule.Keyword, Label: rule.Label})
	}
	return set
}
