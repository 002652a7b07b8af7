package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Daniel-1961/Christain-Book-Bot/internal/config"
	"github.com/Daniel-1961/Christain-Book-Bot/internal/usecase"
)

// Bot runs the interactive side: commands, browse menus, and book delivery.
//
// Updates are taken off the platform in a dedicated intake loop and handed to
// a small worker pool over a buffered channel, so a slow archive redelivery
// never blocks the intake of further updates.
type Bot struct {
	api     *tgbotapi.BotAPI
	queries *usecase.QueryService
	cfg     config.BotConfig
	logger  *slog.Logger
	tasks   chan tgbotapi.Update
}

// NewBot wires the bot API client with the catalog query service.
func NewBot(api *tgbotapi.BotAPI, queries *usecase.QueryService, cfg config.BotConfig, log *slog.Logger) *Bot {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	cfg.Workers = workers
	return &Bot{
		api:     api,
		queries: queries,
		cfg:     cfg,
		logger:  log,
		tasks:   make(chan tgbotapi.Update, 64),
	}
}

// Run consumes updates until the context is canceled.
func (b *Bot) Run(ctx context.Context) error {
	updates, err := b.updates()
	if err != nil {
		return err
	}

	b.info("bot started", "username", b.api.Self.UserName, "mode", b.cfg.Mode, "workers", b.cfg.Workers)

	var wg sync.WaitGroup
	for i := 0; i < b.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for update := range b.tasks {
				b.handleUpdate(ctx, update)
			}
		}()
	}

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			close(b.tasks)
			wg.Wait()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				close(b.tasks)
				wg.Wait()
				return nil
			}
			b.tasks <- update
		}
	}
}

func (b *Bot) updates() (tgbotapi.UpdatesChannel, error) {
	if b.cfg.Mode == "webhook" {
		wh, err := tgbotapi.NewWebhook(b.cfg.WebhookURL)
		if err != nil {
			return nil, fmt.Errorf("build webhook config: %w", err)
		}
		if _, err := b.api.Request(wh); err != nil {
			return nil, fmt.Errorf("register webhook: %w", err)
		}

		updates := b.api.ListenForWebhook("/webhook")
		go func() {
			if err := http.ListenAndServe(b.cfg.ListenAddr, nil); err != nil {
				b.logger.Error("webhook listener stopped", "error", err)
			}
		}()
		return updates, nil
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	return b.api.GetUpdatesChan(u), nil
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.logger.Warn("send failed", "error", err)
	}
}

func (b *Bot) info(msg string, args ...interface{}) {
	if b.logger != nil {
		b.logger.Info(msg, args...)
	}
}
