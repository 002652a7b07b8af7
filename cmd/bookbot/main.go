package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Daniel-1961/Christain-Book-Bot/internal/app"
	"github.com/Daniel-1961/Christain-Book-Bot/internal/config"
	"github.com/Daniel-1961/Christain-Book-Bot/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application, err := app.NewBot(cfg, logger)
	if err != nil {
		logger.Error("bot startup failed", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	if err := application.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("bot stopped", "error", err)
		os.Exit(1)
	}
}
