package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"chipjack/internal/bot"
	"chipjack/internal/config"
	"chipjack/internal/database"
	"chipjack/internal/journal"

	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	db, err := database.New(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.WithField("driver", db.Driver).Info("Journal database connected")

	repo := journal.NewRepository(db.DB, log)

	b, err := bot.New(cfg, repo, log)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Bot error: %v", err)
	}
}
