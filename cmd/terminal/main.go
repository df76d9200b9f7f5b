package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"chipjack/internal/config"
	"chipjack/internal/database"
	"chipjack/internal/game"
	"chipjack/internal/journal"
	"chipjack/internal/terminal"

	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	// the table owns the terminal; keep log lines out of the way
	log.SetLevel(cfg.LogLevel)
	if cfg.LogLevel == logrus.InfoLevel {
		log.SetLevel(logrus.WarnLevel)
	}

	db, err := database.New(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := journal.NewRepository(db.DB, log)

	opts := []game.Option{
		game.WithBalance(cfg.StartBalance),
		game.WithLogger(log),
		game.WithObserver(repo),
	}
	if cfg.DeckSeed != 0 {
		opts = append(opts, game.WithShuffler(game.NewSeededShuffler(cfg.DeckSeed)))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ui := terminal.New(game.NewSession(opts...), repo, cfg.DealerDelay, log)
	if err := ui.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Terminal error: %v", err)
	}
}
