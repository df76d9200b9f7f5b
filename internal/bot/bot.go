package bot

import (
	"context"

	"chipjack/internal/config"
	"chipjack/internal/journal"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

type Bot struct {
	api     *tgbotapi.BotAPI
	handler *Handler
	log     logrus.FieldLogger
}

func New(cfg *config.Config, repo journal.Repository, log logrus.FieldLogger) (*Bot, error) {
	if err := cfg.RequireBotToken(); err != nil {
		return nil, err
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	api.Debug = cfg.LogLevel >= logrus.DebugLevel

	return &Bot{
		api:     api,
		handler: NewHandler(api, cfg, repo, log),
		log:     log,
	}, nil
}

// Run polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.log.Infof("Bot started: @%s", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		if update.CallbackQuery != nil {
			go b.handler.HandleCallback(update.CallbackQuery)
			continue
		}

		if update.Message != nil {
			go b.handler.HandleMessage(update.Message)
		}
	}

	return ctx.Err()
}
