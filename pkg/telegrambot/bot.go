package telegrambot

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	telebot "gopkg.in/telebot.v3"

	"gmeet-jira-bot/internal/config"
	"gmeet-jira-bot/internal/handlers"
	"gmeet-jira-bot/internal/permissions"
)

// Bot represents the Telegram bot
type Bot struct {
	bot      *telebot.Bot
	config   *config.Config
	handlers map[permissions.AccessType]handlers.MessageHandler
	permCtrl *permissions.PermissionController
	logger   *logrus.Logger
}

// NewBot creates a new Telegram bot
func NewBot(
	cfg *config.Config,
	factory *handlers.HandlerFactory,
	permCtrl *permissions.PermissionController,
	logger *logrus.Logger,
) (*Bot, error) {
	settings := telebot.Settings{
		Token:  cfg.Telegram.Token,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) {
			logger.Errorf("Telegram bot error: %v", err)
			if c != nil {
				c.Send("An error occurred. Please try again later.")
			}
		},
	}

	b, err := telebot.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	bot := &Bot{
		bot:      b,
		config:   cfg,
		handlers: make(map[permissions.AccessType]handlers.MessageHandler),
		permCtrl: permCtrl,
		logger:   logger,
	}

	bot.handlers[permissions.Member] = factory.CreateHandler(permissions.Member)
	bot.handlers[permissions.None] = factory.CreateHandler(permissions.None)

	bot.setupMiddleware()

	return bot, nil
}

// Start starts the bot and stops it when the context is cancelled
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Starting Telegram bot")

	go func() {
		<-ctx.Done()
		b.logger.Info("Stopping Telegram bot")
		b.bot.Stop()
	}()

	b.bot.Start()
	return nil
}

// setupMiddleware sets up the bot middleware and update routing
func (b *Bot) setupMiddleware() {
	b.bot.Use(func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			b.logger.Infof("Received update from %d in chat %d: %s", c.Sender().ID, c.Chat().ID, c.Text())
			return next(c)
		}
	})

	b.bot.Handle(telebot.OnText, b.handleUpdate)
	b.bot.Handle(telebot.OnCallback, b.handleUpdate)
	b.bot.Handle(telebot.OnPhoto, b.handleUpdate)
	b.bot.Handle(telebot.OnDocument, b.handleUpdate)
	b.bot.Handle("/start", b.handleUpdate)
}

// handleUpdate routes an update to the handler for the sender's access
func (b *Bot) handleUpdate(c telebot.Context) error {
	accessType := b.permCtrl.GetAccessType(c.Sender().ID, c.Chat().ID)

	handler, ok := b.handlers[accessType]
	if !ok {
		b.logger.Warnf("No handler for access type %d", accessType)
		return c.Send("You don't have permission to use this bot.")
	}

	ctx := context.Background()
	return handler.Handle(ctx, c)
}
