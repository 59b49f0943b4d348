package telegram

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/mixelka/menubot/internal/config"
	appmodels "github.com/mixelka/menubot/pkg/models"
)

// Dispatcher handles one converted update
type Dispatcher interface {
	Dispatch(ctx context.Context, update appmodels.Update) error
}

// Bot represents the Telegram bot
type Bot struct {
	bot        *bot.Bot
	gateway    *Gateway
	dispatcher Dispatcher
	logger     *slog.Logger
}

// BotDeps dependencies for creating a bot
type BotDeps struct {
	Config *config.Config
	Logger *slog.Logger
	// Options are appended to the defaults, e.g. a custom server URL
	Options []bot.Option
}

// NewBot creates a new Telegram bot
func NewBot(deps BotDeps) (*Bot, error) {
	b := &Bot{
		logger: deps.Logger.With("component", "telegram_bot"),
	}

	opts := []bot.Option{
		bot.WithDefaultHandler(b.defaultHandler),
		// Handle updates one at a time, in arrival order
		bot.WithNotAsyncHandlers(),
		bot.WithMiddlewares(loggingMiddleware(b.logger)),
		bot.WithErrorsHandler(func(err error) {
			b.logger.Error("telegram polling error", "error", err)
		}),
	}
	opts = append(opts, deps.Options...)

	tgBot, err := bot.New(deps.Config.TelegramToken, opts...)
	if err != nil {
		return nil, err
	}

	b.bot = tgBot
	b.gateway = NewGateway(tgBot)

	return b, nil
}

// Gateway returns the outbound side of the bot
func (b *Bot) Gateway() *Gateway {
	return b.gateway
}

// SetDispatcher sets the handler for inbound updates
func (b *Bot) SetDispatcher(d Dispatcher) {
	b.dispatcher = d
}

// Start publishes the command menu and polls for updates until ctx is done
func (b *Bot) Start(ctx context.Context) {
	if err := b.setCommands(ctx); err != nil {
		b.logger.Warn("failed to set bot commands", "error", err)
	}

	b.logger.Info("starting telegram bot")
	b.bot.Start(ctx)
}

// defaultHandler converts every update and hands it to the dispatcher
func (b *Bot) defaultHandler(ctx context.Context, tgBot *bot.Bot, update *models.Update) {
	u, ok := convertUpdate(update)
	if !ok {
		// Ignore non-text messages and other update kinds
		return
	}

	if b.dispatcher == nil {
		b.logger.Error("no dispatcher configured, dropping update", "update_id", update.ID)
		return
	}

	if err := b.dispatcher.Dispatch(ctx, u); err != nil {
		b.logger.Error("failed to handle update", "update_id", update.ID, "error", err)
	}

	if u.Callback != nil {
		if err := b.answerCallback(ctx, u.Callback.ID); err != nil {
			b.logger.Warn("failed to answer callback", "error", err)
		}
	}
}

// convertUpdate maps a Telegram update to the bot's own update type
func convertUpdate(update *models.Update) (appmodels.Update, bool) {
	switch {
	case update.Message != nil && update.Message.Text != "":
		return appmodels.Update{Message: &appmodels.TextMessage{
			ChatID: update.Message.Chat.ID,
			Text:   update.Message.Text,
		}}, true

	case update.CallbackQuery != nil:
		cq := update.CallbackQuery
		return appmodels.Update{Callback: &appmodels.CallbackEvent{
			ID:        cq.ID,
			ChatID:    callbackChatID(cq),
			UserID:    cq.From.ID,
			FirstName: cq.From.FirstName,
			LastName:  cq.From.LastName,
			Username:  cq.From.Username,
			Data:      cq.Data,
		}}, true

	default:
		return appmodels.Update{}, false
	}
}

// callbackChatID replies in the chat that holds the pressed button,
// falling back to the user's private chat
func callbackChatID(cq *models.CallbackQuery) int64 {
	switch {
	case cq.Message.Message != nil:
		return cq.Message.Message.Chat.ID
	case cq.Message.InaccessibleMessage != nil:
		return cq.Message.InaccessibleMessage.Chat.ID
	default:
		return cq.From.ID
	}
}
