package telegram

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

var botCommands = []models.BotCommand{
	{Command: "start", Description: "Main menu"},
	{Command: "keyboard", Description: "Show reply keyboard"},
	{Command: "weather", Description: "Weather by city"},
}

// answerCallback answers a callback query so the client stops its spinner
func (b *Bot) answerCallback(ctx context.Context, callbackID string) error {
	_, err := b.bot.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
	})
	return err
}

// setCommands publishes the command menu
func (b *Bot) setCommands(ctx context.Context) error {
	_, err := b.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: botCommands,
	})
	return err
}
