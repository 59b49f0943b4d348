package telegram

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	appmodels "github.com/mixelka/menubot/pkg/models"
)

// Gateway sends replies through the Bot API
type Gateway struct {
	bot *bot.Bot
}

// NewGateway creates a gateway over an existing bot
func NewGateway(b *bot.Bot) *Gateway {
	return &Gateway{bot: b}
}

// Send delivers a text, keyboard or photo reply
func (g *Gateway) Send(ctx context.Context, reply appmodels.Reply) error {
	if reply.Photo != nil {
		return g.sendPhoto(ctx, reply)
	}

	if _, err := g.sendMessageWithKeyboard(ctx, reply.ChatID, reply.Text, reply.Markup); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// sendMessageWithKeyboard sends a plain text message with optional markup
func (g *Gateway) sendMessageWithKeyboard(ctx context.Context, chatID int64, text string, keyboard models.ReplyMarkup) (*models.Message, error) {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}

	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	return g.bot.SendMessage(ctx, params)
}

// sendPhoto uploads the image bytes with a caption
func (g *Gateway) sendPhoto(ctx context.Context, reply appmodels.Reply) error {
	params := &bot.SendPhotoParams{
		ChatID: reply.ChatID,
		Photo: &models.InputFileUpload{
			Filename: reply.Photo.Filename,
			Data:     bytes.NewReader(reply.Photo.Data),
		},
		Caption: reply.Text,
	}

	if _, err := g.bot.SendPhoto(ctx, params); err != nil {
		return fmt.Errorf("failed to send photo: %w", err)
	}
	return nil
}
