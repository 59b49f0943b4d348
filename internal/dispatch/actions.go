package dispatch

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mixelka/menubot/internal/formatter"
	"github.com/mixelka/menubot/pkg/models"
)

const photoFilename = "random.jpg"

// sendMainMenu handles /start
func (d *Dispatcher) sendMainMenu(ctx context.Context, msg *models.TextMessage) error {
	return d.send(ctx, models.Reply{
		ChatID: msg.ChatID,
		Text:   formatter.TextMainMenu,
		Markup: formatter.BuildMainMenuKeyboard(),
	})
}

// sendReplyKeyboard handles /keyboard
func (d *Dispatcher) sendReplyKeyboard(ctx context.Context, msg *models.TextMessage) error {
	return d.send(ctx, models.Reply{
		ChatID: msg.ChatID,
		Text:   formatter.TextReplyKeyboard,
		Markup: formatter.BuildReplyKeyboard(),
	})
}

func (d *Dispatcher) sendCitySelection(ctx context.Context, msg *models.TextMessage) error {
	return d.citySelection(ctx, msg.ChatID)
}

func (d *Dispatcher) sendCitySelectionCallback(ctx context.Context, cb *models.CallbackEvent) error {
	return d.citySelection(ctx, cb.ChatID)
}

func (d *Dispatcher) citySelection(ctx context.Context, chatID int64) error {
	return d.send(ctx, models.Reply{
		ChatID: chatID,
		Text:   formatter.TextCitySelection,
		Markup: formatter.BuildCityKeyboard(),
	})
}

// sendWeatherInfo looks up the city and replies with the report or a fallback
func (d *Dispatcher) sendWeatherInfo(ctx context.Context, chatID int64, city string) error {
	report, err := d.weather.GetWeather(ctx, city)
	if err != nil || report == nil {
		d.logger.Warn("weather lookup failed", "city", city, "chat_id", chatID, "error", err)
		return d.sendText(ctx, chatID, formatter.FormatWeatherError(city))
	}

	return d.sendText(ctx, chatID, formatter.FormatWeather(report))
}

func (d *Dispatcher) sendMyName(ctx context.Context, cb *models.CallbackEvent) error {
	return d.sendText(ctx, cb.ChatID, formatter.FormatName(cb.DisplayName(), cb.Username))
}

func (d *Dispatcher) sendRandom(ctx context.Context, cb *models.CallbackEvent) error {
	return d.sendText(ctx, cb.ChatID, formatter.FormatRandom(d.random()))
}

// sendImage acknowledges the request and fetches the picture in the background.
// The caller is never blocked on the download.
func (d *Dispatcher) sendImage(ctx context.Context, cb *models.CallbackEvent) error {
	if err := d.sendText(ctx, cb.ChatID, formatter.TextImageLoading); err != nil {
		return err
	}

	taskID := uuid.NewString()
	taskCtx := context.WithoutCancel(ctx)

	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()
		d.deliverImage(taskCtx, cb.ChatID, taskID)
	}()

	return nil
}

// deliverImage runs detached; every failure ends in an error text to the chat
func (d *Dispatcher) deliverImage(ctx context.Context, chatID int64, taskID string) {
	logger := d.logger.With("task_id", taskID, "chat_id", chatID)
	logger.Debug("image task started")

	data, err := d.images.Fetch(ctx)
	if err != nil {
		logger.Warn("failed to fetch image", "error", err)
		d.sendImageError(ctx, logger, chatID)
		return
	}

	err = d.gateway.Send(ctx, models.Reply{
		ChatID: chatID,
		Text:   formatter.TextImageCaption,
		Photo: &models.Photo{
			Filename: photoFilename,
			Data:     data,
		},
	})
	if err != nil {
		logger.Warn("failed to send image", "error", err)
		d.sendImageError(ctx, logger, chatID)
		return
	}

	logger.Debug("image task finished", "bytes", len(data))
}

func (d *Dispatcher) sendImageError(ctx context.Context, logger *slog.Logger, chatID int64) {
	if err := d.gateway.Send(ctx, models.Reply{ChatID: chatID, Text: formatter.TextImageError}); err != nil {
		logger.Error("failed to send image error", "error", err)
	}
}
