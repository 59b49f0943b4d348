// Package dispatch routes inbound updates to reply actions.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"

	"github.com/mixelka/menubot/internal/formatter"
	"github.com/mixelka/menubot/pkg/models"
)

// ErrDelivery is returned when the primary reply for an update could not be sent
var ErrDelivery = errors.New("reply delivery failed")

// Gateway delivers replies to the chat platform
type Gateway interface {
	Send(ctx context.Context, reply models.Reply) error
}

// WeatherLookup returns current weather for a city
type WeatherLookup interface {
	GetWeather(ctx context.Context, city string) (*models.WeatherReport, error)
}

// ImageSource returns raw bytes of a random image
type ImageSource interface {
	Fetch(ctx context.Context) ([]byte, error)
}

type messageAction func(ctx context.Context, msg *models.TextMessage) error

type callbackAction func(ctx context.Context, cb *models.CallbackEvent) error

// Dispatcher matches updates against the command tables
type Dispatcher struct {
	gateway Gateway
	weather WeatherLookup
	images  ImageSource
	random  func() int
	logger  *slog.Logger

	messageActions  map[string]messageAction
	callbackActions map[models.CallbackAction]callbackAction

	inflight sync.WaitGroup
}

// Deps dependencies for creating a dispatcher
type Deps struct {
	Gateway Gateway
	Weather WeatherLookup
	Images  ImageSource
	Random  func() int // optional, defaults to uniform [1, 100)
	Logger  *slog.Logger
}

// New creates a new dispatcher
func New(deps Deps) *Dispatcher {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	d := &Dispatcher{
		gateway: deps.Gateway,
		weather: deps.Weather,
		images:  deps.Images,
		random:  deps.Random,
		logger:  logger.With("component", "dispatcher"),
	}

	if d.random == nil {
		d.random = randomDigit
	}

	d.messageActions = map[string]messageAction{
		"/start":    d.sendMainMenu,
		"/keyboard": d.sendReplyKeyboard,
		"/weather":  d.sendCitySelection,
		"погода":    d.sendCitySelection,
	}

	d.callbackActions = map[models.CallbackAction]callbackAction{
		models.CallbackMyName:      d.sendMyName,
		models.CallbackRandom:      d.sendRandom,
		models.CallbackLongProcess: d.sendImage,
		models.CallbackWeather:     d.sendCitySelectionCallback,
	}

	return d
}

// Dispatch routes one update. Only a failure to deliver the primary reply is returned.
func (d *Dispatcher) Dispatch(ctx context.Context, update models.Update) error {
	switch {
	case update.Message != nil:
		return d.dispatchMessage(ctx, update.Message)
	case update.Callback != nil:
		return d.dispatchCallback(ctx, update.Callback)
	default:
		return nil
	}
}

// Wait blocks until all detached image tasks have finished
func (d *Dispatcher) Wait() {
	d.inflight.Wait()
}

func (d *Dispatcher) dispatchMessage(ctx context.Context, msg *models.TextMessage) error {
	if action, ok := d.messageActions[strings.ToLower(msg.Text)]; ok {
		return action(ctx, msg)
	}

	d.logger.Debug("unrecognized message", "chat_id", msg.ChatID)
	return d.sendText(ctx, msg.ChatID, formatter.FormatEcho(msg.Text))
}

func (d *Dispatcher) dispatchCallback(ctx context.Context, cb *models.CallbackEvent) error {
	if city, ok := models.ParseWeatherCity(cb.Data); ok {
		return d.sendWeatherInfo(ctx, cb.ChatID, city)
	}

	if action, ok := d.callbackActions[models.CallbackAction(cb.Data)]; ok {
		return action(ctx, cb)
	}

	d.logger.Debug("unknown callback", "chat_id", cb.ChatID, "data", cb.Data)
	return d.sendText(ctx, cb.ChatID, formatter.TextUnknown)
}

// send delivers a primary reply
func (d *Dispatcher) send(ctx context.Context, reply models.Reply) error {
	if err := d.gateway.Send(ctx, reply); err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	return nil
}

func (d *Dispatcher) sendText(ctx context.Context, chatID int64, text string) error {
	return d.send(ctx, models.Reply{ChatID: chatID, Text: text})
}

func randomDigit() int {
	return rand.Intn(99) + 1
}
