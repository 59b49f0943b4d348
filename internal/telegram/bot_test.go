package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path"
	"sync"
	"testing"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/mixelka/menubot/internal/config"
	"github.com/mixelka/menubot/internal/formatter"
	appmodels "github.com/mixelka/menubot/pkg/models"
)

type apiCall struct {
	method string
	values map[string]string
	files  map[string][]byte
}

type fakeAPI struct {
	mu    sync.Mutex
	calls []apiCall
	fail  map[string]bool
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	method := path.Base(r.URL.Path)

	call := apiCall{method: method, values: map[string]string{}, files: map[string][]byte{}}
	if err := r.ParseMultipartForm(10 << 20); err == nil {
		for k, v := range r.MultipartForm.Value {
			call.values[k] = v[0]
		}
		for k, headers := range r.MultipartForm.File {
			file, err := headers[0].Open()
			if err != nil {
				continue
			}
			data, _ := io.ReadAll(file)
			file.Close()
			call.files[k] = data
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	failing := f.fail[method]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if failing {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":403,"description":"Forbidden: bot was blocked by the user"}`))
		return
	}

	switch method {
	case "sendMessage", "sendPhoto":
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":200,"type":"private"}}}`))
	default:
		_, _ = w.Write([]byte(`{"ok":true,"result":true}`))
	}
}

func (f *fakeAPI) recorded() []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]apiCall(nil), f.calls...)
}

func newTestBot(t *testing.T, api *fakeAPI) *Bot {
	t.Helper()

	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	b, err := NewBot(BotDeps{
		Config:  &config.Config{TelegramToken: "123:abc"},
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Options: []bot.Option{bot.WithServerURL(srv.URL), bot.WithSkipGetMe()},
	})
	if err != nil {
		t.Fatalf("NewBot() error = %v", err)
	}
	return b
}

func TestGatewaySend_Text(t *testing.T) {
	api := &fakeAPI{}
	b := newTestBot(t, api)

	err := b.Gateway().Send(context.Background(), appmodels.Reply{ChatID: 200, Text: "Unknown command"})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	calls := api.recorded()
	if len(calls) != 1 || calls[0].method != "sendMessage" {
		t.Fatalf("unexpected calls: %+v", calls)
	}
	if calls[0].values["chat_id"] != "200" || calls[0].values["text"] != "Unknown command" {
		t.Fatalf("unexpected values: %+v", calls[0].values)
	}
	if _, ok := calls[0].values["reply_markup"]; ok {
		t.Fatalf("plain text reply should not carry markup")
	}
}

func TestGatewaySend_InlineKeyboard(t *testing.T) {
	api := &fakeAPI{}
	b := newTestBot(t, api)

	err := b.Gateway().Send(context.Background(), appmodels.Reply{
		ChatID: 200,
		Text:   formatter.TextMainMenu,
		Markup: formatter.BuildMainMenuKeyboard(),
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	calls := api.recorded()
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}

	var markup models.InlineKeyboardMarkup
	if err := json.Unmarshal([]byte(calls[0].values["reply_markup"]), &markup); err != nil {
		t.Fatalf("decode reply_markup: %v", err)
	}
	if len(markup.InlineKeyboard) != 4 || markup.InlineKeyboard[3][0].CallbackData != "weather" {
		t.Fatalf("unexpected markup: %+v", markup)
	}
}

func TestGatewaySend_Photo(t *testing.T) {
	api := &fakeAPI{}
	b := newTestBot(t, api)

	err := b.Gateway().Send(context.Background(), appmodels.Reply{
		ChatID: 200,
		Text:   formatter.TextImageCaption,
		Photo:  &appmodels.Photo{Filename: "random.jpg", Data: []byte("jpeg-bytes")},
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	calls := api.recorded()
	if len(calls) != 1 || calls[0].method != "sendPhoto" {
		t.Fatalf("unexpected calls: %+v", calls)
	}
	if calls[0].values["caption"] != formatter.TextImageCaption {
		t.Errorf("caption = %q", calls[0].values["caption"])
	}
	if string(calls[0].files["photo"]) != "jpeg-bytes" {
		t.Errorf("photo = %q", calls[0].files["photo"])
	}
	if _, ok := calls[0].values["reply_markup"]; ok {
		t.Errorf("photo reply should not carry markup")
	}
}

func TestGatewaySend_Error(t *testing.T) {
	api := &fakeAPI{fail: map[string]bool{"sendMessage": true}}
	b := newTestBot(t, api)

	if err := b.Gateway().Send(context.Background(), appmodels.Reply{ChatID: 200, Text: "hi"}); err == nil {
		t.Fatal("Send() error = nil, want error")
	}
}

type recordingDispatcher struct {
	updates []appmodels.Update
	err     error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, update appmodels.Update) error {
	d.updates = append(d.updates, update)
	return d.err
}

func TestDefaultHandler_AnswersCallback(t *testing.T) {
	api := &fakeAPI{}
	b := newTestBot(t, api)
	d := &recordingDispatcher{err: errors.New("reply delivery failed")}
	b.SetDispatcher(d)

	update := &models.Update{
		ID: 7,
		CallbackQuery: &models.CallbackQuery{
			ID:   "cb-42",
			From: models.User{ID: 200, FirstName: "Ivan"},
			Data: "random",
		},
	}
	b.defaultHandler(context.Background(), nil, update)

	if len(d.updates) != 1 || d.updates[0].Callback == nil || d.updates[0].Callback.Data != "random" {
		t.Fatalf("unexpected dispatched updates: %+v", d.updates)
	}

	calls := api.recorded()
	if len(calls) != 1 || calls[0].method != "answerCallbackQuery" {
		t.Fatalf("unexpected calls: %+v", calls)
	}
	if calls[0].values["callback_query_id"] != "cb-42" {
		t.Fatalf("callback_query_id = %q", calls[0].values["callback_query_id"])
	}
}

type slowDispatcher struct {
	mu    sync.Mutex
	order []string
}

func (d *slowDispatcher) Dispatch(_ context.Context, update appmodels.Update) error {
	if update.Message != nil && update.Message.Text == "first" {
		time.Sleep(200 * time.Millisecond)
	}
	d.mu.Lock()
	d.order = append(d.order, update.Message.Text)
	d.mu.Unlock()
	return nil
}

func (d *slowDispatcher) handled() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.order...)
}

func TestProcessUpdate_HandlesUpdatesInArrivalOrder(t *testing.T) {
	api := &fakeAPI{}
	b := newTestBot(t, api)
	d := &slowDispatcher{}
	b.SetDispatcher(d)

	ctx := context.Background()
	b.bot.ProcessUpdate(ctx, &models.Update{ID: 1, Message: &models.Message{Chat: models.Chat{ID: 100}, Text: "first"}})
	b.bot.ProcessUpdate(ctx, &models.Update{ID: 2, Message: &models.Message{Chat: models.Chat{ID: 100}, Text: "second"}})

	got := d.handled()
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Fatalf("handled order = %v, want [first second]", got)
	}
}

func TestDefaultHandler_IgnoresNonText(t *testing.T) {
	api := &fakeAPI{}
	b := newTestBot(t, api)
	d := &recordingDispatcher{}
	b.SetDispatcher(d)

	b.defaultHandler(context.Background(), nil, &models.Update{
		ID:      8,
		Message: &models.Message{Chat: models.Chat{ID: 100}},
	})
	b.defaultHandler(context.Background(), nil, &models.Update{ID: 9})

	if len(d.updates) != 0 {
		t.Fatalf("expected no dispatched updates, got %+v", d.updates)
	}
	if calls := api.recorded(); len(calls) != 0 {
		t.Fatalf("expected no API calls, got %+v", calls)
	}
}

func TestConvertUpdate(t *testing.T) {
	tests := []struct {
		name       string
		update     *models.Update
		wantChatID int64
		wantText   string
		wantData   string
	}{
		{
			name:       "text message",
			update:     &models.Update{Message: &models.Message{Chat: models.Chat{ID: 100}, Text: "/Start"}},
			wantChatID: 100,
			wantText:   "/Start",
		},
		{
			name: "callback from visible message",
			update: &models.Update{CallbackQuery: &models.CallbackQuery{
				From:    models.User{ID: 5},
				Message: models.MaybeInaccessibleMessage{Message: &models.Message{Chat: models.Chat{ID: -1001}}},
				Data:    "weather_Kyiv",
			}},
			wantChatID: -1001,
			wantData:   "weather_Kyiv",
		},
		{
			name: "callback from inaccessible message",
			update: &models.Update{CallbackQuery: &models.CallbackQuery{
				From:    models.User{ID: 5},
				Message: models.MaybeInaccessibleMessage{InaccessibleMessage: &models.InaccessibleMessage{Chat: models.Chat{ID: -1002}}},
				Data:    "my_name",
			}},
			wantChatID: -1002,
			wantData:   "my_name",
		},
		{
			name: "callback without message",
			update: &models.Update{CallbackQuery: &models.CallbackQuery{
				From: models.User{ID: 5, FirstName: "Ivan", Username: "ivanp"},
				Data: "my_name",
			}},
			wantChatID: 5,
			wantData:   "my_name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, ok := convertUpdate(tt.update)
			if !ok {
				t.Fatal("convertUpdate() ok = false")
			}

			switch {
			case u.Message != nil:
				if u.Message.ChatID != tt.wantChatID || u.Message.Text != tt.wantText {
					t.Fatalf("message = %+v", u.Message)
				}
			case u.Callback != nil:
				if u.Callback.ChatID != tt.wantChatID || u.Callback.Data != tt.wantData {
					t.Fatalf("callback = %+v", u.Callback)
				}
			default:
				t.Fatal("empty update")
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("погода", 3); got != "пог..." {
		t.Fatalf("truncate() = %q", got)
	}
	if got := truncate("hi", 3); got != "hi" {
		t.Fatalf("truncate() = %q", got)
	}
}
