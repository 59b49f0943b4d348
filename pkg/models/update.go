package models

// Update is one inbound event. Exactly one of Message or Callback is set.
type Update struct {
	Message  *TextMessage
	Callback *CallbackEvent
}

// TextMessage is a plain text message sent to the bot
type TextMessage struct {
	ChatID int64
	Text   string
}

// CallbackEvent is an inline button press
type CallbackEvent struct {
	ID        string // Callback query ID, used to answer the query
	ChatID    int64
	UserID    int64
	FirstName string
	LastName  string
	Username  string
	Data      string
}

// DisplayName returns first and last name joined by a space, as supplied
func (c *CallbackEvent) DisplayName() string {
	return c.FirstName + " " + c.LastName
}
