package models

import (
	tgmodels "github.com/go-telegram/bot/models"
)

// ReplyKind describes the shape of an outbound reply
type ReplyKind string

const (
	ReplyText           ReplyKind = "text"
	ReplyInlineKeyboard ReplyKind = "inline_keyboard"
	ReplyReplyKeyboard  ReplyKind = "reply_keyboard"
	ReplyPhoto          ReplyKind = "photo"
)

// Photo is an image uploaded with a reply
type Photo struct {
	Filename string
	Data     []byte
}

// Reply is one outbound message. For photos Text is used as the caption.
type Reply struct {
	ChatID int64
	Text   string
	Markup tgmodels.ReplyMarkup
	Photo  *Photo
}

// Kind returns the reply shape
func (r Reply) Kind() ReplyKind {
	if r.Photo != nil {
		return ReplyPhoto
	}
	switch r.Markup.(type) {
	case *tgmodels.InlineKeyboardMarkup:
		return ReplyInlineKeyboard
	case *tgmodels.ReplyKeyboardMarkup:
		return ReplyReplyKeyboard
	default:
		return ReplyText
	}
}
