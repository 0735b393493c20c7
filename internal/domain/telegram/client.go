package telegram

import (
	"errors"

	"gopkg.in/telebot.v3"
)

// ErrDeliveryFailed wraps every error returned by a Client implementation.
var ErrDeliveryFailed = errors.New("telegram message not delivered")

// Client defines an interface for sending messages via a Telegram bot.
// This helps in decoupling the application logic from the specific bot library.
type Client interface {
	SendMessage(chatID string, text string, options *telebot.SendOptions) error
}
