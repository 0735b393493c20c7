// internal/infra/telegram/client.go
package telegram

import (
	"fmt"

	domainTelegram "homework_status_bot/internal/domain/telegram"

	"gopkg.in/telebot.v3"
)

// chatRecipient addresses a chat by numeric ID or @username.
type chatRecipient string

func (r chatRecipient) Recipient() string { return string(r) }

// Sender is the part of *telebot.Bot the adapter needs.
type Sender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// TelebotAdapter implements the Client interface using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot Sender
}

func NewTelebotAdapter(b Sender) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// NewBot creates a telebot instance without contacting Telegram; the token is first used on send.
func NewBot(token string) (*telebot.Bot, error) {
	b, err := telebot.NewBot(telebot.Settings{
		Token:   token,
		Offline: true,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create Telegram bot: %w", err)
	}
	return b, nil
}

// SendMessage sends a text message to the specified chat.
func (tba *TelebotAdapter) SendMessage(chatID string, text string, options *telebot.SendOptions) error {
	if options == nil {
		options = &telebot.SendOptions{}
	}

	if _, err := tba.bot.Send(chatRecipient(chatID), text, options); err != nil {
		return fmt.Errorf("%w: chat %s: %v", domainTelegram.ErrDeliveryFailed, chatID, err)
	}
	return nil
}
