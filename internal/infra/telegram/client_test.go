package telegram

import (
	"errors"
	"testing"

	domainTelegram "homework_status_bot/internal/domain/telegram"

	"gopkg.in/telebot.v3"
)

type recordingSender struct {
	to   string
	what interface{}
	opts []interface{}
	err  error
}

func (s *recordingSender) Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error) {
	s.to = to.Recipient()
	s.what = what
	s.opts = opts
	if s.err != nil {
		return nil, s.err
	}
	return &telebot.Message{Text: what.(string)}, nil
}

var _ domainTelegram.Client = (*TelebotAdapter)(nil)

func TestSendMessage(t *testing.T) {
	for _, chatID := range []string{"123456", "-1001234567890", "@homework_channel"} {
		s := &recordingSender{}
		if err := NewTelebotAdapter(s).SendMessage(chatID, "hi", nil); err != nil {
			t.Fatalf("SendMessage: %v", err)
		}
		if s.to != chatID || s.what != "hi" {
			t.Errorf("sent %v to %q, want hi to %q", s.what, s.to, chatID)
		}
		if len(s.opts) != 1 {
			t.Errorf("got %d send options, want 1", len(s.opts))
		}
	}
}

func TestSendMessageWrapsErrors(t *testing.T) {
	s := &recordingSender{err: errors.New("telegram: chat not found (400)")}
	err := NewTelebotAdapter(s).SendMessage("1", "hi", nil)
	if !errors.Is(err, domainTelegram.ErrDeliveryFailed) {
		t.Fatalf("got %v, want ErrDeliveryFailed", err)
	}
}

func TestNewBotOffline(t *testing.T) {
	b, err := NewBot("123:abc")
	if err != nil {
		t.Fatalf("NewBot: %v", err)
	}
	if b.Token != "123:abc" {
		t.Errorf("Token = %q", b.Token)
	}
}
