// internal/app/poller_service.go
package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"homework_status_bot/internal/domain/homework"
	domainTelegram "homework_status_bot/internal/domain/telegram"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CursorName is the key the poll cursor is stored under.
const CursorName = "homework_statuses"

var (
	ErrUnknownStatus = errors.New("undocumented homework status")
	ErrNoHomeworks   = errors.New("response has no homeworks field")
)

// StatusSource fetches homework status changes since a unix timestamp.
type StatusSource interface {
	GetAPIAnswer(ctx context.Context, from int64) (*homework.Response, error)
}

// Sleeper waits between poll iterations. Sleep returns false when ctx was cancelled.
type Sleeper interface {
	Sleep(ctx context.Context) bool
}

// PollerService runs the poll, check, notify, sleep loop.
type PollerService struct {
	source         StatusSource
	telegramClient domainTelegram.Client
	chatID         string
	cursors        homework.CursorRepository
	sleeper        Sleeper
	logger         *logrus.Entry
	now            func() time.Time
}

func NewPollerService(
	source StatusSource,
	tc domainTelegram.Client,
	chatID string,
	cursors homework.CursorRepository,
	sleeper Sleeper,
	logger *logrus.Entry,
) *PollerService {
	return &PollerService{
		source:         source,
		telegramClient: tc,
		chatID:         chatID,
		cursors:        cursors,
		sleeper:        sleeper,
		logger:         logger,
		now:            time.Now,
	}
}

// CheckResponse validates the homeworks field of an API response.
// A field that is not a JSON array is logged and yields a nil result without error.
// Elements that are null or an empty object come back as nil entries, in place.
func (s *PollerService) CheckResponse(resp *homework.Response) ([]*homework.Homework, error) {
	raw := bytes.TrimSpace(resp.Homeworks)
	if len(raw) == 0 {
		return nil, ErrNoHomeworks
	}
	if raw[0] != '[' {
		s.logger.WithField("homeworks", string(raw)).Info("Response homeworks field has an unexpected type")
		return nil, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("failed to decode homeworks: %w", err)
	}

	homeworks := make([]*homework.Homework, 0, len(elems))
	for i, elem := range elems {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(elem, &fields); err != nil {
			return nil, fmt.Errorf("failed to decode homework %d: %w", i, err)
		}
		if len(fields) == 0 {
			homeworks = append(homeworks, nil)
			continue
		}
		hw := &homework.Homework{}
		if err := json.Unmarshal(elem, hw); err != nil {
			return nil, fmt.Errorf("failed to decode homework %d: %w", i, err)
		}
		homeworks = append(homeworks, hw)
	}
	return homeworks, nil
}

// ParseStatus renders the notification text for a homework record.
func (s *PollerService) ParseStatus(hw *homework.Homework) (string, error) {
	verdict, ok := homework.Verdict(hw.Status)
	if !ok {
		s.logger.WithFields(logrus.Fields{
			"homework_name": hw.HomeworkName,
			"status":        hw.Status,
		}).Error("Undocumented homework status")
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, hw.Status)
	}
	return fmt.Sprintf("Изменился статус проверки работы \"%s\". %s", hw.HomeworkName, verdict), nil
}

// SendMessage delivers message to the configured chat. Delivery failures are logged, never returned.
func (s *PollerService) SendMessage(message string) {
	logCtx := s.logger.WithField("chat_id", s.chatID)
	if err := s.telegramClient.SendMessage(s.chatID, message, nil); err != nil {
		logCtx.WithError(err).Error("Telegram message was not sent")
		return
	}
	logCtx.Info("Telegram message sent")
}

// Run polls until ctx is cancelled. Errors inside an iteration never stop the loop.
func (s *PollerService) Run(ctx context.Context) error {
	cursor := s.initialCursor(ctx)
	s.logger.WithField("from_date", cursor).Info("Starting homework status polling")

	for {
		next, err := s.poll(ctx, cursor)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			s.logger.WithError(err).Error("Poll iteration failed")
		}

		if !s.sleeper.Sleep(ctx) {
			break
		}
		cursor = next
	}

	s.logger.Info("Homework status polling stopped")
	return ctx.Err()
}

func (s *PollerService) initialCursor(ctx context.Context) int64 {
	from, err := s.cursors.Get(ctx, CursorName)
	if err == nil && from > 0 {
		return from
	}
	if err != nil && !errors.Is(err, homework.ErrCursorNotFound) {
		s.logger.WithError(err).Warn("Could not load stored poll cursor, starting from now")
	}
	return s.now().Unix()
}

// poll runs one iteration and returns the cursor for the next one.
// On error the cursor is returned unchanged.
func (s *PollerService) poll(ctx context.Context, cursor int64) (next int64, err error) {
	logCtx := s.logger.WithFields(logrus.Fields{
		"poll_id":   uuid.NewString(),
		"from_date": cursor,
	})
	next = cursor

	defer func() {
		if r := recover(); r != nil {
			logCtx.WithField("stack", string(debug.Stack())).Error("Recovered from panic in poll iteration")
			next, err = cursor, fmt.Errorf("panic: %v", r)
		}
	}()

	resp, err := s.source.GetAPIAnswer(ctx, cursor)
	if err != nil {
		return cursor, err
	}

	homeworks, err := s.CheckResponse(resp)
	if err != nil {
		return cursor, err
	}

	sent := 0
	for _, hw := range homeworks {
		if hw == nil {
			continue
		}
		message, err := s.ParseStatus(hw)
		if err != nil {
			return cursor, err
		}
		logCtx.WithField("homework_name", hw.HomeworkName).Info("Sending homework status change")
		s.SendMessage(message)
		sent++
	}
	if sent == 0 {
		logCtx.Info("Homework status has not changed")
	}

	// A zero cursor makes the next request use the time it is sent at.
	next = resp.CurrentDate
	if next == 0 {
		return 0, nil
	}
	if err := s.cursors.Save(ctx, CursorName, next); err != nil {
		logCtx.WithError(err).Warn("Could not store poll cursor")
	}
	return next, nil
}
