package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Sleeper blocks the poll loop until the next activation of a cron schedule.
// The same wait is used after successful and failed iterations.
type Sleeper struct {
	schedule cron.Schedule
	logger   *logrus.Entry
	now      func() time.Time
	after    func(time.Duration) <-chan time.Time
}

// NewSleeper parses spec as a standard cron expression or descriptor
// (e.g. "@every 10m", "*/10 * * * *").
func NewSleeper(spec string, logger *logrus.Entry) (*Sleeper, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid retry schedule %q: %w", spec, err)
	}
	return &Sleeper{
		schedule: schedule,
		logger:   logger,
		now:      time.Now,
		after:    time.After,
	}, nil
}

// Next returns the duration until the schedule's next activation relative to now.
func (s *Sleeper) Next() time.Duration {
	now := s.now()
	d := s.schedule.Next(now).Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Sleep waits for the next activation. It returns false if ctx was cancelled first.
func (s *Sleeper) Sleep(ctx context.Context) bool {
	d := s.Next()
	s.logger.WithField("wait", d.String()).Debug("Waiting before next poll")
	select {
	case <-ctx.Done():
		return false
	case <-s.after(d):
		return true
	}
}
