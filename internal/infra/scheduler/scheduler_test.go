package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func newTestSleeper(t *testing.T, spec string) *Sleeper {
	t.Helper()
	log, _ := test.NewNullLogger()
	s, err := NewSleeper(spec, logrus.NewEntry(log))
	if err != nil {
		t.Fatalf("NewSleeper(%q): %v", spec, err)
	}
	s.now = func() time.Time { return time.Date(2024, 5, 1, 10, 3, 0, 0, time.UTC) }
	return s
}

func TestNext(t *testing.T) {
	cases := []struct {
		spec string
		want time.Duration
	}{
		{"@every 10m", 10 * time.Minute},
		{"@every 30s", 30 * time.Second},
		{"*/10 * * * *", 7 * time.Minute},
		{"@hourly", 57 * time.Minute},
	}
	for _, tc := range cases {
		s := newTestSleeper(t, tc.spec)
		if got := s.Next(); got != tc.want {
			t.Errorf("%s: Next() = %s, want %s", tc.spec, got, tc.want)
		}
	}
}

func TestNewSleeperInvalid(t *testing.T) {
	log, _ := test.NewNullLogger()
	if _, err := NewSleeper("every ten minutes", logrus.NewEntry(log)); err == nil {
		t.Fatal("NewSleeper accepted an invalid schedule")
	}
}

func TestSleep(t *testing.T) {
	s := newTestSleeper(t, "@every 10m")
	var waited time.Duration
	s.after = func(d time.Duration) <-chan time.Time {
		waited = d
		ch := make(chan time.Time, 1)
		ch <- time.Time{}
		return ch
	}

	if !s.Sleep(context.Background()) {
		t.Fatal("Sleep returned false")
	}
	if waited != 10*time.Minute {
		t.Errorf("waited %s, want 10m", waited)
	}
}

func TestSleepCancelled(t *testing.T) {
	s := newTestSleeper(t, "@every 10m")
	s.after = func(time.Duration) <-chan time.Time { return nil }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if s.Sleep(ctx) {
		t.Fatal("Sleep returned true after cancellation")
	}
}
