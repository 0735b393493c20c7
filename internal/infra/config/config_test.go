package config

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// chdir changes the working directory for the duration of the test, like
// testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("Chdir back: %v", err)
		}
	})
}

func setEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	for _, k := range []string{
		"PRACTICUM_TOKEN", "TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID", "PRACTICUM_BASE_URL",
		"RETRY_SCHEDULE", "DATABASE_URL", "LOG_LEVEL", "LOG_FILE", "ENVIRONMENT",
	} {
		t.Setenv(k, kv[k])
	}
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir()) // no .env
	setEnv(t, map[string]string{
		"PRACTICUM_TOKEN":  "p",
		"TELEGRAM_TOKEN":   "t",
		"TELEGRAM_CHAT_ID": "@channel",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PracticumBaseURL != defaultPracticumBaseURL {
		t.Errorf("PracticumBaseURL = %q", cfg.PracticumBaseURL)
	}
	if cfg.RetrySchedule != "@every 10m" {
		t.Errorf("RetrySchedule = %q", cfg.RetrySchedule)
	}
	if cfg.LogLevel != "debug" || cfg.LogFile != "error.log" || cfg.Environment != "development" {
		t.Errorf("unexpected logging defaults: %+v", cfg)
	}
	if cfg.TelegramChatID != "@channel" {
		t.Errorf("TelegramChatID = %q", cfg.TelegramChatID)
	}
}

func TestLoadTrimsBaseURL(t *testing.T) {
	chdir(t, t.TempDir())
	setEnv(t, map[string]string{"PRACTICUM_BASE_URL": "http://localhost:8080/api/"})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PracticumBaseURL != "http://localhost:8080/api" {
		t.Errorf("PracticumBaseURL = %q", cfg.PracticumBaseURL)
	}
}

func TestLoadInvalidBaseURL(t *testing.T) {
	chdir(t, t.TempDir())
	setEnv(t, map[string]string{"PRACTICUM_BASE_URL": "practicum/api"})

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted a relative base URL")
	}
}

func TestCheckTokens(t *testing.T) {
	cases := []struct {
		name    string
		cfg     AppConfig
		want    bool
		missing int
	}{
		{"all set", AppConfig{PracticumToken: "p", TelegramToken: "t", TelegramChatID: "1"}, true, 0},
		{"chat missing", AppConfig{PracticumToken: "p", TelegramToken: "t"}, false, 1},
		{"none set", AppConfig{}, false, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			log, hook := test.NewNullLogger()
			if got := CheckTokens(&tc.cfg, logrus.NewEntry(log)); got != tc.want {
				t.Errorf("CheckTokens = %v, want %v", got, tc.want)
			}
			fatal := 0
			for _, e := range hook.AllEntries() {
				if e.Level == logrus.FatalLevel {
					fatal++
				}
			}
			if fatal != tc.missing {
				t.Errorf("logged %d missing variables, want %d", fatal, tc.missing)
			}
		})
	}
}
