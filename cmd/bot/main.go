package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/domain/homework"
	"homework_status_bot/internal/infra/config"
	idb "homework_status_bot/internal/infra/database"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/memory"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("Homework Status Bot starting...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	baseLogger, logFile, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("FATAL: Could not initialize logger: %v", err)
	}
	defer logFile.Close()
	mainLogger := baseLogger.WithField(logger.NameField, "main")

	if !config.CheckTokens(cfg, mainLogger) {
		logFile.Close()
		os.Exit(1)
	}
	mainLogger.WithFields(logrus.Fields{
		"environment":    cfg.Environment,
		"retry_schedule": cfg.RetrySchedule,
	}).Info("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize cursor storage
	var cursors homework.CursorRepository = memory.NewCursorRepository()
	if cfg.DatabaseURL != "" {
		db, err := idb.NewPostgresConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			mainLogger.WithError(err).Fatal("Could not connect to database")
		}
		defer db.Close()
		repo := idb.NewPostgresCursorRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			mainLogger.WithError(err).Fatal("Could not prepare database schema")
		}
		cursors = repo
		mainLogger.Info("Poll cursor is persisted in PostgreSQL")
	}

	sleeper, err := scheduler.NewSleeper(cfg.RetrySchedule, baseLogger.WithField(logger.NameField, "scheduler"))
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not parse retry schedule")
	}

	bot, err := telegram.NewBot(cfg.TelegramToken)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not create Telegram bot")
	}

	apiClient := practicum.NewClient(
		cfg.PracticumBaseURL,
		cfg.PracticumToken,
		http.DefaultClient,
		baseLogger.WithField(logger.NameField, "practicum"),
	)

	poller := app.NewPollerService(
		apiClient,
		telegram.NewTelebotAdapter(bot),
		cfg.TelegramChatID,
		cursors,
		sleeper,
		baseLogger.WithField(logger.NameField, "poller"),
	)

	mainLogger.WithField("endpoint", apiClient.Endpoint()).Info("Application setup complete, polling started")
	if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		mainLogger.WithError(err).Error("Poller stopped unexpectedly")
	}
	mainLogger.Info("Application shut down gracefully")
}
