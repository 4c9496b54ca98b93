package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/aliskhannn/mcq-bank/internal/config"
	"github.com/aliskhannn/mcq-bank/internal/delivery/telegram"
	"github.com/aliskhannn/mcq-bank/internal/logger"
	"github.com/aliskhannn/mcq-bank/internal/service"
	"github.com/aliskhannn/mcq-bank/internal/storage"
	"github.com/aliskhannn/mcq-bank/internal/syllabus"
)

func main() {
	cfg, err := config.Load(config.WithTelegram())
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg, "bot")
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}

	// Set commands.
	if _, err = bot.Request(tgbotapi.NewSetMyCommands(telegram.Commands()...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	bot.Debug = cfg.Env != "production"
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := storage.Open(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to open storage", zap.Error(err))
	}
	defer backend.Close()

	syl, err := syllabus.LoadOptional(afero.NewOsFs(), cfg.SyllabusPath)
	if err != nil {
		lg.Fatal("failed to load syllabus", zap.Error(err))
	}

	// Initialize services.
	selector := service.NewQuestionSelector(backend.Repository, backend.Name, cfg.Selector.Seed, lg)

	var (
		mcqService *service.MCQService
		catalog    telegram.Syllabus
	)
	if syl != nil {
		mcqService = service.NewMCQService(backend.Repository, syl, lg)
		catalog = syl
	} else {
		mcqService = service.NewMCQService(backend.Repository, nil, lg)
	}

	handler := telegram.NewHandler(
		bot,
		lg,
		mcqService,
		selector,
		storage.NewSelectionStorage(),
		catalog,
		cfg.Selector.DefaultCount,
	)
	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("telegram handler stopped", zap.Error(err))
	}

	lg.Info("shutdown signal received")
}
