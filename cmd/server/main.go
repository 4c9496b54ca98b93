package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/mcq-bank/internal/config"
	httpapi "github.com/aliskhannn/mcq-bank/internal/delivery/http"
	"github.com/aliskhannn/mcq-bank/internal/logger"
	"github.com/aliskhannn/mcq-bank/internal/service"
	"github.com/aliskhannn/mcq-bank/internal/storage"
	"github.com/aliskhannn/mcq-bank/internal/syllabus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg, "server")
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Fatal("server stopped with error", zap.Error(err))
	}
	lg.Info("shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	backend, err := storage.Open(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer backend.Close()

	syl, err := syllabus.LoadOptional(afero.NewOsFs(), cfg.SyllabusPath)
	if err != nil {
		return err
	}

	deps := httpapi.Deps{
		Selector:     service.NewQuestionSelector(backend.Repository, backend.Name, cfg.Selector.Seed, lg),
		Logger:       lg,
		CORSOrigins:  cfg.HTTP.CORSOrigins,
		DefaultCount: cfg.Selector.DefaultCount,
	}
	if syl != nil {
		deps.MCQs = service.NewMCQService(backend.Repository, syl, lg)
		deps.Syllabus = syl
	} else {
		deps.MCQs = service.NewMCQService(backend.Repository, nil, lg)
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           httpapi.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		lg.Info("http server listening", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		lg.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.Backup.Schedule != "" {
		backups := service.NewBackupService(backend.Repository, afero.NewOsFs(), cfg.Backup.Dir, lg)
		g.Go(func() error {
			return backups.Start(gctx, cfg.Backup.Schedule)
		})
	}

	return g.Wait()
}
