package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/aliskhannn/mcq-bank/internal/repository"
)

// BackupService periodically snapshots the question bank to JSON files.
type BackupService struct {
	source RecordSource
	fs     afero.Fs
	dir    string
	logger *zap.Logger
	now    func() time.Time
}

// NewBackupService creates a new backup service writing into dir on fs.
func NewBackupService(source RecordSource, fs afero.Fs, dir string, logger *zap.Logger) *BackupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackupService{
		source: source,
		fs:     fs,
		dir:    dir,
		logger: logger,
		now:    time.Now,
	}
}

// Snapshot writes every stored question to a new timestamped file and returns its path.
// The file has the same layout as the JSON store, so it can be opened as one.
func (s *BackupService) Snapshot(ctx context.Context) (string, error) {
	mcqs, err := s.source.List(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	name := fmt.Sprintf("mcqs_%s.json", s.now().UTC().Format("20060102_150405"))
	path := filepath.Join(s.dir, name)

	if err := repository.WriteDocument(s.fs, path, mcqs); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}

	s.logger.Info("backup written", zap.String("path", path), zap.Int("count", len(mcqs)))
	return path, nil
}

// Start runs Snapshot on the cron schedule until ctx is cancelled.
func (s *BackupService) Start(ctx context.Context, schedule string) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(schedule, func() {
		s.logger.Info("cron triggered: writing backup")
		if _, err := s.Snapshot(ctx); err != nil {
			s.logger.Error("failed to write backup", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add backup job: %w", err)
	}

	c.Start()
	s.logger.Info("backup scheduler started", zap.String("schedule", schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("backup scheduler stopped")
	return nil
}
