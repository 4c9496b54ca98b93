package logger

import (
	"go.uber.org/zap"

	"github.com/aliskhannn/mcq-bank/internal/config"
)

// New builds the application logger. component names the binary (server, bot,
// lambda) and is attached to every entry.
func New(cfg *config.Config, component string) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if cfg.Env == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}

	return l.Named(component).With(
		zap.String("env", cfg.Env),
		zap.String("backend", cfg.Storage.Backend),
	), nil
}
