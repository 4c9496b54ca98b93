package storage

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/aliskhannn/mcq-bank/internal/config"
	"github.com/aliskhannn/mcq-bank/internal/infra/dynamo"
	"github.com/aliskhannn/mcq-bank/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/mcq-bank/internal/infra/postgres/repository"
	"github.com/aliskhannn/mcq-bank/internal/infra/sqlite"
	"github.com/aliskhannn/mcq-bank/internal/repository"
	"github.com/aliskhannn/mcq-bank/internal/service"
)

// Backend is an opened question store.
type Backend struct {
	Repository service.MCQRepository
	Name       string // backend name reported in selections
	Close      func()
}

// Open connects to the backend selected by cfg.Storage.Backend.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Backend, error) {
	name := cfg.Storage.Backend
	noop := func() {}

	switch name {
	case config.BackendMemory:
		return &Backend{Repository: repository.NewMemoryStore(), Name: name, Close: noop}, nil

	case config.BackendJSON:
		store, err := repository.NewJSONStore(afero.NewOsFs(), cfg.Storage.JSONPath)
		if err != nil {
			return nil, fmt.Errorf("open json store: %w", err)
		}
		logger.Info("json store opened", zap.String("path", store.Path()))
		return &Backend{Repository: store, Name: name, Close: noop}, nil

	case config.BackendPostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, err
		}
		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		logger.Info("postgres pool opened", zap.Int("max_connections", cfg.DB.MaxConnections))
		repo := pgrepo.NewMCQRepository(pool, postgres.NewTransactor(pool))
		return &Backend{Repository: repo, Name: name, Close: pool.Close}, nil

	case config.BackendSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		logger.Info("sqlite database opened")
		return &Backend{
			Repository: sqlite.NewStore(db),
			Name:       name,
			Close: func() {
				if err := db.Close(); err != nil {
					logger.Warn("failed to close sqlite", zap.Error(err))
				}
			},
		}, nil

	case config.BackendDynamoDB:
		client, err := dynamo.NewClient(ctx, dynamo.ClientConfig{
			Region:   cfg.DynamoDB.Region,
			Endpoint: cfg.DynamoDB.Endpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("open dynamodb: %w", err)
		}
		logger.Info("dynamodb client ready", zap.String("table", cfg.DynamoDB.Table))
		return &Backend{Repository: dynamo.NewStore(client, cfg.DynamoDB.Table), Name: name, Close: noop}, nil
	}

	return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, name)
}
