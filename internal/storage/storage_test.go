package storage_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/aliskhannn/mcq-bank/internal/config"
	"github.com/aliskhannn/mcq-bank/internal/domain/entities"
	"github.com/aliskhannn/mcq-bank/internal/service"
	"github.com/aliskhannn/mcq-bank/internal/storage"
)

func TestSelectionStorage(t *testing.T) {
	s := storage.NewSelectionStorage()

	if s.Get(1) != nil {
		t.Fatal("expected no selection")
	}
	if _, ok := s.Request(1); ok {
		t.Fatal("expected no request")
	}

	req := service.SelectionRequest{Count: 3}
	sel := &entities.Selection{Requested: 3}
	s.Store(1, req, sel)

	if s.Get(1) != sel {
		t.Fatal("selection not stored")
	}
	if got, ok := s.Request(1); !ok || got.Count != 3 {
		t.Fatalf("request = %+v, %v", got, ok)
	}
	if s.Get(2) != nil {
		t.Fatal("selections leak between chats")
	}

	s.Delete(1)
	if s.Get(1) != nil {
		t.Fatal("selection not deleted")
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		cfg  config.Config
	}{
		{"memory", config.Config{Storage: config.Storage{Backend: config.BackendMemory}}},
		{"json", config.Config{Storage: config.Storage{Backend: config.BackendJSON, JSONPath: filepath.Join(dir, "mcqs.json")}}},
		{"sqlite", config.Config{Storage: config.Storage{Backend: config.BackendSQLite}, SQLite: config.SQLite{DSN: ":memory:"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			b, err := storage.Open(ctx, &tt.cfg, zap.NewNop())
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer b.Close()

			if b.Name != tt.name {
				t.Fatalf("name = %q", b.Name)
			}
			if _, err := b.Repository.List(ctx); err != nil {
				t.Fatalf("List: %v", err)
			}
		})
	}
}

func TestOpen_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := storage.Open(ctx, &config.Config{Storage: config.Storage{Backend: "firestore"}}, zap.NewNop())
	if !errors.Is(err, config.ErrUnknownBackend) {
		t.Fatalf("unknown backend err = %v", err)
	}

	_, err = storage.Open(ctx, &config.Config{Storage: config.Storage{Backend: config.BackendPostgres}}, zap.NewNop())
	if !errors.Is(err, config.ErrMissingEnvironmentVariables) {
		t.Fatalf("postgres err = %v", err)
	}
}
