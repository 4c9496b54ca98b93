// Package http exposes the question bank over a JSON REST API.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/aliskhannn/mcq-bank/internal/domain/entities"
	"github.com/aliskhannn/mcq-bank/internal/service"
	"github.com/aliskhannn/mcq-bank/internal/syllabus"
)

type MCQService interface {
	Create(ctx context.Context, in entities.MCQInput) (*entities.MCQ, error)
	Import(ctx context.Context, inputs []entities.MCQInput) ([]*entities.MCQ, error)
	Recent(ctx context.Context, limit int) ([]entities.MCQ, error)
	FilterOptions(ctx context.Context) (*service.FilterOptions, error)
	Count(ctx context.Context) (int, error)
}

type Selector interface {
	Select(ctx context.Context, req service.SelectionRequest) (*entities.Selection, error)
}

type Syllabus interface {
	Tree() map[string]map[string]syllabus.Topic
}

// Deps are the services the router serves. Syllabus may be nil.
type Deps struct {
	MCQs         MCQService
	Selector     Selector
	Syllabus     Syllabus
	Logger       *zap.Logger
	CORSOrigins  []string
	DefaultCount int
}

// NewRouter builds the API router.
func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, RequestLogger(d.Logger), middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	r.Get("/healthz", HealthHandler(d.MCQs))

	r.Route("/api", func(ar chi.Router) {
		ar.Route("/mcqs", func(mr chi.Router) {
			mr.Post("/", CreateMCQHandler(d.MCQs, d.Logger))
			mr.Post("/import", ImportMCQsHandler(d.MCQs, d.Logger))
			mr.Get("/recent", RecentMCQsHandler(d.MCQs, d.Logger))
			mr.Get("/filters", FilterOptionsHandler(d.MCQs, d.Logger))
		})
		ar.Get("/syllabus", SyllabusHandler(d.Syllabus))
		ar.Route("/selections", func(sr chi.Router) {
			sr.Get("/", SelectFromQueryHandler(d.Selector, d.DefaultCount, d.Logger))
			sr.Post("/", SelectHandler(d.Selector, d.DefaultCount, d.Logger))
			sr.Post("/export", ExportHandler(d.Selector, d.DefaultCount, d.Logger))
		})
	})

	return r
}
