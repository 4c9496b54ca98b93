package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/mcq-bank/internal/domain/entities"
)

// SelectionRequest asks for Count random questions matching Filter.
type SelectionRequest struct {
	Filter entities.FilterSpec `json:"filter"`
	Count  int                 `json:"count"`
}

// QuestionSelector implements random question selection over a record source.
type QuestionSelector struct {
	source     RecordSource
	sourceName string
	logger     *zap.Logger

	mu      sync.Mutex
	sampler *Sampler

	now func() time.Time
}

// NewQuestionSelector creates a new QuestionSelector. sourceName is reported in
// selections and exports.
func NewQuestionSelector(source RecordSource, sourceName string, seed int64, logger *zap.Logger) *QuestionSelector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuestionSelector{
		source:     source,
		sourceName: sourceName,
		logger:     logger,
		sampler:    NewSampler(seed),
		now:        time.Now,
	}
}

// Select filters the stored questions and draws req.Count of them at random.
// An empty or short pool is reported on the Selection, not as an error.
func (s *QuestionSelector) Select(ctx context.Context, req SelectionRequest) (*entities.Selection, error) {
	if req.Count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive, got %d", ErrInvalidRequest, req.Count)
	}

	filter := req.Filter.Normalize()

	matched, err := s.Match(ctx, filter)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	sample, err := s.sampler.Sample(matched, req.Count)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.logger.Debug("questions selected",
		zap.Int("requested", req.Count),
		zap.Int("available", len(matched)),
		zap.Int("selected", len(sample.Questions)),
		zap.Bool("partial", sample.Partial),
	)

	return &entities.Selection{
		Filter:      filter,
		Requested:   req.Count,
		Available:   len(matched),
		Questions:   sample.Questions,
		Partial:     sample.Partial,
		NoMatches:   sample.NoMatches,
		GeneratedAt: s.now().UTC(),
		Source:      s.sourceName,
	}, nil
}

// Match returns every stored question matching filter in storage order.
func (s *QuestionSelector) Match(ctx context.Context, filter entities.FilterSpec) ([]entities.MCQ, error) {
	candidates, err := s.fetch(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return FilterRecords(candidates, filter), nil
}

// fetch pushes the filter down to the backend when it supports queries.
func (s *QuestionSelector) fetch(ctx context.Context, filter entities.FilterSpec) ([]entities.MCQ, error) {
	if q, ok := s.source.(RecordQuerier); ok && !filter.IsEmpty() {
		return q.Query(ctx, filter)
	}
	return s.source.List(ctx)
}
