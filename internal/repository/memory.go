package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/aliskhannn/mcq-bank/internal/domain/entities"
)

// MemoryStore keeps questions in process memory. It backs the JSON file store
// and serves as a standalone backend for tests and demos.
type MemoryStore struct {
	mu   sync.RWMutex
	mcqs []entities.MCQ

	// commit is called with the full record set after a mutation, while the
	// write lock is held. A non-nil error rolls the mutation back.
	commit func([]entities.MCQ) error
}

// NewMemoryStore creates a store seeded with mcqs.
func NewMemoryStore(mcqs ...entities.MCQ) *MemoryStore {
	return &MemoryStore{mcqs: append([]entities.MCQ(nil), mcqs...)}
}

// List returns a snapshot of all questions in insertion order.
func (s *MemoryStore) List(_ context.Context) ([]entities.MCQ, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.MCQ(nil), s.mcqs...), nil
}

// Create stores mcq under a fresh ID.
func (s *MemoryStore) Create(ctx context.Context, mcq *entities.MCQ) (string, error) {
	ids, err := s.CreateMany(ctx, []*entities.MCQ{mcq})
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

// CreateMany stores all mcqs or none of them.
func (s *MemoryStore) CreateMany(_ context.Context, mcqs []*entities.MCQ) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.mcqs
	next := make([]entities.MCQ, len(prev), len(prev)+len(mcqs))
	copy(next, prev)

	ids := make([]string, 0, len(mcqs))
	for _, m := range mcqs {
		rec := *m
		rec.ID = uuid.NewString()
		next = append(next, rec)
		ids = append(ids, rec.ID)
	}

	if s.commit != nil {
		if err := s.commit(next); err != nil {
			return nil, err
		}
	}
	s.mcqs = next

	return ids, nil
}

// Recent returns up to limit questions, newest first.
func (s *MemoryStore) Recent(ctx context.Context, limit int) ([]entities.MCQ, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return newestFirst(all, limit), nil
}

// newestFirst sorts mcqs by creation time descending and truncates to limit.
func newestFirst(mcqs []entities.MCQ, limit int) []entities.MCQ {
	sort.SliceStable(mcqs, func(i, j int) bool {
		return mcqs[i].CreatedAt.After(mcqs[j].CreatedAt)
	})
	if limit > 0 && len(mcqs) > limit {
		mcqs = mcqs[:limit]
	}
	return mcqs
}
