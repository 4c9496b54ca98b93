package storage

import (
	"sync"

	"github.com/aliskhannn/mcq-bank/internal/domain/entities"
	"github.com/aliskhannn/mcq-bank/internal/service"
)

// SelectionStorage keeps the last selection made in each chat so it can be
// repeated, exported or have its solutions revealed.
type SelectionStorage struct {
	mu         sync.RWMutex
	selections map[int64]*entities.Selection
	requests   map[int64]service.SelectionRequest
}

// NewSelectionStorage creates a new SelectionStorage.
func NewSelectionStorage() *SelectionStorage {
	return &SelectionStorage{
		selections: make(map[int64]*entities.Selection),
		requests:   make(map[int64]service.SelectionRequest),
	}
}

// Store saves sel and the request that produced it for chatID.
func (s *SelectionStorage) Store(chatID int64, req service.SelectionRequest, sel *entities.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selections[chatID] = sel
	s.requests[chatID] = req
}

// Get returns the last selection for chatID, or nil.
func (s *SelectionStorage) Get(chatID int64) *entities.Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selections[chatID]
}

// Request returns the request behind the last selection for chatID.
func (s *SelectionStorage) Request(chatID int64) (service.SelectionRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	req, ok := s.requests[chatID]
	return req, ok
}

// Delete forgets the selection for chatID.
func (s *SelectionStorage) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selections, chatID)
	delete(s.requests, chatID)
}
