package memory

import (
	"context"
	"sync"

	"salary-benchmark-lab/internal/domain"
	"salary-benchmark-lab/internal/storage"
)

// PositionStore is an in-memory implementation of storage.PositionStore.
// Insertion order is preserved; GetAll returns positions in creation order.
type PositionStore struct {
	mu    sync.RWMutex
	data  map[string]*domain.TargetPosition // keyed by position_id
	order []string                          // position_ids in insertion order
}

// NewPositionStore creates a new in-memory position store.
func NewPositionStore() *PositionStore {
	return &PositionStore{
		data: make(map[string]*domain.TargetPosition),
	}
}

// Insert adds a new position. Returns ErrDuplicateKey if position_id exists.
func (s *PositionStore) Insert(_ context.Context, p *domain.TargetPosition) error {
	if p == nil || p.PositionID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[p.PositionID]; exists {
		return storage.ErrDuplicateKey
	}

	s.data[p.PositionID] = copyPosition(p)
	s.order = append(s.order, p.PositionID)
	return nil
}

// GetByID retrieves a position by its ID. Returns ErrNotFound if not exists.
func (s *PositionStore) GetByID(_ context.Context, positionID string) (*domain.TargetPosition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.data[positionID]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return copyPosition(p), nil
}

// GetAll retrieves all positions in creation order.
func (s *PositionStore) GetAll(_ context.Context) ([]*domain.TargetPosition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.TargetPosition, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, copyPosition(s.data[id]))
	}
	return result, nil
}

// copyPosition returns a deep copy to prevent external mutation.
func copyPosition(p *domain.TargetPosition) *domain.TargetPosition {
	positionCopy := *p
	positionCopy.Keywords = append([]string(nil), p.Keywords...)
	positionCopy.Competitors = append([]string(nil), p.Competitors...)
	return &positionCopy
}

// Verify interface compliance at compile time.
var _ storage.PositionStore = (*PositionStore)(nil)
