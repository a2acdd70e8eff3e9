package memory

import (
	"context"
	"sort"
	"sync"

	"salary-benchmark-lab/internal/domain"
	"salary-benchmark-lab/internal/storage"
)

// PostingStore is an in-memory implementation of storage.PostingStore.
type PostingStore struct {
	mu   sync.RWMutex
	data map[string]*domain.JobPosting // keyed by posting_id
}

// NewPostingStore creates a new in-memory posting store.
func NewPostingStore() *PostingStore {
	return &PostingStore{
		data: make(map[string]*domain.JobPosting),
	}
}

// Insert adds a new posting. Returns ErrDuplicateKey if posting_id exists.
func (s *PostingStore) Insert(_ context.Context, p *domain.JobPosting) error {
	if p == nil || p.PostingID == "" || p.PositionID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[p.PostingID]; exists {
		return storage.ErrDuplicateKey
	}

	s.data[p.PostingID] = copyPosting(p)
	return nil
}

// InsertBulk adds multiple postings atomically. Fails entire batch on any duplicate.
func (s *PostingStore) InsertBulk(_ context.Context, postings []*domain.JobPosting) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate entire batch before writing anything
	seen := make(map[string]struct{}, len(postings))
	for _, p := range postings {
		if p == nil || p.PostingID == "" || p.PositionID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[p.PostingID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, dup := seen[p.PostingID]; dup {
			return storage.ErrDuplicateKey
		}
		seen[p.PostingID] = struct{}{}
	}

	for _, p := range postings {
		s.data[p.PostingID] = copyPosting(p)
	}
	return nil
}

// GetByPositionID retrieves all postings for a position, ordered by
// collected_at ASC, posting_id ASC.
func (s *PostingStore) GetByPositionID(_ context.Context, positionID string) ([]*domain.JobPosting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.JobPosting
	for _, p := range s.data {
		if p.PositionID == positionID {
			result = append(result, copyPosting(p))
		}
	}
	sortPostings(result)
	return result, nil
}

// GetAll retrieves all postings, ordered by collected_at ASC, posting_id ASC.
func (s *PostingStore) GetAll(_ context.Context) ([]*domain.JobPosting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.JobPosting, 0, len(s.data))
	for _, p := range s.data {
		result = append(result, copyPosting(p))
	}
	sortPostings(result)
	return result, nil
}

// CountAll returns the size of the full unfiltered collection.
func (s *PostingStore) CountAll(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.data), nil
}

// ExistsForPosition reports whether at least one posting exists for the position.
func (s *PostingStore) ExistsForPosition(_ context.Context, positionID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.data {
		if p.PositionID == positionID {
			return true, nil
		}
	}
	return false, nil
}

// sortPostings orders postings deterministically by collected_at ASC, posting_id ASC.
func sortPostings(postings []*domain.JobPosting) {
	sort.Slice(postings, func(i, j int) bool {
		if postings[i].CollectedAt != postings[j].CollectedAt {
			return postings[i].CollectedAt < postings[j].CollectedAt
		}
		return postings[i].PostingID < postings[j].PostingID
	})
}

// copyPosting returns a deep copy to prevent external mutation.
func copyPosting(p *domain.JobPosting) *domain.JobPosting {
	postingCopy := *p
	postingCopy.Benefits = append([]string(nil), p.Benefits...)
	return &postingCopy
}

// Verify interface compliance at compile time.
var _ storage.PostingStore = (*PostingStore)(nil)
