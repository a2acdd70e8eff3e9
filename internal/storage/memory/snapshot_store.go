package memory

import (
	"context"
	"sort"
	"sync"

	"salary-benchmark-lab/internal/domain"
	"salary-benchmark-lab/internal/storage"
)

// SnapshotStore is an in-memory implementation of storage.SnapshotStore.
type SnapshotStore struct {
	mu   sync.RWMutex
	data []*domain.BenchmarkSnapshot
}

// NewSnapshotStore creates a new in-memory snapshot store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Insert adds a new snapshot.
func (s *SnapshotStore) Insert(_ context.Context, snap *domain.BenchmarkSnapshot) error {
	if snap == nil || snap.PositionID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapCopy := *snap
	s.data = append(s.data, &snapCopy)
	return nil
}

// InsertBulk adds multiple snapshots.
func (s *SnapshotStore) InsertBulk(ctx context.Context, snapshots []*domain.BenchmarkSnapshot) error {
	for _, snap := range snapshots {
		if snap == nil || snap.PositionID == "" {
			return storage.ErrInvalidInput
		}
	}
	for _, snap := range snapshots {
		if err := s.Insert(ctx, snap); err != nil {
			return err
		}
	}
	return nil
}

// GetByPositionID retrieves all snapshots for a position, ordered by computed_at ASC.
func (s *SnapshotStore) GetByPositionID(_ context.Context, positionID string) ([]*domain.BenchmarkSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.BenchmarkSnapshot
	for _, snap := range s.data {
		if snap.PositionID == positionID {
			snapCopy := *snap
			result = append(result, &snapCopy)
		}
	}
	sortSnapshots(result)
	return result, nil
}

// GetAll retrieves all snapshots, ordered by computed_at ASC, position_id ASC.
func (s *SnapshotStore) GetAll(_ context.Context) ([]*domain.BenchmarkSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.BenchmarkSnapshot, 0, len(s.data))
	for _, snap := range s.data {
		snapCopy := *snap
		result = append(result, &snapCopy)
	}
	sortSnapshots(result)
	return result, nil
}

// sortSnapshots orders snapshots deterministically by computed_at ASC, position_id ASC.
func sortSnapshots(snapshots []*domain.BenchmarkSnapshot) {
	sort.Slice(snapshots, func(i, j int) bool {
		if snapshots[i].ComputedAt != snapshots[j].ComputedAt {
			return snapshots[i].ComputedAt < snapshots[j].ComputedAt
		}
		return snapshots[i].PositionID < snapshots[j].PositionID
	})
}

// Verify interface compliance at compile time.
var _ storage.SnapshotStore = (*SnapshotStore)(nil)
