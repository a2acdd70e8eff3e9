package storage

import (
	"context"

	"salary-benchmark-lab/internal/domain"
)

// PositionStore provides access to target_positions storage.
// Positions are append-only: created at startup or by user action,
// never mutated or deleted.
type PositionStore interface {
	// Insert adds a new position. Returns ErrDuplicateKey if position_id exists.
	Insert(ctx context.Context, p *domain.TargetPosition) error

	// GetByID retrieves a position by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, positionID string) (*domain.TargetPosition, error)

	// GetAll retrieves all positions in creation order. This order defines
	// the sequence in which the aggregation pipeline emits results.
	GetAll(ctx context.Context) ([]*domain.TargetPosition, error)
}

// PostingStore provides access to job_postings storage.
// Postings are append-only and immutable.
type PostingStore interface {
	// Insert adds a new posting. Returns ErrDuplicateKey if posting_id exists.
	Insert(ctx context.Context, p *domain.JobPosting) error

	// InsertBulk adds multiple postings atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, postings []*domain.JobPosting) error

	// GetByPositionID retrieves all postings for a position, ordered by
	// collected_at ASC, posting_id ASC.
	GetByPositionID(ctx context.Context, positionID string) ([]*domain.JobPosting, error)

	// GetAll retrieves all postings, ordered by collected_at ASC, posting_id ASC.
	GetAll(ctx context.Context) ([]*domain.JobPosting, error)

	// CountAll returns the size of the full unfiltered collection.
	CountAll(ctx context.Context) (int, error)

	// ExistsForPosition reports whether at least one posting exists for the position.
	ExistsForPosition(ctx context.Context, positionID string) (bool, error)
}

// SnapshotStore provides access to benchmark_snapshots storage.
// Snapshots are append-only history of computed benchmarks.
type SnapshotStore interface {
	// Insert adds a new snapshot.
	Insert(ctx context.Context, s *domain.BenchmarkSnapshot) error

	// InsertBulk adds multiple snapshots.
	InsertBulk(ctx context.Context, snapshots []*domain.BenchmarkSnapshot) error

	// GetByPositionID retrieves all snapshots for a position, ordered by computed_at ASC.
	GetByPositionID(ctx context.Context, positionID string) ([]*domain.BenchmarkSnapshot, error)

	// GetAll retrieves all snapshots, ordered by computed_at ASC, position_id ASC.
	GetAll(ctx context.Context) ([]*domain.BenchmarkSnapshot, error)
}
