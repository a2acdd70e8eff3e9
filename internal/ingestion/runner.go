package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"salary-benchmark-lab/internal/domain"
	"salary-benchmark-lab/internal/observability"
	"salary-benchmark-lab/internal/storage"
)

// RunnerOptions configures an ingestion runner.
type RunnerOptions struct {
	Provider      PostingProvider
	PositionStore storage.PositionStore
	PostingStore  storage.PostingStore
	Logger        *log.Logger

	// Now supplies collection timestamps; defaults to wall clock.
	Now func() time.Time
}

// Runner sweeps all target positions through the provider, one position at
// a time, normalizing and appending the results. Provider calls are never
// issued concurrently: the owning application is responsible for sequencing
// acquisition, and a failed position never aborts the rest of the sweep.
type Runner struct {
	provider      PostingProvider
	positionStore storage.PositionStore
	postingStore  storage.PostingStore
	logger        *log.Logger
	now           func() time.Time
}

// SweepResult summarizes one ingestion sweep.
type SweepResult struct {
	PositionsSwept  int
	PostingsStored  int
	RecordsRejected int // failed normalization
	DuplicatesSeen  int // already-ingested postings, skipped
	ProviderErrors  int
}

// NewRunner creates a new ingestion runner.
func NewRunner(opts RunnerOptions) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Runner{
		provider:      opts.Provider,
		positionStore: opts.PositionStore,
		postingStore:  opts.PostingStore,
		logger:        logger,
		now:           now,
	}
}

// Sweep fetches postings for every stored position and appends them to the
// posting store. Returns an error only on store failure; provider failures
// are counted and logged.
func (r *Runner) Sweep(ctx context.Context) (*SweepResult, error) {
	positions, err := r.positionStore.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load positions: %w", err)
	}

	result := &SweepResult{}
	for _, pos := range positions {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := r.sweepPosition(ctx, pos, result); err != nil {
			return result, err
		}
		result.PositionsSwept++
	}
	return result, nil
}

// IngestRaw normalizes and stores raw postings for a single position.
// Used by the sweep loop and by push-style feeds.
func (r *Runner) IngestRaw(ctx context.Context, pos *domain.TargetPosition, raws []RawPosting, result *SweepResult) error {
	collectedAt := r.now().UnixMilli()

	for _, raw := range raws {
		posting, err := NormalizePosting(pos, raw, collectedAt)
		if err != nil {
			result.RecordsRejected++
			observability.RecordPostingRejected()
			continue
		}

		if err := r.postingStore.Insert(ctx, posting); err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				result.DuplicatesSeen++
				continue
			}
			return fmt.Errorf("store posting %s: %w", posting.PostingID, err)
		}
		result.PostingsStored++
		observability.RecordPostingStored(posting.IsCompetitor)
	}
	return nil
}

// sweepPosition fetches and ingests one position's postings.
func (r *Runner) sweepPosition(ctx context.Context, pos *domain.TargetPosition, result *SweepResult) error {
	start := time.Now()
	raws, err := r.provider.FetchPostings(ctx, pos)
	observability.RecordProviderCall(time.Since(start).Seconds(), err)
	if err != nil {
		// Provider failure is local to the position; the sweep continues.
		result.ProviderErrors++
		r.logger.Printf("provider failed for position %s (%s): %v", pos.PositionID, pos.Name, err)
		return nil
	}

	return r.IngestRaw(ctx, pos, raws, result)
}
