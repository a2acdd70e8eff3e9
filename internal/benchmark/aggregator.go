// Package benchmark turns the flat posting collection into per-position
// salary distributions. The pipeline is stateless over whatever snapshot
// the stores hold: callers re-run it on every filter change.
package benchmark

import (
	"context"
	"fmt"

	"salary-benchmark-lab/internal/domain"
	"salary-benchmark-lab/internal/stats"
	"salary-benchmark-lab/internal/storage"
)

// Request describes one pipeline run. All filters are passed by value;
// nothing in the request aliases caller state.
type Request struct {
	// LocationFilter keeps postings whose location contains at least one
	// entry as a substring. Empty means no location restriction.
	LocationFilter []string

	// Filters maps position_id to its company filter. Positions without
	// an entry get the default ALL filter.
	Filters map[string]domain.PositionFilter

	// NameSearch drops positions whose name does not contain the term
	// (case-insensitive). Applied after the has-postings visibility rule.
	NameSearch string
}

// Aggregator computes salary benchmarks from stored positions and postings.
type Aggregator struct {
	positionStore storage.PositionStore
	postingStore  storage.PostingStore
}

// NewAggregator creates a new benchmark aggregator.
func NewAggregator(positionStore storage.PositionStore, postingStore storage.PostingStore) *Aggregator {
	return &Aggregator{
		positionStore: positionStore,
		postingStore:  postingStore,
	}
}

// Run executes the pipeline over the current store contents.
// Results follow position creation order. The only failure source is
// store access; the filtering and statistics themselves are total.
func (a *Aggregator) Run(ctx context.Context, req Request) ([]domain.BenchmarkResult, domain.BenchmarkSummary, error) {
	positions, err := a.positionStore.GetAll(ctx)
	if err != nil {
		return nil, domain.BenchmarkSummary{}, fmt.Errorf("load positions: %w", err)
	}

	total, err := a.postingStore.CountAll(ctx)
	if err != nil {
		return nil, domain.BenchmarkSummary{}, fmt.Errorf("count postings: %w", err)
	}

	results := make([]domain.BenchmarkResult, 0, len(positions))
	validSamples := 0

	for _, pos := range positions {
		raw, err := a.postingStore.GetByPositionID(ctx, pos.PositionID)
		if err != nil {
			return nil, domain.BenchmarkSummary{}, fmt.Errorf("load postings for %s: %w", pos.PositionID, err)
		}

		// Visibility rule: a position with no postings anywhere is hidden
		// entirely. "Collected but filtered to zero" is shown instead, so
		// the caller can tell the two states apart.
		if len(raw) == 0 {
			continue
		}
		if !matchesNameSearch(pos.Name, req.NameSearch) {
			continue
		}

		filter := domain.DefaultFilter()
		if f, ok := req.Filters[pos.PositionID]; ok {
			filter = f
		}

		result := aggregatePosition(pos, raw, req.LocationFilter, filter)
		validSamples += result.SampleSize
		results = append(results, result)
	}

	summary := domain.BenchmarkSummary{
		ValidSamples:  validSamples,
		TotalPostings: total,
	}
	return results, summary, nil
}

// aggregatePosition runs steps 2-7 of the pipeline for a single position.
// Pure; raw must already be scoped to the position.
func aggregatePosition(
	pos *domain.TargetPosition,
	raw []*domain.JobPosting,
	locationFilter []string,
	filter domain.PositionFilter,
) domain.BenchmarkResult {
	afterLocation := filterByLocation(raw, locationFilter)
	surviving := applyPositionFilter(afterLocation, filter)

	monthlySample, yearlySample := deriveSamples(surviving)

	return domain.BenchmarkResult{
		Position:           *pos,
		Monthly:            stats.ComputeStats(monthlySample),
		Yearly:             stats.ComputeStats(yearlySample),
		SampleSize:         len(surviving),
		AvailableCompanies: availableCompanies(afterLocation),
	}
}
