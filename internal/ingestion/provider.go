package ingestion

import (
	"context"
	"fmt"

	"salary-benchmark-lab/internal/domain"
)

// RawPosting is an untyped external record produced by an acquisition
// provider. It mirrors JobPosting minus the fields the ingestion boundary
// derives (posting_id, position_id, is_competitor). Field presence is not
// guaranteed; the normalizer validates and substitutes defaults.
type RawPosting struct {
	ExternalJobTitle string   `json:"external_job_title"`
	CompanyName      string   `json:"company_name"`
	Location         string   `json:"location"`
	MinMonthlySalary float64  `json:"min_monthly_salary"`
	MaxMonthlySalary float64  `json:"max_monthly_salary"`
	MonthsPerYear    int      `json:"months_per_year"`
	Benefits         []string `json:"benefits"`
	Source           string   `json:"source"`
	Link             string   `json:"link"`
}

// PostingProvider acquires raw job-market postings for a target position.
// Implementations are opaque to the core: generated, replayed, or fed from
// an external transport, the resulting records are all ordinary postings.
type PostingProvider interface {
	// FetchPostings returns raw postings for the given position.
	// Transport or parse failures surface as *ProviderError.
	FetchPostings(ctx context.Context, pos *domain.TargetPosition) ([]RawPosting, error)
}

// ProviderError reports a failed or malformed acquisition call. The caller
// decides the fallback policy; the core ingests whatever records the caller
// supplies afterwards, making no real-vs-fallback distinction.
type ProviderError struct {
	PositionID string
	Err        error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider failed for position %s: %v", e.PositionID, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ProviderError) Unwrap() error {
	return e.Err
}
