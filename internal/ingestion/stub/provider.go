// Package stub provides a deterministic posting provider that simulates a
// job market. It stands in for the external acquisition component in tests
// and local runs; the core treats its output as ordinary postings.
package stub

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"

	"salary-benchmark-lab/internal/domain"
	"salary-benchmark-lab/internal/ingestion"
)

// Companies postings are attributed to. Competitor tagging happens at the
// ingestion boundary, so the generator does not need to know a position's
// competitor list.
var companyPool = []string{
	"Acme Corp", "Globex", "Initech", "Umbrella Labs", "Stark Industries",
	"Wayne Enterprises", "Hooli", "Pied Piper", "Vandelay Industries", "Wonka Works",
}

var locationPool = []string{
	"Berlin, Germany", "Munich, Germany", "Hamburg, Germany",
	"Remote (EU)", "Amsterdam, Netherlands", "Vienna, Austria",
}

var benefitPool = []string{
	"health insurance", "remote work", "stock options",
	"training budget", "gym membership", "extra vacation days",
}

// Provider generates simulated postings, deterministically seeded per
// position so repeated sweeps for the same position yield the same records.
type Provider struct {
	// PostingsPerPosition is how many records each fetch returns.
	PostingsPerPosition int

	// Seed perturbs the per-position seed; two Providers with the same
	// Seed generate identical markets.
	Seed int64
}

// NewProvider creates a stub provider with the given batch size.
func NewProvider(postingsPerPosition int, seed int64) *Provider {
	if postingsPerPosition <= 0 {
		postingsPerPosition = 10
	}
	return &Provider{PostingsPerPosition: postingsPerPosition, Seed: seed}
}

// FetchPostings generates raw postings for the position.
func (p *Provider) FetchPostings(_ context.Context, pos *domain.TargetPosition) ([]ingestion.RawPosting, error) {
	if pos == nil || pos.PositionID == "" {
		return nil, &ingestion.ProviderError{PositionID: "", Err: fmt.Errorf("no position spec")}
	}

	rng := rand.New(rand.NewSource(p.Seed + positionSeed(pos.PositionID)))

	title := pos.Name
	if len(pos.Keywords) > 0 {
		title = pos.Keywords[0]
	}

	result := make([]ingestion.RawPosting, 0, p.PostingsPerPosition)
	for i := 0; i < p.PostingsPerPosition; i++ {
		// Monthly base in the 3000-11000 range, spread of up to 40%.
		base := 3000 + rng.Float64()*8000
		spread := base * (0.1 + rng.Float64()*0.3)

		months := 12
		if rng.Intn(3) == 0 {
			months = 13 + rng.Intn(4) // 13-16, bonus-month markets
		}

		result = append(result, ingestion.RawPosting{
			ExternalJobTitle: fmt.Sprintf("%s (%d)", title, i+1),
			CompanyName:      companyPool[rng.Intn(len(companyPool))],
			Location:         locationPool[rng.Intn(len(locationPool))],
			MinMonthlySalary: roundTo(base, 100),
			MaxMonthlySalary: roundTo(base+spread, 100),
			MonthsPerYear:    months,
			Benefits:         pickBenefits(rng),
			Source:           "simulated-market",
			Link:             fmt.Sprintf("https://jobs.example.com/%s/%d", pos.PositionID, i+1),
		})
	}
	return result, nil
}

// positionSeed derives a stable numeric seed from the position ID.
func positionSeed(positionID string) int64 {
	h := fnv.New64a()
	h.Write([]byte(positionID))
	return int64(h.Sum64())
}

func pickBenefits(rng *rand.Rand) []string {
	n := rng.Intn(4)
	benefits := make([]string, 0, n)
	for i := 0; i < n; i++ {
		benefits = append(benefits, benefitPool[rng.Intn(len(benefitPool))])
	}
	return benefits
}

func roundTo(v, step float64) float64 {
	return float64(int(v/step)) * step
}

// Verify interface compliance at compile time.
var _ ingestion.PostingProvider = (*Provider)(nil)
