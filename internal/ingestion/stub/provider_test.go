package stub

import (
	"context"
	"testing"

	"salary-benchmark-lab/internal/domain"
)

func TestProvider_Deterministic(t *testing.T) {
	pos := &domain.TargetPosition{PositionID: "pos-1", Name: "Backend Engineer"}
	p := NewProvider(5, 42)
	ctx := context.Background()

	first, err := p.FetchPostings(ctx, pos)
	if err != nil {
		t.Fatalf("FetchPostings failed: %v", err)
	}
	again, err := p.FetchPostings(ctx, pos)
	if err != nil {
		t.Fatalf("second FetchPostings failed: %v", err)
	}

	if len(first) != 5 || len(again) != 5 {
		t.Fatalf("expected 5 postings per fetch, got %d and %d", len(first), len(again))
	}
	for i := range first {
		if first[i].CompanyName != again[i].CompanyName ||
			first[i].MinMonthlySalary != again[i].MinMonthlySalary {
			t.Errorf("posting %d differs between identical fetches", i)
		}
	}
}

func TestProvider_DifferentPositionsDifferentMarkets(t *testing.T) {
	p := NewProvider(5, 42)
	ctx := context.Background()

	a, _ := p.FetchPostings(ctx, &domain.TargetPosition{PositionID: "pos-1", Name: "Backend Engineer"})
	b, _ := p.FetchPostings(ctx, &domain.TargetPosition{PositionID: "pos-2", Name: "Data Analyst"})

	identical := true
	for i := range a {
		if a[i].MinMonthlySalary != b[i].MinMonthlySalary {
			identical = false
			break
		}
	}
	if identical {
		t.Error("two positions produced identical markets")
	}
}

func TestProvider_ValidSalaryRanges(t *testing.T) {
	p := NewProvider(20, 7)
	postings, err := p.FetchPostings(context.Background(), &domain.TargetPosition{PositionID: "pos-1", Name: "Backend Engineer"})
	if err != nil {
		t.Fatalf("FetchPostings failed: %v", err)
	}

	for i, raw := range postings {
		if raw.MinMonthlySalary <= 0 || raw.MaxMonthlySalary < raw.MinMonthlySalary {
			t.Errorf("posting %d has invalid salary range [%f, %f]", i, raw.MinMonthlySalary, raw.MaxMonthlySalary)
		}
		if raw.MonthsPerYear < 12 || raw.MonthsPerYear > 16 {
			t.Errorf("posting %d has months per year %d outside 12-16", i, raw.MonthsPerYear)
		}
		if raw.CompanyName == "" {
			t.Errorf("posting %d has no company", i)
		}
	}
}

func TestProvider_NilPosition(t *testing.T) {
	p := NewProvider(5, 42)
	_, err := p.FetchPostings(context.Background(), nil)
	if err == nil {
		t.Error("expected error for nil position")
	}
}
