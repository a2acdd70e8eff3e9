package reporting

import (
	"context"
	"strings"
	"testing"
	"time"

	"salary-benchmark-lab/internal/benchmark"
	"salary-benchmark-lab/internal/domain"
	"salary-benchmark-lab/internal/storage/memory"
)

func setupTestData(t *testing.T) (*memory.PositionStore, *memory.PostingStore) {
	t.Helper()
	ctx := context.Background()

	positionStore := memory.NewPositionStore()
	postingStore := memory.NewPostingStore()

	positions := []*domain.TargetPosition{
		{PositionID: "pos-1", Name: "Backend Engineer", Category: "Engineering", Competitors: []string{"Acme"}},
		{PositionID: "pos-2", Name: "Data Analyst", Category: "Analytics"},
		{PositionID: "pos-3", Name: "Recruiter", Category: "HR"}, // no postings, stays hidden
	}
	for _, p := range positions {
		if err := positionStore.Insert(ctx, p); err != nil {
			t.Fatalf("Insert position failed: %v", err)
		}
	}

	postings := []*domain.JobPosting{
		{PostingID: "p1", PositionID: "pos-1", CompanyName: "Acme Corp", Location: "Berlin", MinMonthlySalary: 5000, MaxMonthlySalary: 7000, MonthsPerYear: 12},
		{PostingID: "p2", PositionID: "pos-1", CompanyName: "Initech", Location: "Berlin", MinMonthlySalary: 4000, MaxMonthlySalary: 6000, MonthsPerYear: 13},
		{PostingID: "p3", PositionID: "pos-2", CompanyName: "Globex", Location: "Hamburg", MinMonthlySalary: 3500, MaxMonthlySalary: 4500, MonthsPerYear: 12},
	}
	for _, p := range postings {
		if err := postingStore.Insert(ctx, p); err != nil {
			t.Fatalf("Insert posting failed: %v", err)
		}
	}

	return positionStore, postingStore
}

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	positionStore, postingStore := setupTestData(t)
	agg := benchmark.NewAggregator(positionStore, postingStore)
	return NewGenerator(agg).WithClock(func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	})
}

func TestGenerator_Generate(t *testing.T) {
	gen := newTestGenerator(t)

	report, err := gen.Generate(context.Background(), benchmark.Request{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if report.PositionCount != 2 {
		t.Errorf("expected 2 positions (one hidden), got %d", report.PositionCount)
	}
	if report.Summary.ValidSamples != 3 || report.Summary.TotalPostings != 3 {
		t.Errorf("unexpected summary: %+v", report.Summary)
	}

	// Creation order carries through to the rows.
	if report.PositionRows[0].PositionName != "Backend Engineer" || report.PositionRows[1].PositionName != "Data Analyst" {
		t.Errorf("rows out of order: %v, %v", report.PositionRows[0].PositionName, report.PositionRows[1].PositionName)
	}

	row := report.PositionRows[0]
	if row.SampleSize != 2 {
		t.Errorf("expected 2 samples for pos-1, got %d", row.SampleSize)
	}
	// Midpoints 6000 and 5000.
	if row.MonthlyMin != 5000 || row.MonthlyMax != 6000 {
		t.Errorf("monthly range mismatch: min %.2f max %.2f", row.MonthlyMin, row.MonthlyMax)
	}
	// 6000*12 = 72000, 5000*13 = 65000.
	if row.YearlyMin != 65000 || row.YearlyMax != 72000 {
		t.Errorf("yearly range mismatch: min %.2f max %.2f", row.YearlyMin, row.YearlyMax)
	}
	if len(row.AvailableCompanies) != 2 {
		t.Errorf("expected 2 available companies, got %v", row.AvailableCompanies)
	}
}

func TestGenerator_GenerateWithLocationFilter(t *testing.T) {
	gen := newTestGenerator(t)

	report, err := gen.Generate(context.Background(), benchmark.Request{
		LocationFilter: []string{"Berlin"},
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Data Analyst is Hamburg-only: shown with zero stats, not hidden.
	if report.PositionCount != 2 {
		t.Fatalf("expected 2 rows, got %d", report.PositionCount)
	}
	analyst := report.PositionRows[1]
	if analyst.SampleSize != 0 || analyst.MonthlyP50 != 0 {
		t.Errorf("filtered-to-zero position must carry zero stats: %+v", analyst)
	}
	if report.Summary.ValidSamples != 2 {
		t.Errorf("expected 2 valid samples, got %d", report.Summary.ValidSamples)
	}
}

func TestRenderMarkdown(t *testing.T) {
	gen := newTestGenerator(t)

	report, err := gen.Generate(context.Background(), benchmark.Request{NameSearch: "engineer"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	md := RenderMarkdown(report)

	for _, want := range []string{
		"# Salary Benchmark Report",
		"Generated: 2025-06-01T12:00:00Z",
		"## Collection Summary",
		"## Monthly Salary",
		"## Yearly Salary",
		"## Available Companies",
		"Backend Engineer",
		"Name search: \"engineer\"",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
	if strings.Contains(md, "Data Analyst") {
		t.Error("name search must drop non-matching positions from the report")
	}
}

func TestRenderMarkdown_Empty(t *testing.T) {
	report := &Report{GeneratedAt: time.Unix(0, 0).UTC()}

	md := RenderMarkdown(report)
	if !strings.Contains(md, "No positions with collected postings.") {
		t.Error("empty report must say so explicitly")
	}
}

func TestRenderCSV(t *testing.T) {
	gen := newTestGenerator(t)

	report, err := gen.Generate(context.Background(), benchmark.Request{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	csvOut := RenderCSV(report.PositionRows)
	lines := strings.Split(strings.TrimRight(csvOut, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "position_id,position_name,category,sample_size,") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "Backend Engineer") {
		t.Errorf("first row should be Backend Engineer: %s", lines[1])
	}
}

func TestRenderCSV_QuotesSeparators(t *testing.T) {
	rows := []PositionRow{{
		PositionID:   "pos-1",
		PositionName: "Engineer, Backend",
		SampleSize:   1,
	}}

	csvOut := RenderCSV(rows)
	if !strings.Contains(csvOut, `"Engineer, Backend"`) {
		t.Errorf("comma-bearing field must be quoted: %s", csvOut)
	}
}
