package reporting

import (
	"context"
	"time"

	"salary-benchmark-lab/internal/benchmark"
	"salary-benchmark-lab/internal/domain"
)

// Generator produces reports from pipeline output.
type Generator struct {
	aggregator *benchmark.Aggregator
	now        func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(aggregator *benchmark.Aggregator) *Generator {
	return &Generator{
		aggregator: aggregator,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate runs the pipeline under req and builds a complete report.
func (g *Generator) Generate(ctx context.Context, req benchmark.Request) (*Report, error) {
	results, summary, err := g.aggregator.Run(ctx, req)
	if err != nil {
		return nil, err
	}

	rows := make([]PositionRow, len(results))
	for i, r := range results {
		rows[i] = buildPositionRow(r)
	}

	return &Report{
		GeneratedAt:    g.now(),
		PositionCount:  len(rows),
		LocationFilter: req.LocationFilter,
		NameSearch:     req.NameSearch,
		Summary: SummarySection{
			ValidSamples:  summary.ValidSamples,
			TotalPostings: summary.TotalPostings,
		},
		PositionRows: rows,
	}, nil
}

func buildPositionRow(r domain.BenchmarkResult) PositionRow {
	return PositionRow{
		PositionID:   r.Position.PositionID,
		PositionName: r.Position.Name,
		Category:     r.Position.Category,
		SampleSize:   r.SampleSize,

		MonthlyMin: r.Monthly.Min,
		MonthlyP25: r.Monthly.P25,
		MonthlyP50: r.Monthly.P50,
		MonthlyP75: r.Monthly.P75,
		MonthlyMax: r.Monthly.Max,

		YearlyMin: r.Yearly.Min,
		YearlyP25: r.Yearly.P25,
		YearlyP50: r.Yearly.P50,
		YearlyP75: r.Yearly.P75,
		YearlyMax: r.Yearly.Max,

		AvailableCompanies: r.AvailableCompanies,
	}
}
