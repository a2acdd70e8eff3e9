package reporting

import "time"

// Report represents the benchmark report structure.
type Report struct {
	// Metadata
	GeneratedAt   time.Time
	PositionCount int

	// Filters the report was generated under
	LocationFilter []string
	NameSearch     string

	// Collection Summary
	Summary SummarySection

	// Per-position salary rows (position creation order)
	PositionRows []PositionRow
}

// SummarySection describes the posting collection behind the report.
type SummarySection struct {
	ValidSamples  int // postings surviving all filters across positions
	TotalPostings int // everything ever collected
}

// PositionRow represents one row in the position benchmark table.
type PositionRow struct {
	PositionID   string
	PositionName string
	Category     string
	SampleSize   int

	MonthlyMin float64
	MonthlyP25 float64
	MonthlyP50 float64
	MonthlyP75 float64
	MonthlyMax float64

	YearlyMin float64
	YearlyP25 float64
	YearlyP50 float64
	YearlyP75 float64
	YearlyMax float64

	AvailableCompanies []string
}
