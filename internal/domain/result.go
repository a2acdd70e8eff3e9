package domain

// BenchmarkResult is the per-position output of the aggregation pipeline.
// A position is emitted only if it has at least one posting anywhere in the
// collection; "collected but filtered to zero" yields SampleSize 0 with
// zero-valued stats, distinguishing it from "never collected" (absent).
type BenchmarkResult struct {
	Position TargetPosition
	Monthly  SalaryStats
	Yearly   SalaryStats

	// SampleSize is the number of postings surviving both the location
	// filter and the position's company filter.
	SampleSize int

	// AvailableCompanies lists the distinct companies surviving the
	// location filter only, sorted lexicographically. It is the full
	// choice set for a CUSTOM filter even when a narrower filter is active.
	AvailableCompanies []string
}

// BenchmarkSummary reports the "valid data / total data" indicator for a
// pipeline run.
type BenchmarkSummary struct {
	// ValidSamples is the sum of SampleSize across all emitted results.
	ValidSamples int
	// TotalPostings is the size of the full unfiltered posting collection.
	TotalPostings int
}
