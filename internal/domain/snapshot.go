package domain

// BenchmarkSnapshot is one persisted benchmark computation for a position.
// Snapshots are append-only history rows; re-running the pipeline with the
// same inputs produces an identical row apart from ComputedAt.
// Corresponds to benchmark_snapshots table in ClickHouse.
type BenchmarkSnapshot struct {
	PositionID   string
	PositionName string
	ComputedAt   int64 // Unix timestamp in milliseconds

	// Filter descriptors for the run that produced this snapshot.
	LocationFilter string // comma-joined location filter entries, empty if none
	FilterMode     string // ALL | ONLY_COMPETITORS | CUSTOM

	Monthly SalaryStats
	Yearly  SalaryStats

	SampleSize int
}
