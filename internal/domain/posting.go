package domain

// JobPosting represents one observed or generated job-market data point.
// Postings are append-only and immutable after creation.
// Corresponds to job_postings table in PostgreSQL.
type JobPosting struct {
	PostingID        string   // PRIMARY KEY, deterministic hash
	PositionID       string   // owning TargetPosition
	ExternalJobTitle string   // title as published by the source
	CompanyName      string   // publishing company
	Location         string   // free-form location string
	MinMonthlySalary float64  // lower salary bound; min <= max expected, not enforced
	MaxMonthlySalary float64  // upper salary bound
	MonthsPerYear    int      // salary months per year, typically 12-16
	Benefits         []string // listed benefits
	Source           string   // provenance label
	Link             string   // provenance URL
	IsCompetitor     bool     // derived at ingestion from the owning position's competitor list
	CollectedAt      int64    // Unix timestamp in milliseconds
}

// MeanMonthlySalary returns the midpoint of the posting's salary range.
// This is the posting's contribution to the monthly sample.
func (p *JobPosting) MeanMonthlySalary() float64 {
	return (p.MinMonthlySalary + p.MaxMonthlySalary) / 2
}

// YearlySalary returns the annualized midpoint salary.
func (p *JobPosting) YearlySalary() float64 {
	return p.MeanMonthlySalary() * float64(p.MonthsPerYear)
}
