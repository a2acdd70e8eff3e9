package domain

// SalaryStats is an immutable five-number-plus-count summary of a salary
// sample. When SampleSize is 0 every numeric field is 0 by convention;
// an empty sample is a defined state, not an error.
type SalaryStats struct {
	Min        float64
	P25        float64
	P50        float64
	P75        float64
	Max        float64
	SampleSize int
}

// IsZero reports whether the stats describe an empty sample.
func (s SalaryStats) IsZero() bool {
	return s.SampleSize == 0
}
