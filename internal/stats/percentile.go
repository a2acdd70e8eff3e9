package stats

import (
	"math"
	"sort"

	"salary-benchmark-lab/internal/domain"
)

// ComputeStats calculates the five-number summary of a salary sample.
// The input is never mutated; every input shape, including the empty
// sample, has a defined output.
func ComputeStats(sample []float64) domain.SalaryStats {
	n := len(sample)
	if n == 0 {
		return domain.SalaryStats{}
	}

	sorted := make([]float64, n)
	copy(sorted, sample)
	sort.Float64s(sorted)

	if n == 1 {
		v := sorted[0]
		return domain.SalaryStats{Min: v, P25: v, P50: v, P75: v, Max: v, SampleSize: 1}
	}

	return domain.SalaryStats{
		Min:        sorted[0],
		P25:        percentileAt(sorted, 25),
		P50:        percentileAt(sorted, 50),
		P75:        percentileAt(sorted, 75),
		Max:        sorted[n-1],
		SampleSize: n,
	}
}

// percentileAt computes percentile p over a pre-sorted sample using linear
// interpolation on the (n+1)-scaled fractional rank. Ranks falling below
// the first or at/above the last order statistic clamp to the nearest
// element; this clamping is a stated contract, not an approximation.
func percentileAt(sorted []float64, p float64) float64 {
	n := len(sorted)

	// 1-based fractional rank
	rank := p / 100 * float64(n+1)
	k := math.Floor(rank)
	d := rank - k

	idx := int(k) - 1
	if idx < 0 {
		return sorted[0]
	}
	if idx >= n-1 {
		return sorted[n-1]
	}
	return sorted[idx] + (sorted[idx+1]-sorted[idx])*d
}
