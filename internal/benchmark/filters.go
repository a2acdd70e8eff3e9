package benchmark

import (
	"sort"
	"strings"

	"salary-benchmark-lab/internal/domain"
)

// filterByLocation keeps postings whose location contains at least one
// filter entry as a substring. An empty filter keeps everything.
func filterByLocation(postings []*domain.JobPosting, locationFilter []string) []*domain.JobPosting {
	if len(locationFilter) == 0 {
		return postings
	}

	var result []*domain.JobPosting
	for _, p := range postings {
		for _, loc := range locationFilter {
			if strings.Contains(p.Location, loc) {
				result = append(result, p)
				break
			}
		}
	}
	return result
}

// applyPositionFilter applies the per-position company filter.
// A CUSTOM filter with an empty selection keeps nothing: an explicit empty
// selection means "show nothing", which is distinct from ALL.
func applyPositionFilter(postings []*domain.JobPosting, filter domain.PositionFilter) []*domain.JobPosting {
	switch filter.Mode {
	case domain.FilterOnlyCompetitors:
		var result []*domain.JobPosting
		for _, p := range postings {
			if p.IsCompetitor {
				result = append(result, p)
			}
		}
		return result

	case domain.FilterCustom:
		allowed := make(map[string]struct{}, len(filter.SelectedCompanies))
		for _, c := range filter.SelectedCompanies {
			allowed[c] = struct{}{}
		}
		var result []*domain.JobPosting
		for _, p := range postings {
			if _, ok := allowed[p.CompanyName]; ok {
				result = append(result, p)
			}
		}
		return result

	default:
		return postings
	}
}

// deriveSamples extracts the monthly and annualized salary samples.
// monthly[i] is the range midpoint; yearly[i] scales it by months per year.
func deriveSamples(postings []*domain.JobPosting) (monthly, yearly []float64) {
	if len(postings) == 0 {
		return nil, nil
	}
	monthly = make([]float64, len(postings))
	yearly = make([]float64, len(postings))
	for i, p := range postings {
		monthly[i] = p.MeanMonthlySalary()
		yearly[i] = p.YearlySalary()
	}
	return monthly, yearly
}

// availableCompanies returns the distinct company names among the given
// postings, sorted lexicographically for determinism. Computed over the
// location-filtered set only, so a CUSTOM filter UI can always offer the
// full choice set.
func availableCompanies(postings []*domain.JobPosting) []string {
	seen := make(map[string]struct{})
	for _, p := range postings {
		seen[p.CompanyName] = struct{}{}
	}

	companies := make([]string, 0, len(seen))
	for c := range seen {
		companies = append(companies, c)
	}
	sort.Strings(companies)
	return companies
}

// matchesNameSearch reports whether a position name matches the search
// term via case-insensitive substring match. Empty term matches all.
func matchesNameSearch(name, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(term))
}
