package ingestion

import (
	"errors"
	"strings"

	"salary-benchmark-lab/internal/domain"
	"salary-benchmark-lab/internal/idhash"
)

// DefaultSource labels postings whose provider supplied no provenance.
const DefaultSource = "provider"

// defaultMonthsPerYear substitutes for missing or non-positive values.
const defaultMonthsPerYear = 12

// Normalization rejections. Records failing these checks are dropped at the
// boundary and counted; nothing downstream ever sees them.
var (
	ErrMissingCompany  = errors.New("raw posting has no company name")
	ErrNegativeSalary  = errors.New("raw posting has a negative salary bound")
	ErrMissingPosition = errors.New("raw posting has no owning position")
)

// NormalizePosting maps an untyped external record to a fully-typed
// JobPosting owned by pos, failing closed on unusable records and
// substituting documented defaults otherwise:
//   - empty CompanyName rejects the record (competitor tagging and CUSTOM
//     filters need it);
//   - negative salary bounds reject the record (min <= max is otherwise
//     not enforced);
//   - MonthsPerYear <= 0 defaults to 12, Source defaults to "provider",
//     Benefits defaults to an empty list.
func NormalizePosting(pos *domain.TargetPosition, raw RawPosting, collectedAt int64) (*domain.JobPosting, error) {
	if pos == nil || pos.PositionID == "" {
		return nil, ErrMissingPosition
	}
	if strings.TrimSpace(raw.CompanyName) == "" {
		return nil, ErrMissingCompany
	}
	if raw.MinMonthlySalary < 0 || raw.MaxMonthlySalary < 0 {
		return nil, ErrNegativeSalary
	}

	monthsPerYear := raw.MonthsPerYear
	if monthsPerYear <= 0 {
		monthsPerYear = defaultMonthsPerYear
	}

	source := raw.Source
	if source == "" {
		source = DefaultSource
	}

	benefits := raw.Benefits
	if benefits == nil {
		benefits = []string{}
	}

	postingID := idhash.ComputePostingID(
		pos.PositionID,
		raw.CompanyName,
		raw.ExternalJobTitle,
		raw.Location,
		raw.MinMonthlySalary,
		raw.MaxMonthlySalary,
		monthsPerYear,
		source,
	)

	return &domain.JobPosting{
		PostingID:        postingID,
		PositionID:       pos.PositionID,
		ExternalJobTitle: raw.ExternalJobTitle,
		CompanyName:      raw.CompanyName,
		Location:         raw.Location,
		MinMonthlySalary: raw.MinMonthlySalary,
		MaxMonthlySalary: raw.MaxMonthlySalary,
		MonthsPerYear:    monthsPerYear,
		Benefits:         benefits,
		Source:           source,
		Link:             raw.Link,
		IsCompetitor:     IsCompetitor(raw.CompanyName, pos.Competitors),
		CollectedAt:      collectedAt,
	}, nil
}

// IsCompetitor reports whether companyName matches any competitor entry by
// case-insensitive substring match.
func IsCompetitor(companyName string, competitors []string) bool {
	lower := strings.ToLower(companyName)
	for _, c := range competitors {
		if c == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(c)) {
			return true
		}
	}
	return false
}
