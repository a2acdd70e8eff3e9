package domain

// FilterMode restricts which companies count toward a position's statistics.
type FilterMode string

const (
	// FilterAll applies no company restriction.
	FilterAll FilterMode = "ALL"
	// FilterOnlyCompetitors keeps only competitor-tagged postings.
	FilterOnlyCompetitors FilterMode = "ONLY_COMPETITORS"
	// FilterCustom keeps only postings whose company is in an explicit allow-set.
	FilterCustom FilterMode = "CUSTOM"
)

// String returns the string representation of FilterMode.
func (m FilterMode) String() string {
	return string(m)
}

// IsValid checks if the mode is a valid value.
func (m FilterMode) IsValid() bool {
	return m == FilterAll || m == FilterOnlyCompetitors || m == FilterCustom
}

// PositionFilter is a per-position, caller-controlled view into the posting
// collection. SelectedCompanies is meaningful only when Mode is CUSTOM; an
// empty CUSTOM selection means "show nothing", which is distinct from ALL.
// Filters are passed by value on every pipeline run and never persisted.
type PositionFilter struct {
	Mode              FilterMode
	SelectedCompanies []string
}

// DefaultFilter is the filter applied when a position has no explicit one.
func DefaultFilter() PositionFilter {
	return PositionFilter{Mode: FilterAll}
}
