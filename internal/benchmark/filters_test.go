package benchmark

import (
	"reflect"
	"testing"

	"salary-benchmark-lab/internal/domain"
)

func TestFilterByLocation_EmptyFilterKeepsAll(t *testing.T) {
	postings := []*domain.JobPosting{
		{PostingID: "p1", Location: "Berlin"},
		{PostingID: "p2", Location: "Munich"},
	}

	got := filterByLocation(postings, nil)
	if len(got) != 2 {
		t.Errorf("expected all postings kept, got %d", len(got))
	}
}

func TestFilterByLocation_SubstringMatch(t *testing.T) {
	postings := []*domain.JobPosting{
		{PostingID: "p1", Location: "Berlin, Germany"},
		{PostingID: "p2", Location: "Munich, Germany"},
		{PostingID: "p3", Location: "Remote (Berlin preferred)"},
	}

	got := filterByLocation(postings, []string{"Berlin"})
	if len(got) != 2 {
		t.Fatalf("expected 2 postings, got %d", len(got))
	}
	if got[0].PostingID != "p1" || got[1].PostingID != "p3" {
		t.Errorf("wrong postings kept: %s, %s", got[0].PostingID, got[1].PostingID)
	}
}

func TestFilterByLocation_MultipleEntriesUnion(t *testing.T) {
	postings := []*domain.JobPosting{
		{PostingID: "p1", Location: "Berlin"},
		{PostingID: "p2", Location: "Munich"},
		{PostingID: "p3", Location: "Hamburg"},
	}

	got := filterByLocation(postings, []string{"Berlin", "Hamburg"})
	if len(got) != 2 {
		t.Errorf("expected 2 postings, got %d", len(got))
	}
}

func TestFilterByLocation_NoMatchYieldsEmpty(t *testing.T) {
	postings := []*domain.JobPosting{{PostingID: "p1", Location: "Berlin"}}

	got := filterByLocation(postings, []string{"Tokyo"})
	if len(got) != 0 {
		t.Errorf("expected no postings, got %d", len(got))
	}
}

func TestApplyPositionFilter_All(t *testing.T) {
	postings := []*domain.JobPosting{
		{PostingID: "p1", IsCompetitor: true},
		{PostingID: "p2", IsCompetitor: false},
	}

	got := applyPositionFilter(postings, domain.PositionFilter{Mode: domain.FilterAll})
	if len(got) != 2 {
		t.Errorf("ALL filter must not restrict, got %d postings", len(got))
	}
}

func TestApplyPositionFilter_OnlyCompetitors(t *testing.T) {
	postings := []*domain.JobPosting{
		{PostingID: "p1", IsCompetitor: true},
		{PostingID: "p2", IsCompetitor: false},
		{PostingID: "p3", IsCompetitor: true},
	}

	got := applyPositionFilter(postings, domain.PositionFilter{Mode: domain.FilterOnlyCompetitors})
	if len(got) != 2 {
		t.Fatalf("expected 2 competitor postings, got %d", len(got))
	}
	for _, p := range got {
		if !p.IsCompetitor {
			t.Errorf("non-competitor posting %s survived", p.PostingID)
		}
	}
}

func TestApplyPositionFilter_CustomExactMatch(t *testing.T) {
	postings := []*domain.JobPosting{
		{PostingID: "p1", CompanyName: "Acme"},
		{PostingID: "p2", CompanyName: "Acme Corp"}, // exact match only, no substring
		{PostingID: "p3", CompanyName: "Globex"},
	}

	got := applyPositionFilter(postings, domain.PositionFilter{
		Mode:              domain.FilterCustom,
		SelectedCompanies: []string{"Acme"},
	})
	if len(got) != 1 || got[0].PostingID != "p1" {
		t.Errorf("CUSTOM filter must match company names exactly, got %d postings", len(got))
	}
}

func TestApplyPositionFilter_CustomEmptySelectionKeepsNothing(t *testing.T) {
	postings := []*domain.JobPosting{
		{PostingID: "p1", CompanyName: "Acme"},
		{PostingID: "p2", CompanyName: "Globex"},
	}

	got := applyPositionFilter(postings, domain.PositionFilter{Mode: domain.FilterCustom})
	if len(got) != 0 {
		t.Errorf("empty CUSTOM selection means show nothing, got %d postings", len(got))
	}
}

func TestDeriveSamples(t *testing.T) {
	postings := []*domain.JobPosting{
		{MinMonthlySalary: 10000, MaxMonthlySalary: 20000, MonthsPerYear: 13},
		{MinMonthlySalary: 4000, MaxMonthlySalary: 6000, MonthsPerYear: 12},
	}

	monthly, yearly := deriveSamples(postings)

	wantMonthly := []float64{15000, 5000}
	wantYearly := []float64{195000, 60000}
	if !reflect.DeepEqual(monthly, wantMonthly) {
		t.Errorf("monthly sample mismatch: got %v, want %v", monthly, wantMonthly)
	}
	if !reflect.DeepEqual(yearly, wantYearly) {
		t.Errorf("yearly sample mismatch: got %v, want %v", yearly, wantYearly)
	}
}

func TestDeriveSamples_Empty(t *testing.T) {
	monthly, yearly := deriveSamples(nil)
	if monthly != nil || yearly != nil {
		t.Errorf("expected nil samples for no postings, got %v, %v", monthly, yearly)
	}
}

func TestAvailableCompanies_DistinctSorted(t *testing.T) {
	postings := []*domain.JobPosting{
		{CompanyName: "Globex"},
		{CompanyName: "Acme"},
		{CompanyName: "Globex"},
		{CompanyName: "Initech"},
	}

	got := availableCompanies(postings)
	want := []string{"Acme", "Globex", "Initech"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestMatchesNameSearch(t *testing.T) {
	cases := []struct {
		name, term string
		want       bool
	}{
		{"Backend Engineer", "", true},
		{"Backend Engineer", "backend", true},
		{"Backend Engineer", "ENGINEER", true},
		{"Backend Engineer", "frontend", false},
	}

	for _, c := range cases {
		if got := matchesNameSearch(c.name, c.term); got != c.want {
			t.Errorf("matchesNameSearch(%q, %q) = %v, want %v", c.name, c.term, got, c.want)
		}
	}
}
