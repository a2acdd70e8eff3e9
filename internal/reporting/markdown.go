package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Salary Benchmark Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Positions: %d\n\n", r.PositionCount))

	// Active filters
	if len(r.LocationFilter) > 0 || r.NameSearch != "" {
		sb.WriteString("## Filters\n\n")
		if len(r.LocationFilter) > 0 {
			sb.WriteString(fmt.Sprintf("Locations: %s\n\n", strings.Join(r.LocationFilter, ", ")))
		}
		if r.NameSearch != "" {
			sb.WriteString(fmt.Sprintf("Name search: %q\n\n", r.NameSearch))
		}
	}

	// Collection Summary
	sb.WriteString("## Collection Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Valid Samples | %d |\n", r.Summary.ValidSamples))
	sb.WriteString(fmt.Sprintf("| Total Postings Collected | %d |\n", r.Summary.TotalPostings))
	sb.WriteString("\n")

	// Monthly distributions
	sb.WriteString("## Monthly Salary\n\n")
	if len(r.PositionRows) > 0 {
		sb.WriteString("| Position | Category | Samples | Min | P25 | P50 | P75 | Max |\n")
		sb.WriteString("|----------|----------|---------|-----|-----|-----|-----|-----|\n")
		for _, row := range r.PositionRows {
			sb.WriteString(fmt.Sprintf("| %s | %s | %d | %.2f | %.2f | %.2f | %.2f | %.2f |\n",
				row.PositionName, row.Category, row.SampleSize,
				row.MonthlyMin, row.MonthlyP25, row.MonthlyP50, row.MonthlyP75, row.MonthlyMax))
		}
	} else {
		sb.WriteString("No positions with collected postings.\n")
	}
	sb.WriteString("\n")

	// Yearly distributions
	sb.WriteString("## Yearly Salary\n\n")
	if len(r.PositionRows) > 0 {
		sb.WriteString("| Position | Category | Samples | Min | P25 | P50 | P75 | Max |\n")
		sb.WriteString("|----------|----------|---------|-----|-----|-----|-----|-----|\n")
		for _, row := range r.PositionRows {
			sb.WriteString(fmt.Sprintf("| %s | %s | %d | %.2f | %.2f | %.2f | %.2f | %.2f |\n",
				row.PositionName, row.Category, row.SampleSize,
				row.YearlyMin, row.YearlyP25, row.YearlyP50, row.YearlyP75, row.YearlyMax))
		}
	} else {
		sb.WriteString("No positions with collected postings.\n")
	}
	sb.WriteString("\n")

	// Companies behind each position
	sb.WriteString("## Available Companies\n\n")
	if len(r.PositionRows) > 0 {
		sb.WriteString("| Position | Companies |\n")
		sb.WriteString("|----------|----------|\n")
		for _, row := range r.PositionRows {
			companies := strings.Join(row.AvailableCompanies, ", ")
			if companies == "" {
				companies = "-"
			}
			sb.WriteString(fmt.Sprintf("| %s | %s |\n", row.PositionName, companies))
		}
	} else {
		sb.WriteString("No companies available.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}
