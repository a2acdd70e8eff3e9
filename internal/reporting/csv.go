package reporting

import (
	"fmt"
	"strings"
)

// RenderCSV renders position benchmark rows as CSV string.
func RenderCSV(rows []PositionRow) string {
	var sb strings.Builder

	// Header
	sb.WriteString("position_id,position_name,category,sample_size,")
	sb.WriteString("monthly_min,monthly_p25,monthly_p50,monthly_p75,monthly_max,")
	sb.WriteString("yearly_min,yearly_p25,yearly_p50,yearly_p75,yearly_max,")
	sb.WriteString("available_companies\n")

	// Rows
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%d,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%s\n",
			csvField(r.PositionID),
			csvField(r.PositionName),
			csvField(r.Category),
			r.SampleSize,
			r.MonthlyMin,
			r.MonthlyP25,
			r.MonthlyP50,
			r.MonthlyP75,
			r.MonthlyMax,
			r.YearlyMin,
			r.YearlyP25,
			r.YearlyP50,
			r.YearlyP75,
			r.YearlyMax,
			csvField(strings.Join(r.AvailableCompanies, ";")),
		))
	}

	return sb.String()
}

// csvField quotes values containing separators so rows stay parseable.
func csvField(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
