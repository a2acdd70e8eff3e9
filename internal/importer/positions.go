// Package importer reads target-position definitions from tabular files.
// It is a pure format adapter: unusable rows are dropped and counted here,
// never surfaced to the core as errors.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"salary-benchmark-lab/internal/domain"
	"salary-benchmark-lab/internal/idhash"
)

// Result summarizes one import.
type Result struct {
	Positions    []*domain.TargetPosition
	RowsRead     int
	RowsRejected int // rows missing both name and responsibilities
}

// Column-name aliases, matched case-insensitively after trimming.
var (
	nameColumns             = []string{"name", "position", "position name", "role", "title"}
	categoryColumns         = []string{"category", "department", "group"}
	responsibilitiesColumns = []string{"responsibilities", "duties", "description"}
	keywordsColumns         = []string{"keywords", "search terms", "terms"}
	competitorsColumns      = []string{"competitors", "competitor companies", "companies"}
)

// ReadPositions parses CSV data into target positions. The header row is
// matched flexibly against known column aliases; unknown columns are
// ignored. Rows missing both a name and responsibilities are dropped
// silently and reported in the rejected count.
func ReadPositions(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return &Result{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := mapColumns(header)
	result := &Result{}
	now := time.Now().UnixMilli()

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", result.RowsRead+1, err)
		}
		result.RowsRead++

		name := cell(row, cols.name)
		responsibilities := cell(row, cols.responsibilities)
		if name == "" && responsibilities == "" {
			result.RowsRejected++
			continue
		}

		keywords := splitList(cell(row, cols.keywords))
		category := cell(row, cols.category)

		result.Positions = append(result.Positions, &domain.TargetPosition{
			PositionID:       idhash.ComputePositionID(name, category, keywords),
			Name:             name,
			Category:         category,
			Responsibilities: responsibilities,
			Keywords:         keywords,
			Competitors:      splitList(cell(row, cols.competitors)),
			CreatedAt:        now,
		})
	}

	return result, nil
}

// columnIndexes holds the resolved index of each recognized column,
// -1 when absent.
type columnIndexes struct {
	name             int
	category         int
	responsibilities int
	keywords         int
	competitors      int
}

func mapColumns(header []string) columnIndexes {
	cols := columnIndexes{name: -1, category: -1, responsibilities: -1, keywords: -1, competitors: -1}
	for i, h := range header {
		normalized := strings.ToLower(strings.TrimSpace(h))
		switch {
		case cols.name == -1 && contains(nameColumns, normalized):
			cols.name = i
		case cols.category == -1 && contains(categoryColumns, normalized):
			cols.category = i
		case cols.responsibilities == -1 && contains(responsibilitiesColumns, normalized):
			cols.responsibilities = i
		case cols.keywords == -1 && contains(keywordsColumns, normalized):
			cols.keywords = i
		case cols.competitors == -1 && contains(competitorsColumns, normalized):
			cols.competitors = i
		}
	}
	return cols
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// cell returns the trimmed value at index, "" when the column is absent or
// the row is too short.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// splitList splits a cell on commas, semicolons, and whitespace into
// distinct non-empty entries, preserving first-seen order.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n' || r == '\t'
	})

	seen := make(map[string]struct{}, len(fields))
	var result []string
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		result = append(result, f)
	}
	return result
}
