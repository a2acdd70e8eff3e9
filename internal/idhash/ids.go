// Package idhash computes deterministic identifiers so that re-ingesting
// the same record always yields the same ID regardless of arrival order.
package idhash

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// ComputePositionID computes a deterministic position_id.
// Formula: SHA256(name|category|keywords) base58-encoded (first 16 bytes).
func ComputePositionID(name, category string, keywords []string) string {
	data := fmt.Sprintf("%s|%s|%s", name, category, strings.Join(keywords, ","))
	return encode(data)
}

// ComputePostingID computes a deterministic posting_id.
// Formula: SHA256(position_id|company|title|location|min|max|months|source)
// base58-encoded (first 16 bytes).
func ComputePostingID(
	positionID string,
	companyName string,
	externalJobTitle string,
	location string,
	minMonthlySalary float64,
	maxMonthlySalary float64,
	monthsPerYear int,
	source string,
) string {
	data := fmt.Sprintf("%s|%s|%s|%s|%g|%g|%d|%s",
		positionID,
		companyName,
		externalJobTitle,
		location,
		minMonthlySalary,
		maxMonthlySalary,
		monthsPerYear,
		source,
	)
	return encode(data)
}

// encode hashes data and returns a compact base58 identifier.
func encode(data string) string {
	hash := sha256.Sum256([]byte(data))
	return base58.Encode(hash[:16])
}
