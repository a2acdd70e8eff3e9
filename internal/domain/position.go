package domain

// TargetPosition represents a job role under salary benchmarking.
// Corresponds to target_positions table in PostgreSQL.
type TargetPosition struct {
	PositionID       string   // PRIMARY KEY, deterministic hash
	Name             string   // display name of the role
	Category         string   // free-form grouping label
	Responsibilities string   // descriptive text
	Keywords         []string // search terms, order preserved for display
	Competitors      []string // company-name substrings for competitor tagging
	CreatedAt        int64    // Unix timestamp in milliseconds
}
