package clickhouse

import (
	"context"
	"fmt"

	"salary-benchmark-lab/internal/domain"
	"salary-benchmark-lab/internal/storage"
)

// SnapshotStore implements storage.SnapshotStore using ClickHouse.
// Snapshots are append-only history; MergeTree fits that without any
// uniqueness bookkeeping.
type SnapshotStore struct {
	conn *Conn
}

// NewSnapshotStore creates a new SnapshotStore.
func NewSnapshotStore(conn *Conn) *SnapshotStore {
	return &SnapshotStore{conn: conn}
}

// Compile-time interface check.
var _ storage.SnapshotStore = (*SnapshotStore)(nil)

const insertSnapshotQuery = `
	INSERT INTO benchmark_snapshots (
		position_id, position_name, computed_at,
		location_filter, filter_mode,
		monthly_min, monthly_p25, monthly_p50, monthly_p75, monthly_max,
		yearly_min, yearly_p25, yearly_p50, yearly_p75, yearly_max,
		sample_size
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const selectSnapshotColumns = `
	position_id, position_name, computed_at,
	location_filter, filter_mode,
	monthly_min, monthly_p25, monthly_p50, monthly_p75, monthly_max,
	yearly_min, yearly_p25, yearly_p50, yearly_p75, yearly_max,
	sample_size
`

// Insert adds a new snapshot.
func (s *SnapshotStore) Insert(ctx context.Context, snap *domain.BenchmarkSnapshot) error {
	err := s.conn.Exec(ctx, insertSnapshotQuery, snapshotArgs(snap)...)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// InsertBulk adds multiple snapshots in one batch.
func (s *SnapshotStore) InsertBulk(ctx context.Context, snapshots []*domain.BenchmarkSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO benchmark_snapshots (
			position_id, position_name, computed_at,
			location_filter, filter_mode,
			monthly_min, monthly_p25, monthly_p50, monthly_p75, monthly_max,
			yearly_min, yearly_p25, yearly_p50, yearly_p75, yearly_max,
			sample_size
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, snap := range snapshots {
		if err := batch.Append(snapshotArgs(snap)...); err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByPositionID retrieves all snapshots for a position, ordered by computed_at ASC.
func (s *SnapshotStore) GetByPositionID(ctx context.Context, positionID string) ([]*domain.BenchmarkSnapshot, error) {
	query := `
		SELECT ` + selectSnapshotColumns + `
		FROM benchmark_snapshots
		WHERE position_id = ?
		ORDER BY computed_at ASC
	`

	rows, err := s.conn.Query(ctx, query, positionID)
	if err != nil {
		return nil, fmt.Errorf("query snapshots by position: %w", err)
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

// GetAll retrieves all snapshots, ordered by computed_at ASC, position_id ASC.
func (s *SnapshotStore) GetAll(ctx context.Context) ([]*domain.BenchmarkSnapshot, error) {
	query := `
		SELECT ` + selectSnapshotColumns + `
		FROM benchmark_snapshots
		ORDER BY computed_at ASC, position_id ASC
	`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query all snapshots: %w", err)
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

// snapshotArgs flattens a snapshot into insert arguments.
func snapshotArgs(s *domain.BenchmarkSnapshot) []interface{} {
	return []interface{}{
		s.PositionID, s.PositionName, s.ComputedAt,
		s.LocationFilter, s.FilterMode,
		s.Monthly.Min, s.Monthly.P25, s.Monthly.P50, s.Monthly.P75, s.Monthly.Max,
		s.Yearly.Min, s.Yearly.P25, s.Yearly.P50, s.Yearly.P75, s.Yearly.Max,
		int32(s.SampleSize),
	}
}

// Rows interface for scanning
type chRows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// scanSnapshots scans multiple rows into a slice.
func scanSnapshots(rows chRows) ([]*domain.BenchmarkSnapshot, error) {
	var snapshots []*domain.BenchmarkSnapshot

	for rows.Next() {
		var s domain.BenchmarkSnapshot
		var sampleSize int32

		err := rows.Scan(
			&s.PositionID, &s.PositionName, &s.ComputedAt,
			&s.LocationFilter, &s.FilterMode,
			&s.Monthly.Min, &s.Monthly.P25, &s.Monthly.P50, &s.Monthly.P75, &s.Monthly.Max,
			&s.Yearly.Min, &s.Yearly.P25, &s.Yearly.P50, &s.Yearly.P75, &s.Yearly.Max,
			&sampleSize,
		)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}

		s.SampleSize = int(sampleSize)
		s.Monthly.SampleSize = s.SampleSize
		s.Yearly.SampleSize = s.SampleSize
		snapshots = append(snapshots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot rows: %w", err)
	}

	return snapshots, nil
}
