package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"salary-benchmark-lab/internal/domain"
	"salary-benchmark-lab/internal/storage"
)

// PositionStore implements storage.PositionStore using PostgreSQL.
type PositionStore struct {
	pool *Pool
}

// NewPositionStore creates a new PositionStore.
func NewPositionStore(pool *Pool) *PositionStore {
	return &PositionStore{pool: pool}
}

// Compile-time interface check.
var _ storage.PositionStore = (*PositionStore)(nil)

// Insert adds a new position. Returns ErrDuplicateKey if position_id exists.
func (s *PositionStore) Insert(ctx context.Context, p *domain.TargetPosition) error {
	query := `
		INSERT INTO target_positions (
			position_id, name, category, responsibilities, keywords, competitors, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.pool.Exec(ctx, query,
		p.PositionID,
		p.Name,
		p.Category,
		p.Responsibilities,
		p.Keywords,
		p.Competitors,
		p.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert position: %w", err)
	}
	return nil
}

// GetByID retrieves a position by its ID. Returns ErrNotFound if not exists.
func (s *PositionStore) GetByID(ctx context.Context, positionID string) (*domain.TargetPosition, error) {
	query := `
		SELECT position_id, name, category, responsibilities, keywords, competitors, created_at
		FROM target_positions
		WHERE position_id = $1
	`

	row := s.pool.QueryRow(ctx, query, positionID)
	p, err := scanPosition(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get position by id: %w", err)
	}
	return p, nil
}

// GetAll retrieves all positions in creation order. The insertion sequence
// column breaks ties between positions created in the same millisecond.
func (s *PositionStore) GetAll(ctx context.Context) ([]*domain.TargetPosition, error) {
	query := `
		SELECT position_id, name, category, responsibilities, keywords, competitors, created_at
		FROM target_positions
		ORDER BY seq ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all positions: %w", err)
	}
	defer rows.Close()

	var positions []*domain.TargetPosition
	for rows.Next() {
		var p domain.TargetPosition
		err := rows.Scan(
			&p.PositionID,
			&p.Name,
			&p.Category,
			&p.Responsibilities,
			&p.Keywords,
			&p.Competitors,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan position row: %w", err)
		}
		positions = append(positions, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate position rows: %w", err)
	}

	return positions, nil
}

// scanPosition scans a single row into a TargetPosition.
func scanPosition(row pgx.Row) (*domain.TargetPosition, error) {
	var p domain.TargetPosition

	err := row.Scan(
		&p.PositionID,
		&p.Name,
		&p.Category,
		&p.Responsibilities,
		&p.Keywords,
		&p.Competitors,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &p, nil
}
