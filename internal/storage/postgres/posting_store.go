package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"salary-benchmark-lab/internal/domain"
	"salary-benchmark-lab/internal/storage"
)

// PostingStore implements storage.PostingStore using PostgreSQL.
type PostingStore struct {
	pool *Pool
}

// NewPostingStore creates a new PostingStore.
func NewPostingStore(pool *Pool) *PostingStore {
	return &PostingStore{pool: pool}
}

// Compile-time interface check.
var _ storage.PostingStore = (*PostingStore)(nil)

const insertPostingQuery = `
	INSERT INTO job_postings (
		posting_id, position_id, external_job_title, company_name, location,
		min_monthly_salary, max_monthly_salary, months_per_year,
		benefits, source, link, is_competitor, collected_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`

const selectPostingColumns = `
	posting_id, position_id, external_job_title, company_name, location,
	min_monthly_salary, max_monthly_salary, months_per_year,
	benefits, source, link, is_competitor, collected_at
`

// Insert adds a new posting. Returns ErrDuplicateKey if posting_id exists.
func (s *PostingStore) Insert(ctx context.Context, p *domain.JobPosting) error {
	_, err := s.pool.Exec(ctx, insertPostingQuery, postingArgs(p)...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert posting: %w", err)
	}
	return nil
}

// InsertBulk adds multiple postings atomically. Fails entire batch on any duplicate.
func (s *PostingStore) InsertBulk(ctx context.Context, postings []*domain.JobPosting) error {
	if len(postings) == 0 {
		return nil
	}

	// Intra-batch duplicates fail before touching the database.
	seen := make(map[string]struct{}, len(postings))
	for _, p := range postings {
		if _, exists := seen[p.PostingID]; exists {
			return storage.ErrDuplicateKey
		}
		seen[p.PostingID] = struct{}{}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin bulk insert: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, p := range postings {
		if _, err := tx.Exec(ctx, insertPostingQuery, postingArgs(p)...); err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("bulk insert posting %s: %w", p.PostingID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit bulk insert: %w", err)
	}
	return nil
}

// GetByPositionID retrieves all postings for a position, ordered by
// collected_at ASC, posting_id ASC.
func (s *PostingStore) GetByPositionID(ctx context.Context, positionID string) ([]*domain.JobPosting, error) {
	query := `
		SELECT ` + selectPostingColumns + `
		FROM job_postings
		WHERE position_id = $1
		ORDER BY collected_at ASC, posting_id ASC
	`

	rows, err := s.pool.Query(ctx, query, positionID)
	if err != nil {
		return nil, fmt.Errorf("get postings by position: %w", err)
	}
	defer rows.Close()

	return scanPostings(rows)
}

// GetAll retrieves all postings, ordered by collected_at ASC, posting_id ASC.
func (s *PostingStore) GetAll(ctx context.Context) ([]*domain.JobPosting, error) {
	query := `
		SELECT ` + selectPostingColumns + `
		FROM job_postings
		ORDER BY collected_at ASC, posting_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all postings: %w", err)
	}
	defer rows.Close()

	return scanPostings(rows)
}

// CountAll returns the size of the full unfiltered collection.
func (s *PostingStore) CountAll(ctx context.Context) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT count(*) FROM job_postings`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count postings: %w", err)
	}
	return count, nil
}

// ExistsForPosition reports whether at least one posting exists for the position.
func (s *PostingStore) ExistsForPosition(ctx context.Context, positionID string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM job_postings WHERE position_id = $1)`,
		positionID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check postings exist: %w", err)
	}
	return exists, nil
}

// postingArgs flattens a posting into insert arguments.
func postingArgs(p *domain.JobPosting) []interface{} {
	return []interface{}{
		p.PostingID,
		p.PositionID,
		p.ExternalJobTitle,
		p.CompanyName,
		p.Location,
		p.MinMonthlySalary,
		p.MaxMonthlySalary,
		p.MonthsPerYear,
		p.Benefits,
		p.Source,
		p.Link,
		p.IsCompetitor,
		p.CollectedAt,
	}
}

// scanPostings scans multiple rows into a slice of JobPosting.
func scanPostings(rows pgx.Rows) ([]*domain.JobPosting, error) {
	var postings []*domain.JobPosting

	for rows.Next() {
		var p domain.JobPosting
		err := rows.Scan(
			&p.PostingID,
			&p.PositionID,
			&p.ExternalJobTitle,
			&p.CompanyName,
			&p.Location,
			&p.MinMonthlySalary,
			&p.MaxMonthlySalary,
			&p.MonthsPerYear,
			&p.Benefits,
			&p.Source,
			&p.Link,
			&p.IsCompetitor,
			&p.CollectedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan posting row: %w", err)
		}
		postings = append(postings, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posting rows: %w", err)
	}

	return postings, nil
}
