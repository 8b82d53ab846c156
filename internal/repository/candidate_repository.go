package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/recruiting-pipeline/internal/domain"
)

// CandidateFilter captures candidate listing parameters.
type CandidateFilter struct {
	JobID       *string
	JobIDs      []string
	CreatedByID *string
	Status      *domain.CandidateStatus
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// CandidateRepository encapsulates candidate persistence.
type CandidateRepository interface {
	Create(ctx context.Context, candidate *domain.Candidate) error
	Update(ctx context.Context, candidate *domain.Candidate) error
	GetByID(ctx context.Context, id string) (*domain.Candidate, error)
	ListWithFilter(ctx context.Context, filter CandidateFilter) ([]domain.Candidate, error)
}

type candidateRepository struct {
	pool *pgxpool.Pool
}

// NewCandidateRepository instantiates repository.
func NewCandidateRepository(pool *pgxpool.Pool) CandidateRepository {
	return &candidateRepository{pool: pool}
}

const candidateColumns = `id, job_id, created_by_id, status, status_history, rejected_by, dropped_by,
       joining_date, selection_date, dynamic_fields, created_at, updated_at`

func (r *candidateRepository) Create(ctx context.Context, candidate *domain.Candidate) error {
	historyJSON, err := json.Marshal(candidate.StatusHistory)
	if err != nil {
		return err
	}
	fieldsJSON, err := json.Marshal(candidate.DynamicFields)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO candidates (job_id, created_by_id, status, status_history, rejected_by, dropped_by,
                                joining_date, selection_date, dynamic_fields)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		candidate.JobID,
		candidate.CreatedByID,
		candidate.Status,
		historyJSON,
		candidate.RejectedBy,
		candidate.DroppedBy,
		candidate.JoiningDate,
		candidate.SelectionDate,
		fieldsJSON,
	).Scan(&candidate.ID, &candidate.CreatedAt, &candidate.UpdatedAt)
}

func (r *candidateRepository) Update(ctx context.Context, candidate *domain.Candidate) error {
	historyJSON, err := json.Marshal(candidate.StatusHistory)
	if err != nil {
		return err
	}
	fieldsJSON, err := json.Marshal(candidate.DynamicFields)
	if err != nil {
		return err
	}
	const query = `
        UPDATE candidates SET status=$1, status_history=$2, rejected_by=$3, dropped_by=$4,
               joining_date=$5, selection_date=$6, dynamic_fields=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		candidate.Status,
		historyJSON,
		candidate.RejectedBy,
		candidate.DroppedBy,
		candidate.JoiningDate,
		candidate.SelectionDate,
		fieldsJSON,
		candidate.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *candidateRepository) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	query := fmt.Sprintf(`SELECT %s FROM candidates WHERE id=$1`, candidateColumns)
	return scanCandidate(r.pool.QueryRow(ctx, query, id))
}

func (r *candidateRepository) ListWithFilter(ctx context.Context, filter CandidateFilter) ([]domain.Candidate, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.JobID != nil {
		args = append(args, *filter.JobID)
		clauses = append(clauses, fmt.Sprintf("job_id=$%d", len(args)))
	}
	if len(filter.JobIDs) > 0 {
		args = append(args, filter.JobIDs)
		clauses = append(clauses, fmt.Sprintf("job_id = ANY($%d)", len(args)))
	}
	if filter.CreatedByID != nil {
		args = append(args, *filter.CreatedByID)
		clauses = append(clauses, fmt.Sprintf("created_by_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 500
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM candidates WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		candidateColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Candidate
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *candidate)
	}
	return result, rows.Err()
}

func scanCandidate(row pgx.Row) (*domain.Candidate, error) {
	var (
		candidate   domain.Candidate
		historyJSON []byte
		fieldsJSON  []byte
	)
	if err := row.Scan(
		&candidate.ID,
		&candidate.JobID,
		&candidate.CreatedByID,
		&candidate.Status,
		&historyJSON,
		&candidate.RejectedBy,
		&candidate.DroppedBy,
		&candidate.JoiningDate,
		&candidate.SelectionDate,
		&fieldsJSON,
		&candidate.CreatedAt,
		&candidate.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(historyJSON) > 0 {
		if err := json.Unmarshal(historyJSON, &candidate.StatusHistory); err != nil {
			return nil, err
		}
	}
	if len(fieldsJSON) > 0 {
		if err := json.Unmarshal(fieldsJSON, &candidate.DynamicFields); err != nil {
			return nil, err
		}
	}
	return &candidate, nil
}
