package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"dataquality/internal/domain"
	"dataquality/internal/port"
)

type validationRunRepo struct {
	db *sqlx.DB
}

// NewValidationRunRepo creates a new PostgreSQL-backed ValidationRunRepository.
func NewValidationRunRepo(db *sqlx.DB) port.ValidationRunRepository {
	return &validationRunRepo{db: db}
}

func (r *validationRunRepo) Create(ctx context.Context, run *domain.ValidationRun) error {
	run.CreatedAt = time.Now().UTC()

	query := `INSERT INTO validation_runs (
		id, batch_id, source, row_number, concession_name,
		company_name, cve_number, region, sentiment_score, status,
		errors, rule_keys, duration_ms, submitted_by, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db.ExecContext(ctx, query,
		run.ID, run.BatchID, run.Source, run.RowNumber, run.ConcessionName,
		run.CompanyName, run.CVENumber, run.Region, run.SentimentScore, run.Status,
		run.Errors, run.RuleKeys, run.DurationMs, run.SubmittedBy, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("validationRunRepo.Create: %w", err)
	}
	return nil
}

func (r *validationRunRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ValidationRun, error) {
	var run domain.ValidationRun
	err := r.db.GetContext(ctx, &run, "SELECT * FROM validation_runs WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRunNotFound
		}
		return nil, fmt.Errorf("validationRunRepo.GetByID: %w", err)
	}
	return &run, nil
}

func (r *validationRunRepo) List(ctx context.Context, filter port.RunFilter) ([]domain.ValidationRun, int, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.BatchID != nil {
		args = append(args, *filter.BatchID)
		conds = append(conds, fmt.Sprintf("batch_id = $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM validation_runs"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("validationRunRepo.List count: %w", err)
	}

	var runs []domain.ValidationRun
	query := fmt.Sprintf(
		"SELECT * FROM validation_runs%s ORDER BY created_at DESC, row_number ASC NULLS LAST LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	if err := r.db.SelectContext(ctx, &runs, query, append(args, filter.Limit, filter.Offset)...); err != nil {
		return nil, 0, fmt.Errorf("validationRunRepo.List: %w", err)
	}
	return runs, total, nil
}

func (r *validationRunRepo) DeleteByBatch(ctx context.Context, batchID uuid.UUID) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM validation_runs WHERE batch_id = $1", batchID)
	if err != nil {
		return 0, fmt.Errorf("validationRunRepo.DeleteByBatch: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}
