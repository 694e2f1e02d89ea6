package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"dataquality/internal/domain"
	"dataquality/internal/port"
)

type batchRepo struct {
	db *sqlx.DB
}

// NewBatchRepo creates a new PostgreSQL-backed BatchRepository.
func NewBatchRepo(db *sqlx.DB) port.BatchRepository {
	return &batchRepo{db: db}
}

func (r *batchRepo) Create(ctx context.Context, batch *domain.ValidationBatch) error {
	now := time.Now().UTC()
	batch.CreatedAt = now
	batch.UpdatedAt = now

	query := `INSERT INTO validation_batches (
		id, filename, content_type, size_bytes, s3_bucket,
		s3_key, status, submitted_by, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		batch.ID, batch.Filename, batch.ContentType, batch.SizeBytes, batch.S3Bucket,
		batch.S3Key, batch.Status, batch.SubmittedBy, batch.CreatedAt, batch.UpdatedAt)
	if err != nil {
		return fmt.Errorf("batchRepo.Create: %w", err)
	}
	return nil
}

func (r *batchRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ValidationBatch, error) {
	var batch domain.ValidationBatch
	err := r.db.GetContext(ctx, &batch, "SELECT * FROM validation_batches WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBatchNotFound
		}
		return nil, fmt.Errorf("batchRepo.GetByID: %w", err)
	}
	return &batch, nil
}

func (r *batchRepo) List(ctx context.Context, offset, limit int) ([]domain.ValidationBatch, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM validation_batches"); err != nil {
		return nil, 0, fmt.Errorf("batchRepo.List count: %w", err)
	}

	var batches []domain.ValidationBatch
	err := r.db.SelectContext(ctx, &batches,
		"SELECT * FROM validation_batches ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("batchRepo.List: %w", err)
	}
	return batches, total, nil
}

func (r *batchRepo) ClaimQueued(ctx context.Context, limit int, staleAfter time.Duration) ([]domain.ValidationBatch, error) {
	var batches []domain.ValidationBatch
	err := r.db.SelectContext(ctx, &batches, `
		UPDATE validation_batches
		SET status = $1, attempts = attempts + 1, updated_at = NOW()
		WHERE id IN (
			SELECT id FROM validation_batches
			WHERE status = $2
			   OR (status = $1 AND updated_at < NOW() - make_interval(secs => $4))
			ORDER BY created_at
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`,
		domain.BatchStatusProcessing, domain.BatchStatusQueued, limit, staleAfter.Seconds())
	if err != nil {
		return nil, fmt.Errorf("batchRepo.ClaimQueued: %w", err)
	}
	return batches, nil
}

func (r *batchRepo) UpdateResult(ctx context.Context, batch *domain.ValidationBatch) error {
	batch.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE validation_batches SET
			status = $1, total_records = $2, valid_records = $3,
			invalid_records = $4, aborted_records = $5, error_message = $6,
			completed_at = $7, updated_at = $8
		 WHERE id = $9`,
		batch.Status, batch.TotalRecords, batch.ValidRecords,
		batch.InvalidRecords, batch.AbortedRecords, batch.ErrorMessage,
		batch.CompletedAt, batch.UpdatedAt, batch.ID)
	if err != nil {
		return fmt.Errorf("batchRepo.UpdateResult: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrBatchNotFound
	}
	return nil
}
