package port

import (
	"context"

	"github.com/google/uuid"

	"dataquality/internal/domain"
)

// RunFilter narrows a validation run listing.
type RunFilter struct {
	Status  domain.ValidationStatus
	BatchID *uuid.UUID
	Offset  int
	Limit   int
}

// ValidationRunRepository defines the contract for persisted validation runs.
type ValidationRunRepository interface {
	Create(ctx context.Context, run *domain.ValidationRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ValidationRun, error)
	List(ctx context.Context, filter RunFilter) ([]domain.ValidationRun, int, error)
	// DeleteByBatch removes every run recorded for a batch and returns how many were removed.
	DeleteByBatch(ctx context.Context, batchID uuid.UUID) (int64, error)
}
