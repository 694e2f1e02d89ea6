package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"dataquality/internal/domain"
)

// BatchRepository defines the contract for submitted batches.
type BatchRepository interface {
	Create(ctx context.Context, batch *domain.ValidationBatch) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ValidationBatch, error)
	List(ctx context.Context, offset, limit int) ([]domain.ValidationBatch, int, error)
	// ClaimQueued atomically moves up to limit queued batches to processing,
	// bumping their attempt count, and returns them. Batches left in processing
	// for longer than staleAfter are claimed again.
	ClaimQueued(ctx context.Context, limit int, staleAfter time.Duration) ([]domain.ValidationBatch, error)
	UpdateResult(ctx context.Context, batch *domain.ValidationBatch) error
}
