package port

import (
	"context"

	"github.com/google/uuid"

	"dataquality/internal/domain"
)

// APIClientRepository defines the contract for API client persistence.
type APIClientRepository interface {
	Create(ctx context.Context, client *domain.APIClient) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.APIClient, error)
}
