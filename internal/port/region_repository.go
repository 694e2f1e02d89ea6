package port

import (
	"context"

	"dataquality/internal/domain"
)

// RegionRepository defines the contract for region master data access.
type RegionRepository interface {
	LoadAll(ctx context.Context) ([]domain.Region, error)
	// Upsert inserts regions or renames existing codes, reactivating them.
	Upsert(ctx context.Context, regions []domain.Region) (int, error)
}
