package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"dataquality/internal/domain"
	"dataquality/internal/port"
)

const regionUpsertBatch = 500

type regionRepo struct {
	db *sqlx.DB
}

// NewRegionRepo creates a new PostgreSQL-backed RegionRepository.
func NewRegionRepo(db *sqlx.DB) port.RegionRepository {
	return &regionRepo{db: db}
}

func (r *regionRepo) LoadAll(ctx context.Context) ([]domain.Region, error) {
	var regions []domain.Region
	err := r.db.SelectContext(ctx, &regions,
		`SELECT code, name FROM regions WHERE is_active = TRUE ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("regionRepo.LoadAll: %w", err)
	}
	return regions, nil
}

func (r *regionRepo) Upsert(ctx context.Context, regions []domain.Region) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("regionRepo.Upsert begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	total := 0
	for i := 0; i < len(regions); i += regionUpsertBatch {
		end := min(i+regionUpsertBatch, len(regions))
		batch := regions[i:end]

		var b strings.Builder
		b.WriteString("INSERT INTO regions (code, name, is_active) VALUES ")
		args := make([]interface{}, 0, len(batch)*2)
		for j, region := range batch {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "($%d, $%d, TRUE)", len(args)+1, len(args)+2)
			args = append(args, region.Code, region.Name)
		}
		b.WriteString(" ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, is_active = TRUE")

		res, err := tx.ExecContext(ctx, b.String(), args...)
		if err != nil {
			return 0, fmt.Errorf("regionRepo.Upsert batch at offset %d: %w", i, err)
		}
		n, _ := res.RowsAffected()
		total += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("regionRepo.Upsert commit: %w", err)
	}
	return total, nil
}
