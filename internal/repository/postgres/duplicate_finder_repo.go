package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"dataquality/internal/domain"
	"dataquality/internal/port"
)

type duplicateFinderRepo struct {
	db *sqlx.DB
}

// NewDuplicateFinderRepo creates a new PostgreSQL-backed DuplicateRecordFinder.
func NewDuplicateFinderRepo(db *sqlx.DB) port.DuplicateRecordFinder {
	return &duplicateFinderRepo{db: db}
}

func (r *duplicateFinderRepo) FindAcceptedByCVE(ctx context.Context, q port.DuplicateQuery) ([]port.DuplicateMatch, error) {
	var matches []port.DuplicateMatch
	err := r.db.SelectContext(ctx, &matches, `
		SELECT concession_name, created_at
		FROM validation_runs
		WHERE cve_number = $1
		  AND status = $2
		  AND NOT (lower(btrim(concession_name)) = lower(btrim($3))
		           AND lower(btrim(company_name)) = lower(btrim($4)))
		ORDER BY created_at DESC
		LIMIT 5`,
		q.CVENumber, domain.ValidationStatusValid, q.ConcessionName, q.CompanyName,
	)
	if err != nil {
		return nil, fmt.Errorf("duplicateFinderRepo.FindAcceptedByCVE: %w", err)
	}
	return matches, nil
}
