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

type apiClientRepo struct {
	db *sqlx.DB
}

// NewAPIClientRepo creates a new PostgreSQL-backed APIClientRepository.
func NewAPIClientRepo(db *sqlx.DB) port.APIClientRepository {
	return &apiClientRepo{db: db}
}

func (r *apiClientRepo) Create(ctx context.Context, client *domain.APIClient) error {
	now := time.Now().UTC()
	client.CreatedAt = now
	client.UpdatedAt = now

	_, err := r.db.NamedExecContext(ctx, `INSERT INTO api_clients (
		id, name, secret_hash, is_active, created_at, updated_at
	) VALUES (:id, :name, :secret_hash, :is_active, :created_at, :updated_at)`, client)
	if err != nil {
		return fmt.Errorf("apiClientRepo.Create: %w", err)
	}
	return nil
}

func (r *apiClientRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.APIClient, error) {
	var client domain.APIClient
	err := r.db.GetContext(ctx, &client, "SELECT * FROM api_clients WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("apiClientRepo.GetByID: %w", err)
	}
	return &client, nil
}
