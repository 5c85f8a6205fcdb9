package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-portfolio-builder/internal/domain/repository"
)

// StateRepository keeps slots as rows of app_state keyed by
// "<namespace><key>".
type StateRepository struct {
	pool *pgxpool.Pool
	ns   string
}

func NewStateRepository(pool *pgxpool.Pool, namespace string) *StateRepository {
	return &StateRepository{pool: pool, ns: namespace}
}

func (r *StateRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.pool.QueryRow(ctx, `SELECT value FROM app_state WHERE key = $1`, r.ns+key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select slot %s: %w", key, err)
	}
	return value, nil
}

func (r *StateRepository) Put(ctx context.Context, key string, value []byte) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO app_state (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`, r.ns+key, value)
	if err != nil {
		return fmt.Errorf("upsert slot %s: %w", key, err)
	}
	return nil
}

func (r *StateRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM app_state WHERE key = $1`, r.ns+key); err != nil {
		return fmt.Errorf("delete slot %s: %w", key, err)
	}
	return nil
}

func (r *StateRepository) Clear(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM app_state WHERE starts_with(key, $1)`, r.ns); err != nil {
		return fmt.Errorf("clear namespace: %w", err)
	}
	return nil
}
