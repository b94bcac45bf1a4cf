package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"learndeck/internal/common"
)

// SettingsRepository holds single-user platform settings, currently just the
// login password hash.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

const SettingPasswordHash = "password_hash"

type pgSettingsRepository struct {
	db *sqlx.DB
}

func NewPgSettingsRepository(db *sqlx.DB) SettingsRepository {
	return &pgSettingsRepository{db: db}
}

func (r *pgSettingsRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.GetContext(ctx, &value, `SELECT value FROM app_settings WHERE key = $1`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrNotFound
		}
		return "", fmt.Errorf("pgSettingsRepository.Get: %w", err)
	}
	return value, nil
}

func (r *pgSettingsRepository) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO app_settings (key, value) VALUES ($1, $2)
	          ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("pgSettingsRepository.Set: %w", err)
	}
	return nil
}
