package backups

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fitcal/internal/common"
	"github.com/dmitrijs2005/fitcal/internal/dbx"
	"github.com/dmitrijs2005/fitcal/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, b *models.Backup) error {
	query := `
		INSERT INTO backups (user_id, version, object_key, nonce, entry_count, size_bytes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		b.UserID, b.Version, b.ObjectKey, b.Nonce, b.EntryCount, b.SizeBytes).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Latest(ctx context.Context, userID string) (*models.Backup, error) {
	query := `
		SELECT id, user_id, version, object_key, nonce, entry_count, size_bytes, created_at
		FROM backups
		WHERE user_id = $1
		ORDER BY version DESC
		LIMIT 1
	`
	b := &models.Backup{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&b.ID, &b.UserID, &b.Version, &b.ObjectKey, &b.Nonce, &b.EntryCount, &b.SizeBytes, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}

func (r *PostgresRepository) PruneBelow(ctx context.Context, userID string, version int64) ([]string, error) {
	query := `
		DELETE FROM backups
		WHERE user_id = $1 AND version < $2
		RETURNING object_key
	`
	rows, err := r.db.QueryContext(ctx, query, userID, version)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return keys, nil
}
