// Package water stores the daily water intake counter.
package water

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fitcal/internal/dbx"
)

type Repository interface {
	// Get returns 0 for a date with no record.
	Get(ctx context.Context, date string) (int, error)
	Set(ctx context.Context, date string, glasses int) error
}

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, date string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT glasses FROM water_log WHERE entry_date = ?`, date).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get water[%s]: %w", date, err)
	}
	return n, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, date string, glasses int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO water_log (entry_date, glasses) VALUES (?, ?)
		ON CONFLICT(entry_date) DO UPDATE SET glasses = excluded.glasses
	`, date, glasses)
	if err != nil {
		return fmt.Errorf("failed to set water[%s]: %w", date, err)
	}
	return nil
}
