// Package favorites stores the favorite foods of the local user.
package favorites

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/fitcal/internal/common"
	"github.com/dmitrijs2005/fitcal/internal/dbx"
	"github.com/dmitrijs2005/fitcal/internal/ledger"
)

type Repository interface {
	Insert(ctx context.Context, f ledger.FoodItem) error
	Delete(ctx context.Context, foodID string) error
	GetAll(ctx context.Context) ([]ledger.FoodItem, error)
	ReplaceAll(ctx context.Context, items []ledger.FoodItem) error
}

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, f ledger.FoodItem) error {
	query := `
		INSERT INTO favorites (food_id, seq, food_name, calories, protein, carbs, fat, serving)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM favorites), ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query, f.ID, f.Name, f.Calories, f.Protein, f.Carbs, f.Fat, f.Serving)
	if err != nil {
		return fmt.Errorf("failed to insert favorite %s: %w", f.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, foodID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE food_id = ?`, foodID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("favorite %s: %w", foodID, common.ErrorNotFound)
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]ledger.FoodItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT food_id, food_name, calories, protein, carbs, fat, serving FROM favorites ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to select favorites: %w", err)
	}
	defer rows.Close()

	var result []ledger.FoodItem
	for rows.Next() {
		var f ledger.FoodItem
		if err := rows.Scan(&f.ID, &f.Name, &f.Calories, &f.Protein, &f.Carbs, &f.Fat, &f.Serving); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorites: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, items []ledger.FoodItem) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM favorites`); err != nil {
		return fmt.Errorf("failed to clear favorites: %w", err)
	}
	for _, f := range items {
		if err := r.Insert(ctx, f); err != nil {
			return err
		}
	}
	return nil
}
