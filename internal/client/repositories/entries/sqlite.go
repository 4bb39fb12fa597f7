package entries

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/fitcal/internal/common"
	"github.com/dmitrijs2005/fitcal/internal/dbx"
	"github.com/dmitrijs2005/fitcal/internal/ledger"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const insertQuery = `
	INSERT INTO meal_entries (id, seq, food_id, food_name, calories, protein, carbs, fat, serving,
		quantity, meal_type, entry_date)
	VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM meal_entries), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func (r *SQLiteRepository) Insert(ctx context.Context, e ledger.MealEntry) error {
	_, err := r.db.ExecContext(ctx, insertQuery,
		e.ID, e.Food.ID, e.Food.Name, e.Food.Calories, e.Food.Protein, e.Food.Carbs, e.Food.Fat,
		e.Food.Serving, e.Quantity, string(e.MealType), e.Date)
	if err != nil {
		return fmt.Errorf("failed to insert entry %s: %w", e.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]ledger.MealEntry, error) {
	query := `SELECT id, food_id, food_name, calories, protein, carbs, fat, serving,
		quantity, meal_type, entry_date FROM meal_entries ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	var result []ledger.MealEntry
	for rows.Next() {
		var (
			e        ledger.MealEntry
			mealType string
		)
		if err := rows.Scan(&e.ID, &e.Food.ID, &e.Food.Name, &e.Food.Calories, &e.Food.Protein,
			&e.Food.Carbs, &e.Food.Fat, &e.Food.Serving, &e.Quantity, &mealType, &e.Date); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		e.MealType = ledger.MealType(mealType)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return result, nil
}

// DeleteByID expects exactly one row to be affected.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM meal_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return fmt.Errorf("entry %s: %w", id, common.ErrorNotFound)
	}
	return nil
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, entries []ledger.MealEntry) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM meal_entries`); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}
	for _, e := range entries {
		if err := r.Insert(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
