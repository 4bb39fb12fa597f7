package entries

import (
	"context"

	"github.com/dmitrijs2005/fitcal/internal/ledger"
)

// Repository persists the ordered meal ledger.
type Repository interface {
	// Insert appends an entry after all stored ones.
	Insert(ctx context.Context, e ledger.MealEntry) error

	// GetAll returns every entry in insertion order.
	GetAll(ctx context.Context) ([]ledger.MealEntry, error)

	// DeleteByID removes one entry. A missing id yields common.ErrorNotFound.
	DeleteByID(ctx context.Context, id string) error

	// ReplaceAll drops every stored entry and writes entries in the given order.
	// Callers run it inside a transaction.
	ReplaceAll(ctx context.Context, entries []ledger.MealEntry) error
}
