package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/fitcal/internal/client/repositories/entries"
	"github.com/dmitrijs2005/fitcal/internal/client/repositories/favorites"
	"github.com/dmitrijs2005/fitcal/internal/common"
	"github.com/dmitrijs2005/fitcal/internal/dbx"
	"github.com/dmitrijs2005/fitcal/internal/ledger"
)

// LedgerService is the persistent meal ledger. Every mutation is applied to
// the database and to the in-memory ledger; reads go to memory. Mutations
// are serialized, so the two never disagree.
type LedgerService interface {
	// Load replaces the in-memory state with what is stored.
	Load(ctx context.Context) error
	Ledger() *ledger.Ledger

	Add(ctx context.Context, food ledger.FoodItem, quantity float64, mealType ledger.MealType, date string) (ledger.MealEntry, error)
	// RemoveFromView removes the index-th entry of the (date, mealType) view.
	RemoveFromView(ctx context.Context, date string, mealType ledger.MealType, index int) (ledger.MealEntry, error)
	// RemoveAt removes the entry at an absolute position.
	RemoveAt(ctx context.Context, position int) (ledger.MealEntry, error)
	ToggleFavorite(ctx context.Context, food ledger.FoodItem) (bool, error)

	// Restore replaces both the stored and the in-memory state.
	Restore(ctx context.Context, snap ledger.Snapshot) error
	// RestoreWith is Restore with extra writes run in the same transaction.
	// If fn fails nothing is replaced.
	RestoreWith(ctx context.Context, snap ledger.Snapshot, fn func(ctx context.Context, tx dbx.DBTX) error) error
}

type ledgerService struct {
	mu sync.Mutex
	db *sql.DB
	l  *ledger.Ledger
}

func NewLedgerService(db *sql.DB, l *ledger.Ledger) LedgerService {
	return &ledgerService{db: db, l: l}
}

func (s *ledgerService) Ledger() *ledger.Ledger {
	return s.l
}

func (s *ledgerService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	es, err := entries.NewSQLiteRepository(s.db).GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}
	fs, err := favorites.NewSQLiteRepository(s.db).GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load favorites: %w", err)
	}
	return s.l.Restore(es, fs)
}

func (s *ledgerService) Add(ctx context.Context, food ledger.FoodItem, quantity float64, mealType ledger.MealType, date string) (ledger.MealEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.l.Add(ledger.MealEntry{Food: food, Quantity: quantity, MealType: mealType, Date: date})
	if err != nil {
		return ledger.MealEntry{}, err
	}
	if err := entries.NewSQLiteRepository(s.db).Insert(ctx, e); err != nil {
		_, _ = s.l.RemoveByID(e.ID)
		return ledger.MealEntry{}, fmt.Errorf("saving error: %w", err)
	}
	return e, nil
}

func (s *ledgerService) RemoveFromView(ctx context.Context, date string, mealType ledger.MealType, index int) (ledger.MealEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := s.l.EntriesFor(date, mealType)
	if index < 0 || index >= len(view) {
		return ledger.MealEntry{}, fmt.Errorf("entry %d of %s %s: %w", index, date, mealType, common.ErrorNotFound)
	}
	return s.removeByID(ctx, view[index].ID)
}

func (s *ledgerService) RemoveAt(ctx context.Context, position int) (ledger.MealEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.l.Entries()
	if position < 0 || position >= len(all) {
		return ledger.MealEntry{}, fmt.Errorf("position %d: %w", position, common.ErrorNotFound)
	}
	return s.removeByID(ctx, all[position].ID)
}

func (s *ledgerService) removeByID(ctx context.Context, id string) (ledger.MealEntry, error) {
	if err := entries.NewSQLiteRepository(s.db).DeleteByID(ctx, id); err != nil {
		return ledger.MealEntry{}, err
	}
	return s.l.RemoveByID(id)
}

func (s *ledgerService) ToggleFavorite(ctx context.Context, food ledger.FoodItem) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo := favorites.NewSQLiteRepository(s.db)

	var err error
	if s.l.IsFavorite(food.ID) {
		err = repo.Delete(ctx, food.ID)
		if errors.Is(err, common.ErrorNotFound) {
			err = nil
		}
	} else {
		err = repo.Insert(ctx, food)
	}
	if err != nil {
		return s.l.IsFavorite(food.ID), err
	}
	return s.l.ToggleFavorite(food), nil
}

func (s *ledgerService) Restore(ctx context.Context, snap ledger.Snapshot) error {
	return s.RestoreWith(ctx, snap, nil)
}

func (s *ledgerService) RestoreWith(ctx context.Context, snap ledger.Snapshot, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate against a scratch ledger so a bad snapshot touches nothing.
	scratch := ledger.New()
	if err := scratch.Restore(snap.Entries, snap.Favorites); err != nil {
		return err
	}
	clean := scratch.Snapshot()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := entries.NewSQLiteRepository(tx).ReplaceAll(ctx, clean.Entries); err != nil {
			return err
		}
		if err := favorites.NewSQLiteRepository(tx).ReplaceAll(ctx, clean.Favorites); err != nil {
			return err
		}
		if fn != nil {
			return fn(ctx, tx)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	return s.l.Restore(clean.Entries, clean.Favorites)
}
