package ledger

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/fitcal/internal/common"
	"github.com/google/uuid"
)

// Ledger is the ordered sequence of meal entries and the favorites set.
type Ledger struct {
	mu sync.RWMutex

	// order holds entry IDs in insertion order; byID is the index into it.
	order []string
	byID  map[string]MealEntry

	favorites []FoodItem
	favIDs    map[string]struct{}

	newID func() string
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{
		byID:   make(map[string]MealEntry),
		favIDs: make(map[string]struct{}),
		newID:  uuid.NewString,
	}
}

// Validate checks the fields Add requires.
func Validate(e MealEntry) error {
	if strings.TrimSpace(e.Food.ID) == "" {
		return fmt.Errorf("%w: food id is required", common.ErrorValidation)
	}
	if math.IsNaN(e.Quantity) || math.IsInf(e.Quantity, 0) || e.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive, got %v", common.ErrorValidation, e.Quantity)
	}
	if !e.MealType.Valid() {
		return fmt.Errorf("%w: unknown meal type %q", common.ErrorValidation, e.MealType)
	}
	if _, err := ParseDate(e.Date); err != nil {
		return err
	}
	return nil
}

// Add appends e to the end of the ledger and returns the stored entry.
// An ID is generated when e.ID is empty.
func (l *Ledger) Add(e MealEntry) (MealEntry, error) {
	if err := Validate(e); err != nil {
		return MealEntry{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if e.ID == "" {
		e.ID = l.newID()
	}
	if _, ok := l.byID[e.ID]; ok {
		return MealEntry{}, fmt.Errorf("entry %s: %w", e.ID, common.ErrorAlreadyExists)
	}

	l.order = append(l.order, e.ID)
	l.byID[e.ID] = e
	return e, nil
}

// Remove deletes the entry at the zero-based absolute position. Entries after
// it shift down by one. An out-of-range position returns ErrorNotFound and
// leaves the ledger untouched.
func (l *Ledger) Remove(position int) (MealEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if position < 0 || position >= len(l.order) {
		return MealEntry{}, fmt.Errorf("position %d: %w", position, common.ErrorNotFound)
	}
	return l.removeAt(position), nil
}

// RemoveByID deletes the entry with the given ID.
func (l *Ledger) RemoveByID(id string) (MealEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := slices.Index(l.order, id)
	if i < 0 {
		return MealEntry{}, fmt.Errorf("entry %s: %w", id, common.ErrorNotFound)
	}
	return l.removeAt(i), nil
}

func (l *Ledger) removeAt(i int) MealEntry {
	id := l.order[i]
	e := l.byID[id]
	l.order = slices.Delete(l.order, i, i+1)
	delete(l.byID, id)
	return e
}

// Position returns the absolute position of the entry with the given ID.
func (l *Ledger) Position(id string) (int, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i := slices.Index(l.order, id)
	return i, i >= 0
}

// Get returns the entry with the given ID.
func (l *Ledger) Get(id string) (MealEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	e, ok := l.byID[id]
	if !ok {
		return MealEntry{}, fmt.Errorf("entry %s: %w", id, common.ErrorNotFound)
	}
	return e, nil
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.order)
}

// Entries returns a copy of all entries in insertion order.
func (l *Ledger) Entries() []MealEntry {
	return l.filter(func(MealEntry) bool { return true })
}

// EntriesFor returns the entries logged on date under mealType, in insertion
// order. Dates compare as exact strings.
func (l *Ledger) EntriesFor(date string, mealType MealType) []MealEntry {
	return l.filter(func(e MealEntry) bool {
		return e.Date == date && e.MealType == mealType
	})
}

// EntriesOn returns all entries logged on date.
func (l *Ledger) EntriesOn(date string) []MealEntry {
	return l.filter(func(e MealEntry) bool { return e.Date == date })
}

func (l *Ledger) filter(keep func(MealEntry) bool) []MealEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]MealEntry, 0, len(l.order))
	for _, id := range l.order {
		if e := l.byID[id]; keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// ToggleFavorite removes food from favorites when an item with the same ID is
// present and appends it otherwise. It reports whether food is a favorite
// after the call.
func (l *Ledger) ToggleFavorite(food FoodItem) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.favIDs[food.ID]; ok {
		l.favorites = slices.DeleteFunc(l.favorites, func(f FoodItem) bool { return f.ID == food.ID })
		delete(l.favIDs, food.ID)
		return false
	}

	l.favorites = append(l.favorites, food)
	l.favIDs[food.ID] = struct{}{}
	return true
}

// IsFavorite reports whether a food with foodID is in favorites.
func (l *Ledger) IsFavorite(foodID string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, ok := l.favIDs[foodID]
	return ok
}

// Favorites returns the favorites in the order they were added.
func (l *Ledger) Favorites() []FoodItem {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.favorites)
}

// Snapshot returns a copy of the whole ledger state.
func (l *Ledger) Snapshot() Snapshot {
	return Snapshot{Entries: l.Entries(), Favorites: l.Favorites()}
}

// Restore replaces the ledger state. Entries are validated and must
// carry unique IDs; favorites are deduplicated by ID keeping the first one.
// On error the ledger is left unchanged.
func (l *Ledger) Restore(entries []MealEntry, favs []FoodItem) error {
	order := make([]string, 0, len(entries))
	byID := make(map[string]MealEntry, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			return fmt.Errorf("%w: restored entry has no id", common.ErrorValidation)
		}
		if err := Validate(e); err != nil {
			return fmt.Errorf("entry %s: %w", e.ID, err)
		}
		if _, ok := byID[e.ID]; ok {
			return fmt.Errorf("entry %s: %w", e.ID, common.ErrorAlreadyExists)
		}
		order = append(order, e.ID)
		byID[e.ID] = e
	}

	favorites := make([]FoodItem, 0, len(favs))
	favIDs := make(map[string]struct{}, len(favs))
	for _, f := range favs {
		if _, ok := favIDs[f.ID]; ok {
			continue
		}
		favorites = append(favorites, f)
		favIDs[f.ID] = struct{}{}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.order, l.byID = order, byID
	l.favorites, l.favIDs = favorites, favIDs
	return nil
}
