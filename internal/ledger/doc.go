// Package ledger implements the meal ledger: the ordered log of meal entries
// for one user session plus the set of favorite foods.
//
// # Overview
//
// A Ledger keeps entries in insertion order. Every entry carries a stable
// identifier assigned when it is added, so callers that show a filtered view
// (one date, one meal type) can delete exactly the entry they display by ID
// instead of resolving it by value. Position-based removal is still
// available for callers that address the absolute sequence.
//
// Favorites are a set of FoodItem keyed by FoodItem.ID; insertion order is
// kept for display only.
//
// # Aggregates
//
// SumCalories, SumMacro and Sum compute Σ food.<field> * quantity over any
// slice of entries. They do not round and do not validate quantities.
//
// # Concurrency
//
// A Ledger is safe for concurrent use. Every method is a single atomic step
// under an internal RWMutex; returned slices are copies.
//
// Typical usage
//
//	l := ledger.New()
//	e, _ := l.Add(ledger.MealEntry{Food: egg, Quantity: 1, MealType: ledger.Breakfast, Date: "2026-02-10"})
//	breakfast := l.EntriesFor("2026-02-10", ledger.Breakfast)
//	kcal := ledger.SumCalories(breakfast)
//	_, _ = l.RemoveByID(e.ID)
package ledger
