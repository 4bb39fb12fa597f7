package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/fitcal/internal/catalog"
	"github.com/dmitrijs2005/fitcal/internal/common"
	"github.com/dmitrijs2005/fitcal/internal/ledger"
)

// Foods lists the catalog, filtered by the joined args.
func (a *App) Foods(ctx context.Context, args []string) error {
	items := catalog.Search(strings.Join(args, " "))
	if len(items) == 0 {
		a.printf("No foods found\n")
		return nil
	}
	for _, f := range items {
		star := " "
		if a.ledgerService.Ledger().IsFavorite(f.ID) {
			star = "*"
		}
		a.printf("%s %s\n", star, formatFood(f))
	}
	return nil
}

// Add logs a catalog food. After the food id the optional quantity, meal
// type and date may come in any order.
func (a *App) Add(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("add <food-id> [qty] [meal] [date]")
	}
	food, err := catalog.Get(args[0])
	if err != nil {
		return err
	}

	quantity, mealType, date := 1.0, ledger.Breakfast, a.today()
	for _, arg := range args[1:] {
		if _, err := ledger.ParseDate(arg); err == nil {
			date = arg
			continue
		}
		if q, err := strconv.ParseFloat(arg, 64); err == nil {
			quantity = q
			continue
		}
		mt, err := ledger.ParseMealType(arg)
		if err != nil {
			return err
		}
		mealType = mt
	}

	e, err := a.ledgerService.Add(ctx, food, quantity, mealType, date)
	if err != nil {
		return err
	}
	a.log.Debug(ctx, "entry added", "id", e.ID, "food", food.ID)
	a.printf("Added %s x%s to %s on %s (%.0f kcal)\n",
		food.Name, formatQty(quantity), mealType, date, ledger.SumCalories([]ledger.MealEntry{e}))
	return nil
}

// Day prints every meal of a date with its entries numbered per meal.
func (a *App) Day(ctx context.Context, args []string) error {
	date, err := a.dateArg(args, 0)
	if err != nil {
		return err
	}

	l := a.ledgerService.Ledger()
	a.printf("%s\n", date)
	for _, mt := range ledger.MealTypes {
		view := l.EntriesFor(date, mt)
		a.printf("%s: %.0f kcal\n", mt, ledger.SumCalories(view))
		for i, e := range view {
			a.printf("%s\n", formatEntry(i+1, e))
		}
	}
	a.printf("Total: %s\n", formatTotals(ledger.Sum(l.EntriesOn(date))))
	return nil
}

// Remove deletes the n-th (1-based, as printed by Day) entry of a meal.
func (a *App) Remove(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usage("remove <meal> <n> [date]")
	}
	mt, err := ledger.ParseMealType(args[0])
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: %q is not a number", common.ErrorValidation, args[1])
	}
	date, err := a.dateArg(args, 2)
	if err != nil {
		return err
	}

	e, err := a.ledgerService.RemoveFromView(ctx, date, mt, n-1)
	if err != nil {
		return err
	}
	a.printf("Removed %s x%s from %s on %s\n", e.Food.Name, formatQty(e.Quantity), mt, date)
	return nil
}

func (a *App) Fav(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("fav <food-id>")
	}
	food, err := catalog.Get(args[0])
	if err != nil {
		return err
	}
	on, err := a.ledgerService.ToggleFavorite(ctx, food)
	if err != nil {
		return err
	}
	if on {
		a.printf("%s added to favorites\n", food.Name)
	} else {
		a.printf("%s removed from favorites\n", food.Name)
	}
	return nil
}

func (a *App) Favs(ctx context.Context, args []string) error {
	items := catalog.FilterByName(a.ledgerService.Ledger().Favorites(), strings.Join(args, " "))
	if len(items) == 0 {
		a.printf("No favorites yet\n")
		return nil
	}
	for _, f := range items {
		a.printf("* %s\n", formatFood(f))
	}
	return nil
}
