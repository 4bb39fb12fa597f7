package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/fitcal/internal/common"
	"github.com/dmitrijs2005/fitcal/internal/ledger"
)

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func usage(s string) error {
	return fmt.Errorf("%w: usage: %s", common.ErrorValidation, s)
}

// dateArg returns args[i] as a date, or today when absent.
func (a *App) dateArg(args []string, i int) (string, error) {
	if len(args) <= i {
		return a.today(), nil
	}
	if _, err := ledger.ParseDate(args[i]); err != nil {
		return "", err
	}
	return args[i], nil
}

func formatQty(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func formatFood(f ledger.FoodItem) string {
	return fmt.Sprintf("%-3s %-22s %5.0f kcal  P %.1fg  C %.1fg  F %.1fg  per %s",
		f.ID, f.Name, f.Calories, f.Protein, f.Carbs, f.Fat, f.Serving)
}

func formatEntry(n int, e ledger.MealEntry) string {
	return fmt.Sprintf("  %d. %s x%s (%s)  %.0f kcal",
		n, e.Food.Name, formatQty(e.Quantity), e.Food.Serving, ledger.SumCalories([]ledger.MealEntry{e}))
}

func formatTotals(t ledger.Totals) string {
	return fmt.Sprintf("%.0f kcal  P %.1fg  C %.1fg  F %.1fg", t.Calories, t.Protein, t.Carbs, t.Fat)
}

func bar(fraction float64, width int) string {
	n := int(fraction*float64(width) + 0.5)
	n = max(0, min(n, width))
	return "[" + strings.Repeat("#", n) + strings.Repeat(".", width-n) + "]"
}
