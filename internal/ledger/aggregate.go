package ledger

// SumCalories returns Σ food.calories * quantity.
func SumCalories(entries []MealEntry) float64 {
	return SumMacro(entries, Calories)
}

// SumMacro returns Σ food.<macro> * quantity.
func SumMacro(entries []MealEntry, macro Macro) float64 {
	var total float64
	for _, e := range entries {
		total += macro.Of(e.Food) * e.Quantity
	}
	return total
}

// Sum returns all four totals in one pass.
func Sum(entries []MealEntry) Totals {
	var t Totals
	for _, e := range entries {
		t.Calories += e.Food.Calories * e.Quantity
		t.Protein += e.Food.Protein * e.Quantity
		t.Carbs += e.Food.Carbs * e.Quantity
		t.Fat += e.Food.Fat * e.Quantity
	}
	return t
}
