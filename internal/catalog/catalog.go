// Package catalog holds the built-in food reference table.
package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/fitcal/internal/common"
	"github.com/dmitrijs2005/fitcal/internal/ledger"
)

var foods = []ledger.FoodItem{
	{ID: "1", Name: "Chicken Breast", Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6, Serving: "100g"},
	{ID: "2", Name: "Rice (White)", Calories: 130, Protein: 2.7, Carbs: 28, Fat: 0.3, Serving: "100g"},
	{ID: "3", Name: "Banana", Calories: 89, Protein: 1.1, Carbs: 23, Fat: 0.3, Serving: "1 medium"},
	{ID: "4", Name: "Eggs", Calories: 155, Protein: 13, Carbs: 1.1, Fat: 11, Serving: "2 large"},
	{ID: "5", Name: "Oatmeal", Calories: 68, Protein: 2.4, Carbs: 12, Fat: 1.4, Serving: "100g"},
	{ID: "6", Name: "Greek Yogurt", Calories: 100, Protein: 17, Carbs: 6, Fat: 0.7, Serving: "170g"},
	{ID: "7", Name: "Salmon", Calories: 208, Protein: 20, Carbs: 0, Fat: 13, Serving: "100g"},
	{ID: "8", Name: "Broccoli", Calories: 34, Protein: 2.8, Carbs: 7, Fat: 0.4, Serving: "100g"},
	{ID: "9", Name: "Sweet Potato", Calories: 86, Protein: 1.6, Carbs: 20, Fat: 0.1, Serving: "100g"},
	{ID: "10", Name: "Almonds", Calories: 579, Protein: 21, Carbs: 22, Fat: 50, Serving: "100g"},
	{ID: "11", Name: "Apple", Calories: 52, Protein: 0.3, Carbs: 14, Fat: 0.2, Serving: "1 medium"},
	{ID: "12", Name: "Avocado", Calories: 160, Protein: 2, Carbs: 9, Fat: 15, Serving: "1/2 fruit"},
	{ID: "13", Name: "Turkey Breast", Calories: 135, Protein: 30, Carbs: 0, Fat: 1, Serving: "100g"},
	{ID: "14", Name: "Cottage Cheese", Calories: 98, Protein: 11, Carbs: 3.4, Fat: 4.3, Serving: "100g"},
	{ID: "15", Name: "Brown Rice", Calories: 112, Protein: 2.6, Carbs: 24, Fat: 0.9, Serving: "100g"},
	{ID: "16", Name: "Whole Wheat Bread", Calories: 247, Protein: 13, Carbs: 41, Fat: 3.4, Serving: "100g"},
	{ID: "17", Name: "Pasta", Calories: 131, Protein: 5, Carbs: 25, Fat: 1.1, Serving: "100g"},
	{ID: "18", Name: "Beef (Lean)", Calories: 250, Protein: 26, Carbs: 0, Fat: 15, Serving: "100g"},
	{ID: "19", Name: "Tuna", Calories: 132, Protein: 28, Carbs: 0, Fat: 1.3, Serving: "100g"},
	{ID: "20", Name: "Milk (Whole)", Calories: 61, Protein: 3.2, Carbs: 4.8, Fat: 3.3, Serving: "100ml"},
	{ID: "21", Name: "Peanut Butter", Calories: 588, Protein: 25, Carbs: 20, Fat: 50, Serving: "100g"},
	{ID: "22", Name: "Spinach", Calories: 23, Protein: 2.9, Carbs: 3.6, Fat: 0.4, Serving: "100g"},
	{ID: "23", Name: "Blueberries", Calories: 57, Protein: 0.7, Carbs: 14, Fat: 0.3, Serving: "100g"},
	{ID: "24", Name: "Orange", Calories: 47, Protein: 0.9, Carbs: 12, Fat: 0.1, Serving: "1 medium"},
	{ID: "25", Name: "Protein Shake", Calories: 120, Protein: 24, Carbs: 3, Fat: 1.5, Serving: "1 scoop"},
}

// All returns a copy of the whole table in id order.
func All() []ledger.FoodItem {
	return slices.Clone(foods)
}

// Get looks a food up by id.
func Get(id string) (ledger.FoodItem, error) {
	for _, f := range foods {
		if f.ID == id {
			return f, nil
		}
	}
	return ledger.FoodItem{}, fmt.Errorf("food %s: %w", id, common.ErrorNotFound)
}

// Search returns the foods whose name contains query, ignoring case.
// An empty query returns the whole table.
func Search(query string) []ledger.FoodItem {
	return FilterByName(foods, query)
}

// FilterByName applies the Search match to an arbitrary list, such as favorites.
func FilterByName(items []ledger.FoodItem, query string) []ledger.FoodItem {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]ledger.FoodItem, 0, len(items))
	for _, f := range items {
		if q == "" || strings.Contains(strings.ToLower(f.Name), q) {
			out = append(out, f)
		}
	}
	return out
}
