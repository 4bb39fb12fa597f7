package ledger

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fitcal/internal/common"
)

// FoodItem is a nutritional reference record. Values are per serving.
type FoodItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Serving  string  `json:"serving"`
}

// MealType is the logging bucket of an entry within a day.
type MealType string

const (
	Breakfast MealType = "Breakfast"
	Lunch     MealType = "Lunch"
	Dinner    MealType = "Dinner"
	Snacks    MealType = "Snacks"
)

// MealTypes lists all meal types in display order.
var MealTypes = []MealType{Breakfast, Lunch, Dinner, Snacks}

// Valid reports whether m is one of the known meal types.
func (m MealType) Valid() bool {
	switch m {
	case Breakfast, Lunch, Dinner, Snacks:
		return true
	}
	return false
}

// ParseMealType matches s case-insensitively against the known meal types.
// "snack" is accepted as an alias for Snacks.
func ParseMealType(s string) (MealType, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, m := range MealTypes {
		if strings.ToLower(string(m)) == v {
			return m, nil
		}
	}
	if v == "snack" {
		return Snacks, nil
	}
	return "", fmt.Errorf("%w: unknown meal type %q", common.ErrorValidation, s)
}

// MealEntry is one logged consumption event. Food is embedded by value.
type MealEntry struct {
	ID       string   `json:"id"`
	Food     FoodItem `json:"food"`
	Quantity float64  `json:"quantity"`
	MealType MealType `json:"meal_type"`
	Date     string   `json:"date"`
}

// Macro selects a per-serving field of FoodItem.
type Macro string

const (
	Calories Macro = "calories"
	Protein  Macro = "protein"
	Carbs    Macro = "carbs"
	Fat      Macro = "fat"
)

// Of returns the value of macro m in f. Unknown macros yield 0.
func (m Macro) Of(f FoodItem) float64 {
	switch m {
	case Calories:
		return f.Calories
	case Protein:
		return f.Protein
	case Carbs:
		return f.Carbs
	case Fat:
		return f.Fat
	}
	return 0
}

// Totals holds summed calories and macros.
type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Snapshot is a point-in-time copy of the ledger state.
type Snapshot struct {
	Entries   []MealEntry `json:"entries"`
	Favorites []FoodItem  `json:"favorites"`
}
