package profile

import (
	"math"

	"github.com/dmitrijs2005/fitcal/internal/ledger"
)

// DailySummary compares one day's consumption with the targets.
type DailySummary struct {
	Consumed ledger.Totals `json:"consumed"`
	Targets  Targets       `json:"targets"`

	CaloriesLeft float64 `json:"calories_left"`
	ProteinLeft  float64 `json:"protein_left"`
	CarbsLeft    float64 `json:"carbs_left"`
	FatLeft      float64 `json:"fat_left"`

	// Progress is consumed/target calories in [0, 1].
	Progress float64 `json:"progress"`
}

func Summarize(consumed ledger.Totals, t Targets) DailySummary {
	return DailySummary{
		Consumed:     consumed,
		Targets:      t,
		CaloriesLeft: left(t.Calories, consumed.Calories),
		ProteinLeft:  left(t.Protein, consumed.Protein),
		CarbsLeft:    left(t.Carbs, consumed.Carbs),
		FatLeft:      left(t.Fat, consumed.Fat),
		Progress:     Progress(consumed.Calories, t.Calories),
	}
}

func left(target, consumed float64) float64 {
	return math.Max(target-consumed, 0)
}

// Progress returns consumed/target clamped to [0, 1]. A zero target gives 0.
func Progress(consumed, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return math.Min(math.Max(consumed/target, 0), 1)
}
