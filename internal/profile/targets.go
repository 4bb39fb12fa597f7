package profile

import (
	"math"
	"time"
)

var activityFactors = map[ActivityLevel]float64{
	NotActive:  1.2,
	Light:      1.375,
	Active:     1.55,
	VeryActive: 1.725,
}

var goalAdjustments = map[Goal]float64{
	GoalLose:     -500,
	GoalMaintain: 0,
	GoalGain:     300,
}

// Macro energy split, by share of calories.
const (
	proteinShare = 0.30
	carbsShare   = 0.45
	fatShare     = 0.25

	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

// BMR is the Mifflin-St Jeor basal metabolic rate. With no gender set the
// midpoint of the male and female constants is used.
func BMR(weightKg, heightCm float64, age int, g Gender) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	switch g {
	case GenderMale:
		return base + 5
	case GenderFemale:
		return base - 161
	default:
		return base - 78
	}
}

// Recommend derives daily targets from the profile as of now. Calories are
// rounded first and the macros are split from the rounded value.
func Recommend(p Profile, now time.Time) Targets {
	factor, ok := activityFactors[p.ActivityLevel]
	if !ok {
		factor = activityFactors[Light]
	}

	kcal := BMR(p.WeightKg, p.HeightCm, p.AgeAt(now), p.Gender)*factor + goalAdjustments[p.Goal]
	kcal = math.Max(math.Round(kcal), 0)

	return Targets{
		Calories: kcal,
		Protein:  math.Round(kcal * proteinShare / kcalPerGramProtein),
		Carbs:    math.Round(kcal * carbsShare / kcalPerGramCarbs),
		Fat:      math.Round(kcal * fatShare / kcalPerGramFat),
	}
}
