// Package profile holds the user's body data, goals and daily targets, and
// derives age, BMI, recommended targets and the daily summary from them.
package profile

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/fitcal/internal/common"
	"github.com/go-playground/validator/v10"
)

type Goal string

const (
	GoalLose     Goal = "lose"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
)

type ActivityLevel string

const (
	NotActive  ActivityLevel = "not_active"
	Light      ActivityLevel = "light"
	Active     ActivityLevel = "active"
	VeryActive ActivityLevel = "very_active"
)

type Gender string

const (
	GenderUnset  Gender = ""
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Targets are the daily calorie and macro goals. Macros are in grams.
type Targets struct {
	Calories float64 `json:"calories" validate:"gte=0"`
	Protein  float64 `json:"protein" validate:"gte=0"`
	Carbs    float64 `json:"carbs" validate:"gte=0"`
	Fat      float64 `json:"fat" validate:"gte=0"`
}

// DefaultTargets are used until the user sets their own.
var DefaultTargets = Targets{Calories: 2220, Protein: 150, Carbs: 240, Fat: 80}

type Profile struct {
	Name          string        `json:"name" validate:"required,max=64"`
	Email         string        `json:"email" validate:"required,email"`
	Gender        Gender        `json:"gender" validate:"omitempty,oneof=male female"`
	BirthDay      int           `json:"birth_day" validate:"min=1,max=31"`
	BirthMonth    int           `json:"birth_month" validate:"min=1,max=12"`
	BirthYear     int           `json:"birth_year" validate:"min=1900"`
	HeightCm      float64       `json:"height_cm" validate:"gt=0,lte=300"`
	WeightKg      float64       `json:"weight_kg" validate:"gt=0,lte=500"`
	Goal          Goal          `json:"goal" validate:"oneof=lose maintain gain"`
	ActivityLevel ActivityLevel `json:"activity_level" validate:"oneof=not_active light active very_active"`
	Targets       Targets       `json:"targets"`
}

// Default returns the profile a fresh install starts with.
func Default() Profile {
	return Profile{
		Name:          "User",
		Email:         "user@fitcal.app",
		Gender:        GenderUnset,
		BirthDay:      15,
		BirthMonth:    6,
		BirthYear:     2000,
		HeightCm:      175,
		WeightKg:      75,
		Goal:          GoalLose,
		ActivityLevel: Light,
		Targets:       DefaultTargets,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field ranges and that the birth date exists in the calendar.
func Validate(p Profile) error {
	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", common.ErrorValidation, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	b := p.BirthDate()
	if b.Day() != p.BirthDay || int(b.Month()) != p.BirthMonth {
		return fmt.Errorf("%w: %04d-%02d-%02d is not a calendar date", common.ErrorValidation,
			p.BirthYear, p.BirthMonth, p.BirthDay)
	}
	return nil
}

// BirthDate returns midnight UTC of the birth date. Out-of-range days are
// normalized the way time.Date does it.
func (p Profile) BirthDate() time.Time {
	return time.Date(p.BirthYear, time.Month(p.BirthMonth), p.BirthDay, 0, 0, 0, 0, time.UTC)
}

// ParseGoal accepts the stored goal values.
func ParseGoal(s string) (Goal, error) {
	switch g := Goal(strings.ToLower(strings.TrimSpace(s))); g {
	case GoalLose, GoalMaintain, GoalGain:
		return g, nil
	}
	return "", fmt.Errorf("%w: unknown goal %q", common.ErrorValidation, s)
}

// ParseActivityLevel accepts the stored activity values.
func ParseActivityLevel(s string) (ActivityLevel, error) {
	switch a := ActivityLevel(strings.ToLower(strings.TrimSpace(s))); a {
	case NotActive, Light, Active, VeryActive:
		return a, nil
	}
	return "", fmt.Errorf("%w: unknown activity level %q", common.ErrorValidation, s)
}

// ParseGender accepts male, female, or an empty string for unset.
func ParseGender(s string) (Gender, error) {
	switch g := Gender(strings.ToLower(strings.TrimSpace(s))); g {
	case GenderUnset, GenderMale, GenderFemale:
		return g, nil
	}
	return "", fmt.Errorf("%w: unknown gender %q", common.ErrorValidation, s)
}
