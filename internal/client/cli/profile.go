package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/fitcal/internal/analytics"
	"github.com/dmitrijs2005/fitcal/internal/common"
	"github.com/dmitrijs2005/fitcal/internal/ledger"
	"github.com/dmitrijs2005/fitcal/internal/profile"
)

const profileFields = "name, email, gender, birth, height, weight, goal, activity"

func (a *App) Profile(ctx context.Context, args []string) error {
	p, err := a.profileService.Get(ctx)
	if err != nil {
		return err
	}

	if len(args) > 0 {
		if args[0] != "set" || len(args) < 3 {
			return usage("profile [set <field> <value>], fields: " + profileFields)
		}
		if err := setProfileField(&p, args[1], strings.Join(args[2:], " ")); err != nil {
			return err
		}
		if err := a.profileService.Save(ctx, p); err != nil {
			return err
		}
	}

	gender := string(p.Gender)
	if gender == "" {
		gender = "-"
	}
	a.printf("Name:     %s\n", p.Name)
	a.printf("Email:    %s\n", p.Email)
	a.printf("Gender:   %s\n", gender)
	a.printf("Born:     %04d-%02d-%02d (age %d)\n", p.BirthYear, p.BirthMonth, p.BirthDay, p.AgeAt(a.now()))
	a.printf("Height:   %s cm\n", formatQty(p.HeightCm))
	a.printf("Weight:   %s kg\n", formatQty(p.WeightKg))
	if bmi, err := profile.BMI(p.HeightCm, p.WeightKg); err == nil {
		a.printf("BMI:      %.1f (%s)\n", bmi, profile.BMICategory(bmi))
	}
	a.printf("Goal:     %s\n", p.Goal)
	a.printf("Activity: %s\n", p.ActivityLevel)
	return nil
}

func setProfileField(p *profile.Profile, field, value string) error {
	var err error
	switch strings.ToLower(field) {
	case "name":
		p.Name = value
	case "email":
		p.Email = value
	case "gender":
		p.Gender, err = profile.ParseGender(value)
	case "birth":
		bt, perr := ledger.ParseDate(value)
		if perr != nil {
			return perr
		}
		p.BirthYear, p.BirthMonth, p.BirthDay = bt.Year(), int(bt.Month()), bt.Day()
	case "height":
		p.HeightCm, err = parsePositive(value)
	case "weight":
		p.WeightKg, err = parsePositive(value)
	case "goal":
		p.Goal, err = profile.ParseGoal(value)
	case "activity":
		p.ActivityLevel, err = profile.ParseActivityLevel(value)
	default:
		return fmt.Errorf("%w: unknown field %q, one of: %s", common.ErrorValidation, field, profileFields)
	}
	return err
}

func parsePositive(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %q is not a positive number", common.ErrorValidation, s)
	}
	return v, nil
}

func (a *App) Targets(ctx context.Context, args []string) error {
	var t profile.Targets

	switch {
	case len(args) == 0:
		p, err := a.profileService.Get(ctx)
		if err != nil {
			return err
		}
		t = p.Targets

	case args[0] == "recommend":
		var err error
		if t, err = a.profileService.ApplyRecommended(ctx, a.now()); err != nil {
			return err
		}
		a.printf("Targets updated from your profile\n")

	case args[0] == "set" && len(args) == 5:
		var vals [4]float64
		for i, s := range args[1:] {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil || v < 0 {
				return fmt.Errorf("%w: %q is not a valid amount", common.ErrorValidation, s)
			}
			vals[i] = v
		}
		p, err := a.profileService.Get(ctx)
		if err != nil {
			return err
		}
		p.Targets = profile.Targets{Calories: vals[0], Protein: vals[1], Carbs: vals[2], Fat: vals[3]}
		if err := a.profileService.Save(ctx, p); err != nil {
			return err
		}
		t = p.Targets

	default:
		return usage("targets [recommend | set <kcal> <protein> <carbs> <fat>]")
	}

	a.printf("Daily targets: %.0f kcal  P %.0fg  C %.0fg  F %.0fg\n", t.Calories, t.Protein, t.Carbs, t.Fat)
	return nil
}

func (a *App) Water(ctx context.Context, args []string) error {
	var (
		w   profile.Water
		err error
	)

	op := ""
	if len(args) > 0 && (args[0] == "+" || args[0] == "-") {
		op, args = args[0], args[1:]
	}
	date, err := a.dateArg(args, 0)
	if err != nil {
		return err
	}

	switch op {
	case "+":
		w, err = a.profileService.AddWater(ctx, date)
	case "-":
		w, err = a.profileService.RemoveWater(ctx, date)
	default:
		w, err = a.profileService.Water(ctx, date)
	}
	if err != nil {
		return err
	}

	a.printf("Water %s: %d/%d glasses %s\n", date, w, profile.MaxGlasses, bar(w.Fraction(), profile.MaxGlasses))
	return nil
}

func (a *App) Summary(ctx context.Context, args []string) error {
	date, err := a.dateArg(args, 0)
	if err != nil {
		return err
	}
	s, err := a.profileService.DailySummary(ctx, date)
	if err != nil {
		return err
	}

	a.printf("%s\n", date)
	a.printf("Calories: %.0f / %.0f kcal, %.0f left %s\n",
		s.Consumed.Calories, s.Targets.Calories, s.CaloriesLeft, bar(s.Progress, 20))
	a.printf("Protein:  %.1f / %.0fg, %.1fg left\n", s.Consumed.Protein, s.Targets.Protein, s.ProteinLeft)
	a.printf("Carbs:    %.1f / %.0fg, %.1fg left\n", s.Consumed.Carbs, s.Targets.Carbs, s.CarbsLeft)
	a.printf("Fat:      %.1f / %.0fg, %.1fg left\n", s.Consumed.Fat, s.Targets.Fat, s.FatLeft)
	return nil
}

func (a *App) Week(ctx context.Context, args []string) error {
	period, err := analytics.ParsePeriod(strings.Join(args, " "))
	if err != nil {
		return err
	}
	r, err := analytics.Build(a.ledgerService.Ledger().Entries(), period, a.now())
	if err != nil {
		return err
	}

	a.printf("%s\n", r.Period)
	for _, d := range r.Days {
		a.printf("  %s  %6.0f kcal\n", d.Date, d.Calories)
	}
	a.printf("Average %.0f  Highest %.0f  Lowest %.0f  Total %.0f\n",
		r.Stats.Average, r.Stats.Highest, r.Stats.Lowest, r.Stats.Total)
	return nil
}
