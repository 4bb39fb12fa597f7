// Package analytics builds per-day calorie series and summary statistics
// over Monday-based weeks.
package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/fitcal/internal/common"
	"github.com/dmitrijs2005/fitcal/internal/ledger"
)

// WeekDays returns the seven dates, Monday first, of the week that contains
// date shifted by offset weeks.
func WeekDays(date string, offset int) ([]string, error) {
	t, err := ledger.ParseDate(date)
	if err != nil {
		return nil, err
	}

	// time.Sunday is 0; move it to the end of the week.
	back := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, offset*7-back)

	days := make([]string, 7)
	for i := range days {
		days[i] = ledger.DateOf(monday.AddDate(0, 0, i))
	}
	return days, nil
}

// DayTotal is the calories logged on one date.
type DayTotal struct {
	Date     string  `json:"date"`
	Calories float64 `json:"calories"`
}

// DailyCalories sums calories per date, in the order of days. Dates with no
// entries yield 0.
func DailyCalories(entries []ledger.MealEntry, days []string) []DayTotal {
	byDate := make(map[string][]ledger.MealEntry, len(days))
	for _, e := range entries {
		byDate[e.Date] = append(byDate[e.Date], e)
	}

	out := make([]DayTotal, len(days))
	for i, d := range days {
		out[i] = DayTotal{Date: d, Calories: ledger.SumCalories(byDate[d])}
	}
	return out
}

type Stats struct {
	Average float64 `json:"average"`
	Highest float64 `json:"highest"`
	Lowest  float64 `json:"lowest"`
	Total   float64 `json:"total"`
}

// Summarize computes Stats over the series. An empty series gives zeros.
func Summarize(series []DayTotal) Stats {
	if len(series) == 0 {
		return Stats{}
	}

	s := Stats{Highest: series[0].Calories, Lowest: series[0].Calories}
	for _, d := range series {
		s.Total += d.Calories
		s.Highest = max(s.Highest, d.Calories)
		s.Lowest = min(s.Lowest, d.Calories)
	}
	s.Average = s.Total / float64(len(series))
	return s
}

// Period is one of the calorie chart ranges.
type Period string

const (
	ThisWeek Period = "This Week"
	LastWeek Period = "Last Week"
	TwoWeeks Period = "2 Weeks"
)

var Periods = []Period{ThisWeek, LastWeek, TwoWeeks}

// ParsePeriod accepts the display names, case-insensitively, and the short
// forms "this", "last" and "2w".
func ParsePeriod(s string) (Period, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "this", "week", "":
		return ThisWeek, nil
	case "last":
		return LastWeek, nil
	case "2w", "two":
		return TwoWeeks, nil
	}
	for _, p := range Periods {
		if strings.ToLower(string(p)) == v {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown period %q", common.ErrorValidation, s)
}

// Days resolves p to its dates relative to today. TwoWeeks covers last week
// and this week.
func (p Period) Days(today string) ([]string, error) {
	switch p {
	case ThisWeek:
		return WeekDays(today, 0)
	case LastWeek:
		return WeekDays(today, -1)
	case TwoWeeks:
		last, err := WeekDays(today, -1)
		if err != nil {
			return nil, err
		}
		this, err := WeekDays(today, 0)
		if err != nil {
			return nil, err
		}
		return append(last, this...), nil
	}
	return nil, fmt.Errorf("%w: unknown period %q", common.ErrorValidation, p)
}

// Report is the calorie chart for one period.
type Report struct {
	Period Period     `json:"period"`
	Days   []DayTotal `json:"days"`
	Stats  Stats      `json:"stats"`
}

// Build computes the report for p as of now.
func Build(entries []ledger.MealEntry, p Period, now time.Time) (Report, error) {
	days, err := p.Days(ledger.DateOf(now))
	if err != nil {
		return Report{}, err
	}
	series := DailyCalories(entries, days)
	return Report{Period: p, Days: series, Stats: Summarize(series)}, nil
}
