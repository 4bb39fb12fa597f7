package ledger

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/fitcal/internal/common"
)

// DateOf returns the calendar date of t, in t's own location, as YYYY-MM-DD.
func DateOf(t time.Time) string {
	return t.Format(common.DateLayout)
}

// ParseDate checks that s is a valid YYYY-MM-DD date and returns the time at
// midnight UTC of that day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(common.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", common.ErrorValidation, s)
	}
	return t, nil
}

// AddDays shifts a YYYY-MM-DD date by n days.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return DateOf(t.AddDate(0, 0, n)), nil
}
