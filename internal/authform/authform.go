// Package authform validates the sign-up and sign-in forms before any
// credentials leave the client.
package authform

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/fitcal/internal/common"
)

const PasswordMinLength = 8

var (
	emailRe     = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	upperRe     = regexp.MustCompile(`[A-Z]`)
	lowerRe     = regexp.MustCompile(`[a-z]`)
	digitRe     = regexp.MustCompile(`\d`)
	specialRe   = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?]`)
	minLengthOK = func(s string) bool { return utf8.RuneCountInString(s) >= PasswordMinLength }
)

// Rule is one password requirement. Label is shown in the checklist and
// Hint when the rule is the first one failing.
type Rule struct {
	Label string
	Hint  string
	Test  func(string) bool
}

var passwordRules = []Rule{
	{fmt.Sprintf("%d+ characters", PasswordMinLength), fmt.Sprintf("At least %d characters", PasswordMinLength), minLengthOK},
	{"Uppercase letter", "Add an uppercase letter", upperRe.MatchString},
	{"Lowercase letter", "Add a lowercase letter", lowerRe.MatchString},
	{"Digit", "Add a digit", digitRe.MatchString},
	{"Special character", "Add a special character (!@#$…)", specialRe.MatchString},
}

// RuleResult is a checklist line.
type RuleResult struct {
	Label  string
	Passed bool
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", common.ErrorValidation, msg)
}

func ValidateEmail(s string) error {
	if s == "" {
		return invalid("Email is required")
	}
	if !emailRe.MatchString(s) {
		return invalid("Invalid email format")
	}
	return nil
}

// ValidatePassword reports the first failing rule.
func ValidatePassword(s string) error {
	if s == "" {
		return invalid("Password is required")
	}
	for _, r := range passwordRules {
		if !r.Test(s) {
			return invalid(r.Hint)
		}
	}
	return nil
}

// PasswordChecklist evaluates every rule against s.
func PasswordChecklist(s string) []RuleResult {
	out := make([]RuleResult, 0, len(passwordRules))
	for _, r := range passwordRules {
		out = append(out, RuleResult{Label: r.Label, Passed: r.Test(s)})
	}
	return out
}

// ValidateSignUp checks the whole sign-up form in display order.
func ValidateSignUp(name, email, password, confirm string) error {
	if strings.TrimSpace(name) == "" {
		return invalid("Name is required")
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}
	if password != confirm {
		return invalid("Passwords don't match")
	}
	return nil
}

// ValidateSignIn only requires both fields; the server decides the rest.
func ValidateSignIn(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return invalid("Email is required")
	}
	if password == "" {
		return invalid("Password is required")
	}
	return nil
}
