package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/fitcal/internal/authform"
	"github.com/dmitrijs2005/fitcal/internal/client/client"
	"github.com/dmitrijs2005/fitcal/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register runs the sign-up form: name, email, password and confirmation.
// On success the name and email are copied into the local profile.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirm, err := getPassword("Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if err := authform.ValidateSignUp(name, email, string(password), string(confirm)); err != nil {
		for _, r := range authform.PasswordChecklist(string(password)) {
			mark := "✗"
			if r.Passed {
				mark = "✓"
			}
			a.printf("  %s %s\n", mark, r.Label)
		}
		return err
	}

	if err := a.authService.Register(ctx, email, password); err != nil {
		return err
	}

	p, err := a.profileService.Get(ctx)
	if err == nil {
		p.Name, p.Email = name, email
		err = a.profileService.Save(ctx, p)
	}
	if err != nil {
		a.log.Warn(ctx, "profile not updated after registration", "error", err)
	}

	a.printf("Success! You can log in now.\n")
	return nil
}

// Login prompts for credentials and tries the server first. When the server
// is unreachable it falls back to the locally cached credentials and resumes
// the stored session, so backups work once the server is back.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := authform.ValidateSignIn(userName, string(password)); err != nil {
		return err
	}

	var mode Mode
	masterKey, err := a.authService.OnlineLogin(ctx, userName, password)
	switch {
	case err == nil:
		mode = ModeOnline
	case errors.Is(err, client.ErrUnavailable):
		a.printf("Server unavailable, trying offline login...\n")
		masterKey, err = a.authService.OfflineLogin(ctx, userName, password)
		if err != nil {
			a.setMode(ModeDisabled)
			return err
		}
		if _, rerr := a.authService.ResumeSession(ctx); rerr != nil {
			a.log.Warn(ctx, "session not resumed", "error", rerr)
		}
		mode = ModeOffline
	default:
		return err
	}

	a.mu.Lock()
	a.masterKey, a.userName = masterKey, userName
	a.mu.Unlock()
	a.setMode(mode)

	a.printf("Logged in as %s (%s)\n", userName, mode)
	return nil
}

// Logout forgets the cached credentials and the in-memory master key. The
// ledger stays on this machine.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.ClearOfflineData(ctx); err != nil {
		return err
	}

	a.mu.Lock()
	common.WipeByteArray(a.masterKey)
	a.masterKey, a.userName = nil, ""
	a.mu.Unlock()

	a.printf("Logged out\n")
	return nil
}
