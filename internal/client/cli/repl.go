package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Foods(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Day(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	Fav(ctx context.Context, args []string) error
	Favs(ctx context.Context, args []string) error

	Profile(ctx context.Context, args []string) error
	Targets(ctx context.Context, args []string) error
	Water(ctx context.Context, args []string) error
	Summary(ctx context.Context, args []string) error
	Week(ctx context.Context, args []string) error

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Backup(ctx context.Context) error
	Restore(ctx context.Context) error
}

const helpText = `Meals:
  foods [query]                      search the food catalog
  add <food-id> [qty] [meal] [date]  log a food (defaults: 1, breakfast, today)
  day [date]                         meals of a day
  remove <meal> <n> [date]           remove the n-th entry of a meal (alias rm)
  fav <food-id>                      toggle a favorite
  favs [query]                       list favorites
Profile:
  profile [set <field> <value>]      show or edit the profile
  targets [recommend | set <kcal> <protein> <carbs> <fat>]
  water [+|-] [date]                 water intake
  summary [date]                     calories and macros left
  week [this|last|2w]                calorie statistics
Account:
  register, login, logout
  backup, restore                    encrypted backup on the server
  exit | quit`

// runREPL starts a simple read–eval–print loop for the fitcal CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Command errors are printed and the loop
// continues. The loop exits on EOF or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("fitcal%s> ", prefixed(statusFn())))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpText)

		case "foods":
			cmdErr = a.Foods(ctx, args)
		case "add":
			cmdErr = a.Add(ctx, args)
		case "day":
			cmdErr = a.Day(ctx, args)
		case "remove", "rm":
			cmdErr = a.Remove(ctx, args)
		case "fav":
			cmdErr = a.Fav(ctx, args)
		case "favs":
			cmdErr = a.Favs(ctx, args)

		case "profile":
			cmdErr = a.Profile(ctx, args)
		case "targets":
			cmdErr = a.Targets(ctx, args)
		case "water":
			cmdErr = a.Water(ctx, args)
		case "summary":
			cmdErr = a.Summary(ctx, args)
		case "week":
			cmdErr = a.Week(ctx, args)

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "backup":
			cmdErr = requireLogin(a, func() error { return a.Backup(ctx) })
		case "restore":
			cmdErr = requireLogin(a, func() error { return a.Restore(ctx) })

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
		if err != nil {
			return
		}
	}
}

var errNotLoggedIn = errors.New("log in first")

func requireLogin(a execIface, fn func() error) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	return fn()
}

func prefixed(s string) string {
	if s == "" {
		return ""
	}
	return " " + s
}
