// Package cli provides the interactive fitcal command-line client.
//
// It wires configuration, the local database, the client services and an
// interactive REPL. The meal ledger, profile and water log work without an
// account; register/login enable encrypted backups to the server. A
// background watcher tracks whether the server is reachable.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
