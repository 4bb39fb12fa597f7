// Package services contains the application services of the fitcal CLI.
//
// LedgerService keeps the in-memory meal ledger and the local database in
// step. ProfileService owns the profile, targets and water intake.
// AuthService talks to the server for register/login and caches the data
// needed for offline login. BackupService encrypts the ledger with the
// session master key and pushes or pulls it.
package services
