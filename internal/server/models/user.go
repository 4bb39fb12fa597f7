// Package models holds the rows the server persists in PostgreSQL.
package models

import "time"

// User is a registered account. Salt and Verifier come from the client's
// key derivation; the server never sees the password.
type User struct {
	ID             string
	UserName       string
	Salt           []byte
	Verifier       []byte
	CurrentVersion int64
	CreatedAt      time.Time
}
