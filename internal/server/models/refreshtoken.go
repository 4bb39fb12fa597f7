package models

import "time"

// RefreshToken is a single-use token that can be exchanged for a new
// access/refresh pair until Expires.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
