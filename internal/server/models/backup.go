package models

import "time"

// Backup describes one stored ledger snapshot. The encrypted payload lives
// in object storage under ObjectKey.
type Backup struct {
	ID         string
	UserID     string
	Version    int64
	ObjectKey  string
	Nonce      []byte
	EntryCount int
	SizeBytes  int64
	CreatedAt  time.Time
}
