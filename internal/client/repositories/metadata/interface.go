// Package metadata is a small key/value store in the local database. It
// keeps the profile, the session tokens and the backup bookkeeping.
package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeyProfile       = "profile"
	KeyUsername      = "username"
	KeySalt          = "salt"
	KeyVerifier      = "verifier"
	KeyRefreshToken  = "refresh_token"
	KeyBackupVersion = "backup_version"
)

type Repository interface {
	// Get returns (nil, nil) for a missing key.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
