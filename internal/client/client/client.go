package client

import (
	"context"
	"time"
)

// Backup is one encrypted ledger snapshot as stored on the server.
type Backup struct {
	Version    int64
	Ciphertext []byte
	Nonce      []byte
	EntryCount int
	CreatedAt  time.Time
}

// Client is the transport-agnostic API of the fitcal server.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Register(ctx context.Context, username string, salt []byte, verifier []byte) error
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, verifier []byte) error

	// RefreshToken returns the current refresh token, for persisting a session.
	RefreshToken() string
	// ResumeSession installs a stored refresh token; the next guarded call
	// exchanges it for an access token.
	ResumeSession(refreshToken string)

	// PushBackup uploads b on top of baseVersion and returns the stored version.
	PushBackup(ctx context.Context, baseVersion int64, b Backup) (int64, time.Time, error)
	// PullBackup downloads the latest backup. common.ErrorNotFound when there is none.
	PullBackup(ctx context.Context) (*Backup, error)
}
