package rpc

import "time"

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,email"`
	Salt     []byte `json:"salt" validate:"required,min=16"`
	Verifier []byte `json:"verifier" validate:"required,len=32"`
}

type RegisterResponse struct {
	UserID string `json:"user_id"`
}

type GetSaltRequest struct {
	Username string `json:"username" validate:"required"`
}

type GetSaltResponse struct {
	Salt []byte `json:"salt"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Verifier []byte `json:"verifier" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// PushBackupRequest uploads an encrypted ledger snapshot. BaseVersion is the
// version the client last pushed or pulled; 0 means none.
type PushBackupRequest struct {
	BaseVersion int64  `json:"base_version" validate:"gte=0"`
	Ciphertext  []byte `json:"ciphertext" validate:"required"`
	Nonce       []byte `json:"nonce" validate:"required"`
	EntryCount  int    `json:"entry_count" validate:"gte=0"`
}

type PushBackupResponse struct {
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}

type PullBackupRequest struct{}

type PullBackupResponse struct {
	Version    int64     `json:"version"`
	Ciphertext []byte    `json:"ciphertext"`
	Nonce      []byte    `json:"nonce"`
	EntryCount int       `json:"entry_count"`
	CreatedAt  time.Time `json:"created_at"`
}
