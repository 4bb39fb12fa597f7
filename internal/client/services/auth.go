package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/fitcal/internal/authform"
	"github.com/dmitrijs2005/fitcal/internal/client/client"
	"github.com/dmitrijs2005/fitcal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/fitcal/internal/cryptox"
	"github.com/dmitrijs2005/fitcal/internal/dbx"
)

// AuthService defines authentication operations for the CLI.
//
// OnlineLogin and OfflineLogin both return the master key that encrypts
// backups; the key never leaves the client.
type AuthService interface {
	OfflineLogin(ctx context.Context, username string, password []byte) ([]byte, error)
	OnlineLogin(ctx context.Context, username string, password []byte) ([]byte, error)
	Register(ctx context.Context, username string, password []byte) error
	// ResumeSession hands a cached refresh token to the client. It reports
	// whether one was found.
	ResumeSession(ctx context.Context) (bool, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	ClearOfflineData(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
}

// NewAuthService constructs an AuthService bound to the given API client and DB.
func NewAuthService(client client.Client, db *sql.DB) AuthService {
	return &authService{client: client, db: db}
}

func (a *authService) getMetadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(a.db)
}

// OfflineLogin derives a master key from the password and the locally stored
// salt and checks it against the stored verifier. It returns
// client.ErrLocalDataNotAvailable when nothing is cached.
func (a *authService) OfflineLogin(ctx context.Context, username string, password []byte) ([]byte, error) {
	repo := a.getMetadataRepo()

	values := make(map[string][]byte, 3)
	for _, key := range []string{metadata.KeyUsername, metadata.KeySalt, metadata.KeyVerifier} {
		v, err := repo.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, client.ErrLocalDataNotAvailable
		}
		values[key] = v
	}

	if string(values[metadata.KeyUsername]) != username {
		return nil, client.ErrUnauthorized
	}

	masterKeyCandidate := cryptox.DeriveMasterKey(password, values[metadata.KeySalt])
	verifierCandidate := cryptox.MakeVerifier(masterKeyCandidate)

	if subtle.ConstantTimeCompare(values[metadata.KeyVerifier], verifierCandidate) == 0 {
		return nil, client.ErrUnauthorized
	}
	return masterKeyCandidate, nil
}

// OnlineLogin authenticates against the server, caches the offline login data
// and the refresh token, and returns the derived master key.
func (a *authService) OnlineLogin(ctx context.Context, username string, password []byte) ([]byte, error) {
	if err := authform.ValidateEmail(username); err != nil {
		return nil, err
	}

	salt, err := a.client.GetSalt(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get salt error: %w", err)
	}

	masterKeyCandidate := cryptox.DeriveMasterKey(password, salt)
	verifierCandidate := cryptox.MakeVerifier(masterKeyCandidate)

	if err := a.client.Login(ctx, username, verifierCandidate); err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	if err := a.saveOfflineData(ctx, username, salt, verifierCandidate, a.client.RefreshToken()); err != nil {
		return nil, fmt.Errorf("offline data saving error: %w", err)
	}
	return masterKeyCandidate, nil
}

func (a *authService) saveOfflineData(ctx context.Context, username string, salt, verifier []byte, refreshToken string) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, metadata.KeyUsername, []byte(username)); err != nil {
			return err
		}
		if err := repo.Set(ctx, metadata.KeySalt, salt); err != nil {
			return err
		}
		if err := repo.Set(ctx, metadata.KeyVerifier, verifier); err != nil {
			return err
		}
		if refreshToken == "" {
			return nil
		}
		return repo.Set(ctx, metadata.KeyRefreshToken, []byte(refreshToken))
	})
}

// Register creates a new account on the server. The password must pass the
// sign-up rules; only a fresh salt and the verifier leave the machine.
func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	if err := authform.ValidateEmail(username); err != nil {
		return err
	}
	if err := authform.ValidatePassword(string(password)); err != nil {
		return err
	}

	salt := cryptox.NewSalt()
	key := cryptox.DeriveMasterKey(password, salt)
	verifier := cryptox.MakeVerifier(key)

	return a.client.Register(ctx, username, salt, verifier)
}

func (a *authService) ResumeSession(ctx context.Context) (bool, error) {
	token, err := a.getMetadataRepo().Get(ctx, metadata.KeyRefreshToken)
	if err != nil {
		return false, err
	}
	if len(token) == 0 {
		return false, nil
	}
	a.client.ResumeSession(string(token))
	return true, nil
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

// ClearOfflineData forgets the cached credentials and the session. The
// profile and the ledger stay.
func (a *authService) ClearOfflineData(ctx context.Context) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		for _, key := range []string{
			metadata.KeyUsername, metadata.KeySalt, metadata.KeyVerifier,
			metadata.KeyRefreshToken, metadata.KeyBackupVersion,
		} {
			if err := repo.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
}
