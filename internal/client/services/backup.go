package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/fitcal/internal/client/client"
	"github.com/dmitrijs2005/fitcal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/fitcal/internal/common"
	"github.com/dmitrijs2005/fitcal/internal/cryptox"
	"github.com/dmitrijs2005/fitcal/internal/dbx"
	"github.com/dmitrijs2005/fitcal/internal/ledger"
	"github.com/dmitrijs2005/fitcal/internal/profile"
)

// BackupStatus describes the last backup this client pushed or pulled.
type BackupStatus struct {
	Version    int64
	EntryCount int
	CreatedAt  time.Time
}

// backupPayload is what gets sealed into a backup. Profile is nil in
// backups made before it was included; such backups keep the local profile.
type backupPayload struct {
	Ledger  ledger.Snapshot  `json:"ledger"`
	Profile *profile.Profile `json:"profile,omitempty"`
}

type BackupService interface {
	// Push uploads the encrypted ledger and profile on top of the last known
	// version. A newer backup on the server yields common.ErrVersionConflict.
	Push(ctx context.Context, masterKey []byte) (BackupStatus, error)
	// Pull downloads the latest backup and restores the ledger and profile
	// from it in one transaction.
	Pull(ctx context.Context, masterKey []byte) (BackupStatus, error)
	// Version is the last version known locally, 0 before the first backup.
	Version(ctx context.Context) (int64, error)
}

type backupService struct {
	client   client.Client
	db       *sql.DB
	ledger   LedgerService
	profiles ProfileService
}

func NewBackupService(client client.Client, db *sql.DB, ledger LedgerService, profiles ProfileService) BackupService {
	return &backupService{client: client, db: db, ledger: ledger, profiles: profiles}
}

func (s *backupService) Version(ctx context.Context) (int64, error) {
	raw, err := metadata.NewSQLiteRepository(s.db).Get(ctx, metadata.KeyBackupVersion)
	if err != nil {
		return 0, err
	}
	if raw == nil {
		return 0, nil
	}
	v, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed backup version %q: %w", raw, err)
	}
	return v, nil
}

func (s *backupService) setVersion(ctx context.Context, v int64) error {
	return metadata.NewSQLiteRepository(s.db).Set(ctx, metadata.KeyBackupVersion, []byte(strconv.FormatInt(v, 10)))
}

func (s *backupService) Push(ctx context.Context, masterKey []byte) (BackupStatus, error) {
	base, err := s.Version(ctx)
	if err != nil {
		return BackupStatus{}, err
	}

	p, err := s.profiles.Get(ctx)
	if err != nil {
		return BackupStatus{}, err
	}
	snap := s.ledger.Ledger().Snapshot()
	ct, nonce, err := cryptox.EncryptJSON(backupPayload{Ledger: snap, Profile: &p}, masterKey)
	if err != nil {
		return BackupStatus{}, fmt.Errorf("encryption error: %w", err)
	}

	v, createdAt, err := s.client.PushBackup(ctx, base, client.Backup{
		Ciphertext: ct,
		Nonce:      nonce,
		EntryCount: len(snap.Entries),
	})
	if err != nil {
		return BackupStatus{}, fmt.Errorf("push error: %w", err)
	}

	if err := s.setVersion(ctx, v); err != nil {
		return BackupStatus{}, err
	}
	return BackupStatus{Version: v, EntryCount: len(snap.Entries), CreatedAt: createdAt}, nil
}

func (s *backupService) Pull(ctx context.Context, masterKey []byte) (BackupStatus, error) {
	b, err := s.client.PullBackup(ctx)
	if err != nil {
		return BackupStatus{}, fmt.Errorf("pull error: %w", err)
	}

	var payload backupPayload
	if err := cryptox.DecryptJSON(b.Ciphertext, b.Nonce, masterKey, &payload); err != nil {
		if errors.Is(err, cryptox.ErrDecrypt) {
			return BackupStatus{}, fmt.Errorf("%w: backup was made with another key", common.ErrorUnauthorized)
		}
		return BackupStatus{}, err
	}

	var saveProfile func(ctx context.Context, tx dbx.DBTX) error
	if payload.Profile != nil {
		if err := profile.Validate(*payload.Profile); err != nil {
			return BackupStatus{}, fmt.Errorf("backup profile: %w", err)
		}
		saveProfile = func(ctx context.Context, tx dbx.DBTX) error {
			return metadata.SaveJSON(ctx, metadata.NewSQLiteRepository(tx), metadata.KeyProfile, payload.Profile)
		}
	}

	snap := payload.Ledger
	if err := s.ledger.RestoreWith(ctx, snap, saveProfile); err != nil {
		return BackupStatus{}, err
	}
	if err := s.setVersion(ctx, b.Version); err != nil {
		return BackupStatus{}, err
	}
	return BackupStatus{Version: b.Version, EntryCount: len(snap.Entries), CreatedAt: b.CreatedAt}, nil
}
