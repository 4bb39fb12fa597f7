package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fitcal/internal/common"
	"github.com/dmitrijs2005/fitcal/internal/dbx"
	"github.com/dmitrijs2005/fitcal/internal/logging"
	"github.com/dmitrijs2005/fitcal/internal/server/config"
	"github.com/dmitrijs2005/fitcal/internal/server/models"
	"github.com/dmitrijs2005/fitcal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/fitcal/internal/server/storage"
)

// BackupRetention is how many snapshot versions are kept per user.
const BackupRetention = 5

// BackupService stores encrypted ledger snapshots. Payloads go to object
// storage, metadata and the per-user version counter to PostgreSQL.
type BackupService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       storage.ObjectStore
	maxBytes    int64
	retention   int64
	log         logging.Logger
	now         func() time.Time
}

func NewBackupService(db *sql.DB, m repomanager.RepositoryManager, store storage.ObjectStore, cfg *config.Config, log logging.Logger) *BackupService {
	return &BackupService{
		db:          db,
		repomanager: m,
		store:       store,
		maxBytes:    cfg.MaxBackupBytes,
		retention:   BackupRetention,
		log:         log.With("module", "backups"),
		now:         time.Now,
	}
}

// Push stores a new snapshot on top of baseVersion. When the user's
// current version differs the push is rejected with
// common.ErrVersionConflict and nothing is written.
func (s *BackupService) Push(ctx context.Context, userID string, baseVersion int64, ciphertext, nonce []byte, entryCount int) (*models.Backup, error) {
	if len(ciphertext) == 0 || len(nonce) == 0 {
		return nil, fmt.Errorf("%w: empty backup", common.ErrorValidation)
	}
	if s.maxBytes > 0 && int64(len(ciphertext)) > s.maxBytes {
		return nil, fmt.Errorf("%w: backup is %d bytes, limit is %d", common.ErrorValidation, len(ciphertext), s.maxBytes)
	}

	b := &models.Backup{
		UserID:     userID,
		ObjectKey:  storage.NewObjectKey(userID, s.now()),
		Nonce:      nonce,
		EntryCount: entryCount,
		SizeBytes:  int64(len(ciphertext)),
	}

	var stale []string
	uploaded := false

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		users := s.repomanager.Users(tx)

		current, err := users.LockCurrentVersion(ctx, userID)
		if err != nil {
			return fmt.Errorf("error reading version: %w", err)
		}
		if current != baseVersion {
			return fmt.Errorf("%w: server is at %d, client is at %d", common.ErrVersionConflict, current, baseVersion)
		}

		if err := s.store.Put(ctx, b.ObjectKey, ciphertext); err != nil {
			return fmt.Errorf("error storing backup: %w", err)
		}
		uploaded = true

		version, err := users.IncrementCurrentVersion(ctx, userID)
		if err != nil {
			return fmt.Errorf("error bumping version: %w", err)
		}
		b.Version = version

		repo := s.repomanager.Backups(tx)
		if err := repo.Create(ctx, b); err != nil {
			return fmt.Errorf("error saving backup: %w", err)
		}

		if s.retention > 0 {
			stale, err = repo.PruneBelow(ctx, userID, version-s.retention+1)
			if err != nil {
				return fmt.Errorf("error pruning backups: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		if uploaded {
			s.deleteObjects(ctx, []string{b.ObjectKey})
		}
		return nil, err
	}

	s.deleteObjects(ctx, stale)
	s.log.Info(ctx, "backup stored", "user_id", userID, "version", b.Version, "bytes", b.SizeBytes)
	return b, nil
}

// Pull returns the latest snapshot and its payload, or common.ErrorNotFound.
func (s *BackupService) Pull(ctx context.Context, userID string) (*models.Backup, []byte, error) {
	b, err := s.repomanager.Backups(s.db).Latest(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	data, err := s.store.Get(ctx, b.ObjectKey)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading backup %d: %w", b.Version, err)
	}
	return b, data, nil
}

// deleteObjects is best effort; an orphaned object only costs space.
func (s *BackupService) deleteObjects(ctx context.Context, keys []string) {
	for _, k := range keys {
		if err := s.store.Delete(ctx, k); err != nil {
			s.log.Warn(ctx, "could not delete backup object", "key", k, "error", err)
		}
	}
}
