// Package backups stores the metadata of uploaded ledger snapshots. The
// payloads themselves live in object storage.
package backups

import (
	"context"

	"github.com/dmitrijs2005/fitcal/internal/server/models"
)

type Repository interface {
	// Create inserts b and fills in its ID and CreatedAt.
	Create(ctx context.Context, b *models.Backup) error

	// Latest returns the highest version stored for userID or
	// common.ErrorNotFound when there is none.
	Latest(ctx context.Context, userID string) (*models.Backup, error)

	// PruneBelow deletes the user's backups older than version and returns
	// their object keys so the payloads can be removed too.
	PruneBelow(ctx context.Context, userID string, version int64) ([]string, error)
}
