package cli

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/fitcal/internal/common"
)

func (a *App) key() []byte {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.masterKey
}

// Backup encrypts the ledger and uploads it.
func (a *App) Backup(ctx context.Context) error {
	st, err := a.backupService.Push(ctx, a.key())
	if errors.Is(err, common.ErrVersionConflict) {
		a.printf("The server has a newer backup. Run 'restore' first.\n")
	}
	if err != nil {
		return err
	}
	a.printf("Backup v%d saved at %s (%d entries)\n", st.Version, st.CreatedAt.Local().Format(time.DateTime), st.EntryCount)
	return nil
}

// Restore replaces the local ledger with the latest backup after confirmation.
func (a *App) Restore(ctx context.Context) error {
	if a.ledgerService.Ledger().Len() > 0 &&
		!Confirm(a.reader, "This replaces every local entry. Continue?", a.out) {
		a.printf("Cancelled\n")
		return nil
	}

	st, err := a.backupService.Pull(ctx, a.key())
	if errors.Is(err, common.ErrorNotFound) {
		a.printf("No backup on the server yet\n")
		return nil
	}
	if err != nil {
		return err
	}
	a.printf("Restored backup v%d from %s (%d entries)\n", st.Version, st.CreatedAt.Local().Format(time.DateTime), st.EntryCount)
	return nil
}
