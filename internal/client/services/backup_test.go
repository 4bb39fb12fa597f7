package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/fitcal/internal/client/client"
	"github.com/dmitrijs2005/fitcal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/fitcal/internal/common"
	"github.com/dmitrijs2005/fitcal/internal/cryptox"
	"github.com/dmitrijs2005/fitcal/internal/ledger"
	"github.com/dmitrijs2005/fitcal/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackupService(fc *fakeClient, db *sql.DB, ls LedgerService) BackupService {
	return NewBackupService(fc, db, ls, NewProfileService(db, ls.Ledger()))
}

func sealPayload(t *testing.T, p backupPayload, key []byte) *client.Backup {
	t.Helper()
	ct, nonce, err := cryptox.EncryptJSON(p, key)
	require.NoError(t, err)
	return &client.Backup{Version: 3, Ciphertext: ct, Nonce: nonce, EntryCount: len(p.Ledger.Entries)}
}

func TestBackup_PushThenPullRestores(t *testing.T) {
	ctx := context.Background()
	key := cryptox.DeriveMasterKey([]byte(testPassword), cryptox.NewSalt())

	srcDB := setupDB(t)
	src := NewLedgerService(srcDB, ledger.New())
	_, err := src.Add(ctx, chicken, 2, ledger.Lunch, "2026-10-18")
	require.NoError(t, err)
	_, err = src.ToggleFavorite(ctx, banana)
	require.NoError(t, err)

	me := profile.Default()
	me.Name = "Ada"
	me.WeightKg = 62
	me.Goal = profile.GoalGain
	me.Targets = profile.Targets{Calories: 2500, Protein: 120, Carbs: 300, Fat: 70}
	require.NoError(t, NewProfileService(srcDB, src.Ledger()).Save(ctx, me))

	fc := &fakeClient{PushVersion: 1}
	pushed, err := newBackupService(fc, srcDB, src).Push(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pushed.Version)
	assert.Equal(t, 1, pushed.EntryCount)
	assert.Equal(t, int64(0), fc.LastPushBase)
	assert.Equal(t, []byte("1"), getMeta(t, srcDB, metadata.KeyBackupVersion))

	dstDB := setupDB(t)
	dst := NewLedgerService(dstDB, ledger.New())
	fc.PullRet = &client.Backup{Version: 1, Ciphertext: fc.LastPush.Ciphertext, Nonce: fc.LastPush.Nonce, EntryCount: 1}

	var sealed backupPayload
	require.NoError(t, cryptox.DecryptJSON(fc.LastPush.Ciphertext, fc.LastPush.Nonce, key, &sealed))
	require.NotNil(t, sealed.Profile)
	assert.Equal(t, me, *sealed.Profile)

	bsvc := newBackupService(fc, dstDB, dst)
	pulled, err := bsvc.Pull(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pulled.Version)
	assert.Equal(t, src.Ledger().Snapshot(), dst.Ledger().Snapshot())

	restored, err := NewProfileService(dstDB, dst.Ledger()).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, me, restored)

	v, err := bsvc.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	reloaded := NewLedgerService(dstDB, ledger.New())
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, src.Ledger().Entries(), reloaded.Ledger().Entries())
}

func TestBackup_PushUsesStoredBaseVersion(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	setMeta(t, db, metadata.KeyBackupVersion, []byte("4"))

	fc := &fakeClient{PushErr: common.ErrVersionConflict}
	_, err := newBackupService(fc, db, NewLedgerService(db, ledger.New())).Push(ctx, cryptox.NewSalt())
	require.ErrorIs(t, err, common.ErrVersionConflict)
	assert.Equal(t, int64(4), fc.LastPushBase)
	assert.Equal(t, []byte("4"), getMeta(t, db, metadata.KeyBackupVersion))
}

func TestBackup_PullWithWrongKey(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	ls := NewLedgerService(db, ledger.New())
	_, err := ls.Add(ctx, banana, 1, ledger.Snacks, "2026-10-18")
	require.NoError(t, err)

	ct, nonce, err := cryptox.EncryptJSON(backupPayload{}, cryptox.NewSalt())
	require.NoError(t, err)

	fc := &fakeClient{PullRet: &client.Backup{Version: 2, Ciphertext: ct, Nonce: nonce}}
	_, err = newBackupService(fc, db, ls).Pull(ctx, cryptox.NewSalt())
	require.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.Equal(t, 1, ls.Ledger().Len())
}

func TestBackup_PullNothing(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	fc := &fakeClient{PullErr: common.ErrorNotFound}
	_, err := newBackupService(fc, db, NewLedgerService(db, ledger.New())).Pull(ctx, cryptox.NewSalt())
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestBackup_PullFailureKeepsProfile(t *testing.T) {
	ctx := context.Background()
	key := cryptox.NewSalt()
	db := setupDB(t)
	ls := NewLedgerService(db, ledger.New())
	ps := NewProfileService(db, ls.Ledger())

	local := profile.Default()
	local.Name = "Local"
	require.NoError(t, ps.Save(ctx, local))

	incoming := profile.Default()
	incoming.Name = "Remote"

	tests := []struct {
		name    string
		payload backupPayload
	}{
		{
			name: "invalid entry",
			payload: backupPayload{
				Ledger: ledger.Snapshot{Entries: []ledger.MealEntry{
					{ID: "e1", Food: banana, Quantity: 0, MealType: ledger.Lunch, Date: "2026-10-18"},
				}},
				Profile: &incoming,
			},
		},
		{
			name: "invalid profile",
			payload: backupPayload{
				Ledger:  ledger.Snapshot{Favorites: []ledger.FoodItem{chicken}},
				Profile: &profile.Profile{Name: "Broken"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeClient{PullRet: sealPayload(t, tt.payload, key)}
			_, err := newBackupService(fc, db, ls).Pull(ctx, key)
			require.ErrorIs(t, err, common.ErrorValidation)

			got, err := ps.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, local, got)
			assert.Empty(t, ls.Ledger().Favorites())
		})
	}
}

func TestBackup_PullWithoutProfileKeepsLocal(t *testing.T) {
	ctx := context.Background()
	key := cryptox.NewSalt()
	db := setupDB(t)
	ls := NewLedgerService(db, ledger.New())
	ps := NewProfileService(db, ls.Ledger())

	local := profile.Default()
	local.Name = "Local"
	require.NoError(t, ps.Save(ctx, local))

	fc := &fakeClient{PullRet: sealPayload(t, backupPayload{Ledger: ledger.Snapshot{Favorites: []ledger.FoodItem{chicken}}}, key)}
	st, err := newBackupService(fc, db, ls).Pull(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(3), st.Version)

	got, err := ps.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, local, got)
	assert.Equal(t, []ledger.FoodItem{chicken}, ls.Ledger().Favorites())
}
