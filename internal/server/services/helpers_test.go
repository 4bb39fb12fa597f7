package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/fitcal/internal/common"
	"github.com/dmitrijs2005/fitcal/internal/dbx"
	"github.com/dmitrijs2005/fitcal/internal/server/config"
	"github.com/dmitrijs2005/fitcal/internal/server/models"
	"github.com/dmitrijs2005/fitcal/internal/server/repositories/backups"
	"github.com/dmitrijs2005/fitcal/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/fitcal/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
		MaxBackupBytes:               64,
	}
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error

	version    int64
	lockErr    error
	incrErr    error
	lastCreate *models.User
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.lastCreate = u
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = "new-id"
	return u, nil
}

func (f *fakeUsersRepo) GetUserByLogin(context.Context, string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) LockCurrentVersion(context.Context, string) (int64, error) {
	return f.version, f.lockErr
}

func (f *fakeUsersRepo) IncrementCurrentVersion(context.Context, string) (int64, error) {
	if f.incrErr != nil {
		return 0, f.incrErr
	}
	f.version++
	return f.version, nil
}

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	delErr    error
	createErr error

	created    []string
	deleted    []string
	lastExpiry time.Time
	purged     int64
}

func (f *fakeRefreshRepo) Create(_ context.Context, _ string, token string, expiresAt time.Time) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, token)
	f.lastExpiry = expiresAt
	return nil
}

func (f *fakeRefreshRepo) Find(context.Context, string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(_ context.Context, token string) error {
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, token)
	return nil
}

func (f *fakeRefreshRepo) DeleteExpired(context.Context, time.Time) (int64, error) {
	return f.purged, nil
}

type fakeBackupsRepo struct {
	rows      []*models.Backup
	createErr error
	latestErr error
	pruneErr  error
}

func (f *fakeBackupsRepo) Create(_ context.Context, b *models.Backup) error {
	if f.createErr != nil {
		return f.createErr
	}
	b.ID = "b-" + b.ObjectKey
	b.CreatedAt = time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	f.rows = append(f.rows, b)
	return nil
}

func (f *fakeBackupsRepo) Latest(context.Context, string) (*models.Backup, error) {
	if f.latestErr != nil {
		return nil, f.latestErr
	}
	if len(f.rows) == 0 {
		return nil, common.ErrorNotFound
	}
	return f.rows[len(f.rows)-1], nil
}

func (f *fakeBackupsRepo) PruneBelow(_ context.Context, _ string, version int64) ([]string, error) {
	if f.pruneErr != nil {
		return nil, f.pruneErr
	}
	var keep []*models.Backup
	var keys []string
	for _, b := range f.rows {
		if b.Version < version {
			keys = append(keys, b.ObjectKey)
			continue
		}
		keep = append(keep, b)
	}
	f.rows = keep
	return keys, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRefreshRepo
	b *fakeBackupsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return m.r }
func (m *fakeRepoManager) Backups(dbx.DBTX) backups.Repository             { return m.b }

type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
	getErr  error
}

func newMemStore() *memStore { return &memStore{objects: map[string][]byte{}} }

func (m *memStore) Put(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.objects[key] = append([]byte(nil), data...)
	return nil
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	d, ok := m.objects[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return d, nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memStore) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
