package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/fitcal/internal/client/client"
	"github.com/dmitrijs2005/fitcal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/fitcal/internal/ledger"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "fitcal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func getMeta(t *testing.T, db *sql.DB, k string) []byte {
	t.Helper()
	v, err := metadata.NewSQLiteRepository(db).Get(context.Background(), k)
	require.NoError(t, err)
	return v
}

func setMeta(t *testing.T, db *sql.DB, k string, v []byte) {
	t.Helper()
	require.NoError(t, metadata.NewSQLiteRepository(db).Set(context.Background(), k, v))
}

var (
	banana  = ledger.FoodItem{ID: "1", Name: "Banana", Calories: 89, Protein: 1.1, Carbs: 22.8, Fat: 0.3, Serving: "1 medium"}
	chicken = ledger.FoodItem{ID: "2", Name: "Chicken Breast", Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6, Serving: "100g"}
)

// fakeClient implements client.Client for service tests.
type fakeClient struct {
	CloseErr    error
	RegisterErr error

	GetSaltRet []byte
	GetSaltErr error

	LoginErr     error
	LoginRefresh string

	PingErr error

	PushVersion int64
	PushErr     error
	PullRet     *client.Backup
	PullErr     error

	LastRegisterUser     string
	LastRegisterSalt     []byte
	LastRegisterVerifier []byte
	LastGetSaltUser      string
	LastLoginUser        string
	LastLoginVerifier    []byte
	LastPushBase         int64
	LastPush             client.Backup
	Resumed              string

	refresh string
}

func (f *fakeClient) Close() error { return f.CloseErr }

func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeClient) Register(ctx context.Context, username string, salt []byte, verifier []byte) error {
	f.LastRegisterUser = username
	f.LastRegisterSalt = append([]byte(nil), salt...)
	f.LastRegisterVerifier = append([]byte(nil), verifier...)
	return f.RegisterErr
}

func (f *fakeClient) GetSalt(ctx context.Context, username string) ([]byte, error) {
	f.LastGetSaltUser = username
	return f.GetSaltRet, f.GetSaltErr
}

func (f *fakeClient) Login(ctx context.Context, username string, verifier []byte) error {
	f.LastLoginUser = username
	f.LastLoginVerifier = append([]byte(nil), verifier...)
	if f.LoginErr == nil {
		f.refresh = f.LoginRefresh
	}
	return f.LoginErr
}

func (f *fakeClient) RefreshToken() string { return f.refresh }

func (f *fakeClient) ResumeSession(refreshToken string) {
	f.Resumed = refreshToken
	f.refresh = refreshToken
}

func (f *fakeClient) PushBackup(ctx context.Context, baseVersion int64, b client.Backup) (int64, time.Time, error) {
	f.LastPushBase = baseVersion
	f.LastPush = b
	if f.PushErr != nil {
		return 0, time.Time{}, f.PushErr
	}
	return f.PushVersion, time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC), nil
}

func (f *fakeClient) PullBackup(ctx context.Context) (*client.Backup, error) {
	return f.PullRet, f.PullErr
}
