package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/fitcal/internal/client/client"
	"github.com/dmitrijs2005/fitcal/internal/client/config"
	"github.com/dmitrijs2005/fitcal/internal/common"
	"github.com/dmitrijs2005/fitcal/internal/cryptox"
	"github.com/dmitrijs2005/fitcal/internal/ledger"
	"github.com/dmitrijs2005/fitcal/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClient implements client.Client with canned answers.
type stubClient struct {
	salt       []byte
	loginErr   error
	pingErr    error
	pushErr    error
	pulled     *client.Backup
	lastPush   client.Backup
	resumed    string
	registered string
}

func (s *stubClient) Close() error                   { return nil }
func (s *stubClient) Ping(ctx context.Context) error { return s.pingErr }
func (s *stubClient) Register(ctx context.Context, username string, salt, verifier []byte) error {
	s.registered = username
	return nil
}
func (s *stubClient) GetSalt(ctx context.Context, username string) ([]byte, error) {
	return s.salt, nil
}
func (s *stubClient) Login(ctx context.Context, username string, verifier []byte) error {
	return s.loginErr
}
func (s *stubClient) RefreshToken() string              { return "refresh" }
func (s *stubClient) ResumeSession(refreshToken string) { s.resumed = refreshToken }
func (s *stubClient) PushBackup(ctx context.Context, base int64, b client.Backup) (int64, time.Time, error) {
	s.lastPush = b
	if s.pushErr != nil {
		return 0, time.Time{}, s.pushErr
	}
	return base + 1, time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC), nil
}
func (s *stubClient) PullBackup(ctx context.Context) (*client.Backup, error) {
	if s.pulled == nil {
		return nil, common.ErrorNotFound
	}
	return s.pulled, nil
}

var fixedNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC) // a Sunday

func newTestApp(t *testing.T, sc *stubClient) (*App, *bytes.Buffer) {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "cli.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{}
	cfg.LoadDefaults()

	a := newApp(cfg, logging.Nop(), db, sc)
	var out bytes.Buffer
	a.out = &out
	a.now = func() time.Time { return fixedNow }
	return a, &out
}

func stubInput(t *testing.T, texts []string, passwords []string) {
	t.Helper()
	oldText, oldPw := getSimpleText, getPassword
	t.Cleanup(func() { getSimpleText, getPassword = oldText, oldPw })

	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		v := texts[0]
		texts = texts[1:]
		return v, nil
	}
	getPassword = func(_ string, _ io.Writer) ([]byte, error) {
		v := passwords[0]
		passwords = passwords[1:]
		return []byte(v), nil
	}
}

func TestApp_AddDayRemove(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, &stubClient{})

	require.NoError(t, a.Add(ctx, []string{"1", "2", "lunch"}))
	require.NoError(t, a.Add(ctx, []string{"3", "lunch"}))
	require.NoError(t, a.Add(ctx, []string{"3", "2026-10-17", "snacks", "0.5"}))
	assert.Contains(t, out.String(), "Added Chicken Breast x2 to Lunch on 2026-10-18 (330 kcal)")

	entries := a.ledgerService.Ledger().Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, ledger.Lunch, entries[1].MealType)
	assert.Equal(t, 1.0, entries[1].Quantity)
	assert.Equal(t, ledger.Snacks, entries[2].MealType)
	assert.Equal(t, "2026-10-17", entries[2].Date)
	assert.Equal(t, 0.5, entries[2].Quantity)

	out.Reset()
	require.NoError(t, a.Day(ctx, nil))
	assert.Contains(t, out.String(), "Lunch: 419 kcal")
	assert.Contains(t, out.String(), "  2. Banana x1 (1 medium)  89 kcal")

	require.NoError(t, a.Remove(ctx, []string{"lunch", "1"}))
	view := a.ledgerService.Ledger().EntriesFor("2026-10-18", ledger.Lunch)
	require.Len(t, view, 1)
	assert.Equal(t, "Banana", view[0].Food.Name)

	require.ErrorIs(t, a.Remove(ctx, []string{"lunch", "5"}), common.ErrorNotFound)
	require.ErrorIs(t, a.Add(ctx, []string{"3", "brunch"}), common.ErrorValidation)
	require.ErrorIs(t, a.Add(ctx, []string{"999"}), common.ErrorNotFound)
	require.ErrorIs(t, a.Add(ctx, []string{"3", "-2"}), common.ErrorValidation)
}

func TestApp_FavoritesAndFoods(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, &stubClient{})

	require.NoError(t, a.Favs(ctx, nil))
	assert.Contains(t, out.String(), "No favorites yet")

	require.NoError(t, a.Fav(ctx, []string{"3"}))
	assert.Contains(t, out.String(), "Banana added to favorites")

	out.Reset()
	require.NoError(t, a.Foods(ctx, []string{"banana"}))
	assert.Contains(t, out.String(), "* 3   Banana")

	require.NoError(t, a.Fav(ctx, []string{"3"}))
	assert.False(t, a.ledgerService.Ledger().IsFavorite("3"))
}

func TestApp_ProfileTargetsWaterSummary(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, &stubClient{})

	require.NoError(t, a.Profile(ctx, []string{"set", "gender", "male"}))
	require.NoError(t, a.Profile(ctx, []string{"set", "birth", "1990-01-31"}))
	assert.Contains(t, out.String(), "Born:     1990-01-31 (age 36)")
	require.ErrorIs(t, a.Profile(ctx, []string{"set", "height", "abc"}), common.ErrorValidation)
	require.ErrorIs(t, a.Profile(ctx, []string{"set", "shoe", "42"}), common.ErrorValidation)

	out.Reset()
	require.NoError(t, a.Targets(ctx, []string{"set", "2000", "120", "200", "70"}))
	assert.Contains(t, out.String(), "Daily targets: 2000 kcal  P 120g  C 200g  F 70g")

	require.NoError(t, a.Water(ctx, []string{"+"}))
	require.NoError(t, a.Water(ctx, []string{"+"}))
	out.Reset()
	require.NoError(t, a.Water(ctx, nil))
	assert.Contains(t, out.String(), "Water 2026-10-18: 2/8 glasses")

	require.NoError(t, a.Add(ctx, []string{"1", "2"}))
	out.Reset()
	require.NoError(t, a.Summary(ctx, nil))
	assert.Contains(t, out.String(), "Calories: 330 / 2000 kcal, 1670 left")

	out.Reset()
	require.NoError(t, a.Targets(ctx, []string{"recommend"}))
	assert.Contains(t, out.String(), "Targets updated")
}

func TestApp_Week(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, &stubClient{})

	require.NoError(t, a.Add(ctx, []string{"1", "2026-10-12"}))
	require.NoError(t, a.Add(ctx, []string{"3", "2026-10-18"}))

	for _, e := range a.ledgerService.Ledger().Entries() {
		assert.Equal(t, ledger.Breakfast, e.MealType)
	}

	require.NoError(t, a.Week(ctx, nil))
	assert.Contains(t, out.String(), "This Week")
	assert.Contains(t, out.String(), "2026-10-12     165 kcal")
	assert.Contains(t, out.String(), "Total 254")

	require.ErrorIs(t, a.Week(ctx, []string{"month"}), common.ErrorValidation)
}

func TestApp_RegisterLoginBackupRestore(t *testing.T) {
	ctx := context.Background()
	sc := &stubClient{salt: cryptox.NewSalt()}
	a, out := newTestApp(t, sc)

	stubInput(t, []string{"Ana", "ana@example.com"}, []string{"Secret#123", "Secret#124"})
	require.ErrorIs(t, a.Register(ctx), common.ErrorValidation)

	stubInput(t, []string{"Ana", "ana@example.com"}, []string{"Secret#123", "Secret#123"})
	require.NoError(t, a.Register(ctx))
	assert.Equal(t, "ana@example.com", sc.registered)
	p, err := a.profileService.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Name)

	stubInput(t, []string{"ana@example.com"}, []string{"Secret#123"})
	require.NoError(t, a.Login(ctx))
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "(ana@example.com online)", a.getStatus())

	require.NoError(t, a.Add(ctx, []string{"3"}))
	require.NoError(t, a.Backup(ctx))
	assert.Contains(t, out.String(), "Backup v1 saved")

	sc.pulled = &client.Backup{Version: 1, Ciphertext: sc.lastPush.Ciphertext, Nonce: sc.lastPush.Nonce, EntryCount: 1}
	_, err = a.ledgerService.RemoveAt(ctx, 0)
	require.NoError(t, err)
	require.NoError(t, a.Restore(ctx))
	assert.Equal(t, 1, a.ledgerService.Ledger().Len())

	sc.pushErr = common.ErrVersionConflict
	require.ErrorIs(t, a.Backup(ctx), common.ErrVersionConflict)
	assert.Contains(t, out.String(), "Run 'restore' first")

	require.NoError(t, a.Logout(ctx))
	assert.False(t, a.isLoggedIn())
}

func TestApp_LoginFallsBackOffline(t *testing.T) {
	ctx := context.Background()
	sc := &stubClient{salt: cryptox.NewSalt()}
	a, _ := newTestApp(t, sc)

	stubInput(t, []string{"ana@example.com"}, []string{"Secret#123"})
	require.NoError(t, a.Login(ctx))

	sc.loginErr = client.ErrUnavailable
	stubInput(t, []string{"ana@example.com"}, []string{"Secret#123"})
	require.NoError(t, a.Login(ctx))
	assert.Equal(t, ModeOffline, a.mode())
	assert.Equal(t, "refresh", sc.resumed)

	stubInput(t, []string{"ana@example.com"}, []string{"Wrong#123"})
	require.ErrorIs(t, a.Login(ctx), client.ErrUnauthorized)
	assert.Equal(t, ModeDisabled, a.mode())
}

func TestApp_OnlineWatcher(t *testing.T) {
	sc := &stubClient{}
	a, _ := newTestApp(t, sc)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.StartOnlineStatusWatcher(ctx, 10*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return a.mode() == ModeOnline }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}
