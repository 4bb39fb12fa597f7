package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/fitcal/internal/client/client"
	"github.com/dmitrijs2005/fitcal/internal/client/config"
	"github.com/dmitrijs2005/fitcal/internal/client/services"
	"github.com/dmitrijs2005/fitcal/internal/filex"
	"github.com/dmitrijs2005/fitcal/internal/ledger"
	"github.com/dmitrijs2005/fitcal/internal/logging"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB

	authService    services.AuthService
	ledgerService  services.LedgerService
	profileService services.ProfileService
	backupService  services.BackupService

	mu        sync.Mutex
	masterKey []byte
	userName  string
	Mode      Mode

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time
}

// NewApp opens the local database, loads the ledger and connects the API client.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	dbPath, err := filex.EnsureParentDir(c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error preparing database directory", "error", err)
		return nil, err
	}

	db, err := client.InitDatabase(ctx, dbPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := newApp(c, log, db, apiClient)
	if err := a.ledgerService.Load(ctx); err != nil {
		_ = a.authService.Close(ctx)
		_ = db.Close()
		return nil, err
	}
	return a, nil
}

func newApp(c *config.Config, log logging.Logger, db *sql.DB, apiClient client.Client) *App {
	l := ledger.New()
	ls := services.NewLedgerService(db, l)
	ps := services.NewProfileService(db, l)

	return &App{
		config:         c,
		log:            log.With("module", "cli"),
		db:             db,
		authService:    services.NewAuthService(apiClient, db),
		ledgerService:  ls,
		profileService: ps,
		backupService:  services.NewBackupService(apiClient, db, ls, ps),
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
		now:            time.Now,
	}
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Mode != mode {
		a.Mode = mode
		a.log.Info(context.Background(), "switched mode", "mode", mode)
	}
}

func (a *App) mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Mode
}

func (a *App) isLoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.masterKey != nil
}

func (a *App) today() string {
	return ledger.DateOf(a.now())
}

// Run starts the connectivity watcher and blocks in the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		_ = a.authService.Close(ctx)
		_ = a.db.Close()
	}()

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	a.printf("Welcome to fitcal (type 'help' for commands)\n")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.authService.Ping(pingCtx)
			cancel()

			if err != nil {
				if a.mode() == ModeOnline {
					a.setMode(ModeOffline)
				}
			} else if a.mode() != ModeOnline {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.userName
	if a.Mode != "" {
		if s != "" {
			s += " "
		}
		s += string(a.Mode)
	}
	if s != "" {
		s = "(" + s + ")"
	}
	return s
}
