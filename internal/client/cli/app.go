package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/url"
	"os"

	"github.com/dmitrijs2005/shopkeeper/internal/client/api"
	"github.com/dmitrijs2005/shopkeeper/internal/client/cache"
	"github.com/dmitrijs2005/shopkeeper/internal/client/config"
	"github.com/dmitrijs2005/shopkeeper/internal/client/models"
	"github.com/dmitrijs2005/shopkeeper/internal/client/services"
	"github.com/dmitrijs2005/shopkeeper/internal/client/session"
	"github.com/dmitrijs2005/shopkeeper/internal/client/state"
	"github.com/dmitrijs2005/shopkeeper/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the catalog client together and holds per-view UI state.
type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	states   state.Repository
	sessions session.Store
	auth     services.AuthService
	products services.ProductService

	reader *bufio.Reader
	out    io.Writer
	route  *url.URL

	// management panel state
	listed    []models.Product
	selection map[int64]struct{}
}

// NewApp opens the local state database and builds the service stack bound
// to the configured backend endpoint.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := state.Open(ctx, c.StateDBPath)
	if err != nil {
		logger.Error(ctx, "failed to open state database", "path", c.StateDBPath, "error", err)
		return nil, err
	}

	states := state.NewSQLiteRepository(db)
	sessions := session.NewSQLiteStore(states)

	apiClient, err := api.NewHTTPClient(c.Endpoint, c.RequestTimeout, sessions)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:    c,
		logger:    logger,
		db:        db,
		states:    states,
		sessions:  sessions,
		auth:      services.NewAuthService(apiClient, sessions),
		products:  services.NewProductService(apiClient, cache.New(), sessions, logger),
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
		route:     &url.URL{Path: RouteRegister},
		selection: make(map[int64]struct{}),
	}, nil
}

// Run restores the last visited route and enters the command loop.
func (a *App) Run(ctx context.Context) {
	a.restoreRoute(ctx)
	a.Root(ctx)
}

// Close releases the local database handle.
func (a *App) Close() error {
	return a.db.Close()
}

// restoreRoute reopens the route the previous session ended on. A guard
// still applies: a stale protected route falls back through the usual
// redirect.
func (a *App) restoreRoute(ctx context.Context) {
	v, err := a.states.Get(ctx, state.KeyLastRoute)
	if err != nil || len(v) == 0 {
		a.Open(ctx, RouteRegister)
		return
	}
	a.Open(ctx, string(v))
}
