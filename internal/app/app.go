package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/database"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/records"
	"github.com/vancomm/minesweeper/internal/session"
)

type App struct {
	log      *logrus.Logger
	router   *http.ServeMux
	sessions *session.Manager
	records  records.Store
	jwt      *config.JWT
	ws       *config.WebSocket
	basePath string
}

func New(log *logrus.Logger, jwt *config.JWT, ws *config.WebSocket, ttl time.Duration, store records.Store) *App {
	a := &App{
		log:      log,
		router:   http.NewServeMux(),
		sessions: session.NewManager(ttl, log),
		records:  store,
		jwt:      jwt,
		ws:       ws,
		basePath: config.BasePath(),
	}
	a.loadRoutes()
	return a
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Logging(a.log),
		middleware.Cors(),
	)
}

// OpenRecords picks the records backend: Postgres when it is configured,
// a local sqlite file otherwise. The returned func releases it.
func OpenRecords(ctx context.Context, log logrus.FieldLogger) (records.Store, func(), error) {
	if config.Postgres() {
		pool, err := database.ConnectAndMigrate(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to connect to db: %w", err)
		}
		log.Info("storing records in postgres")
		return records.NewPostgres(pool), pool.Close, nil
	}

	path := config.RecordsSQLitePath()
	store, err := records.OpenSQLite(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	log.WithField("path", path).Info("storing records in sqlite")
	return store, func() { store.Close() }, nil
}

// Start serves until ctx is done or the listener fails.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              config.Port(),
		Handler:           a.Handler(),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.WithField("addr", server.Addr).Info("server listening")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(sCtx)
	})
	g.Go(func() error {
		return a.sessions.Run(gCtx)
	})

	return g.Wait()
}
