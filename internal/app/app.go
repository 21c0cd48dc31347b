package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/venuecal/venuecal/internal/config"
	"github.com/venuecal/venuecal/internal/database"
)

const shutdownTimeout = 10 * time.Second

// Application wires configuration, database, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	db     *pgxpool.Pool
	router *mux.Router
	srv    *http.Server
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication(ctx context.Context, configPath string) (*Application, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(cfg.Database); err != nil {
		return nil, err
	}
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	deps, err := BuildDependencies(ctx, db, cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	r := mux.NewRouter()
	SetupMiddleware(r, deps)
	RegisterRoutes(r, deps)

	srv := &http.Server{
		Handler:     r,
		Addr:        cfg.Listen,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
		// no WriteTimeout, websocket connections stay open
	}

	return &Application{cfg: cfg, db: db, router: r, srv: srv}, nil
}

// Run serves until SIGINT or SIGTERM, then shuts down gracefully.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer a.db.Close()

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", a.srv.Addr)
		errCh <- a.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return a.srv.Shutdown(shutdownCtx)
}
