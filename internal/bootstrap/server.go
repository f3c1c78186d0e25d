package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/skywings/api"
	"github.com/Domenick1991/skywings/config"
	"github.com/Domenick1991/skywings/internal/stub"
)

// Router assembles the stub remote service routes under /api/airline.
func Router(store *stub.Store) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())

	group := engine.Group("/api/airline")
	auth := api.RequireAuth(store)
	admin := api.RequireAdmin()

	api.NewAuthHandler(store).Register(group)
	api.NewFlightHandler(store).Register(group, auth, admin)
	api.NewReservationHandler(store).Register(group, auth, admin)

	return engine
}

// Run starts the stub HTTP server and blocks until the context is
// canceled or the server fails.
func Run(ctx context.Context, cfg *config.Config, store *stub.Store) error {
	httpSrv := &http.Server{
		Addr:    cfg.Stub.Address,
		Handler: Router(store),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
