package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dieg0espx/spanish-horizons-api/api"
	"github.com/dieg0espx/spanish-horizons-api/config"
	"github.com/dieg0espx/spanish-horizons-api/internal/service/booking"
	"github.com/dieg0espx/spanish-horizons-api/internal/service/slots"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, log *zap.Logger, slotSvc slots.SlotUseCase, bookingSvc booking.BookingUseCase) error {
	router := NewRouter(cfg, slotSvc, bookingSvc)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	log.Info("http server started", zap.String("address", cfg.HTTP.Address))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
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

// NewRouter wires the gin router. Every route sits behind the identity
// middleware; administrative gating happens inside the slot service.
func NewRouter(cfg *config.Config, slotSvc slots.SlotUseCase, bookingSvc booking.BookingUseCase) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authed := router.Group("/api", api.RequireIdentity(cfg.Auth.JWTSecret))
	api.NewSlotHandler(slotSvc).Register(authed.Group("/slots"))
	api.NewInterviewHandler(bookingSvc).Register(authed.Group("/applications"))

	return router
}
