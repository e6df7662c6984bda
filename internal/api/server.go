// Package api serves the timesheet REST API over gin.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StartOpts holds configuration for the API server.
type StartOpts struct {
	DB          *gorm.DB
	Port        int
	Logger      *zap.Logger
	CORSOrigins []string
	Out         io.Writer
}

// Start launches the API server. It blocks until ctx is cancelled, then
// drains in-flight requests and returns.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.DB == nil {
		return fmt.Errorf("api: db is required")
	}
	if opts.Port <= 0 {
		opts.Port = 5000
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           NewRouter(opts.DB, opts.Logger, opts.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(sctx)
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "API listening on http://localhost:%d/api\n", opts.Port)
	}

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api: %w", err)
	}
	if err := <-shutdownErr; err != nil {
		return fmt.Errorf("api: shutdown: %w", err)
	}
	return nil
}

// NewRouter returns the gin engine with middleware and every route
// registered.
func NewRouter(db *gorm.DB, logger *zap.Logger, origins []string) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(
		requestID(),
		requestLogger(logger),
		gin.CustomRecovery(recovery(logger)),
		cors(origins),
	)

	registerRoutes(router, db)
	return router
}
