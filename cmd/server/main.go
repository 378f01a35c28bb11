package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/janisto/hello-stub/internal/http/routes"
	"github.com/janisto/hello-stub/internal/platform/config"
	applog "github.com/janisto/hello-stub/internal/platform/logging"
	"github.com/janisto/hello-stub/internal/platform/metrics"
	appmiddleware "github.com/janisto/hello-stub/internal/platform/middleware"
	"github.com/janisto/hello-stub/internal/platform/respond"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const apiTitle = "Hello Stub API"

// TEMPLATE-ONLY:START
// Scaffolding that the project generator strips from rendered projects.
func templateOnlyMessage() string {
	return "Should not exist in production"
}
// TEMPLATE-ONLY:END

func main() {
	ctx := context.Background()
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(ctx, "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(ctx, "logger init error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		applog.LogFatal(ctx, "config load failed", err)
	}
	if err := applog.SetLevel(cfg.LogLevel); err != nil {
		applog.LogFatal(ctx, "log level", err)
	}

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.NewCollector()
	}
	srv := newServer(newRouter(cfg, collector))

	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(ctx, "server listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Env),
			zap.String("version", Version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		applog.LogError(ctx, "listen failed", err, zap.String("addr", srv.Addr))
		os.Exit(1)
	case <-stop:
		applog.LogInfo(ctx, "shutdown signal received")
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		applog.LogError(shutdownCtx, "server shutdown error", err)
	}
	applog.LogInfo(ctx, "server exited")
}

// newRouter assembles the middleware stack and routes. A nil collector
// leaves /metrics unmounted and requests uncounted.
func newRouter(cfg *config.Config, collector *metrics.Collector) http.Handler {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	mw := []func(http.Handler) http.Handler{
		appmiddleware.Security(routes.DocsPath),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP trusts X-Real-IP and X-Forwarded-For; only run behind a proxy that sets them.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(1 << 20), // 1 MB limit
		applog.RequestLogger(),
		applog.AccessLogger(),
	}
	if collector != nil {
		mw = append(mw, collector.Middleware())
	}
	mw = append(mw, respond.Recoverer())
	router.Use(mw...)

	api := routes.NewAPI(router, apiTitle, Version, cfg.DocsEnabled)
	routes.Register(router, api)
	if collector != nil {
		router.Method(http.MethodGet, "/metrics", collector.Handler())
	}
	return router
}

func newServer(handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              config.ListenAddr,
		Handler:           handler,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}
}

// templateHelper is another piece of generator scaffolding.
// @template-only
func templateHelper() {}
