package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"shelfthis/internal/dashboard"
	"shelfthis/internal/httpx"
)

const maxRequestBytes = 1 << 20

// Handler builds the routed, middleware-wrapped HTTP handler. ctx bounds the
// rate limiter janitor.
func (a *App) Handler(ctx context.Context) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if a.DB != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := a.DB.Ping(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	dashboard.NewHTTPHandler(a.Dashboard, a.ImportRunner(), a.Logger).
		Register(router, httpx.InternalSecretMiddleware(a.Config.App.InternalSecret))

	limiter := httpx.NewRateLimitMiddleware(ctx, a.Config.App.RateLimitRPS, a.Config.App.RateLimitBurst)
	return httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(a.Logger),
		httpx.RecoveryMiddleware(a.Logger),
		httpx.SecurityHeadersMiddleware(a.Config.App.EnableHSTS),
		httpx.CORSMiddleware(a.Config.App.AllowedOrigins),
		limiter.Middleware,
		httpx.RequestSizeLimitMiddleware(maxRequestBytes),
	)
}

// Serve runs the HTTP server until ctx is cancelled or SIGINT/SIGTERM
// arrives, then shuts down gracefully.
func (a *App) Serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{
		Addr:         a.Config.App.Addr,
		Handler:      a.Handler(ctx),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Warm the history so the first page load does not pay for the read.
	g.Go(func() error {
		if _, err := a.History.Records(gCtx); err != nil {
			a.Logger.Warn("initial history load failed", "error", err)
		}
		return nil
	})

	g.Go(func() error {
		a.Logger.Info("starting server", "addr", a.Config.App.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		a.Logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			a.Logger.Error("http server shutdown error", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.Logger.Info("server stopped", "covers", a.Covers.Stats())
	return nil
}
