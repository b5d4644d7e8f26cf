package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	apphttp "github.com/amakane-hakari/scorecache/internal/api/http"
	ilog "github.com/amakane-hakari/scorecache/internal/log"
	"github.com/amakane-hakari/scorecache/internal/metrics"
	"github.com/amakane-hakari/scorecache/internal/store"
)

func main() {
	cfg := loadConfig()
	logger := ilog.New()

	storeOpts := []store.Option{
		store.WithCapacity(cfg.Capacity),
		store.WithBase(cfg.Base),
		store.WithOldScoreLimit(cfg.OldScoreLimit),
		store.WithLogger(logger.With("component", "store")),
	}
	if cfg.HitReinforcement {
		storeOpts = append(storeOpts, store.WithHitReinforcement())
	}
	if cfg.MissTracking {
		storeOpts = append(storeOpts, store.WithMissTracking())
	}

	routerOpts := []apphttp.RouterOption{apphttp.WithRouterLogger(logger)}
	if cfg.Metrics {
		storeOpts = append(storeOpts, store.WithMetrics(metrics.NewProm("scorecache", nil)))
		routerOpts = append(routerOpts, apphttp.WithMetricsHandler(promhttp.Handler()))
	}
	if cfg.RateLimit > 0 {
		routerOpts = append(routerOpts, apphttp.WithRateLimit(cfg.RateLimit, cfg.RateBurst))
	}

	st := store.New[string, string](storeOpts...)
	router := apphttp.NewRouter(st, routerOpts...)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("server.start",
		"addr", cfg.Addr,
		"capacity", st.Capacity(),
		"hit_reinforcement", cfg.HitReinforcement,
		"miss_tracking", cfg.MissTracking,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		logger.Info("server.shutdown", "reason", "signal")
	case err := <-errCh:
		logger.Error("server.error", "err", err)
		exitCode = 1
	}

	apphttp.SetDraining(true)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server.shutdown", "err", err)
		exitCode = 1
	} else {
		logger.Info("server.stopped", "stats", st.Stats())
	}
	if exitCode != 0 {
		cancel()
		stop()
		os.Exit(exitCode)
	}
}
