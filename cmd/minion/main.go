// Command crucible-minion runs a stateless worker node that exposes the
// crack/cancel/health/status HTTP API consumed by the master.
//
// Configuration is read entirely from the environment; see
// internal/config for the full list of variables.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dreamware/crucible/internal/config"
	"github.com/dreamware/crucible/internal/logger"
	"github.com/dreamware/crucible/internal/minion"
)

func main() {
	log := logger.New("crucible-minion")

	cfg, err := config.LoadMinion()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	srv := minion.NewServer(minion.Config{
		WorkerThreads:          cfg.WorkerThreads,
		SubrangeMinSize:        cfg.SubrangeMinSize,
		CancellationCheckEvery: cfg.CancellationCheckEvery,
	}, log)

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second, // Prevent slowloris attacks
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("minion listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("minion server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("graceful shutdown failed")
	}
}
