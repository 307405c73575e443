// Command crucible-master reads a file of target MD5 hashes, distributes
// the cracking work across a fleet of minions, and writes an output file
// and console summary.
//
// Usage:
//
//	crucible-master <input_file>
//
// Configuration is read entirely from the environment; see
// internal/config for the full list of variables.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dreamware/crucible/internal/config"
	"github.com/dreamware/crucible/internal/logger"
	"github.com/dreamware/crucible/internal/master"
	"github.com/dreamware/crucible/internal/metrics"
	"github.com/dreamware/crucible/internal/recordio"
	"github.com/dreamware/crucible/internal/scheme"
)

var metricsAddr string

var rootCmd = &cobra.Command{
	Use:   "crucible-master <input_file>",
	Short: "Distribute MD5 hash cracking across a fleet of minions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args[0])
	},
}

func main() {
	rootCmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":2112", "listen address for the Prometheus /metrics endpoint")
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(inputFile string) error {
	log := logger.New("crucible-master")

	cfg, err := config.LoadMaster()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	minionURLs := cfg.MinionURLs()
	if len(minionURLs) == 0 {
		return fmt.Errorf("MINION_URLS must name at least one minion endpoint")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metricsSrv := &http.Server{
		Addr:              metricsAddr,
		Handler:           metrics.Handler(),
		ReadHeaderTimeout: 5 * time.Second, // Prevent slowloris attacks
	}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn().Err(err).Msg("metrics server stopped")
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
	}()

	hashes, err := recordio.ParseInputFile(inputFile)
	if err != nil {
		return fmt.Errorf("parse input file: %w", err)
	}
	log.Info().Int("hash_count", len(hashes)).Str("input_file", inputFile).Msg("starting crack run")

	cache := master.NewCache()
	registry := master.NewRegistry(minionURLs, cfg.MinionFailureThreshold, cfg.MinionBreakerOpenWindow)
	client := master.NewClient(cfg.MinionRequestTimeout)

	orch := master.NewOrchestrator(master.OrchestratorConfig{
		ChunkSize:         cfg.ChunkSize,
		MaxAttempts:       cfg.MaxAttempts,
		MaxConcurrentJobs: cfg.MaxConcurrentJobs,
		SchemeName:        scheme.DefaultSchemeName,
		NoMinionWait:      cfg.NoMinionWaitTime,
		RequestTimeout:    cfg.MinionRequestTimeout,
	}, cache, registry, client, log)

	records := orch.Run(hashes)

	for _, raw := range hashes {
		hash := recordio.NormalizeHash(raw)
		recordio.PrintConsole(os.Stdout, hash, records[hash])
	}

	if err := recordio.WriteOutputFile(cfg.OutputFile, records); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	log.Info().Str("output_file", cfg.OutputFile).Msg("crack run complete")
	return nil
}
