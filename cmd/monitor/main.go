package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/and161185/resource-monitor/internal/buildinfo"
	"github.com/and161185/resource-monitor/internal/collector"
	"github.com/and161185/resource-monitor/internal/config"
	"github.com/and161185/resource-monitor/internal/monitor"
	"github.com/and161185/resource-monitor/internal/publisher"
	"github.com/and161185/resource-monitor/internal/status"
	"github.com/and161185/resource-monitor/internal/store"
)

func main() {
	buildinfo.PrintBuildInfo()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewMonitorConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = cfg.Logger.Sync() }()

	// Bootstrap failures are the only fatal errors; once the loop starts,
	// nothing below it terminates the process.
	if err := run(ctx, cfg); err != nil {
		cfg.Logger.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.MonitorConfig) error {
	logger := cfg.Logger
	logger.Infof("Monitor config: Bucket=%s, PollInterval=%s, HistoryInterval=%s, SpoolDir=%q, StatusAddr=%q",
		cfg.Bucket, cfg.PollInterval, cfg.HistoryInterval, cfg.SpoolDir, cfg.StatusAddr)

	st, err := store.NewS3Store(ctx, cfg.Bucket)
	if err != nil {
		return err
	}
	if err := st.Check(ctx); err != nil {
		return fmt.Errorf("bucket %s is not reachable: %w", cfg.Bucket, err)
	}
	logger.Infof("connected to bucket %s", cfg.Bucket)

	gpu := collector.NewGPUReader()
	if gpu == nil {
		logger.Warn("GPU monitoring unavailable, proceeding without it")
	} else {
		defer gpu.Close()
		logger.Infof("GPU monitoring initialized for %d device(s)", gpu.Count())
	}

	coll := collector.NewCollector(collector.NewCPUReader(), gpu)
	stat := status.New()
	pub := publisher.NewPublisher(st, cfg.HistoryInterval, cfg.SpoolDir, stat, logger)

	if cfg.StatusAddr != "" {
		go func() {
			if err := stat.Serve(ctx, cfg.StatusAddr, logger); err != nil {
				logger.Errorf("status endpoint: %v", err)
			}
		}()
	}

	return monitor.NewMonitor(coll, pub, cfg.PollInterval, stat, logger).Run(ctx)
}
