package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/newthinker/prism/internal/api"
	"github.com/newthinker/prism/internal/api/job"
	"github.com/newthinker/prism/internal/chart"
	"github.com/newthinker/prism/internal/config"
	"github.com/newthinker/prism/internal/core"
	"github.com/newthinker/prism/internal/dataset"
	"github.com/newthinker/prism/internal/export"
	"github.com/newthinker/prism/internal/export/archive"
	"github.com/newthinker/prism/internal/insight"
	"github.com/newthinker/prism/internal/insight/factory"
	"github.com/newthinker/prism/internal/logger"
	"github.com/newthinker/prism/internal/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the PRISM server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// Initialize logger
	log := logger.Must(debug)
	defer log.Sync()

	// Load config
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
		log.Warn("no config file specified, using defaults")
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	log.Info("starting PRISM server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
	)

	reg := metrics.NewRegistry()

	storage, err := newStorage(cfg)
	if err != nil {
		return fmt.Errorf("creating export archive: %w", err)
	}

	// Optional insight provider
	var summarizer *insight.Summarizer
	if cfg.Insight.Provider != "" {
		provider, err := factory.New(cfg.Insight)
		if err != nil {
			return fmt.Errorf("creating insight provider: %w", err)
		}
		summarizer = insight.NewSummarizer(provider)
		log.Info("insight provider configured", zap.String("provider", provider.Name()))
	} else {
		log.Info("no insight provider configured, commentary disabled")
	}

	jobs := job.NewStore(cfg.Server.MaxJobs, time.Duration(cfg.Server.JobTTLHours)*time.Hour)

	deps := api.Dependencies{
		Datasets:   dataset.NewStore(cfg.Dataset.MaxDatasets),
		Jobs:       jobs,
		Exporter:   export.NewExporter(storage),
		Summarizer: summarizer,
		Provider:   cfg.Insight.Provider,
		Defaults: chart.Options{
			Kind:              core.CoordOrdinal,
			MaxPoints:         cfg.Engine.MaxPoints,
			FeaturePreserving: cfg.Engine.FeaturePreserving,
			HintThreshold:     cfg.Engine.HintThreshold,
		},
		Metrics: reg,
	}

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}

	server, err := api.NewServer(api.Config{
		Host:        cfg.Server.Host,
		Port:        cfg.Server.Port,
		APIKey:      cfg.Server.APIKey,
		MetricsPath: metricsPath,
	}, deps, log)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Error("server error", zap.Error(err))
		}
	}()

	// Sweep finished jobs past their TTL
	purgeCtx, stopPurge := context.WithCancel(context.Background())
	go purgeJobs(purgeCtx, jobs, log)

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down PRISM server")
	stopPurge()

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}

func newStorage(cfg *config.Config) (archive.Storage, error) {
	switch cfg.Export.Type {
	case "s3":
		return archive.NewS3(archive.S3Config{
			Bucket:    cfg.Export.S3.Bucket,
			Endpoint:  cfg.Export.S3.Endpoint,
			Region:    cfg.Export.S3.Region,
			AccessKey: cfg.Export.S3.AccessKey,
			SecretKey: cfg.Export.S3.SecretKey,
			Prefix:    cfg.Export.S3.Prefix,
		})
	default:
		return archive.NewLocalFS(cfg.Export.Path)
	}
}

func purgeJobs(ctx context.Context, jobs *job.Store, log *zap.Logger) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := jobs.Purge(); removed > 0 {
				log.Debug("purged finished jobs", zap.Int("removed", removed))
			}
		}
	}
}
