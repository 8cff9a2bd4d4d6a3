package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	httpadapter "github.com/couchcryptid/air-quality-comparison/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/air-quality-comparison/internal/adapter/kafka"
	"github.com/couchcryptid/air-quality-comparison/internal/adapter/openweather"
	"github.com/couchcryptid/air-quality-comparison/internal/config"
	"github.com/couchcryptid/air-quality-comparison/internal/observability"
	"github.com/couchcryptid/air-quality-comparison/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	if err := run(cfg, logger); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := openweather.NewClient(cfg.APIKey, cfg.APIBaseURL, cfg.APITimeout, metrics, logger)

	// Kafka publication is feature-flagged via KAFKA_BROKERS.
	var publisher pipeline.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		writer := kafkaadapter.NewWriter(cfg, metrics, logger)
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		publisher = writer
		logger.Info("kafka publication enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	p := pipeline.New(client, publisher, os.Stdout, logger, metrics, pipeline.Options{
		OutputPath:    cfg.OutputPath,
		FailurePolicy: cfg.FailurePolicy,
	})

	if _, err := p.Run(ctx, cfg.Locations); err != nil {
		return err
	}

	if cfg.MetricsTextfile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsTextfile, prometheus.DefaultGatherer); err != nil {
			return fmt.Errorf("write metrics textfile: %w", err)
		}
		logger.Info("metrics written", "path", cfg.MetricsTextfile)
	}

	if cfg.ServeAddr == "" {
		return nil
	}
	return serve(ctx, cfg, p, logger)
}

// serve exposes the finished chart until SIGINT or SIGTERM.
func serve(ctx context.Context, cfg *config.Config, p *pipeline.Pipeline, logger *slog.Logger) error {
	srv := httpadapter.NewServer(cfg.ServeAddr, p, p, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
	return nil
}
