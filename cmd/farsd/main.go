// Command farsd serves the accident analysis API over HTTP: monthly
// summaries, rendered state maps, and the usual health, readiness, and
// metrics endpoints.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	chartadapter "github.com/cmpear/fars-analysis/internal/adapter/chart"
	httpadapter "github.com/cmpear/fars-analysis/internal/adapter/http"
	"github.com/cmpear/fars-analysis/internal/analysis"
	"github.com/cmpear/fars-analysis/internal/config"
	"github.com/cmpear/fars-analysis/internal/dataset"
	"github.com/cmpear/fars-analysis/internal/mapping"
	"github.com/cmpear/fars-analysis/internal/observability"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	format, err := chartadapter.ParseFormat(cfg.MapFormat)
	if err != nil {
		logger.Error("failed to configure renderer", "error", err)
		os.Exit(1)
	}

	loader := dataset.NewCachedLoader(dataset.NewLoader(cfg.DataDir, logger, metrics), cfg.CacheYears)
	summarizer := analysis.NewSummarizer(loader, logger, metrics)
	renderer := chartadapter.NewRenderer(cfg.MapWidth, cfg.MapHeight, format)
	mapper := mapping.NewMapper(loader, renderer, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, loader, summarizer, mapper, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	logger.Info("analysis service started",
		"addr", cfg.HTTPAddr,
		"data_dir", cfg.DataDir,
		"map_format", cfg.MapFormat,
		"cache_years", cfg.CacheYears,
	)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
