package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"accidentstats/internal/app"
	datasethandler "accidentstats/internal/dataset/handler"
	datasetmetrics "accidentstats/internal/dataset/metrics"
	datasetservice "accidentstats/internal/dataset/service"
	"accidentstats/internal/platform/config"
	"accidentstats/internal/platform/httpserver"
	"accidentstats/internal/platform/logger"
	"accidentstats/internal/platform/metrics"
	statshandler "accidentstats/internal/stats/handler"
	statsmetrics "accidentstats/internal/stats/metrics"
	statsservice "accidentstats/internal/stats/service"
	httptransport "accidentstats/internal/transport/http"
)

// main wires the record store, report cache and HTTP router, then serves
// until SIGINT or SIGTERM.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	records, closeStore, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open record store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	reportCache, err := app.OpenReportCache(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open report cache", "error", err)
		closeStore()
		os.Exit(1)
	}
	defer reportCache.Close()

	reports := statsservice.New(records, cfg.Stats,
		statsservice.WithCache(reportCache.Cache),
		statsservice.WithLogger(log),
		statsservice.WithMetrics(statsmetrics.New()),
	)
	datasets := datasetservice.New(records,
		datasetservice.WithReportInvalidator(reports),
		datasetservice.WithLogger(log),
		datasetservice.WithMetrics(datasetmetrics.New()),
	)

	checks := map[string]httptransport.HealthChecker{"store": records}
	if reportCache.Health != nil {
		checks["cache"] = reportCache.Health
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:  log,
		Metrics: metrics.New(),
		Checks:  checks,
		Handlers: []httptransport.Registrar{
			statshandler.New(reports, log),
			datasethandler.New(datasets, cfg.DatasetPath, cfg.AdminToken, log),
		},
	})

	srv := httpserver.New(cfg.Addr, router, httptransport.RequestTimeout)

	go func() {
		log.Info("starting accidentstats", "addr", cfg.Addr, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	log.Info("accidentstats stopped")
}
