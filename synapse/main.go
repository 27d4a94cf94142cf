package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"synapse/synapse/config"
	"synapse/synapse/controllers"
	"synapse/synapse/routes"
	"synapse/synapse/services/harvester"
	"synapse/synapse/services/ingest"
	"synapse/synapse/services/scraper"
	"synapse/synapse/services/search"
	"synapse/synapse/services/widget"
	"synapse/synapse/utils/logging"

	"go.uber.org/zap"
)

func main() {
	cfg, cfgErr := config.LoadConfig()
	if err := logging.InitLogger(cfg.LogDir); err != nil {
		panic("failed to create logs directory: " + err.Error())
	}
	defer logging.Sync()
	if cfgErr != nil {
		logging.ErrorLogger.Error("schema load error, using built-in schema", zap.Error(cfgErr))
	}

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	fetcher, closeFetcher, err := scraper.NewFetcher(cfg.Fetcher, httpClient)
	if err != nil {
		logging.ErrorLogger.Error("fetcher init error", zap.String("fetcher", cfg.Fetcher), zap.Error(err))
		os.Exit(1)
	}
	defer closeFetcher()

	h := harvester.New(cfg.Schema, fetcher, ingest.NewClient(cfg.APIBaseURL, httpClient))
	widgetCtrl := controllers.NewWidgetController(search.NewClient(cfg.APIBaseURL, httpClient), h, widget.Options{
		MinQueryLength: cfg.MinQueryLength,
		Debounce:       cfg.Debounce,
		StaleGuard:     cfg.StaleGuard,
	}).WithMaxSnapshotBytes(cfg.MaxSnapshotBytes)

	handler := routes.Router(routes.Controllers{
		Health:  controllers.NewHealthController("synapse"),
		Widget:  widgetCtrl,
		Harvest: controllers.NewHarvestController(h),
	}, cfg)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: handler,
	}
	go func() {
		logging.AppLogger.Info("synapse listening", zap.String("addr", cfg.ListenAddr), zap.String("api", cfg.APIBaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
			os.Exit(1)
		}
	}()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
