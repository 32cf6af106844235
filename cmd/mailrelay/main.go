package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"mailrelay/internal/bootstrap"
	"mailrelay/internal/config"

	"github.com/go-logr/zapr"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zapLogger.Sync() }()
	logger := zapr.NewLogger(zapLogger)

	rt, err := bootstrap.NewRuntime(ctx, cfg, logger)
	if err != nil {
		logger.Error(err, "startup failed")
		log.Fatal(err)
	}
	defer rt.Cleanup()

	summary := cfg.Summary()
	logger.Info("startup config",
		"provider", summary.Provider,
		"queue_backend", summary.QueueBackend,
		"queue_suffix", summary.QueueSuffix,
		"queues", rt.Routes.Names(),
	)
	logger.Info("mailrelay listening", "addr", cfg.Addr)
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           rt.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		logger.Error(err, "http server failed")
		log.Fatal(err)
	}
}
