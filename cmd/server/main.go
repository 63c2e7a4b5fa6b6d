package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"lensoracle/internal/api"
	"lensoracle/internal/config"
	"lensoracle/internal/host"
	"lensoracle/internal/lens"
	"lensoracle/internal/logging"
	"lensoracle/internal/metrics"
	"lensoracle/internal/oracle"
)

func main() {
	cfg, err := config.Load(os.Getenv("ORACLE_CONFIG"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer logger.Sync()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	client := lens.NewClient(host.NewHTTP(logger), cfg.Lens, logger)
	handler := oracle.NewHandler(client, cfg.Oracle, logger, metrics.New(reg))

	server := api.NewServer(handler, reg, logger)

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := server.Start(cfg.Server.Port); err != nil {
			logger.Info("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
