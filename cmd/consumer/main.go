package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"lensoracle/internal/config"
	"lensoracle/internal/host"
	"lensoracle/internal/lens"
	"lensoracle/internal/logging"
	"lensoracle/internal/oracle"
	"lensoracle/internal/queue"
	"lensoracle/internal/redis"
	"lensoracle/internal/worker"
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

	consumer, publisher, err := openQueue(cfg, logger)
	if err != nil {
		logger.Fatal("failed to open queue", zap.String("backend", cfg.Queue.Backend), zap.Error(err))
	}
	defer consumer.Close()
	defer publisher.Close()

	client := lens.NewClient(host.NewHTTP(logger), cfg.Lens, logger)
	handler := oracle.NewHandler(client, cfg.Oracle, logger, nil)

	w := worker.NewConsumer(consumer, publisher, handler, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := w.Start(ctx); err != nil {
			logger.Error("consumer error", zap.Error(err))
		}
	}()

	logger.Info("consumer started", zap.String("backend", cfg.Queue.Backend))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	cancel()
}

func openQueue(cfg *config.Config, logger *zap.Logger) (queue.Consumer, queue.Publisher, error) {
	switch cfg.Queue.Backend {
	case "kafka":
		consumer, err := queue.NewKafkaConsumer(cfg.Queue.Brokers, cfg.Queue.GroupID, cfg.Queue.Topic, logger)
		if err != nil {
			return nil, nil, err
		}
		publisher, err := queue.NewKafka(cfg.Queue.Brokers, cfg.Queue.ResultTopic)
		if err != nil {
			consumer.Close()
			return nil, nil, err
		}
		return consumer, publisher, nil
	case "redis":
		rdb, err := redis.New(cfg.Redis.Addr)
		if err != nil {
			return nil, nil, err
		}
		q := queue.NewRedis(rdb, cfg.Redis.RequestList, cfg.Redis.ResultList, logger)
		return q, nopCloser{q}, nil
	default:
		return nil, nil, fmt.Errorf("unknown queue backend %q", cfg.Queue.Backend)
	}
}

// nopCloser lets one Redis queue serve as both consumer and publisher
// without closing the connection twice.
type nopCloser struct {
	queue.Publisher
}

func (nopCloser) Close() error { return nil }
