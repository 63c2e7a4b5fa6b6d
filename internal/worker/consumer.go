package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"lensoracle/internal/domain"
	"lensoracle/internal/queue"
)

// Executor runs one oracle invocation.
type Executor interface {
	Handle(ctx context.Context, request []byte, settings string) ([]byte, error)
}

// Consumer runs queued jobs through the oracle one at a time and publishes
// their responses.
type Consumer struct {
	consumer  queue.Consumer
	publisher queue.Publisher
	executor  Executor
	logger    *zap.Logger
}

func NewConsumer(c queue.Consumer, p queue.Publisher, ex Executor, logger *zap.Logger) *Consumer {
	return &Consumer{
		consumer:  c,
		publisher: p,
		executor:  ex,
		logger:    logger,
	}
}

func (w *Consumer) Start(ctx context.Context) error {
	return w.consumer.Consume(ctx, w.handleJob)
}

// handleJob returns an error when the invocation failed without a response,
// which leaves the job to be retried by the queue.
func (w *Consumer) handleJob(ctx context.Context, job domain.Job) error {
	log := w.logger.With(zap.String("job", job.ID))
	log.Info("received", zap.Int("request_bytes", len(job.Request)))

	out, err := w.executor.Handle(ctx, job.Request, job.Settings)
	if err != nil {
		log.Error("invocation failed, job left for retry", zap.Error(err))
		return err
	}

	result := domain.Result{
		JobID:      job.ID,
		Response:   out,
		FinishedAt: time.Now().UTC(),
	}
	if err := w.publisher.Publish(ctx, result); err != nil {
		log.Error("publish", zap.Error(err))
		return err
	}

	log.Info("published", zap.Int("response_bytes", len(out)))
	return nil
}
