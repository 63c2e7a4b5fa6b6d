package queue

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"lensoracle/internal/domain"
)

// TaskStore is the list API of the redis client.
type TaskStore interface {
	PushTask(ctx context.Context, queue, task string) error
	PopTask(ctx context.Context, queue string, timeout time.Duration) (string, error)
	Close() error
}

// Redis consumes jobs from one list and publishes results to another. Jobs
// whose handler fails are pushed back to the request list.
type Redis struct {
	store    TaskStore
	requests string
	results  string
	poll     time.Duration
	logger   *zap.Logger
}

func NewRedis(store TaskStore, requests, results string, logger *zap.Logger) *Redis {
	return &Redis{
		store:    store,
		requests: requests,
		results:  results,
		poll:     time.Second,
		logger:   logger,
	}
}

func (r *Redis) Consume(ctx context.Context, handler Handler) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		task, err := r.store.PopTask(ctx, r.requests, r.poll)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if task == "" {
			continue
		}

		var job domain.Job
		if err := json.Unmarshal([]byte(task), &job); err != nil {
			r.logger.Warn("dropping undecodable job", zap.Error(err))
			continue
		}

		if err := handler(ctx, job); err != nil {
			// Requeued immediately behind any pending jobs; there is no backoff.
			r.logger.Warn("requeueing job", zap.String("job", job.ID), zap.Error(err))
			if err := r.store.PushTask(context.WithoutCancel(ctx), r.requests, task); err != nil {
				return err
			}
		}
	}
}

func (r *Redis) Publish(ctx context.Context, result domain.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return r.store.PushTask(ctx, r.results, string(data))
}

func (r *Redis) Close() error {
	return r.store.Close()
}
