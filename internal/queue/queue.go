package queue

import (
	"context"

	"lensoracle/internal/domain"
)

// Handler processes one job. A non-nil error leaves the job for redelivery.
type Handler func(ctx context.Context, job domain.Job) error

type Consumer interface {
	Consume(ctx context.Context, handler Handler) error
	Close() error
}

type Publisher interface {
	Publish(ctx context.Context, result domain.Result) error
	Close() error
}
