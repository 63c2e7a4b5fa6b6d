package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type Client struct {
	rdb *redis.Client
}

func New(addr string) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Client{rdb: rdb}, nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

// Task queue: producers push to the head, consumers pop from the tail.
func (c *Client) PushTask(ctx context.Context, queue, task string) error {
	return c.rdb.LPush(ctx, queue, task).Err()
}

// PopTask blocks up to timeout and returns "" when the queue stayed empty.
func (c *Client) PopTask(ctx context.Context, queue string, timeout time.Duration) (string, error) {
	result, err := c.rdb.BRPop(ctx, timeout, queue).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return result[1], nil
}
