package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisTransport pushes payloads onto Redis lists, one list per queue name.
// Consumers drain with BRPOP, so LPUSH keeps FIFO order. Intended for local
// and single-region deployments where SQS is unavailable.
type RedisTransport struct {
	client *redis.Client
}

func NewRedis(ctx context.Context, cfg RedisConfig) (*RedisTransport, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Addr, err)
	}
	return &RedisTransport{client: client}, nil
}

func (t *RedisTransport) Push(ctx context.Context, queue string, payload []byte) error {
	if err := t.client.LPush(ctx, queue, payload).Err(); err != nil {
		return fmt.Errorf("lpush to %s: %w", queue, err)
	}
	return nil
}

func (t *RedisTransport) Close() error {
	return t.client.Close()
}
