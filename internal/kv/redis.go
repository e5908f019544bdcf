package kv

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nikmy/userstore/pkg/errors"
	"github.com/nikmy/userstore/pkg/logger"
)

func newRedis(ctx context.Context, cfg RedisConfig, log logger.Logger) (*redisBackend, error) {
	log = log.With("redis_backend")

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, errors.WrapFail(err, "parse redis url")
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	for attempt := 0; attempt < cfg.RetryAttempts; attempt++ {
		client := redis.NewClient(opts)

		err = client.Ping(ctx).Err()
		if err == nil {
			return &redisBackend{client: client, prefix: cfg.KeyPrefix, log: log}, nil
		}
		_ = client.Close()
		log.Warnf("redis ping attempt %d failed: %s", attempt+1, err)

		if attempt == cfg.RetryAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, errors.WrapFail(ctx.Err(), "connect to redis")
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, errors.WrapFail(err, "connect to redis")
}

type redisBackend struct {
	client *redis.Client
	prefix string
	log    logger.Logger
}

func (r *redisBackend) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, errors.WrapFailf(err, "get %s", key)
	}
	return data, nil
}

func (r *redisBackend) Write(ctx context.Context, key string, value []byte) error {
	err := r.client.Set(ctx, r.prefix+key, value, 0).Err()
	return errors.WrapFailf(err, "set %s", key)
}

func (r *redisBackend) Close(context.Context) error {
	return errors.WrapFail(r.client.Close(), "close redis client")
}
