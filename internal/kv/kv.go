package kv

import (
	"context"

	"github.com/nikmy/userstore/pkg/errors"
	"github.com/nikmy/userstore/pkg/logger"
)

// New opens the backend selected by cfg.Kind.
func New(ctx context.Context, cfg Config, log logger.Logger) (Backend, error) {
	cfg.setDefaults()
	err := cfg.validate()
	if err != nil {
		return nil, errors.WrapFail(err, "open storage backend")
	}

	switch cfg.Kind {
	case KindMemory:
		return NewMemory(), nil
	case KindFile:
		return newFile(cfg.File.Dir, log)
	case KindMongo:
		return newMongo(ctx, cfg.Mongo, log)
	case KindRedis:
		return newRedis(ctx, cfg.Redis, log)
	default:
		return nil, errors.Errorf("unsupported storage kind %q", cfg.Kind)
	}
}
