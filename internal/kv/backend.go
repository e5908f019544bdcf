// Package kv holds the key-value byte stores a storage.Store persists into.
package kv

import (
	"context"

	"github.com/nikmy/userstore/pkg/errors"
)

//go:generate mockgen -source=backend.go -destination=kvmock/backend.go -package=kvmock

// Backend is a get/set-by-key byte store. Write replaces the
// value under key as a whole: a failed Write leaves the old value.
type Backend interface {
	// Read returns ErrKeyNotFound if nothing was written under key.
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
	Close(ctx context.Context) error
}

var (
	ErrKeyNotFound = errors.New("kv: key not found")
	ErrInvalidKey  = errors.New("kv: invalid key")
)
