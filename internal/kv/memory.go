package kv

import (
	"context"
	"slices"
	"sync"
)

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Memory keeps values in a process-local map. Values are
// copied on the way in and out.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func (m *Memory) Read(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return slices.Clone(value), nil
}

func (m *Memory) Write(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = slices.Clone(value)
	return nil
}

func (m *Memory) Close(context.Context) error {
	return nil
}
