// Package storage keeps a collection of entities in memory and
// mirrors it into a single JSON blob of a kv.Backend.
package storage

import (
	"context"
	"encoding/json"
	"math"
	"slices"

	"github.com/nikmy/userstore/internal/kv"
	"github.com/nikmy/userstore/pkg/errors"
	"github.com/nikmy/userstore/pkg/logger"
)

const (
	firstID int64 = 1
	// lastID keeps id+1 representable as the next counter value.
	lastID int64 = math.MaxInt64 - 1
)

// blob is the persisted shape: {"nextId": N, "items": [...]}.
type blob[T any] struct {
	NextID int64 `json:"nextId"`
	Items  []T   `json:"items"`
}

// Store is not safe for concurrent use.
type Store[T Entity[T]] struct {
	key     string
	backend kv.Backend
	log     logger.Logger

	nextID int64
	items  []T
}

// Load reads the blob stored under key, or starts empty if the
// key was never written.
func Load[T Entity[T]](
	ctx context.Context,
	backend kv.Backend,
	key string,
	log logger.Logger,
) (*Store[T], error) {
	s := &Store[T]{
		key:     key,
		backend: backend,
		log:     log.With("storage"),
		nextID:  firstID,
	}

	raw, err := backend.Read(ctx, key)
	if errors.Is(err, kv.ErrKeyNotFound) {
		s.log.Debugf("no data under %q, starting empty", key)
		return s, nil
	}
	if err != nil {
		return nil, errors.WrapFailf(err, "read %q", key)
	}

	state, err := decode[T](raw)
	if err != nil {
		return nil, errors.Wrapf(err, "load %q", key)
	}

	s.nextID, s.items = state.NextID, state.Items
	s.log.Debugf("loaded %d items from %q, next id %d", len(s.items), key, s.nextID)
	return s, nil
}

func decode[T Entity[T]](raw []byte) (blob[T], error) {
	var state blob[T]

	err := json.Unmarshal(raw, &state)
	if err != nil {
		return state, errors.Mark(err, ErrDeserialization)
	}

	if state.NextID < firstID {
		return state, errors.Mark(errors.Errorf("next id %d is below %d", state.NextID, firstID), ErrDeserialization)
	}

	seen := make(map[int64]struct{}, len(state.Items))
	for _, item := range state.Items {
		id := item.GetID()
		if _, dup := seen[id]; dup {
			return state, errors.Mark(errors.Errorf("id %d is stored twice", id), ErrDeserialization)
		}
		if id >= state.NextID {
			return state, errors.Mark(errors.Errorf("id %d is not below next id %d", id, state.NextID), ErrDeserialization)
		}
		seen[id] = struct{}{}
	}

	return state, nil
}

func (s *Store[T]) Get(id int64) (T, error) {
	idx := s.indexOf(id)
	if idx == -1 {
		var zero T
		return zero, errors.Wrapf(ErrNotFound, "id %d", id)
	}
	return s.items[idx], nil
}

// All returns a copy of the items in insertion order.
func (s *Store[T]) All() []T {
	return slices.Clone(s.items)
}

// NextID hands out the current counter and advances it. The new
// value reaches the backend with the next mutation or Save.
func (s *Store[T]) NextID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// Add stores item under id and persists the store. On any error
// the in-memory state is left as it was before the call.
func (s *Store[T]) Add(ctx context.Context, item T, id int64) error {
	if id < firstID || id > lastID {
		return errors.Wrapf(ErrIDOutOfRange, "id %d", id)
	}
	if s.indexOf(id) != -1 {
		return errors.Wrapf(ErrDuplicateID, "id %d", id)
	}

	prevItems, prevNextID := s.items, s.nextID

	s.items = append(slices.Clip(s.items), item.WithID(id))
	if id >= s.nextID {
		s.nextID = id + 1
	}

	err := s.Save(ctx)
	if err != nil {
		s.items, s.nextID = prevItems, prevNextID
		return errors.WrapFailf(err, "add item %d", id)
	}
	return nil
}

// Remove deletes the item with the given id and persists the
// store. Removing a missing id does nothing.
func (s *Store[T]) Remove(ctx context.Context, id int64) error {
	idx := s.indexOf(id)
	if idx == -1 {
		return nil
	}

	prevItems := s.items
	s.items = slices.Delete(slices.Clone(s.items), idx, idx+1)

	err := s.Save(ctx)
	if err != nil {
		s.items = prevItems
		return errors.WrapFailf(err, "remove item %d", id)
	}
	return nil
}

// Save writes the full state under the store's key in one write.
func (s *Store[T]) Save(ctx context.Context) error {
	items := s.items
	if items == nil {
		items = []T{}
	}

	raw, err := json.Marshal(blob[T]{NextID: s.nextID, Items: items})
	if err != nil {
		return errors.WrapFail(err, "marshal store state")
	}

	err = s.backend.Write(ctx, s.key, raw)
	if err != nil {
		err = errors.WrapFailf(err, "write %q", s.key)
		s.log.Warn(err)
		return err
	}

	s.log.Debugf("saved %d items to %q", len(s.items), s.key)
	return nil
}

func (s *Store[T]) indexOf(id int64) int {
	return slices.IndexFunc(s.items, func(item T) bool {
		return item.GetID() == id
	})
}
