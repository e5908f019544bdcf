package storage

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nikmy/userstore/internal/kv"
	"github.com/nikmy/userstore/internal/kv/kvmock"
	"github.com/nikmy/userstore/pkg/logger"
)

const testKey = "notes"

type note struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

func (n note) GetID() int64 { return n.ID }

func (n note) WithID(id int64) note {
	n.ID = id
	return n
}

func loadNotes(t *testing.T, backend kv.Backend) *Store[note] {
	t.Helper()
	s, err := Load[note](context.Background(), backend, testKey, logger.NewStub())
	require.NoError(t, err)
	return s
}

func readBlob(t *testing.T, backend kv.Backend) blob[note] {
	t.Helper()
	raw, err := backend.Read(context.Background(), testKey)
	require.NoError(t, err)

	var b blob[note]
	require.NoError(t, json.Unmarshal(raw, &b))
	return b
}

func TestLoad_Empty(t *testing.T) {
	s := loadNotes(t, kv.NewMemory())

	require.Empty(t, s.All())
	require.Equal(t, int64(1), s.NextID())
}

func TestLoad_Malformed(t *testing.T) {
	type testcase struct {
		name string
		blob string
	}

	tests := [...]testcase{
		{name: "not json", blob: "{nextId"},
		{name: "wrong shape", blob: `[1, 2, 3]`},
		{name: "wrong item type", blob: `{"nextId": 2, "items": [{"id": "one"}]}`},
		{name: "zero next id", blob: `{"nextId": 0, "items": []}`},
		{name: "duplicate ids", blob: `{"nextId": 3, "items": [{"id": 1}, {"id": 1}]}`},
		{name: "id not below next id", blob: `{"nextId": 2, "items": [{"id": 2}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := kv.NewMemory()
			require.NoError(t, backend.Write(context.Background(), testKey, []byte(tt.blob)))

			_, err := Load[note](context.Background(), backend, testKey, logger.NewStub())
			require.ErrorIs(t, err, ErrDeserialization)
		})
	}
}

func TestLoad_ReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := kvmock.NewMockBackend(ctrl)

	readErr := errors.New("disk unplugged")
	backend.EXPECT().Read(gomock.Any(), testKey).Return(nil, readErr)

	_, err := Load[note](context.Background(), backend, testKey, logger.NewStub())
	require.ErrorIs(t, err, readErr)
	require.NotErrorIs(t, err, ErrDeserialization)
}

func TestStore_AddInOrder(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	s := loadNotes(t, backend)

	texts := []string{"first", "second", "third", "fourth"}
	for _, text := range texts {
		require.NoError(t, s.Add(ctx, note{Text: text}, s.NextID()))
	}

	all := s.All()
	require.Len(t, all, len(texts))

	seen := make(map[int64]bool)
	for i, n := range all {
		require.Equal(t, texts[i], n.Text)
		require.False(t, seen[n.ID], "id %d handed out twice", n.ID)
		seen[n.ID] = true
	}

	persisted := readBlob(t, backend)
	require.Equal(t, all, persisted.Items)
	require.Equal(t, int64(5), persisted.NextID)
}

func TestStore_NextIDStrictlyIncreasing(t *testing.T) {
	s := loadNotes(t, kv.NewMemory())

	prev := s.NextID()
	for i := 0; i < 100; i++ {
		id := s.NextID()
		require.Greater(t, id, prev)
		prev = id
	}
}

func TestStore_AddDuplicate(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	s := loadNotes(t, backend)

	id := s.NextID()
	require.NoError(t, s.Add(ctx, note{Text: "original"}, id))
	before, err := backend.Read(ctx, testKey)
	require.NoError(t, err)

	err = s.Add(ctx, note{Text: "impostor"}, id)
	require.ErrorIs(t, err, ErrDuplicateID)

	require.Equal(t, []note{{ID: id, Text: "original"}}, s.All())

	after, err := backend.Read(ctx, testKey)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestStore_AddExplicitIDBumpsCounter(t *testing.T) {
	ctx := context.Background()
	s := loadNotes(t, kv.NewMemory())

	require.NoError(t, s.Add(ctx, note{Text: "far"}, 10))
	require.Equal(t, int64(11), s.NextID())
}

func TestStore_AddIDOutOfRange(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	s := loadNotes(t, backend)

	ids := [...]int64{math.MaxInt64, 0, -1, math.MinInt64}
	for _, id := range ids {
		err := s.Add(ctx, note{Text: "edge"}, id)
		require.ErrorIs(t, err, ErrIDOutOfRange, "id %d", id)
	}

	require.Empty(t, s.All())
	_, err := backend.Read(ctx, testKey)
	require.ErrorIs(t, err, kv.ErrKeyNotFound, "rejected ids must not be persisted")

	require.NoError(t, s.Add(ctx, note{Text: "last"}, math.MaxInt64-1))
	require.Equal(t, int64(math.MaxInt64), s.NextID())

	fresh := loadNotes(t, backend)
	require.Equal(t, s.All(), fresh.All())
}

func TestStore_AddWriteFailure(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	backend := kvmock.NewMockBackend(ctrl)

	backend.EXPECT().Read(gomock.Any(), testKey).Return([]byte(`{"nextId": 2, "items": [{"id": 1, "text": "kept"}]}`), nil)
	backend.EXPECT().Write(gomock.Any(), testKey, gomock.Any()).Return(errors.New("quota exceeded"))

	s := loadNotes(t, backend)

	err := s.Add(ctx, note{Text: "lost"}, 5)
	require.Error(t, err)

	require.Equal(t, []note{{ID: 1, Text: "kept"}}, s.All())
	require.Equal(t, int64(2), s.NextID())
}

func TestStore_Get(t *testing.T) {
	ctx := context.Background()
	s := loadNotes(t, kv.NewMemory())

	id := s.NextID()
	require.NoError(t, s.Add(ctx, note{Text: "hello"}, id))

	got, err := s.Get(id)
	require.NoError(t, err)
	require.Equal(t, note{ID: id, Text: "hello"}, got)

	_, err = s.Get(id + 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_AllIsACopy(t *testing.T) {
	ctx := context.Background()
	s := loadNotes(t, kv.NewMemory())
	require.NoError(t, s.Add(ctx, note{Text: "a"}, s.NextID()))

	all := s.All()
	all[0].Text = "mutated"
	_ = append(all, note{ID: 99})

	require.Equal(t, []note{{ID: 1, Text: "a"}}, s.All())
}

func TestStore_Remove(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	s := loadNotes(t, backend)

	for _, text := range []string{"a", "b", "c"} {
		require.NoError(t, s.Add(ctx, note{Text: text}, s.NextID()))
	}

	require.NoError(t, s.Remove(ctx, 2))
	require.Equal(t, []note{{ID: 1, Text: "a"}, {ID: 3, Text: "c"}}, s.All())
	require.Equal(t, s.All(), readBlob(t, backend).Items)
}

func TestStore_RemoveMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	backend := kvmock.NewMockBackend(ctrl)

	backend.EXPECT().Read(gomock.Any(), testKey).Return([]byte(`{"nextId": 2, "items": [{"id": 1}]}`), nil)
	// no Write expected

	s := loadNotes(t, backend)
	require.NoError(t, s.Remove(ctx, 42))
	require.Len(t, s.All(), 1)
}

func TestStore_RemoveWriteFailure(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	backend := kvmock.NewMockBackend(ctrl)

	backend.EXPECT().Read(gomock.Any(), testKey).Return([]byte(`{"nextId": 3, "items": [{"id": 1}, {"id": 2}]}`), nil)
	backend.EXPECT().Write(gomock.Any(), testKey, gomock.Any()).Return(errors.New("read-only"))

	s := loadNotes(t, backend)
	require.Error(t, s.Remove(ctx, 1))
	require.Equal(t, []note{{ID: 1}, {ID: 2}}, s.All())
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	s := loadNotes(t, backend)

	require.NoError(t, s.Add(ctx, note{Text: "x"}, s.NextID()))
	require.NoError(t, s.Add(ctx, note{Text: "y"}, s.NextID()))
	_ = s.NextID()
	require.NoError(t, s.Save(ctx))

	fresh := loadNotes(t, backend)
	require.Equal(t, s.All(), fresh.All())
	require.Equal(t, s.NextID(), fresh.NextID())
}

func TestStore_SaveEmptyWritesItemsArray(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	s := loadNotes(t, backend)

	require.NoError(t, s.Save(ctx))

	raw, err := backend.Read(ctx, testKey)
	require.NoError(t, err)
	require.JSONEq(t, `{"nextId": 1, "items": []}`, string(raw))
}
