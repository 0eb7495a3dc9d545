package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, ok, err := s.Get(ctx, TailoredContentKey)
	require.NoError(t, err)
	assert.False(t, ok)

	payload := []byte(`{"workExperience":["Did X"]}`)
	require.NoError(t, s.Put(ctx, TailoredContentKey, payload))

	got, ok, err := s.Get(ctx, TailoredContentKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, string(payload), string(got))

	require.NoError(t, s.Delete(ctx, TailoredContentKey))
	_, ok, err = s.Get(ctx, TailoredContentKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	payload := []byte(`{"a":1}`)
	require.NoError(t, s.Put(ctx, "k", payload))
	payload[2] = 'b'

	got, _, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	got[2] = 'c'
	again, _, _ := s.Get(ctx, "k")
	assert.Equal(t, `{"a":1}`, string(again))
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewMemoryStore()
	assert.ErrorIs(t, s.Put(ctx, "k", []byte("{}")), context.Canceled)
	_, _, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i)
			_ = s.Put(ctx, key, []byte("{}"))
			_, _, _ = s.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
}

func TestSessionKey(t *testing.T) {
	id := uuid.MustParse("3f2c1a4e-9a7b-4c1d-8e2f-0a1b2c3d4e5f")
	assert.Equal(t, "tailoredContent:3f2c1a4e-9a7b-4c1d-8e2f-0a1b2c3d4e5f", SessionKey(id))
}

func TestMemoryStore_ImplementsKV(t *testing.T) {
	var _ KV = NewMemoryStore()
	var _ KV = (*PostgresStore)(nil)
}
