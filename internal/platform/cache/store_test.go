package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStoreSetGet(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Hour)

	_, ok := store.Get(ctx, "missing")
	require.False(t, ok)

	store.Set(ctx, "k", 42)
	value, ok := store.Get(ctx, "k")
	require.True(t, ok)
	require.Equal(t, 42, value)

	store.Delete(ctx, "k")
	_, ok = store.Get(ctx, "k")
	require.False(t, ok)
}

func TestStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewStore(10 * time.Millisecond)

	store.Set(ctx, "k", "v")
	time.Sleep(20 * time.Millisecond)

	_, ok := store.Get(ctx, "k")
	require.False(t, ok)
}

func TestStoreGetOrLoadSingleFlight(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Hour)

	var calls atomic.Int64
	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(5 * time.Millisecond)
		return "loaded", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := store.GetOrLoad(ctx, "k", loader)
			require.NoError(t, err)
			require.Equal(t, "loaded", value)
		}()
	}
	wg.Wait()

	require.Equal(t, int64(1), calls.Load())

	// Cached now, loader must not run again.
	_, err := store.GetOrLoad(ctx, "k", loader)
	require.NoError(t, err)
	require.Equal(t, int64(1), calls.Load())
}
