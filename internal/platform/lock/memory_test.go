package lock_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/SscSPs/multi_currency_app/internal/platform/lock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLock_SecondAcquireFailsUntilReleased(t *testing.T) {
	l := lock.NewMemoryLock()
	ctx := context.Background()

	release, ok, err := l.TryAcquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, l.Held())

	_, ok, err = l.TryAcquire(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "lock must not be granted twice")

	release()
	assert.False(t, l.Held())

	release2, ok, err := l.TryAcquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	release2()
}

func TestMemoryLock_ReleaseIsIdempotent(t *testing.T) {
	l := lock.NewMemoryLock()
	ctx := context.Background()

	release, ok, _ := l.TryAcquire(ctx)
	require.True(t, ok)
	release()

	other, ok, _ := l.TryAcquire(ctx)
	require.True(t, ok)

	// A stale release must not free someone else's hold.
	release()
	assert.True(t, l.Held())
	other()
}

func TestMemoryLock_ConcurrentAcquire(t *testing.T) {
	l := lock.NewMemoryLock()
	ctx := context.Background()

	var granted atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if _, ok, _ := l.TryAcquire(ctx); ok {
				granted.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), granted.Load())
}
