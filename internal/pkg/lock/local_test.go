package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker(t *testing.T) {
	ctx := context.Background()

	t.Run("second acquire fails until release", func(t *testing.T) {
		l := NewLocalLocker()

		hold, err := l.Acquire(ctx, "imports", time.Minute)
		require.NoError(t, err)

		_, err = l.Acquire(ctx, "imports", time.Minute)
		assert.ErrorIs(t, err, ErrLocked)

		_, err = l.Acquire(ctx, "other", time.Minute)
		assert.NoError(t, err)

		require.NoError(t, hold.Release(ctx))
		require.NoError(t, hold.Release(ctx))

		_, err = l.Acquire(ctx, "imports", time.Minute)
		assert.NoError(t, err)
	})

	t.Run("expired hold is taken over and stale release is ignored", func(t *testing.T) {
		l := NewLocalLocker()
		now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		l.now = func() time.Time { return now }

		stale, err := l.Acquire(ctx, "imports", time.Second)
		require.NoError(t, err)

		now = now.Add(2 * time.Second)
		_, err = l.Acquire(ctx, "imports", time.Minute)
		require.NoError(t, err)

		require.NoError(t, stale.Release(ctx))
		_, err = l.Acquire(ctx, "imports", time.Minute)
		assert.ErrorIs(t, err, ErrLocked)
	})

	t.Run("extend keeps the hold past its first deadline", func(t *testing.T) {
		l := NewLocalLocker()
		now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		l.now = func() time.Time { return now }

		hold, err := l.Acquire(ctx, "imports", time.Minute)
		require.NoError(t, err)

		now = now.Add(50 * time.Second)
		require.NoError(t, hold.Extend(ctx, time.Minute))

		now = now.Add(50 * time.Second)
		_, err = l.Acquire(ctx, "imports", time.Minute)
		assert.ErrorIs(t, err, ErrLocked)
	})

	t.Run("extend after expiry reports the hold lost", func(t *testing.T) {
		l := NewLocalLocker()
		now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		l.now = func() time.Time { return now }

		stale, err := l.Acquire(ctx, "imports", time.Second)
		require.NoError(t, err)

		now = now.Add(2 * time.Second)
		assert.ErrorIs(t, stale.Extend(ctx, time.Minute), ErrLockLost)

		_, err = l.Acquire(ctx, "imports", time.Minute)
		require.NoError(t, err)
		assert.ErrorIs(t, stale.Extend(ctx, time.Minute), ErrLockLost)
	})

	t.Run("extend after release reports the hold lost", func(t *testing.T) {
		l := NewLocalLocker()

		hold, err := l.Acquire(ctx, "imports", time.Minute)
		require.NoError(t, err)
		require.NoError(t, hold.Release(ctx))

		assert.ErrorIs(t, hold.Extend(ctx, time.Minute), ErrLockLost)
	})

	t.Run("only one concurrent winner", func(t *testing.T) {
		l := NewLocalLocker()
		var wins int32
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := l.Acquire(ctx, "imports", time.Minute); err == nil {
					atomic.AddInt32(&wins, 1)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), wins)
	})
}
