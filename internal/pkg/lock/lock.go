// Package lock serializes price import batches. One batch holds the lock for
// its whole run, extending it as it goes; a second batch is refused instead
// of queued.
package lock

import (
	"context"
	"errors"
	"time"
)

// ErrLocked is returned when another holder owns the key.
var ErrLocked = errors.New("lock is held by another process")

// ErrLockLost is returned by Extend once the hold has expired or been taken over.
var ErrLockLost = errors.New("lock hold expired or was taken over")

// Hold is one acquired lock.
type Hold interface {
	// Extend pushes the expiry to ttl from now. It fails with ErrLockLost
	// when the hold is no longer ours.
	Extend(ctx context.Context, ttl time.Duration) error

	// Release gives the lock back. It is safe to call more than once.
	Release(ctx context.Context) error
}

// Locker acquires named, expiring locks.
type Locker interface {
	// Acquire takes key for at most ttl. It fails fast with ErrLocked when
	// the key is held.
	Acquire(ctx context.Context, key string, ttl time.Duration) (Hold, error)
}
