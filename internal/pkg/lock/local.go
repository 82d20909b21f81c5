package lock

import (
	"context"
	"sync"
	"time"
)

// LocalLocker is an in-process Locker for single-instance deployments and
// tests. Expired holds are taken over.
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]localHold
	now  func() time.Time
	seq  uint64
}

type localHold struct {
	token     uint64
	expiresAt time.Time
}

// NewLocalLocker creates a LocalLocker using the wall clock.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]localHold), now: time.Now}
}

// Acquire implements Locker.
func (l *LocalLocker) Acquire(_ context.Context, key string, ttl time.Duration) (Hold, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if h, ok := l.held[key]; ok && now.Before(h.expiresAt) {
		return nil, ErrLocked
	}

	l.seq++
	l.held[key] = localHold{token: l.seq, expiresAt: now.Add(ttl)}
	return &localLease{locker: l, key: key, token: l.seq}, nil
}

type localLease struct {
	locker *LocalLocker
	key    string
	token  uint64
	once   sync.Once
}

func (h *localLease) Extend(_ context.Context, ttl time.Duration) error {
	l := h.locker
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cur, ok := l.held[h.key]
	if !ok || cur.token != h.token || !now.Before(cur.expiresAt) {
		return ErrLockLost
	}
	l.held[h.key] = localHold{token: h.token, expiresAt: now.Add(ttl)}
	return nil
}

func (h *localLease) Release(context.Context) error {
	h.once.Do(func() {
		l := h.locker
		l.mu.Lock()
		defer l.mu.Unlock()
		if cur, ok := l.held[h.key]; ok && cur.token == h.token {
			delete(l.held, h.key)
		}
	})
	return nil
}
