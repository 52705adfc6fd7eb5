package lock

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	token     string
	expiresAt time.Time
}

// MemoryLocker is a process-local Locker for single-replica deployments and
// tests.
type MemoryLocker struct {
	mu    sync.Mutex
	locks map[string]entry
	now   func() time.Time
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{
		locks: make(map[string]entry),
		now:   time.Now,
	}
}

func (l *MemoryLocker) TryAcquire(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for k, e := range l.locks {
		if !now.Before(e.expiresAt) {
			delete(l.locks, k)
		}
	}
	if _, ok := l.locks[key]; ok {
		return "", false, nil
	}

	token := newToken()
	l.locks[key] = entry{token: token, expiresAt: now.Add(ttl)}
	return token, true, nil
}

func (l *MemoryLocker) Release(_ context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.locks[key]
	if !ok || e.token != token || !l.now().Before(e.expiresAt) {
		return ErrNotHeld
	}
	delete(l.locks, key)
	return nil
}
