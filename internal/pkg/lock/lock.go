package lock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotHeld = errors.New("lock is not held by this token")

// Locker hands out named, expiring locks. A lock that is never released
// expires after its ttl, which lets a caller hold a key for a whole window.
type Locker interface {
	// TryAcquire claims key for ttl. It returns ok=false, without error, when
	// someone else holds the key.
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)

	// Release frees key if it is still held with token.
	Release(ctx context.Context, key, token string) error
}

func newToken() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
