package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a lock taken by a SessionLocker.
type UnlockFunc func(ctx context.Context) error

// SessionLocker coordinates access to a session across processes, so that
// two operators cannot resume the same answer log at once.
type SessionLocker interface {
	// Lock blocks until the lock for key is held or ctx is done. The lock
	// expires after ttl if it is never released.
	// The returned UnlockFunc MUST be called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
