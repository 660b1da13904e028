package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/quill/pkg/ports"
)

// Locker implements ports.SessionLocker within a single process.
// Expired locks are taken over by the next caller.
type Locker struct {
	mu    sync.Mutex
	held  map[string]time.Time
	retry time.Duration
}

// NewLocker creates an in-process locker.
func NewLocker() *Locker {
	return &Locker{held: make(map[string]time.Time), retry: 10 * time.Millisecond}
}

// Lock blocks until key is free or ctx is done.
func (l *Locker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	for {
		if token, ok := l.tryLock(key, ttl); ok {
			return func(context.Context) error {
				l.mu.Lock()
				defer l.mu.Unlock()
				if l.held[key] == token {
					delete(l.held, key)
				}
				return nil
			}, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}
}

func (l *Locker) tryLock(key string, ttl time.Duration) (time.Time, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	if expiry, ok := l.held[key]; ok && now.Before(expiry) {
		return time.Time{}, false
	}
	expiry := now.Add(ttl)
	l.held[key] = expiry
	return expiry, true
}
