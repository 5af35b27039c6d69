package memory

import (
	"context"
	"sync"
	"time"

	"github.com/promistrio/albatros-chute/pkg/ports"
)

// Locker implements ports.OutputLocker within a single process.
// The ttl is ignored: the lock lives until it is released.
type Locker struct {
	mu   sync.Mutex
	held map[string]chan struct{}
}

// NewLocker creates an in-process locker.
func NewLocker() *Locker {
	return &Locker{
		held: make(map[string]chan struct{}),
	}
}

// Lock blocks until key is free or ctx is done.
func (l *Locker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	for {
		l.mu.Lock()
		wait, busy := l.held[key]
		if !busy {
			done := make(chan struct{})
			l.held[key] = done
			l.mu.Unlock()

			var once sync.Once
			return func(ctx context.Context) error {
				once.Do(func() {
					l.mu.Lock()
					delete(l.held, key)
					l.mu.Unlock()
					close(done)
				})
				return nil
			}, nil
		}
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-wait:
		}
	}
}
