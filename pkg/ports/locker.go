package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a lock taken with OutputLocker.
type UnlockFunc func(ctx context.Context) error

// OutputLocker grants one process exclusive control of a vehicle's release output,
// so a second ground station instance cannot become a concurrent writer.
type OutputLocker interface {
	// Lock blocks until the lock is acquired or the context is canceled.
	// The returned UnlockFunc MUST be called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
