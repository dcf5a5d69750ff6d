package ports

import (
	"context"
	"time"
)

// Lease is a time-bounded exclusive right on a key. It auto-expires after
// its TTL even if the holder crashes, so other callers always make progress.
type Lease interface {
	// Release gives the lease up early. Idempotent, and a no-op once the
	// lease has expired or was taken over.
	Release(ctx context.Context) error
	Key() string
}

// LeaseLocker grants exclusive leases on named resource keys. Acquire blocks
// up to waitTimeout for a held key to free up; a timed-out acquisition
// returns domain.ErrLockUnavailable. Cancelling ctx abandons the wait
// without having touched any state.
type LeaseLocker interface {
	Acquire(ctx context.Context, key string, waitTimeout, leaseTTL time.Duration) (Lease, error)
}
