// Package lock provides the at-most-one-in-flight guard used by currency sync.
package lock

import "context"

// SyncKey names the lock shared by every sync operation.
const SyncKey = "default-currency-sync"

// SyncLock is a non-blocking mutual exclusion primitive. TryAcquire returns
// ok=false without waiting when another holder exists. When ok is true the
// caller must invoke release exactly once.
type SyncLock interface {
	TryAcquire(ctx context.Context) (release func(), ok bool, err error)
}
