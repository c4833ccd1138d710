package lock

import (
	"context"
	"sync/atomic"
)

// MemoryLock guards a single process.
type MemoryLock struct {
	held atomic.Bool
}

// NewMemoryLock returns an unlocked MemoryLock.
func NewMemoryLock() *MemoryLock {
	return &MemoryLock{}
}

var _ SyncLock = (*MemoryLock)(nil)

func (l *MemoryLock) TryAcquire(_ context.Context) (func(), bool, error) {
	if !l.held.CompareAndSwap(false, true) {
		return nil, false, nil
	}
	var once atomic.Bool
	return func() {
		if once.CompareAndSwap(false, true) {
			l.held.Store(false)
		}
	}, true, nil
}

// Held reports whether the lock is currently taken.
func (l *MemoryLock) Held() bool {
	return l.held.Load()
}
