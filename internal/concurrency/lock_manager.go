package concurrency

import (
	"slices"
	"sync"
)

// LockManager hands out named mutexes. Keys are never evicted, so callers
// should lock on a small fixed set of names rather than per-record ids.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// Acquire locks every key in sorted order and returns a func that releases
// them in reverse. Duplicate keys are locked once.
func (lm *LockManager) Acquire(keys ...string) (release func()) {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	held := make([]*sync.Mutex, 0, len(sorted))
	for _, key := range sorted {
		mu := lm.GetLock(key)
		mu.Lock()
		held = append(held, mu)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
