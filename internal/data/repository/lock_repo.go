package repository

import (
	"sync"
)

// LockRepository is a per-key exclusion primitive. TryLock is a single
// non-blocking attempt; contended callers are expected to fail fast rather
// than queue.
type LockRepository interface {
	TryLock(key string) bool
	Unlock(key string)
}

type lockRepository struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func NewLockRepository() LockRepository {
	return &lockRepository{
		locks: make(map[string]chan struct{}),
	}
}

// handle lazily creates the per-key lock channel. A buffered channel of one
// is the lock: holding the token means holding the lock.
func (r *lockRepository) handle(key string) chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()

	lock, ok := r.locks[key]
	if !ok {
		lock = make(chan struct{}, 1)
		r.locks[key] = lock
	}
	return lock
}

func (r *lockRepository) TryLock(key string) bool {
	select {
	case r.handle(key) <- struct{}{}:
		return true
	default:
		return false
	}
}

func (r *lockRepository) Unlock(key string) {
	select {
	case <-r.handle(key):
	default:
		// Unlock of an unheld lock is a no-op.
	}
}
