package repository

import (
	"sync"
	"time"
)

// IdempotencyRepository caches operation results keyed by a dedup token.
// Storage is not transactionally coupled to the guarded operation: a crash
// between executing and storing can let a retry re-run the side effect. That
// gap is accepted, not papered over.
type IdempotencyRepository interface {
	// Get returns the cached result for a key when present and unexpired.
	// An expired entry is evicted on discovery.
	Get(key string) (any, bool)
	Store(key string, result any, expiresAt time.Time)
	// RemoveExpired purges expired entries and reports how many.
	RemoveExpired() int
}

type storedResult struct {
	result    any
	expiresAt time.Time
}

type idempotencyRepository struct {
	mu    sync.Mutex
	store map[string]storedResult
}

func NewIdempotencyRepository() IdempotencyRepository {
	return &idempotencyRepository{store: make(map[string]storedResult)}
}

func (r *idempotencyRepository) Get(key string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.store[key]
	if !ok {
		return nil, false
	}
	if stored.expiresAt.Before(time.Now()) {
		delete(r.store, key)
		return nil, false
	}
	return stored.result, true
}

func (r *idempotencyRepository) Store(key string, result any, expiresAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[key] = storedResult{result: result, expiresAt: expiresAt}
}

func (r *idempotencyRepository) RemoveExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, stored := range r.store {
		if stored.expiresAt.Before(now) {
			delete(r.store, key)
			removed++
		}
	}
	return removed
}
