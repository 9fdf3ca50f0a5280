package cache

import (
	"time"

	"golang.org/x/sync/singleflight"
)

// Memoizer gives compute-once-per-distinct-input semantics over a Store.
// Concurrent callers racing on the same uncomputed key are coalesced into a
// single in-flight computation, so an expensive build (a mental map over a
// large dataset) runs at most once per key at a time.
//
// Call sites invoke Memoize explicitly rather than wrapping functions, which
// keeps cache-bypass and forced-recompute paths visible and testable.
type Memoizer struct {
	store *Store
	group singleflight.Group
}

// NewMemoizer wraps the given store. The store may be shared with other
// memoizers and with direct Put/Get users.
func NewMemoizer(store *Store) *Memoizer {
	return &Memoizer{store: store}
}

// Memoize returns the cached value for (identifier, args) when present and
// unexpired; otherwise it runs compute, stores the result with ttl, and
// returns it. A compute failure propagates unchanged to the caller and
// nothing is stored, so a retried call runs compute again rather than being
// served a poisoned entry.
func (m *Memoizer) Memoize(identifier string, ttl time.Duration, compute func() (any, error), args ...any) (any, error) {
	key := Key(identifier, args, nil)

	if value, ok := m.store.Get(key); ok {
		return value, nil
	}

	value, err, _ := m.group.Do(key, func() (any, error) {
		// A coalesced caller may arrive after the winner already stored the
		// value; re-check before computing.
		if value, ok := m.store.Get(key); ok {
			return value, nil
		}

		value, err := compute()
		if err != nil {
			return nil, err
		}
		m.store.Put(key, value, ttl)
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Invalidate removes the memoized entry for (identifier, args), forcing the
// next Memoize call to recompute.
func (m *Memoizer) Invalidate(identifier string, args ...any) bool {
	return m.store.Invalidate(Key(identifier, args, nil))
}

// Store returns the underlying store, for introspection surfaces that
// report entry counts and hit ratios.
func (m *Memoizer) Store() *Store {
	return m.store
}
