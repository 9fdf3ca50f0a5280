package cache

import (
	"sync"
	"time"
)

// entry is a stored value stamped with its creation time and optional TTL.
type entry struct {
	value     any
	createdAt time.Time
	ttl       time.Duration // 0 means no expiry
}

// Stats describes the store's current state for the cache introspection
// surface (the cache API endpoints and the ask REPL).
type Stats struct {
	Entries      int       `json:"entries"`
	Hits         uint64    `json:"hits"`
	Misses       uint64    `json:"misses"`
	TotalCached  uint64    `json:"total_cached"`
	LastModified time.Time `json:"last_modified"`
	LastClear    time.Time `json:"last_clear"`
}

// HitRatio returns the fraction of lookups served from cache, or 0 when no
// lookups have happened yet.
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// lowHitRatioMinRequests gates the low-ratio warning so it only fires once
// traffic is significant enough for the ratio to mean something.
const lowHitRatioMinRequests = 1000

// LowHitRatio reports whether the hit ratio is below 50% after a meaningful
// number of lookups. Consumers log a warning suggesting a TTL review.
func (s Stats) LowHitRatio() bool {
	return s.Hits+s.Misses > lowHitRatioMinRequests && s.HitRatio() < 0.5
}

// Store is a process-wide in-memory cache with per-entry TTL and lazy
// eviction. Looking up an expired entry removes it, so Get mutates internal
// state even though it is a read; every access goes through one RWMutex so
// concurrent Get eviction and Put cannot race.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry

	// now is the TTL clock. Overridable so tests can advance time past an
	// entry's TTL without sleeping.
	now func() time.Time

	hits        uint64
	misses      uint64
	totalCached uint64

	// lastModified tracks the most recent mutation. External watchers (e.g.
	// the dataset file watcher) compare against it to decide whether the
	// store was validated since an input changed.
	lastModified time.Time
	lastClear    time.Time
}

// StoreOption configures a Store at construction.
type StoreOption func(*Store)

// WithClock overrides the store's time source.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty store. One store is created at process start
// and shared by injection; there is no ambient global.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		entries: make(map[string]entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	now := s.now()
	s.lastModified = now
	s.lastClear = now
	return s
}

// Get returns the value for key. The boolean is false on a miss: the key is
// absent, or present but past its TTL. Expired entries are removed on
// lookup rather than by a background sweep.
func (s *Store) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		s.misses++
		return nil, false
	}

	if e.ttl > 0 && s.now().Sub(e.createdAt) > e.ttl {
		delete(s.entries, key)
		s.lastModified = s.now()
		s.misses++
		return nil, false
	}

	s.hits++
	return e.value, true
}

// Put inserts or overwrites the value for key, stamping it with the current
// clock. A ttl of 0 means the entry never expires.
func (s *Store) Put(key string, value any, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.entries[key] = entry{value: value, createdAt: now, ttl: ttl}
	s.totalCached++
	s.lastModified = now
}

// Invalidate removes one entry. Returns true if the key existed.
func (s *Store) Invalidate(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return false
	}
	delete(s.entries, key)
	s.lastModified = s.now()
	return true
}

// ClearAll removes every entry and resets the counters and timestamps.
// Callers observe either the full reset or the prior state, never a partial
// clear. Used for operator resets and dataset file-change invalidation.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]entry)
	s.hits = 0
	s.misses = 0
	s.totalCached = 0
	now := s.now()
	s.lastModified = now
	s.lastClear = now
}

// Len returns the current number of entries, expired-but-unevicted ones
// included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Stats returns a snapshot of the store's counters and timestamps.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Stats{
		Entries:      len(s.entries),
		Hits:         s.hits,
		Misses:       s.misses,
		TotalCached:  s.totalCached,
		LastModified: s.lastModified,
		LastClear:    s.lastClear,
	}
}
