package session

import "sync"

// Registry tracks live sessions by id for the HTTP API's multi-session
// surface. Sessions share the registry's memoizer, so two sessions over the
// same dataset content reuse one mental map build.
type Registry struct {
	cfg Config

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry(cfg Config) *Registry {
	return &Registry{
		cfg:      cfg,
		sessions: make(map[string]*Session),
	}
}

// Create registers a fresh, not-yet-initialized session and returns it.
func (r *Registry) Create() *Session {
	s := New(r.cfg)

	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()
	return s
}

// Get looks up a session by id.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Remove drops a session from the registry. Cached entries keyed on the
// session's dataset fingerprint stay in the shared store until TTL expiry.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
