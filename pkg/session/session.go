// Package session ties the pipeline together: it ingests a raw dataset,
// builds the mental map through the memoizer, and answers questions through
// the query engine. A session is two-phase: Initialize must fully succeed
// before Query is allowed.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/threadmapco/threadmap/pkg/cache"
	"github.com/threadmapco/threadmap/pkg/forum"
	"github.com/threadmapco/threadmap/pkg/mentalmap"
	"github.com/threadmapco/threadmap/pkg/query"
)

// ErrNotReady is returned by Query until Initialize has fully succeeded.
// It is a recoverable protocol state, not a failure: callers surface it as
// "initialize first" guidance.
var ErrNotReady = errors.New("analysis not ready, initialize with a dataset first")

// State is the session lifecycle phase.
type State int

const (
	StateNotInitialized State = iota
	StateInitializing
	StateReady
)

const (
	memoizeMapID   = "mentalmap.build"
	memoizeQueryID = "query.answer"
)

// Config wires a session's collaborators. Memoizer is shared across
// sessions so a dataset analyzed twice under different sessions still
// builds once.
type Config struct {
	Memoizer *cache.Memoizer
	Logger   *zap.Logger
	MapTTL   time.Duration
	QueryTTL time.Duration
}

// Session analyzes one forum dataset. All methods are safe for concurrent
// use; Query callers racing an Initialize see ErrNotReady until the arm.
type Session struct {
	id       string
	memoizer *cache.Memoizer
	engine   *query.Engine
	logger   *zap.Logger
	mapTTL   time.Duration
	queryTTL time.Duration

	mu            sync.RWMutex
	state         State
	keyword       string
	threads       []forum.Thread
	mentalMap     *mentalmap.Map
	fingerprint   string
	initializedAt time.Time
	warnedHits    bool
}

func New(cfg Config) *Session {
	if cfg.Memoizer == nil {
		cfg.Memoizer = cache.NewMemoizer(cache.NewStore())
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.MapTTL <= 0 {
		cfg.MapTTL = time.Hour
	}
	if cfg.QueryTTL <= 0 {
		cfg.QueryTTL = 10 * time.Minute
	}

	return &Session{
		id:       uuid.NewString(),
		memoizer: cfg.Memoizer,
		engine:   query.NewEngine(),
		logger:   cfg.Logger,
		mapTTL:   cfg.MapTTL,
		queryTTL: cfg.QueryTTL,
	}
}

func (s *Session) ID() string {
	return s.id
}

// Initialize decodes and validates the raw dataset, then builds the mental
// map keyed on the dataset's content fingerprint. The ready state arms only
// after every step succeeded; a failed Initialize leaves the session in its
// prior state so it can be retried with corrected input.
func (s *Session) Initialize(content []byte, keyword string) error {
	s.mu.Lock()
	prior := s.state
	s.state = StateInitializing
	s.mu.Unlock()

	restore := func() {
		s.mu.Lock()
		s.state = prior
		s.mu.Unlock()
	}

	threads, err := forum.DecodeThreads(content)
	if err != nil {
		restore()
		return fmt.Errorf("initialization failed: %w", err)
	}

	fingerprint := forum.Fingerprint(content)
	value, err := s.memoizer.Memoize(memoizeMapID, s.mapTTL, func() (any, error) {
		s.logger.Debug("building mental map",
			zap.String("keyword", keyword),
			zap.String("fingerprint", fingerprint),
			zap.Int("threads", len(threads)),
		)
		return mentalmap.Build(threads), nil
	}, fingerprint)
	if err != nil {
		restore()
		return fmt.Errorf("initialization failed: %w", err)
	}

	s.mu.Lock()
	s.keyword = keyword
	s.threads = threads
	s.mentalMap = value.(*mentalmap.Map)
	s.fingerprint = fingerprint
	s.initializedAt = time.Now()
	s.state = StateReady
	s.mu.Unlock()

	s.logger.Info("session initialized",
		zap.String("session", s.id),
		zap.String("keyword", keyword),
		zap.Int("threads", len(threads)),
		zap.Int("posts", s.mentalMap.Posts()),
	)
	return nil
}

// Query dispatches the question through the engine, memoizing each distinct
// (dataset, question) pair. Returns ErrNotReady before initialization.
func (s *Session) Query(text string) (query.Result, error) {
	s.mu.RLock()
	ready := s.state == StateReady
	m := s.mentalMap
	fingerprint := s.fingerprint
	s.mu.RUnlock()

	if !ready {
		return nil, ErrNotReady
	}

	value, err := s.memoizer.Memoize(memoizeQueryID, s.queryTTL, func() (any, error) {
		return s.engine.Query(m, text), nil
	}, fingerprint, text)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	s.warnOnLowHitRatio()
	return value.(query.Result), nil
}

// State returns the current lifecycle phase.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Status is the one-line human-readable state used by the chat surfaces.
func (s *Session) Status() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch s.state {
	case StateInitializing:
		return "analyzing dataset, hang tight"
	case StateReady:
		return fmt.Sprintf("ready: %q analysis over %d posts, initialized %s",
			s.keyword, s.mentalMap.Posts(), s.initializedAt.Format(time.RFC3339))
	default:
		return "not initialized: provide a dataset to analyze"
	}
}

func (s *Session) Keyword() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keyword
}

// Map returns the built mental map, or nil before initialization.
func (s *Session) Map() *mentalmap.Map {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mentalMap
}

// CacheStats reports the shared store's counters.
func (s *Session) CacheStats() cache.Stats {
	return s.memoizer.Store().Stats()
}

// ClearCache drops every cached value in the shared store. The mental map
// itself stays armed; only the memoized entries are rebuilt on demand.
func (s *Session) ClearCache() {
	s.memoizer.Store().ClearAll()
	s.mu.Lock()
	s.warnedHits = false
	s.mu.Unlock()
}

func (s *Session) warnOnLowHitRatio() {
	stats := s.memoizer.Store().Stats()
	if !stats.LowHitRatio() {
		return
	}

	s.mu.Lock()
	warned := s.warnedHits
	s.warnedHits = true
	s.mu.Unlock()
	if warned {
		return
	}

	s.logger.Warn("cache hit ratio below 50% under significant load",
		zap.Float64("hit_ratio", stats.HitRatio()),
		zap.Uint64("hits", stats.Hits),
		zap.Uint64("misses", stats.Misses),
	)
}
