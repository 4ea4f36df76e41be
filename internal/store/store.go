// Package store holds the canonical in-memory session registry. Sessions
// are created at draft start, looked up by every transport, and evicted
// once finished plus a grace period.
package store

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"gridlords/internal/engine"
)

// Registry is the typed SessionStore: one entry per live session, with
// no cross-session coupling. Sessions lock themselves; the registry
// lock only guards the map.
type Registry struct {
	mu         sync.RWMutex
	sessions   map[string]*engine.Session
	finishedAt map[string]time.Time

	grace   time.Duration
	archive Archiver
	log     zerolog.Logger
}

// Archiver persists a finished session before eviction. Optional.
type Archiver interface {
	ArchiveSession(view engine.PublicViewData, log []engine.BattleLogEntry) error
}

// New creates a registry that keeps finished sessions for the given
// grace period before eviction.
func New(grace time.Duration, archive Archiver, log zerolog.Logger) *Registry {
	return &Registry{
		sessions:   make(map[string]*engine.Session),
		finishedAt: make(map[string]time.Time),
		grace:      grace,
		archive:    archive,
		log:        log,
	}
}

// Put registers a newly created session.
func (r *Registry) Put(s *engine.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	r.log.Info().Str("session", s.ID).Msg("session registered")
}

// Get returns a session by ID, or nil.
func (r *Registry) Get(id string) *engine.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[id]
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep evicts sessions that have been finished longer than the grace
// period. It records the first time it observes a session finished, so
// the grace period starts at the sweep following game end. Archive
// writes run outside the registry lock, so lookups never stall on
// database I/O.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	var due []*engine.Session
	for id, s := range r.sessions {
		if s.PublicView().Status != engine.StatusFinished.String() {
			continue
		}
		seen, ok := r.finishedAt[id]
		if !ok {
			r.finishedAt[id] = now
			continue
		}
		if now.Sub(seen) < r.grace {
			continue
		}
		due = append(due, s)
	}
	r.mu.Unlock()

	evicted := 0
	for _, s := range due {
		if r.archive != nil {
			if err := r.archive.ArchiveSession(s.PublicView(), s.BattleLogEntries()); err != nil {
				r.log.Error().Err(err).Str("session", s.ID).Msg("archive failed, keeping session")
				continue
			}
		}
		r.mu.Lock()
		delete(r.sessions, s.ID)
		delete(r.finishedAt, s.ID)
		r.mu.Unlock()
		evicted++
		r.log.Info().Str("session", s.ID).Msg("session evicted")
	}
	return evicted
}
