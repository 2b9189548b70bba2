package state

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lox/skycast/internal/metrics"
	"github.com/lox/skycast/internal/models"
)

// PrefStore persists session preferences across restarts.
type PrefStore interface {
	LoadPrefs(ctx context.Context, sessionID string) (models.SessionPrefs, bool, error)
	SavePrefs(ctx context.Context, sessionID string, p models.SessionPrefs) error
}

type session struct {
	ctrl     *Controller
	lastSeen time.Time
}

// Registry maps browser session ids to their controllers.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*session
	factory  func() *Controller
	prefs    PrefStore
	log      zerolog.Logger
	now      func() time.Time
}

// NewRegistry creates a registry. prefs may be nil.
func NewRegistry(factory func() *Controller, prefs PrefStore, log zerolog.Logger) *Registry {
	return &Registry{
		sessions: make(map[string]*session),
		factory:  factory,
		prefs:    prefs,
		log:      log.With().Str("component", "sessions").Logger(),
		now:      time.Now,
	}
}

// Get returns the controller for id. A session unknown in memory but known
// to the preference store is recreated with its saved preferences.
func (r *Registry) Get(ctx context.Context, id string) (*Controller, bool) {
	if id == "" {
		return nil, false
	}

	r.mu.Lock()
	if s, ok := r.sessions[id]; ok {
		s.lastSeen = r.now()
		r.mu.Unlock()
		return s.ctrl, true
	}
	r.mu.Unlock()

	if r.prefs == nil {
		return nil, false
	}
	p, ok, err := r.prefs.LoadPrefs(ctx, id)
	if err != nil {
		r.log.Error().Err(err).Str("session", id).Msg("load prefs")
		return nil, false
	}
	if !ok {
		return nil, false
	}

	ctrl := r.add(id)
	ctrl.Restore(p)
	return ctrl, true
}

// Create starts a new session and returns its id.
func (r *Registry) Create() (string, *Controller) {
	id := uuid.New().String()
	return id, r.add(id)
}

// Detached returns a fresh controller that belongs to no session, for
// read-only requests from callers without one.
func (r *Registry) Detached() *Controller {
	return r.factory()
}

func (r *Registry) add(id string) *Controller {
	ctrl := r.factory()
	if r.prefs != nil {
		ctrl.OnChange(r.persistFunc(id))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		// Lost a race with a concurrent Get for the same id.
		return s.ctrl
	}
	r.sessions[id] = &session{ctrl: ctrl, lastSeen: r.now()}
	metrics.ActiveSessions.Set(float64(len(r.sessions)))
	return ctrl
}

// persistFunc saves preferences whenever they differ from the last save.
func (r *Registry) persistFunc(id string) func(State) {
	var mu sync.Mutex
	var last *models.SessionPrefs
	return func(s State) {
		p := s.Prefs()
		mu.Lock()
		defer mu.Unlock()
		if last != nil && *last == p {
			return
		}
		if err := r.prefs.SavePrefs(context.Background(), id, p); err != nil {
			r.log.Error().Err(err).Str("session", id).Msg("save prefs")
			return
		}
		last = &p
	}
}

// Sweep drops sessions idle for longer than maxIdle and returns how many.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	metrics.ActiveSessions.Set(float64(len(r.sessions)))
	return n
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// RunSweeper sweeps idle sessions every interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Debug().Msg("sweeper: shutting down")
			return
		case <-ticker.C:
			if n := r.Sweep(maxIdle); n > 0 {
				r.log.Info().Int("dropped", n).Int("active", r.Len()).Msg("swept idle sessions")
			}
		}
	}
}
