package engine

import (
	"fmt"
	"sync"
)

// Registry manages one engine per player session. Balance and ticket state
// are a single serialized resource inside each engine, so concurrent players
// get separate engine instances rather than shared state.
type Registry struct {
	engines map[string]*Engine
	mu      sync.RWMutex
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{
		engines: make(map[string]*Engine),
	}
}

// Register adds an engine under a session id. An existing engine for the
// same session is replaced.
func (r *Registry) Register(sessionID string, e *Engine) error {
	if e == nil {
		return fmt.Errorf("cannot register nil engine")
	}
	if sessionID == "" {
		return fmt.Errorf("session id cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.engines[sessionID] = e
	return nil
}

// Get retrieves the engine for a session.
func (r *Registry) Get(sessionID string) (*Engine, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.engines[sessionID]
	return e, ok
}

// Sessions returns all registered session ids.
func (r *Registry) Sessions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make([]string, 0, len(r.engines))
	for id := range r.engines {
		sessions = append(sessions, id)
	}
	return sessions
}

// Count returns the number of registered sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.engines)
}

// Unregister removes a session's engine. Returns true if one was removed.
func (r *Registry) Unregister(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.engines[sessionID]; ok {
		delete(r.engines, sessionID)
		return true
	}
	return false
}
