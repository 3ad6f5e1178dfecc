package scenario

import (
	"errors"
	"math/rand"
	"sync"
)

// Errors for scenario sources.
var (
	ErrNoScenarios = errors.New("scenario pool is empty")
)

// Source supplies the next scenario descriptor for a ticket.
type Source interface {
	Next() string
}

// Pool draws uniformly at random from a fixed list of descriptors. A one-shot
// override can be set by developer tooling; it takes priority exactly once,
// then draws revert to random.
type Pool struct {
	mu        sync.Mutex
	scenarios []string
	rng       *rand.Rand
	override  string
	forced    bool
}

// NewPool creates a scenario pool. The random source is injected so tests can
// seed it deterministically.
func NewPool(scenarios []string, rng *rand.Rand) (*Pool, error) {
	if len(scenarios) == 0 {
		return nil, ErrNoScenarios
	}
	return &Pool{
		scenarios: append([]string(nil), scenarios...),
		rng:       rng,
	}, nil
}

// Next returns the pending override if one is set, consuming it, otherwise a
// uniform random draw from the pool.
func (p *Pool) Next() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.forced {
		p.forced = false
		return p.override
	}
	return p.scenarios[p.rng.Intn(len(p.scenarios))]
}

// SetOverride forces the next draw to return the given descriptor. Setting a
// new override replaces any pending one.
func (p *Pool) SetOverride(descriptor string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.override = descriptor
	p.forced = true
}

// HasOverride reports whether an override is pending.
func (p *Pool) HasOverride() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.forced
}

// Size returns the number of scenarios in the pool.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.scenarios)
}
