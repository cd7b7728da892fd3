package ptn

import (
	"fmt"
	"sync"

	"golang.org/x/exp/constraints"
)

// OnChange observes a change to a place's token count. It receives the place
// and the count the place held immediately before the change. Listeners are
// always invoked outside the net lock, so they may call back into the net,
// including firing further transitions.
type OnChange[K comparable, C constraints.Unsigned] func(p *Place[K, C], prev C)

// Place is a named token reservoir. Places are created exclusively by
// Net.AddPlace and share the owning net's lock; they are never constructed
// directly.
type Place[K comparable, C constraints.Unsigned] struct {
	id       K
	tokens   C
	onChange OnChange[K, C]

	// consumers are the transitions that debit this place when they fire,
	// feeders the ones that credit it. Both are used only for cascading
	// ticks, never for firing itself.
	consumers []*Transition[K, C]
	feeders   []*Transition[K, C]

	mu *sync.RWMutex // the owning net's lock
}

// ID returns the place's identifier.
func (p *Place[K, C]) ID() K { return p.id }

// Tokens returns the current token count.
func (p *Place[K, C]) Tokens() C {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.tokens
}

// OnChange replaces the change listener; a nil fn removes it. The listener
// is not invoked retroactively for the current state.
func (p *Place[K, C]) OnChange(fn OnChange[K, C]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onChange = fn
}

// deepTick forwards a cascading tick to every transition consuming this
// place. seen holds the identifiers on the current propagation path; finding
// this place in it means the net is cyclic.
func (p *Place[K, C]) deepTick(seen map[K]struct{}) error {
	if _, ok := seen[p.id]; ok {
		return fmt.Errorf("%w: place %v revisited", ErrCycleDetected, p.id)
	}
	seen[p.id] = struct{}{}
	defer delete(seen, p.id)

	p.mu.RLock()
	consumers := make([]*Transition[K, C], len(p.consumers))
	copy(consumers, p.consumers)
	p.mu.RUnlock()

	for _, t := range consumers {
		if err := t.deepTick(seen); err != nil {
			return err
		}
	}
	return nil
}

func (p *Place[K, C]) String() string {
	return fmt.Sprint(p.id)
}
