package ptn

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/exp/constraints"
)

// Edge names a place and the token weight a transition moves through it.
type Edge[K comparable, C constraints.Unsigned] struct {
	Place  K
	Weight C
}

// Sketch is the blueprint for a transition: when the transition fires, every
// ingoing edge is debited by its weight and every outgoing edge credited.
type Sketch[K comparable, C constraints.Unsigned] struct {
	ID       K
	Ingoing  []Edge[K, C]
	Outgoing []Edge[K, C]
}

// Net is a Petri net: the authoritative owner of its places, transitions and
// the single readers-writer lock shared by all of them. K is the identifier
// type, C the token counting type.
type Net[K comparable, C constraints.Unsigned] struct {
	id          string
	mu          *sync.RWMutex
	places      []*Place[K, C]
	transitions []*Transition[K, C]

	placeIdx      map[K]*Place[K, C]
	transitionIdx map[K]*Transition[K, C]
}

// New creates an empty net.
func New[K comparable, C constraints.Unsigned]() *Net[K, C] {
	return &Net[K, C]{
		id:            uuid.NewString(),
		mu:            new(sync.RWMutex),
		placeIdx:      make(map[K]*Place[K, C]),
		transitionIdx: make(map[K]*Transition[K, C]),
	}
}

// ID returns the net's instance identity. It also determines the canonical
// lock order between two nets being merged.
func (n *Net[K, C]) ID() string { return n.id }

// FindPlace returns the place with the given identifier, or nil.
func (n *Net[K, C]) FindPlace(id K) *Place[K, C] {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.placeIdx[id]
}

// FindTransition returns the transition with the given identifier, or nil.
func (n *Net[K, C]) FindTransition(id K) *Transition[K, C] {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.transitionIdx[id]
}

// Places returns a snapshot of the net's places in registration order.
func (n *Net[K, C]) Places() []*Place[K, C] {
	n.mu.RLock()
	defer n.mu.RUnlock()
	pp := make([]*Place[K, C], len(n.places))
	copy(pp, n.places)
	return pp
}

// Transitions returns a snapshot of the net's transitions in registration
// order.
func (n *Net[K, C]) Transitions() []*Transition[K, C] {
	n.mu.RLock()
	defer n.mu.RUnlock()
	tt := make([]*Transition[K, C], len(n.transitions))
	copy(tt, n.transitions)
	return tt
}

// AddPlace registers a new place holding initial tokens and returns it.
func (n *Net[K, C]) AddPlace(id K, initial C) (*Place[K, C], error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.addPlaceLocked(id, initial)
}

func (n *Net[K, C]) addPlaceLocked(id K, initial C) (*Place[K, C], error) {
	if _, ok := n.placeIdx[id]; ok {
		return nil, fmt.Errorf("%w: place %v", ErrDuplicateID, id)
	}
	p := &Place[K, C]{id: id, tokens: initial, mu: n.mu}
	n.places = append(n.places, p)
	n.placeIdx[id] = p
	return p, nil
}

// AddTransition resolves the sketch against the net's places, registers the
// new transition and returns it. Every place named by the sketch must
// already exist.
func (n *Net[K, C]) AddTransition(s Sketch[K, C]) (*Transition[K, C], error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.addTransitionLocked(s)
}

func (n *Net[K, C]) addTransitionLocked(s Sketch[K, C]) (*Transition[K, C], error) {
	if _, ok := n.transitionIdx[s.ID]; ok {
		return nil, fmt.Errorf("%w: transition %v", ErrDuplicateID, s.ID)
	}
	resolve := func(edges []Edge[K, C]) ([]arc[K, C], error) {
		arcs := make([]arc[K, C], 0, len(edges))
		for _, e := range edges {
			p, ok := n.placeIdx[e.Place]
			if !ok {
				return nil, fmt.Errorf("%w: place %v in sketch %v", ErrUnknownPlace, e.Place, s.ID)
			}
			arcs = append(arcs, arc[K, C]{place: p, weight: e.Weight})
		}
		return arcs, nil
	}
	ingoing, err := resolve(s.Ingoing)
	if err != nil {
		return nil, err
	}
	outgoing, err := resolve(s.Outgoing)
	if err != nil {
		return nil, err
	}
	t := &Transition[K, C]{id: s.ID, ingoing: ingoing, outgoing: outgoing, mu: n.mu}
	n.transitions = append(n.transitions, t)
	n.transitionIdx[s.ID] = t
	for _, a := range ingoing {
		a.place.consumers = append(a.place.consumers, t)
	}
	for _, a := range outgoing {
		a.place.feeders = append(a.place.feeders, t)
	}
	return t, nil
}

// Tick ticks every transition once. The sweep is not atomic: the lock is
// taken per transition and other goroutines may fire in between.
func (n *Net[K, C]) Tick() {
	for _, t := range n.Transitions() {
		t.Tick()
	}
}

// DeepTick starts a cascading tick from the given place: every transition
// consuming it is ticked, and each firing recurses into the places it fed.
// The net reachable from start must be acyclic.
func (n *Net[K, C]) DeepTick(start K) error {
	p := n.FindPlace(start)
	if p == nil {
		return fmt.Errorf("%w: place %v", ErrNotFound, start)
	}
	return p.deepTick(make(map[K]struct{}))
}

// DeepTickCover runs DeepTick once from every place, in registration order.
// It is a convenience sweep, not a single atomic operation.
func (n *Net[K, C]) DeepTickCover() error {
	for _, p := range n.Places() {
		if err := n.DeepTick(p.id); err != nil {
			return err
		}
	}
	return nil
}

// Merge folds other entirely into n and leaves other empty. The
// interconnection sketches are added last and may reference place
// identifiers from either net. All identifier conflicts are checked before
// either net is mutated; a conflict leaves both nets untouched. Both locks
// are held for the whole merge, acquired in canonical order of the nets'
// IDs, so concurrent merges of overlapping pairs cannot deadlock.
func (n *Net[K, C]) Merge(other *Net[K, C], interconnections []Sketch[K, C]) error {
	if other == n {
		return errors.New("cannot merge a net into itself")
	}
	first, second := n.mu, other.mu
	if other.id < n.id {
		first, second = second, first
	}
	first.Lock()
	defer first.Unlock()
	second.Lock()
	defer second.Unlock()

	for _, p := range other.places {
		if _, ok := n.placeIdx[p.id]; ok {
			return fmt.Errorf("%w: place %v", ErrDuplicateID, p.id)
		}
	}
	for _, t := range other.transitions {
		if _, ok := n.transitionIdx[t.id]; ok {
			return fmt.Errorf("%w: transition %v", ErrDuplicateID, t.id)
		}
	}
	for _, s := range interconnections {
		if _, ok := n.transitionIdx[s.ID]; ok {
			return fmt.Errorf("%w: transition %v", ErrDuplicateID, s.ID)
		}
	}

	// Convert other's transitions back into sketches, keeping their
	// installed conditions so they survive the move.
	type captured struct {
		sketch Sketch[K, C]
		cond   Condition[K, C]
	}
	moved := make([]captured, 0, len(other.transitions))
	for _, t := range other.transitions {
		moved = append(moved, captured{sketch: t.sketch(), cond: t.cond})
	}
	other.transitions = nil
	other.transitionIdx = make(map[K]*Transition[K, C])

	// Move other's places over, rebinding them to this net's lock and
	// dropping their stale adjacency; addTransitionLocked rebuilds it.
	for _, p := range other.places {
		p.consumers = nil
		p.feeders = nil
		p.mu = n.mu
		n.places = append(n.places, p)
		n.placeIdx[p.id] = p
	}
	other.places = nil
	other.placeIdx = make(map[K]*Place[K, C])

	// The pre-flight checks covered every identifier the moved sketches
	// involve, so re-adding them cannot fail.
	for _, c := range moved {
		t, err := n.addTransitionLocked(c.sketch)
		if err != nil {
			return err
		}
		t.cond = c.cond
	}

	// Interconnections may still name unknown places; such a failure
	// surfaces here, after the nets have already been combined.
	for _, s := range interconnections {
		if _, err := n.addTransitionLocked(s); err != nil {
			return err
		}
	}
	return nil
}
