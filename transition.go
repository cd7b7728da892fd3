package ptn

import (
	"fmt"
	"sync"

	"golang.org/x/exp/constraints"
)

// Condition decides whether a transition should auto-fire on Tick. It is
// evaluated without the net lock held and must treat the transition as
// read-only.
type Condition[K comparable, C constraints.Unsigned] func(t *Transition[K, C]) bool

// arc binds a transition to a place with the token weight moved on fire.
type arc[K comparable, C constraints.Unsigned] struct {
	place  *Place[K, C]
	weight C
}

// Transition is a weighted, named operation moving tokens from its ingoing
// places to its outgoing places. Transitions are created exclusively by
// Net.AddTransition and operate under the owning net's lock; they hold no
// lock of their own.
type Transition[K comparable, C constraints.Unsigned] struct {
	id       K
	ingoing  []arc[K, C]
	outgoing []arc[K, C]
	cond     Condition[K, C]
	mu       *sync.RWMutex // the owning net's lock
}

// ID returns the transition's identifier.
func (t *Transition[K, C]) ID() K { return t.id }

// Ready reports whether every ingoing place currently covers its weight.
// The check is advisory: a concurrent fire may consume the tokens before a
// subsequent Fire call, which re-checks under the exclusive lock.
func (t *Transition[K, C]) Ready() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.readyLocked()
}

func (t *Transition[K, C]) readyLocked() bool {
	for _, a := range t.ingoing {
		if a.place.tokens < a.weight {
			return false
		}
	}
	return true
}

// notification records a place change made under the lock, to be delivered
// after the lock is released.
type notification[K comparable, C constraints.Unsigned] struct {
	fn    OnChange[K, C]
	place *Place[K, C]
	prev  C
}

// Fire atomically consumes the ingoing weights and produces the outgoing
// weights. It reports false and changes nothing when the transition is not
// ready. Change listeners run strictly after the lock is released; a
// listener that fires another transition cannot deadlock against its own
// notification.
func (t *Transition[K, C]) Fire() bool {
	t.mu.Lock()
	if !t.readyLocked() {
		t.mu.Unlock()
		return false
	}
	pending := make([]notification[K, C], 0, len(t.ingoing)+len(t.outgoing))
	record := func(p *Place[K, C]) {
		if p.onChange != nil {
			pending = append(pending, notification[K, C]{fn: p.onChange, place: p, prev: p.tokens})
		}
	}
	for _, a := range t.ingoing {
		record(a.place)
		a.place.tokens -= a.weight
	}
	for _, a := range t.outgoing {
		record(a.place)
		a.place.tokens += a.weight
	}
	t.mu.Unlock()

	for _, n := range pending {
		n.fn(n.place, n.prev)
	}
	return true
}

// AutoFire installs the condition evaluated by Tick. Called without an
// argument it makes the transition fire on every tick; a nil condition
// disables auto-firing. Returns the transition for chaining.
func (t *Transition[K, C]) AutoFire(cond ...Condition[K, C]) *Transition[K, C] {
	fn := Condition[K, C](func(*Transition[K, C]) bool { return true })
	if len(cond) > 0 {
		fn = cond[0]
	}
	t.mu.Lock()
	t.cond = fn
	t.mu.Unlock()
	return t
}

// Tick fires the transition if an auto-fire condition is installed and
// currently holds. It reports whether the transition fired.
func (t *Transition[K, C]) Tick() bool {
	t.mu.RLock()
	cond := t.cond
	t.mu.RUnlock()
	if cond == nil || !cond(t) {
		return false
	}
	return t.Fire()
}

// DeepFire fires the transition and, on success, cascades a tick through
// every downstream transition that became ready. It reports whether the
// initial fire succeeded and fails when the cascade revisits a place on its
// own path.
func (t *Transition[K, C]) DeepFire() (bool, error) {
	if !t.Fire() {
		return false, nil
	}
	seen := make(map[K]struct{})
	for _, a := range t.outgoing {
		if err := a.place.deepTick(seen); err != nil {
			return true, err
		}
	}
	return true, nil
}

// DeepTick ticks the transition and cascades like DeepFire when it fired.
func (t *Transition[K, C]) DeepTick() error {
	return t.deepTick(make(map[K]struct{}))
}

func (t *Transition[K, C]) deepTick(seen map[K]struct{}) error {
	if !t.Tick() {
		return nil
	}
	for _, a := range t.outgoing {
		if err := a.place.deepTick(seen); err != nil {
			return err
		}
	}
	return nil
}

// sketch converts the transition back into its blueprint form.
func (t *Transition[K, C]) sketch() Sketch[K, C] {
	s := Sketch[K, C]{ID: t.id}
	for _, a := range t.ingoing {
		s.Ingoing = append(s.Ingoing, Edge[K, C]{Place: a.place.id, Weight: a.weight})
	}
	for _, a := range t.outgoing {
		s.Outgoing = append(s.Outgoing, Edge[K, C]{Place: a.place.id, Weight: a.weight})
	}
	return s
}

// exprEnv snapshots the transition state exposed to expression conditions.
func (t *Transition[K, C]) exprEnv() map[string]interface{} {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ingoing := make(map[string]interface{}, len(t.ingoing))
	for _, a := range t.ingoing {
		ingoing[fmt.Sprint(a.place.id)] = uint64(a.place.tokens)
	}
	outgoing := make(map[string]interface{}, len(t.outgoing))
	for _, a := range t.outgoing {
		outgoing[fmt.Sprint(a.place.id)] = uint64(a.place.tokens)
	}
	return map[string]interface{}{
		"id":       fmt.Sprint(t.id),
		"ready":    t.readyLocked(),
		"ingoing":  ingoing,
		"outgoing": outgoing,
	}
}

func (t *Transition[K, C]) String() string {
	return fmt.Sprint(t.id)
}
