// Package harbor models a small container-terminal simulation on top of the
// Petri-net engine: ships dock at one of two berths, load freight brought in
// by suppliers, and depart once enough freight is available.
package harbor

import (
	"go.uber.org/zap"

	ptn "github.com/rafaelamscarneiro/SimplePTN"
)

// Place identifiers of the terminal net.
const (
	PlaceBerthA     = "berth_a"
	PlaceBerthAFree = "berth_a_free"
	PlaceBerthB     = "berth_b"
	PlaceBerthBFree = "berth_b_free"
	PlaceFreight    = "freight"
)

// Transition identifiers of the terminal net.
const (
	TransitionDockA   = "dock_a"
	TransitionDockB   = "dock_b"
	TransitionDepartA = "depart_a"
	TransitionDepartB = "depart_b"
)

// Terminal is a two-berth harbor terminal. Ships departing from berth A
// load two freight units, ships at berth B load three.
type Terminal struct {
	net    *ptn.Net[string, uint32]
	logger *zap.Logger

	dockA   *ptn.Transition[string, uint32]
	dockB   *ptn.Transition[string, uint32]
	departA *ptn.Transition[string, uint32]
	departB *ptn.Transition[string, uint32]
}

// New builds the terminal net. A nil logger disables reporting.
func New(logger *zap.Logger) (*Terminal, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	net := ptn.New[string, uint32]()
	t := &Terminal{net: net, logger: logger}

	for _, p := range []struct {
		id      string
		initial uint32
	}{
		{PlaceBerthA, 0},
		{PlaceBerthAFree, 1},
		{PlaceBerthB, 0},
		{PlaceBerthBFree, 1},
		{PlaceFreight, 0},
	} {
		if _, err := net.AddPlace(p.id, p.initial); err != nil {
			return nil, err
		}
	}

	for _, s := range []ptn.Sketch[string, uint32]{
		{
			ID:       TransitionDockA,
			Ingoing:  []ptn.Edge[string, uint32]{{Place: PlaceBerthAFree, Weight: 1}},
			Outgoing: []ptn.Edge[string, uint32]{{Place: PlaceBerthA, Weight: 1}},
		},
		{
			ID:       TransitionDockB,
			Ingoing:  []ptn.Edge[string, uint32]{{Place: PlaceBerthBFree, Weight: 1}},
			Outgoing: []ptn.Edge[string, uint32]{{Place: PlaceBerthB, Weight: 1}},
		},
		{
			ID:       TransitionDepartA,
			Ingoing:  []ptn.Edge[string, uint32]{{Place: PlaceBerthA, Weight: 1}, {Place: PlaceFreight, Weight: 2}},
			Outgoing: []ptn.Edge[string, uint32]{{Place: PlaceBerthAFree, Weight: 1}},
		},
		{
			ID:       TransitionDepartB,
			Ingoing:  []ptn.Edge[string, uint32]{{Place: PlaceBerthB, Weight: 1}, {Place: PlaceFreight, Weight: 3}},
			Outgoing: []ptn.Edge[string, uint32]{{Place: PlaceBerthBFree, Weight: 1}},
		},
	} {
		if _, err := net.AddTransition(s); err != nil {
			return nil, err
		}
	}

	t.dockA = net.FindTransition(TransitionDockA)
	t.dockB = net.FindTransition(TransitionDockB)
	t.departA = net.FindTransition(TransitionDepartA)
	t.departB = net.FindTransition(TransitionDepartB)

	net.FindPlace(PlaceFreight).OnChange(func(p *ptn.Place[string, uint32], prev uint32) {
		delta := int64(p.Tokens()) - int64(prev)
		if delta < 0 {
			t.logger.Info("ship loaded freight",
				zap.Int64("count", -delta),
				zap.Uint32("remaining", p.Tokens()))
		} else {
			t.logger.Info("supplier delivered freight",
				zap.Int64("count", delta),
				zap.Uint32("total", p.Tokens()))
		}
	})

	onBerth := func(p *ptn.Place[string, uint32], prev uint32) {
		if p.Tokens() == 0 {
			t.logger.Info("ship departed", zap.String("berth", p.ID()))
		} else {
			t.logger.Info("ship docked", zap.String("berth", p.ID()))
		}
	}
	net.FindPlace(PlaceBerthA).OnChange(onBerth)
	net.FindPlace(PlaceBerthB).OnChange(onBerth)

	return t, nil
}

// Net exposes the underlying net, e.g. for attaching further machinery.
func (t *Terminal) Net() *ptn.Net[string, uint32] { return t.net }

// AddSupplier attaches a supplier to the terminal net.
func (t *Terminal) AddSupplier(s Supplier) error { return s.Attach(t.net) }

// Tick ticks the terminal net once, driving every auto-fired transition.
func (t *Terminal) Tick() { t.net.Tick() }

// TryDockA attempts to dock a ship at berth A.
func (t *Terminal) TryDockA() bool { return t.dockA.Fire() }

// TryDockB attempts to dock a ship at berth B.
func (t *Terminal) TryDockB() bool { return t.dockB.Fire() }

// TryDepartA attempts to load and depart the ship at berth A.
func (t *Terminal) TryDepartA() bool { return t.departA.Fire() }

// TryDepartB attempts to load and depart the ship at berth B.
func (t *Terminal) TryDepartB() bool { return t.departB.Fire() }

// CanDockA reports whether berth A is free. Advisory only.
func (t *Terminal) CanDockA() bool { return t.dockA.Ready() }

// CanDockB reports whether berth B is free. Advisory only.
func (t *Terminal) CanDockB() bool { return t.dockB.Ready() }

// CanDepartA reports whether the ship at berth A could depart. Advisory only.
func (t *Terminal) CanDepartA() bool { return t.departA.Ready() }

// CanDepartB reports whether the ship at berth B could depart. Advisory only.
func (t *Terminal) CanDepartB() bool { return t.departB.Ready() }
