package harbor

import (
	"fmt"
	"sync/atomic"

	ptn "github.com/rafaelamscarneiro/SimplePTN"
)

// Supplier attaches freight-supply machinery to a terminal net.
type Supplier interface {
	Attach(net *ptn.Net[string, uint32]) error
}

// StockSupplier feeds the freight buffer from a finite stock of its own,
// moving PerTick units on every net tick while enabled. The zero value is a
// disabled supplier with an empty stock.
type StockSupplier struct {
	Stock   uint32
	PerTick uint32

	enabled atomic.Bool
}

// Enable lets the supplier deliver on subsequent ticks.
func (s *StockSupplier) Enable() { s.enabled.Store(true) }

// Disable stops deliveries without detaching the supplier.
func (s *StockSupplier) Disable() { s.enabled.Store(false) }

// StockPlace returns the identifier of the supplier's stock place.
func (s *StockSupplier) StockPlace() string {
	return fmt.Sprintf("stock_%d_per_%d", s.Stock, s.PerTick)
}

// TransitionID returns the identifier of the supplier's supply transition.
func (s *StockSupplier) TransitionID() string {
	return fmt.Sprintf("supply_%d_per_%d", s.Stock, s.PerTick)
}

// Attach adds the supplier's stock place and an auto-fired supply transition
// to the net. The transition only fires while the supplier is enabled.
func (s *StockSupplier) Attach(net *ptn.Net[string, uint32]) error {
	if _, err := net.AddPlace(s.StockPlace(), s.Stock); err != nil {
		return err
	}
	t, err := net.AddTransition(ptn.Sketch[string, uint32]{
		ID:       s.TransitionID(),
		Ingoing:  []ptn.Edge[string, uint32]{{Place: s.StockPlace(), Weight: s.PerTick}},
		Outgoing: []ptn.Edge[string, uint32]{{Place: PlaceFreight, Weight: s.PerTick}},
	})
	if err != nil {
		return err
	}
	t.AutoFire(func(*ptn.Transition[string, uint32]) bool {
		return s.enabled.Load()
	})
	return nil
}
