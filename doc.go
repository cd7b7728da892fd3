// Package ptn implements a generic, thread-safe Petri-net execution engine.
//
// A net owns named places holding integer tokens and weighted transitions
// that atomically move tokens between them. Callers build a net with
// AddPlace and AddTransition, then drive it directly (Fire), periodically
// (Tick evaluates every transition's auto-fire condition once) or
// reactively (DeepTick and DeepFire cascade through downstream transitions
// that just became ready, rejecting cyclic propagation).
//
// A single readers-writer lock per net guards all token state. Change
// listeners registered with Place.OnChange are invoked after the lock is
// released, so they may safely re-enter the net.
package ptn
