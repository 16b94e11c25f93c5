package entropy

import (
	"reflect"
)

// Events are the boundary between host code and the reseed protocol.
// Host code triggers a typed event on a specific entity; observers
// registered for that event type run synchronously, within the scope of
// the triggering call, before Trigger returns. Builder.Init registers the
// default observers that wire the reseed events below to the propagation
// protocol, so a host that prefers event dispatch over the command
// surface can drive reseeding entirely through Trigger.

// Linked is emitted after link edges are established from an entity.
type Linked struct {
	Relation Relation
	Targets  []Entity
}

// ReseedRequest asks the triggered entity to reseed itself from the given
// material. If Propagate is set and the entity is a source, the reseed
// cascades to its linked targets.
type ReseedRequest struct {
	Material  Material
	Propagate bool
}

// SeedFromGlobal asks the triggered entity to pull a fresh seed forked
// from the Global source of the relation's source algorithm.
type SeedFromGlobal struct {
	Relation Relation
}

// SeedFromSource asks the triggered entity to pull a fresh seed forked
// from its linked parent under the relation.
type SeedFromSource struct {
	Relation Relation
}

type observerFunc func(w *World, e Entity, event any) error

// Observe registers an observer for events of type E. Observers run in
// registration order.
func Observe[E any](w *World, fn func(w *World, e Entity, event E) error) {
	t := reflect.TypeOf((*E)(nil)).Elem()
	w.observers[t] = append(w.observers[t], func(w *World, e Entity, event any) error {
		return fn(w, e, event.(E))
	})
}

// Trigger dispatches an event targeted at a specific entity to all
// observers registered for its type, synchronously. The first observer
// error stops dispatch and is returned.
func (w *World) Trigger(e Entity, event any) error {
	for _, fn := range w.observers[reflect.TypeOf(event)] {
		if err := fn(w, e, event); err != nil {
			return err
		}
	}
	return nil
}

// registerObservers wires the reseed protocol to the event boundary.
func registerObservers(w *World) {
	Observe(w, func(w *World, e Entity, ev ReseedRequest) error {
		if !ev.Propagate {
			return ApplyMaterial(w, e, ev.Material)
		}
		outcomes, err := Cascade(w, e, ev.Material)
		if err != nil {
			return err
		}
		return outcomes.Err()
	})
	Observe(w, func(w *World, e Entity, ev SeedFromGlobal) error {
		return PullFromGlobal(w, e, ev.Relation)
	})
	Observe(w, func(w *World, e Entity, ev SeedFromSource) error {
		return PullFromSource(w, e, ev.Relation)
	})
}
