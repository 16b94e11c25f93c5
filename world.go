package entropy

import (
	"bytes"
	"log/slog"
	"reflect"
	"sort"
	"unsafe"
)

// World owns entity storage, the link relation store and the observer
// registry. It is the injected store the rest of the package operates
// through, and it is deliberately free of locks: a World must be driven
// by one goroutine at a time, with the host scheduler granting exclusive
// access the same way it does for any other mutable resource. No
// operation on a World blocks or performs I/O beyond reading the entropy
// source at construction time.
type World struct {
	registry  *componentRegistry
	records   map[Entity]*record
	links     *linkStore
	globals   map[Algorithm]Entity
	observers map[reflect.Type][]observerFunc
	log       *slog.Logger
}

// record is the per-entity component storage: a presence mask plus
// pointer slots indexed by ComponentID.
type record struct {
	mask       Bitmask
	components [MaxComponents]unsafe.Pointer
}

// NewWorld creates an empty World with the reseed observers registered
// but no Global sources. Most callers should go through Builder.Init
// instead, which also creates the Global entities.
func NewWorld() *World {
	return newWorld(slog.Default())
}

func newWorld(log *slog.Logger) *World {
	w := &World{
		registry:  newComponentRegistry(),
		records:   make(map[Entity]*record),
		links:     newLinkStore(),
		globals:   make(map[Algorithm]Entity),
		observers: make(map[reflect.Type][]observerFunc),
		log:       log,
	}
	registerObservers(w)
	return w
}

// Spawn creates a new empty entity and returns its handle.
func (w *World) Spawn() Entity {
	e := newEntity()
	w.records[e] = &record{}
	return e
}

// Despawn destroys an entity and detaches all of its components. Link
// edges naming the entity are left in place; propagation tolerates and
// skips them. Despawning a dead entity is a no-op.
func (w *World) Despawn(e Entity) {
	rec := w.records[e]
	if rec == nil {
		return
	}
	delete(w.records, e)

	// Run Detach hooks after the entity is gone, matching Remove.
	for id := ComponentID(0); id < w.registry.next; id++ {
		ptr := rec.components[id]
		if ptr == nil {
			continue
		}
		t := w.registry.typeOf(id)
		if t == nil {
			continue
		}
		if d, ok := reflect.NewAt(t, ptr).Interface().(Detachable); ok {
			d.Detach(w, e)
		}
	}
}

// Alive reports whether the entity currently exists in this World.
func (w *World) Alive(e Entity) bool {
	_, ok := w.records[e]
	return ok
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.records)
}

// Logger returns the World's logger.
func (w *World) Logger() *slog.Logger {
	return w.log
}

// sortedEntities returns all live entities ordered by handle bytes, so
// iteration is reproducible across runs.
func (w *World) sortedEntities() []Entity {
	out := make([]Entity, 0, len(w.records))
	for e := range w.records {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i].id[:], out[j].id[:]) < 0
	})
	return out
}
