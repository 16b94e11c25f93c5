package entropy

import (
	"fmt"
	"reflect"
	"unsafe"
)

// ComponentID is a unique per-World identifier for a component type.
type ComponentID uint8

// MaxComponents is the maximum number of component types a World supports.
const MaxComponents = 128

// componentRegistry assigns sequential IDs to component types as they are
// first used. Registration is per World, so two Worlds may disagree on
// IDs; only reflect.Type is stable across them.
type componentRegistry struct {
	ids   map[reflect.Type]ComponentID
	types [MaxComponents]reflect.Type
	next  ComponentID
}

func newComponentRegistry() *componentRegistry {
	return &componentRegistry{ids: make(map[reflect.Type]ComponentID)}
}

func (r *componentRegistry) idFor(t reflect.Type) ComponentID {
	if id, ok := r.ids[t]; ok {
		return id
	}
	if r.next >= MaxComponents {
		panic(fmt.Sprintf("entropy: component limit exceeded (max %d types)", MaxComponents))
	}
	id := r.next
	r.next++
	r.ids[t] = id
	r.types[id] = t
	return id
}

func (r *componentRegistry) typeOf(id ComponentID) reflect.Type {
	return r.types[id]
}

func componentID[T any](w *World) ComponentID {
	return w.registry.idFor(reflect.TypeOf((*T)(nil)).Elem())
}

// Attachable is implemented by components that need initialization logic
// when attached to an entity. Attach runs after the component is stored.
type Attachable interface {
	Attach(w *World, e Entity)
}

// Detachable is implemented by components that need cleanup logic when
// detached from an entity or when the entity despawns. Detach runs after
// the component is removed.
type Detachable interface {
	Detach(w *World, e Entity)
}

// Add attaches a component to the entity, replacing any existing
// component of the same type. The old component's Detach hook and the new
// component's Attach hook run as part of the operation. Adding to a dead
// or zero entity is a no-op.
func Add[T any](w *World, e Entity, component *T) {
	if w == nil || component == nil {
		return
	}
	rec := w.records[e]
	if rec == nil {
		return
	}

	id := componentID[T](w)

	old := rec.components[id]
	rec.components[id] = unsafe.Pointer(component)
	rec.mask.Set(id)

	if old != nil {
		if d, ok := any((*T)(old)).(Detachable); ok {
			d.Detach(w, e)
		}
	}
	if a, ok := any(component).(Attachable); ok {
		a.Attach(w, e)
	}
}

// Get retrieves a component from the entity, or nil if absent.
func Get[T any](w *World, e Entity) *T {
	if w == nil {
		return nil
	}
	rec := w.records[e]
	if rec == nil {
		return nil
	}
	ptr := rec.components[componentID[T](w)]
	if ptr == nil {
		return nil
	}
	return (*T)(ptr)
}

// Has reports whether a component type is present on the entity.
func Has[T any](w *World, e Entity) bool {
	if w == nil {
		return false
	}
	rec := w.records[e]
	if rec == nil {
		return false
	}
	return rec.mask.Has(componentID[T](w))
}

// Remove detaches a component from the entity. The component's Detach
// hook runs after removal.
func Remove[T any](w *World, e Entity) {
	if w == nil {
		return
	}
	rec := w.records[e]
	if rec == nil {
		return
	}

	id := componentID[T](w)
	ptr := rec.components[id]
	if ptr == nil {
		return
	}
	rec.components[id] = nil
	rec.mask.Clear(id)

	if d, ok := any((*T)(ptr)).(Detachable); ok {
		d.Detach(w, e)
	}
}

// Query returns all live entities carrying a component of type T, ordered
// by entity handle for reproducibility.
func Query[T any](w *World) []Entity {
	if w == nil {
		return nil
	}
	id := componentID[T](w)
	var out []Entity
	for _, e := range w.sortedEntities() {
		if w.records[e].mask.Has(id) {
			out = append(out, e)
		}
	}
	return out
}
