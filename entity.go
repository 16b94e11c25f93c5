package entropy

import (
	"github.com/google/uuid"
)

// Entity is an opaque, comparable handle to a unit of storage in a World.
// Handles are stable for the life of the process and safe to hold after
// the entity despawns; operations on a dead entity report ErrDespawned or
// are skipped, they never panic.
type Entity struct {
	id uuid.UUID
}

// NoEntity is the zero Entity. It never names live storage.
var NoEntity = Entity{}

// IsZero reports whether e is the zero handle.
func (e Entity) IsZero() bool {
	return e.id == uuid.Nil
}

// String returns a short form of the handle for logs and errors.
func (e Entity) String() string {
	if e.IsZero() {
		return "entity(nil)"
	}
	return "entity(" + e.id.String()[:8] + ")"
}

func newEntity() Entity {
	return Entity{id: uuid.New()}
}
