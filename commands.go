package entropy

// RngCommands is the fluent command surface for one entity's randomness.
// It is a pure convenience layer: every operation resolves to the link,
// seed and propagation primitives and adds no state of its own.
//
// Usage:
//
//	global, _ := w.GlobalEntity(entropy.ChaCha8)
//	rel := entropy.SameAs(entropy.ChaCha8)
//
//	_ = w.Rng(global).Link(rel, npc1, npc2)
//	outcomes, _ := w.Rng(global).ReseedLinked(entropy.Explicit(seed))
type RngCommands struct {
	w      *World
	entity Entity
}

// Rng returns the command surface for the given entity.
func (w *World) Rng(e Entity) *RngCommands {
	return &RngCommands{w: w, entity: e}
}

// GlobalRng returns the command surface for the algorithm's Global source
// entity.
func (w *World) GlobalRng(alg Algorithm) (*RngCommands, error) {
	e, err := w.GlobalEntity(alg)
	if err != nil {
		return nil, err
	}
	return w.Rng(e), nil
}

// Entity returns the entity the commands operate on.
func (c *RngCommands) Entity() Entity {
	return c.entity
}

// Link establishes typed edges from this entity to the targets,
// superseding any previous inbound edge each target held under the same
// relation.
func (c *RngCommands) Link(rel Relation, targets ...Entity) error {
	return c.w.Link(rel, c.entity, targets...)
}

// Reseed replaces this entity's seed and generator from the material,
// without cascading to linked targets.
func (c *RngCommands) Reseed(m Material) error {
	return c.w.Trigger(c.entity, ReseedRequest{Material: m})
}

// ReseedLinked replaces this entity's seed from the material and cascades
// the reseed through its linked targets, returning the per-target
// outcomes.
func (c *RngCommands) ReseedLinked(m Material) (Outcomes, error) {
	return Cascade(c.w, c.entity, m)
}

// ReseedFromSource pulls a fresh seed forked from this entity's linked
// parent under the relation.
func (c *RngCommands) ReseedFromSource(rel Relation) error {
	return c.w.Trigger(c.entity, SeedFromSource{Relation: rel})
}

// ReseedFromGlobal pulls a fresh seed forked from the Global source of
// the relation's source algorithm.
func (c *RngCommands) ReseedFromGlobal(rel Relation) error {
	return c.w.Trigger(c.entity, SeedFromGlobal{Relation: rel})
}

// ForkEntity spawns a new entity pre-seeded with the given algorithm by
// forking this entity's generator, and returns its handle.
func (c *RngCommands) ForkEntity(target Algorithm) (Entity, error) {
	gen := Get[Generator](c.w, c.entity)
	if gen == nil {
		if !c.w.Alive(c.entity) {
			return NoEntity, ErrDespawned
		}
		return NoEntity, ErrNoGenerator
	}
	seed := gen.ForkAsSeed(target)
	e := c.w.Spawn()
	if err := ApplySeed(c.w, e, seed); err != nil {
		c.w.Despawn(e)
		return NoEntity, err
	}
	return e, nil
}
