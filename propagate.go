package entropy

import (
	"bytes"
	"errors"
	"fmt"
)

// Material describes where a reseed draws its new seed from: the
// user-space entropy stream, the OS source, explicit bytes, or a fork of
// another entity's live generator.
type Material struct {
	kind  materialKind
	value []byte
	from  Entity
}

type materialKind uint8

const (
	materialRandom materialKind = iota
	materialOS
	materialExplicit
	materialFork
)

// Random is reseed material drawn from the process-wide user-space
// entropy stream. Not reproducible.
func Random() Material {
	return Material{kind: materialRandom}
}

// OSRandom is reseed material drawn directly from the OS entropy source.
func OSRandom() Material {
	return Material{kind: materialOS}
}

// Explicit is reseed material from caller-provided bytes. The slice is
// copied; its length is validated against the target algorithm when the
// reseed is applied.
func Explicit(value []byte) Material {
	return Material{kind: materialExplicit, value: bytes.Clone(value)}
}

// ForkFrom is reseed material drawn by forking the named entity's live
// generator, advancing it. The parent must be alive and carry a generator
// when the reseed is applied.
func ForkFrom(parent Entity) Material {
	return Material{kind: materialFork, from: parent}
}

func (m Material) String() string {
	switch m.kind {
	case materialOS:
		return "os-random"
	case materialExplicit:
		return fmt.Sprintf("explicit(%x)", m.value)
	case materialFork:
		return "fork-from(" + m.from.String() + ")"
	default:
		return "random"
	}
}

// resolve turns material into a concrete Seed for the given algorithm.
func (m Material) resolve(w *World, alg Algorithm) (Seed, error) {
	switch m.kind {
	case materialOS:
		return OSSeed(alg)
	case materialExplicit:
		return SeedOf(alg, m.value)
	case materialFork:
		parent := Get[Generator](w, m.from)
		if parent == nil {
			if !w.Alive(m.from) {
				return Seed{}, fmt.Errorf("forking %s: %w", m.from, ErrDespawned)
			}
			return Seed{}, fmt.Errorf("forking %s: %w", m.from, ErrNoGenerator)
		}
		return parent.ForkAsSeed(alg), nil
	default:
		return RandomSeed(alg), nil
	}
}

// Outcome records the result of one target's reseed within a cascade.
type Outcome struct {
	Target Entity
	// Stale marks a link edge whose target was despawned; the edge is
	// skipped, not failed.
	Stale bool
	Err   error
}

// Outcomes aggregates the per-target results of one cascade run, in the
// order targets were processed.
type Outcomes []Outcome

// Err joins the errors of all failed targets, or returns nil if every
// target was reseeded or skipped as stale.
func (o Outcomes) Err() error {
	var errs []error
	for _, out := range o {
		if out.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", out.Target, out.Err))
		}
	}
	return errors.Join(errs...)
}

// Stale returns the number of edges skipped for despawned targets.
func (o Outcomes) Stale() int {
	n := 0
	for _, out := range o {
		if out.Stale {
			n++
		}
	}
	return n
}

// ApplySeed installs the seed on the entity, replacing its Seed record
// and Generator together. No observer can see the entity between the two
// updates: the Generator is reinstalled by the Seed's attach hook inside
// the same Add call.
func ApplySeed(w *World, e Entity, seed Seed) error {
	if !w.Alive(e) {
		return ErrDespawned
	}
	if seed.IsZero() {
		return &SeedSizeError{Algorithm: seed.alg, Got: 0}
	}
	Add(w, e, &seed)
	return nil
}

// ApplyMaterial resolves material against the entity's current algorithm
// and applies the resulting seed. The entity must already carry a
// generator (or seed) so the algorithm is known; nothing is mutated on
// error.
func ApplyMaterial(w *World, e Entity, m Material) error {
	if !w.Alive(e) {
		return ErrDespawned
	}
	g := Get[Generator](w, e)
	if g == nil {
		return ErrNoGenerator
	}
	seed, err := m.resolve(w, g.Algorithm())
	if err != nil {
		return err
	}
	return ApplySeed(w, e, seed)
}

// Cascade reseeds the source entity from the given material and
// propagates breadth-first through the link store: each linked target
// receives a seed forked from its just-reseeded parent's live state,
// never a copy of the parent's own seed, then becomes a parent for its
// own links in turn. Targets under one source are visited in link
// insertion order; relations of one parent in algorithm-pair order.
//
// Failures are isolated per target: a target that cannot be reseeded is
// recorded in the returned Outcomes and its siblings still proceed, but
// nothing is propagated through a failed or stale target. Revisiting an
// entity within one run means the graph has a cycle; the run stops with a
// CyclicLinkError and everything applied so far stands.
func Cascade(w *World, source Entity, m Material) (Outcomes, error) {
	if err := ApplyMaterial(w, source, m); err != nil {
		return nil, err
	}

	visited := map[Entity]struct{}{source: {}}
	queue := []Entity{source}
	var outcomes Outcomes

	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]

		gen := Get[Generator](w, parent)
		if gen == nil {
			continue
		}

		for _, rel := range w.links.relationsOf(parent) {
			if rel.Source != gen.Algorithm() {
				// Typed edges for an algorithm this parent no longer
				// runs; leave them for whichever generator matches.
				w.log.Debug("skipping mismatched rng relation",
					"entity", parent.String(), "relation", rel.String(), "algorithm", gen.Algorithm().String())
				continue
			}
			for _, target := range w.links.targets(rel, parent) {
				if _, seen := visited[target]; seen {
					return outcomes, &CyclicLinkError{Entity: target}
				}
				visited[target] = struct{}{}

				if !w.Alive(target) {
					w.log.Debug("skipping stale rng link",
						"source", parent.String(), "target", target.String(), "relation", rel.String())
					outcomes = append(outcomes, Outcome{Target: target, Stale: true})
					continue
				}

				seed := gen.ForkAsSeed(rel.Target)
				if err := ApplySeed(w, target, seed); err != nil {
					outcomes = append(outcomes, Outcome{Target: target, Err: err})
					continue
				}
				outcomes = append(outcomes, Outcome{Target: target})
				queue = append(queue, target)
			}
		}
	}
	return outcomes, nil
}

// PullFromSource reseeds the target from its linked parent under the
// relation, forking the parent's live generator. A despawned or
// generator-less parent makes the pull a logged no-op, matching the stale
// link policy; a missing link is ErrUnlinked.
func PullFromSource(w *World, target Entity, rel Relation) error {
	if !w.Alive(target) {
		return ErrDespawned
	}
	parent, ok := w.links.source(rel, target)
	if !ok {
		return ErrUnlinked
	}
	gen := Get[Generator](w, parent)
	if gen == nil {
		w.log.Debug("skipping pull from stale rng source",
			"source", parent.String(), "target", target.String(), "relation", rel.String())
		return nil
	}
	return ApplySeed(w, target, gen.ForkAsSeed(rel.Target))
}

// PullFromGlobal reseeds the target by forking the Global source of the
// relation's source algorithm. Global resolution failure aborts before
// any mutation.
func PullFromGlobal(w *World, target Entity, rel Relation) error {
	if !w.Alive(target) {
		return ErrDespawned
	}
	gen, err := GlobalGenerator(w, rel.Source)
	if err != nil {
		return err
	}
	return ApplySeed(w, target, gen.ForkAsSeed(rel.Target))
}
