package entropy

import (
	"fmt"
	"sort"
)

// Relation types a seed-propagation edge by the algorithms at both ends.
// A relation is directed: seeds flow from Source-algorithm entities to
// Target-algorithm entities. Cross-algorithm relations are allowed; by
// convention seed an equal-or-weaker algorithm from a stronger one (for
// example ChaCha20 into PCG32, not the reverse). The convention is
// advisory and not enforced.
type Relation struct {
	Source Algorithm
	Target Algorithm
}

// SameAs returns the relation for propagation within a single algorithm.
func SameAs(alg Algorithm) Relation {
	return Relation{Source: alg, Target: alg}
}

func (r Relation) String() string {
	return fmt.Sprintf("%s->%s", r.Source, r.Target)
}

// linkStore holds the typed one-to-many edges of the seed graph. The
// forward index preserves insertion order per source, which is the only
// traversal-order guarantee propagation offers. The inbound index
// enforces at most one source per target per relation: re-linking a
// target silently supersedes its previous edge.
//
// Edges are independent of entity lifetime. Despawning either endpoint
// leaves the edge in place; traversal skips edges whose target is dead.
type linkStore struct {
	forward map[Relation]map[Entity][]Entity
	inbound map[Relation]map[Entity]Entity
}

func newLinkStore() *linkStore {
	return &linkStore{
		forward: make(map[Relation]map[Entity][]Entity),
		inbound: make(map[Relation]map[Entity]Entity),
	}
}

func (ls *linkStore) link(rel Relation, source Entity, targets []Entity) error {
	if len(targets) == 0 {
		return ErrEmptyTargetSet
	}
	if ls.forward[rel] == nil {
		ls.forward[rel] = make(map[Entity][]Entity)
		ls.inbound[rel] = make(map[Entity]Entity)
	}
	for _, t := range targets {
		if old, ok := ls.inbound[rel][t]; ok {
			ls.dropEdge(rel, old, t)
		}
		ls.inbound[rel][t] = source
		ls.forward[rel][source] = append(ls.forward[rel][source], t)
	}
	return nil
}

func (ls *linkStore) unlink(rel Relation, target Entity) {
	source, ok := ls.inbound[rel][target]
	if !ok {
		return
	}
	delete(ls.inbound[rel], target)
	ls.dropEdge(rel, source, target)
}

func (ls *linkStore) dropEdge(rel Relation, source, target Entity) {
	edges := ls.forward[rel][source]
	for i, t := range edges {
		if t == target {
			ls.forward[rel][source] = append(edges[:i], edges[i+1:]...)
			break
		}
	}
	if len(ls.forward[rel][source]) == 0 {
		delete(ls.forward[rel], source)
	}
}

func (ls *linkStore) targets(rel Relation, source Entity) []Entity {
	edges := ls.forward[rel][source]
	if len(edges) == 0 {
		return nil
	}
	out := make([]Entity, len(edges))
	copy(out, edges)
	return out
}

func (ls *linkStore) source(rel Relation, target Entity) (Entity, bool) {
	source, ok := ls.inbound[rel][target]
	return source, ok
}

// relationsOf returns every relation under which the entity has at least
// one outgoing edge, sorted by algorithm pair so traversal order is
// deterministic.
func (ls *linkStore) relationsOf(source Entity) []Relation {
	var out []Relation
	for rel, bySource := range ls.forward {
		if len(bySource[source]) > 0 {
			out = append(out, rel)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].Target < out[j].Target
	})
	return out
}

func (ls *linkStore) isSource(e Entity) bool {
	for _, bySource := range ls.forward {
		if len(bySource[e]) > 0 {
			return true
		}
	}
	return false
}

// Link establishes typed edges from source to each target. Any previous
// edge to one of the targets under the same relation is superseded, so a
// target never has two sources. Linking with no targets returns
// ErrEmptyTargetSet and creates nothing. The endpoints are not required
// to be alive or to carry generators yet; edges are resolved lazily at
// propagation time.
func (w *World) Link(rel Relation, source Entity, targets ...Entity) error {
	if err := w.links.link(rel, source, targets); err != nil {
		return err
	}
	return w.Trigger(source, Linked{Relation: rel, Targets: targets})
}

// Unlink removes the target's inbound edge of the given relation, if any.
func (w *World) Unlink(rel Relation, target Entity) {
	w.links.unlink(rel, target)
}

// Targets returns the entities linked from source under the relation, in
// insertion order. Re-linking a target moves it to the end of its new
// source's order; callers must not rely on a stable order across relinks.
func (w *World) Targets(rel Relation, source Entity) []Entity {
	return w.links.targets(rel, source)
}

// SourceOf returns the entity the target is linked from under the
// relation, if any.
func (w *World) SourceOf(rel Relation, target Entity) (Entity, bool) {
	return w.links.source(rel, target)
}

// IsSource reports whether the entity has at least one outgoing link of
// any relation, which is what decides whether a reseed of it can cascade.
func (w *World) IsSource(e Entity) bool {
	return w.links.isSource(e)
}
