// Package entropy provides deterministic, forkable randomness for
// entity-component worlds.
//
// Entities own Generator components: PRNG instances with an observable
// initial seed. Generators are linked into seed trees through typed
// relations, so reseeding one source deterministically reseeds every
// entity below it, even across different PRNG algorithms. Given the same
// global seed, the whole tree reproduces bit-for-bit.
//
// # Quick Start
//
// Initialise a World with a Global source per algorithm:
//
//	w, err := entropy.NewBuilder().
//	    AlgorithmSeeded(entropy.ChaCha8, seed).
//	    Algorithm(entropy.PCG32).
//	    Init()
//
// Spawn entities with their own forked randomness:
//
//	global, _ := w.GlobalRng(entropy.ChaCha8)
//	npc, _ := global.ForkEntity(entropy.ChaCha8)
//
//	g := entropy.Get[entropy.Generator](w, npc)
//	damage := g.IntN(12) + 1
//
// Link sources to targets and cascade a reseed through the tree:
//
//	rel := entropy.SameAs(entropy.ChaCha8)
//	_ = global.Link(rel, npc1, npc2)
//	outcomes, err := global.ReseedLinked(entropy.Explicit(newSeed))
//
// # Determinism
//
// Seeding a generator with known bytes fixes its entire output sequence.
// Forking draws the child's seed from the parent's live stream, so seed
// trees are reproducible as long as draw order is: the World is
// single-owner and all propagation is synchronous and ordered (link
// insertion order per source) to keep it that way.
//
// # Not a cryptography library
//
// The ChaCha backends are cryptographically strong generators, but this
// package makes no CSPRNG guarantees beyond what the wrapped algorithms
// provide. By convention, seed equal-or-weaker algorithms from stronger
// ones, never the reverse.
package entropy

// Version is the entropy package version.
const Version = "1.0.0"
