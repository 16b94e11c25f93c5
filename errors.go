package entropy

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTargetSet is returned when a link is requested with zero
	// targets. No partial state is created.
	ErrEmptyTargetSet = errors.New("entropy: link requires at least one target")

	// ErrDespawned is returned when an operation names an entity that is
	// not alive in the world. Stale link edges reached during a cascade
	// are skipped instead; this error only surfaces for entities named
	// directly by the caller.
	ErrDespawned = errors.New("entropy: entity is not alive")

	// ErrNoGenerator is returned when an operation needs an entity's
	// generator and the entity has none attached.
	ErrNoGenerator = errors.New("entropy: entity has no generator")

	// ErrUnlinked is returned when an entity is asked to pull a seed from
	// its source but has no inbound link of the requested relation.
	ErrUnlinked = errors.New("entropy: entity has no source link")
)

// SeedSizeError reports a seed byte slice whose length does not match the
// algorithm's required width.
type SeedSizeError struct {
	Algorithm Algorithm
	Got       int
}

func (e *SeedSizeError) Error() string {
	return fmt.Sprintf("entropy: %s seed must be %d bytes, got %d", e.Algorithm, e.Algorithm.SeedLen(), e.Got)
}

// CyclicLinkError reports that a cascade revisited an entity it had
// already reseeded within the same run. The cascade stops at the point of
// detection; reseeds applied earlier in the run stand.
type CyclicLinkError struct {
	Entity Entity
}

func (e *CyclicLinkError) Error() string {
	return fmt.Sprintf("entropy: link cycle detected at entity %s", e.Entity)
}

// UnresolvedGlobalError reports that resolving the Global entity for an
// algorithm found zero or more than one candidate. This signals a setup
// bug: either the algorithm was never initialised, or the single-Global
// invariant was violated by attaching the Global marker elsewhere.
type UnresolvedGlobalError struct {
	Algorithm Algorithm
	Matches   int
}

func (e *UnresolvedGlobalError) Error() string {
	if e.Matches == 0 {
		return fmt.Sprintf("entropy: no global source for %s; was the algorithm initialised?", e.Algorithm)
	}
	return fmt.Sprintf("entropy: %d global sources for %s, want exactly one", e.Matches, e.Algorithm)
}
