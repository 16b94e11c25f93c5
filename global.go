package entropy

// Global is the marker component distinguishing the process-lifetime
// source entity of an algorithm from ordinary entities. At most one
// Global entity may exist per algorithm; InitGlobal maintains the
// invariant, and resolution fails loudly if it is violated by hand.
type Global struct{}

// InitGlobal creates the Global source entity for an algorithm, seeded
// from the given bytes, or from the user-space entropy stream when seed
// is nil. If the algorithm already has a Global entity it is returned
// unchanged; initialisation is idempotent and never reseeds.
func (w *World) InitGlobal(alg Algorithm, seed []byte) (Entity, error) {
	if e, ok := w.globals[alg]; ok && w.Alive(e) {
		return e, nil
	}

	var s Seed
	if seed == nil {
		s = RandomSeed(alg)
	} else {
		var err error
		if s, err = SeedOf(alg, seed); err != nil {
			return NoEntity, err
		}
	}

	e := w.Spawn()
	Add(w, e, &Global{})
	if err := ApplySeed(w, e, s); err != nil {
		w.Despawn(e)
		return NoEntity, err
	}
	w.globals[alg] = e
	return e, nil
}

// GlobalEntity resolves the unique Global source entity for an algorithm.
// Resolution checks the marker, not just the registration slot: zero or
// multiple live Global entities for the algorithm yield an
// UnresolvedGlobalError, surfacing setup bugs before any mutation
// happens.
func (w *World) GlobalEntity(alg Algorithm) (Entity, error) {
	found := NoEntity
	matches := 0
	for _, e := range Query[Global](w) {
		g := Get[Generator](w, e)
		if g == nil || g.Algorithm() != alg {
			continue
		}
		found = e
		matches++
	}
	if matches != 1 {
		return NoEntity, &UnresolvedGlobalError{Algorithm: alg, Matches: matches}
	}
	return found, nil
}

// GlobalGenerator returns the live generator of the algorithm's Global
// entity, for drawing or forking from directly.
func GlobalGenerator(w *World, alg Algorithm) (*Generator, error) {
	e, err := w.GlobalEntity(alg)
	if err != nil {
		return nil, err
	}
	g := Get[Generator](w, e)
	if g == nil {
		return nil, &UnresolvedGlobalError{Algorithm: alg, Matches: 0}
	}
	return g, nil
}

// GlobalSeed returns the initial seed record of the algorithm's Global
// entity, for inspection and diagnostics.
func GlobalSeed(w *World, alg Algorithm) (Seed, error) {
	g, err := GlobalGenerator(w, alg)
	if err != nil {
		return Seed{}, err
	}
	return g.Seed(), nil
}
