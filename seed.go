package entropy

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Seed is the observable initial-seed record for a generator. It is
// immutable once constructed: reseeding an entity attaches a whole new
// Seed rather than mutating the old one, and the entity's Generator is
// reinstalled from it in the same step. The live generator state is never
// exposed; Seed is the only part of an entity's randomness that is meant
// to be inspected, logged or persisted by application code.
type Seed struct {
	alg   Algorithm
	value []byte
}

// SeedOf builds a Seed for the given algorithm from explicit bytes. The
// slice is copied; it must be exactly alg.SeedLen() bytes.
func SeedOf(alg Algorithm, value []byte) (Seed, error) {
	if err := alg.checkSeed(value); err != nil {
		return Seed{}, err
	}
	return Seed{alg: alg, value: bytes.Clone(value)}, nil
}

// RandomSeed builds a Seed from the process-wide user-space entropy
// stream. This is the default for unseeded initialisation and is not
// reproducible across runs.
func RandomSeed(alg Algorithm) Seed {
	value := make([]byte, alg.SeedLen())
	localEntropy(value)
	return Seed{alg: alg, value: value}
}

// OSSeed builds a Seed directly from the OS entropy source.
func OSSeed(alg Algorithm) (Seed, error) {
	value := make([]byte, alg.SeedLen())
	if err := osEntropy(value); err != nil {
		return Seed{}, err
	}
	return Seed{alg: alg, value: value}, nil
}

// Algorithm returns the algorithm this seed initialises.
func (s Seed) Algorithm() Algorithm {
	return s.alg
}

// Bytes returns a copy of the seed bytes.
func (s Seed) Bytes() []byte {
	return bytes.Clone(s.value)
}

// IsZero reports whether s is the zero Seed, carrying no value.
func (s Seed) IsZero() bool {
	return s.value == nil
}

// Equal reports whether two seeds have the same algorithm and bytes.
func (s Seed) Equal(other Seed) bool {
	return s.alg == other.alg && bytes.Equal(s.value, other.value)
}

func (s Seed) String() string {
	return fmt.Sprintf("Seed{%s, %x}", s.alg, s.value)
}

// generator builds a fresh Generator from the seed. A non-zero Seed is
// always well formed, so this cannot fail after construction.
func (s Seed) generator() *Generator {
	g, err := NewSeeded(s.alg, s.value)
	if err != nil {
		panic("entropy: seed invariant violated: " + err.Error())
	}
	return g
}

// Attach installs a Generator built from this seed whenever the seed is
// added to an entity, keeping the seed record and the live state in
// lockstep. Replacing an entity's Seed therefore replaces its Generator
// in the same operation.
func (s *Seed) Attach(w *World, e Entity) {
	Add(w, e, s.generator())
}

// Detach removes the entity's Generator together with the seed record.
func (s *Seed) Detach(w *World, e Entity) {
	Remove[Generator](w, e)
}

type seedJSON struct {
	Algorithm string `json:"algorithm"`
	Value     []byte `json:"seed"`
}

// MarshalJSON encodes the seed as its algorithm name and seed bytes.
func (s Seed) MarshalJSON() ([]byte, error) {
	return json.Marshal(seedJSON{Algorithm: s.alg.String(), Value: s.value})
}

// UnmarshalJSON decodes and validates a seed produced by MarshalJSON.
func (s *Seed) UnmarshalJSON(data []byte) error {
	var raw seedJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	alg, err := ParseAlgorithm(raw.Algorithm)
	if err != nil {
		return err
	}
	decoded, err := SeedOf(alg, raw.Value)
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}
