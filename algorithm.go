package entropy

import (
	"fmt"
	"strings"
)

// Algorithm identifies one of the PRNG backends supported by this package.
// The set is closed: relation typing, cross-algorithm forking and the
// serialized generator layout all depend on every algorithm being known
// at compile time.
type Algorithm uint8

const (
	// ChaCha8 is the reduced-round ChaCha stream cipher generator from
	// math/rand/v2. A good default: fast, with strong statistical quality.
	ChaCha8 Algorithm = iota

	// ChaCha20 is the full-round ChaCha keystream from golang.org/x/crypto.
	// The strongest source in the set; prefer it as the root of a seed tree.
	ChaCha20

	// PCG32 is the 32-bit permuted congruential generator from
	// github.com/dgryski/go-pcgr. Small state, cheap to fork in bulk.
	PCG32

	// PCG64 is the 128-bit state PCG generator from math/rand/v2.
	PCG64

	algorithmCount
)

var algorithmNames = [algorithmCount]string{
	ChaCha8:  "chacha8",
	ChaCha20: "chacha20",
	PCG32:    "pcg32",
	PCG64:    "pcg64",
}

var algorithmSeedLens = [algorithmCount]int{
	ChaCha8:  32,
	ChaCha20: 32,
	PCG32:    16,
	PCG64:    16,
}

// String returns the canonical lowercase name of the algorithm.
func (a Algorithm) String() string {
	if !a.valid() {
		return fmt.Sprintf("algorithm(%d)", uint8(a))
	}
	return algorithmNames[a]
}

// SeedLen returns the number of seed bytes the algorithm consumes.
// Forking to a target algorithm always draws exactly this many bytes
// for the target, regardless of the parent's own seed width.
func (a Algorithm) SeedLen() int {
	if !a.valid() {
		return 0
	}
	return algorithmSeedLens[a]
}

func (a Algorithm) valid() bool {
	return a < algorithmCount
}

// ParseAlgorithm resolves a canonical algorithm name, as produced by
// Algorithm.String, back to its tag. Matching is case-insensitive.
func ParseAlgorithm(s string) (Algorithm, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for a, n := range algorithmNames {
		if n == name {
			return Algorithm(a), nil
		}
	}
	return 0, fmt.Errorf("entropy: unknown algorithm %q", s)
}

// stream is the capability set every backend provides: produce bytes and
// expose an opaque snapshot of the live state for persistence. Streams are
// never shared; exactly one Generator owns a stream at a time.
type stream interface {
	// fill overwrites p entirely with the next len(p) bytes of output,
	// advancing the stream.
	fill(p []byte)

	// state returns an opaque snapshot sufficient to resume the stream,
	// given the initial seed, at exactly this position.
	state() ([]byte, error)
}

// newStream constructs a fresh backend stream from seed. The seed must be
// exactly SeedLen bytes.
func (a Algorithm) newStream(seed []byte) (stream, error) {
	if err := a.checkSeed(seed); err != nil {
		return nil, err
	}
	switch a {
	case ChaCha8:
		return newChaCha8Stream(seed), nil
	case ChaCha20:
		return newChaCha20Stream(seed)
	case PCG32:
		return newPCG32Stream(seed), nil
	case PCG64:
		return newPCG64Stream(seed), nil
	default:
		return nil, fmt.Errorf("entropy: unknown algorithm %d", uint8(a))
	}
}

// restoreStream resumes a backend stream from a snapshot previously
// produced by stream.state. The seed is the generator's initial seed;
// backends that snapshot their full internal state ignore it.
func (a Algorithm) restoreStream(seed, snapshot []byte) (stream, error) {
	if err := a.checkSeed(seed); err != nil {
		return nil, err
	}
	switch a {
	case ChaCha8:
		return restoreChaCha8Stream(snapshot)
	case ChaCha20:
		return restoreChaCha20Stream(seed, snapshot)
	case PCG32:
		return restorePCG32Stream(snapshot)
	case PCG64:
		return restorePCG64Stream(snapshot)
	default:
		return nil, fmt.Errorf("entropy: unknown algorithm %d", uint8(a))
	}
}

func (a Algorithm) checkSeed(seed []byte) error {
	if !a.valid() {
		return fmt.Errorf("entropy: unknown algorithm %d", uint8(a))
	}
	if len(seed) != a.SeedLen() {
		return &SeedSizeError{Algorithm: a, Got: len(seed)}
	}
	return nil
}

// Algorithms returns all supported algorithm tags in declaration order.
func Algorithms() []Algorithm {
	out := make([]Algorithm, 0, algorithmCount)
	for a := Algorithm(0); a < algorithmCount; a++ {
		out = append(out, a)
	}
	return out
}
