package entropy

import (
	"encoding/binary"
	"fmt"
	randv2 "math/rand/v2"

	"github.com/dgryski/go-pcgr"
)

// pcg64Stream wraps math/rand/v2's 128-bit state PCG generator. Its seed
// is two little-endian uint64 words.
type pcg64Stream struct {
	rng *randv2.PCG
}

func newPCG64Stream(seed []byte) *pcg64Stream {
	hi := binary.LittleEndian.Uint64(seed[:8])
	lo := binary.LittleEndian.Uint64(seed[8:16])
	return &pcg64Stream{rng: randv2.NewPCG(hi, lo)}
}

func restorePCG64Stream(snapshot []byte) (*pcg64Stream, error) {
	rng := randv2.NewPCG(0, 0)
	if err := rng.UnmarshalBinary(snapshot); err != nil {
		return nil, fmt.Errorf("entropy: restoring pcg64 state: %w", err)
	}
	return &pcg64Stream{rng: rng}, nil
}

func (s *pcg64Stream) fill(p []byte) {
	fillUint64(p, s.rng.Uint64)
}

func (s *pcg64Stream) state() ([]byte, error) {
	return s.rng.MarshalBinary()
}

// pcg32Stream wraps dgryski/go-pcgr. The seed is the initial state word
// followed by the stream-selector word, both little-endian. The Rand
// struct exposes its whole state, so snapshots are those two words of the
// live state.
type pcg32Stream struct {
	rng pcgr.Rand
}

func newPCG32Stream(seed []byte) *pcg32Stream {
	state := binary.LittleEndian.Uint64(seed[:8])
	inc := binary.LittleEndian.Uint64(seed[8:16])
	// The increment must be odd for the generator to achieve its full
	// period; force the low bit the same way pcgr.New does.
	return &pcg32Stream{rng: pcgr.Rand{State: state, Inc: inc | 1}}
}

func restorePCG32Stream(snapshot []byte) (*pcg32Stream, error) {
	if len(snapshot) != 16 {
		return nil, fmt.Errorf("entropy: pcg32 snapshot must be 16 bytes, got %d", len(snapshot))
	}
	return &pcg32Stream{rng: pcgr.Rand{
		State: binary.LittleEndian.Uint64(snapshot[:8]),
		Inc:   binary.LittleEndian.Uint64(snapshot[8:16]),
	}}, nil
}

func (s *pcg32Stream) fill(p []byte) {
	fillUint32(p, s.rng.Next)
}

func (s *pcg32Stream) state() ([]byte, error) {
	snapshot := make([]byte, 16)
	binary.LittleEndian.PutUint64(snapshot[:8], s.rng.State)
	binary.LittleEndian.PutUint64(snapshot[8:16], s.rng.Inc)
	return snapshot, nil
}

// fillUint64 fills p from a 64-bit word source, little-endian. A partial
// trailing word still consumes a full draw so that output position maps
// one-to-one onto generator advancement.
func fillUint64(p []byte, next func() uint64) {
	for len(p) >= 8 {
		binary.LittleEndian.PutUint64(p, next())
		p = p[8:]
	}
	if len(p) > 0 {
		var tail [8]byte
		binary.LittleEndian.PutUint64(tail[:], next())
		copy(p, tail[:])
	}
}

// fillUint32 fills p from a 32-bit word source, little-endian.
func fillUint32(p []byte, next func() uint32) {
	for len(p) >= 4 {
		binary.LittleEndian.PutUint32(p, next())
		p = p[4:]
	}
	if len(p) > 0 {
		var tail [4]byte
		binary.LittleEndian.PutUint32(tail[:], next())
		copy(p, tail[:])
	}
}
