package entropy

import (
	"encoding/binary"
	"fmt"
	randv2 "math/rand/v2"

	"golang.org/x/crypto/chacha20"
)

// chacha8Stream wraps math/rand/v2's ChaCha8 generator. The standard
// library type carries its own binary state codec, so snapshots are a
// straight MarshalBinary round trip.
type chacha8Stream struct {
	rng *randv2.ChaCha8
}

func newChaCha8Stream(seed []byte) *chacha8Stream {
	var key [32]byte
	copy(key[:], seed)
	return &chacha8Stream{rng: randv2.NewChaCha8(key)}
}

func restoreChaCha8Stream(snapshot []byte) (*chacha8Stream, error) {
	rng := randv2.NewChaCha8([32]byte{})
	if err := rng.UnmarshalBinary(snapshot); err != nil {
		return nil, fmt.Errorf("entropy: restoring chacha8 state: %w", err)
	}
	return &chacha8Stream{rng: rng}, nil
}

func (s *chacha8Stream) fill(p []byte) {
	// ChaCha8.Read always fills p fully and never fails.
	_, _ = s.rng.Read(p)
}

func (s *chacha8Stream) state() ([]byte, error) {
	return s.rng.MarshalBinary()
}

// chacha20Stream generates output by encrypting zeros with a full-round
// ChaCha20 keystream, keyed by the seed with an all-zero nonce. The
// snapshot is the count of bytes consumed; restoring replays the
// keystream past that point, so the seed itself is required to resume.
type chacha20Stream struct {
	cipher   *chacha20.Cipher
	consumed uint64
}

func newChaCha20Stream(seed []byte) (*chacha20Stream, error) {
	c, err := chacha20.NewUnauthenticatedCipher(seed, make([]byte, chacha20.NonceSize))
	if err != nil {
		return nil, fmt.Errorf("entropy: initialising chacha20 stream: %w", err)
	}
	return &chacha20Stream{cipher: c}, nil
}

func restoreChaCha20Stream(seed, snapshot []byte) (*chacha20Stream, error) {
	if len(snapshot) != 8 {
		return nil, fmt.Errorf("entropy: chacha20 snapshot must be 8 bytes, got %d", len(snapshot))
	}
	s, err := newChaCha20Stream(seed)
	if err != nil {
		return nil, err
	}
	remaining := binary.LittleEndian.Uint64(snapshot)
	scratch := make([]byte, 4096)
	for remaining > 0 {
		n := uint64(len(scratch))
		if remaining < n {
			n = remaining
		}
		s.fill(scratch[:n])
		remaining -= n
	}
	return s, nil
}

func (s *chacha20Stream) fill(p []byte) {
	clear(p)
	s.cipher.XORKeyStream(p, p)
	s.consumed += uint64(len(p))
}

func (s *chacha20Stream) state() ([]byte, error) {
	snapshot := make([]byte, 8)
	binary.LittleEndian.PutUint64(snapshot, s.consumed)
	return snapshot, nil
}
