package entropy

import (
	cryptorand "crypto/rand"
	"fmt"
	randv2 "math/rand/v2"
	"sync"
)

// userStream is a process-wide user-space entropy source: a ChaCha8
// stream keyed once from the OS. Drawing from it is much cheaper than
// hitting the OS source for every randomised seed, while remaining
// non-reproducible across processes.
var userStream struct {
	once sync.Once
	mu   sync.Mutex
	rng  *randv2.ChaCha8
}

func localEntropy(p []byte) {
	userStream.once.Do(func() {
		var key [32]byte
		if _, err := cryptorand.Read(key[:]); err != nil {
			panic("entropy: unable to source os entropy for the user-space stream: " + err.Error())
		}
		userStream.rng = randv2.NewChaCha8(key)
	})
	userStream.mu.Lock()
	_, _ = userStream.rng.Read(p)
	userStream.mu.Unlock()
}

func osEntropy(p []byte) error {
	if _, err := cryptorand.Read(p); err != nil {
		return fmt.Errorf("entropy: reading os entropy: %w", err)
	}
	return nil
}
