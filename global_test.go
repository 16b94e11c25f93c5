package entropy

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderInitCreatesGlobals(t *testing.T) {
	w, err := NewBuilder().
		AlgorithmSeeded(ChaCha8, testSeed(ChaCha8, 1)).
		Algorithm(PCG32).
		Logger(slog.Default()).
		Init()
	require.NoError(t, err)

	for _, alg := range []Algorithm{ChaCha8, PCG32} {
		e, err := w.GlobalEntity(alg)
		require.NoError(t, err)
		assert.True(t, Has[Global](w, e))
		assert.NotNil(t, Get[Generator](w, e))
	}

	seed, err := GlobalSeed(w, ChaCha8)
	require.NoError(t, err)
	assert.Equal(t, testSeed(ChaCha8, 1), seed.Bytes())
}

func TestBuilderInitRejectsBadSeed(t *testing.T) {
	_, err := NewBuilder().
		AlgorithmSeeded(ChaCha8, []byte{1, 2, 3}).
		Init()
	var sizeErr *SeedSizeError
	require.ErrorAs(t, err, &sizeErr)
}

func TestInitGlobalIsIdempotent(t *testing.T) {
	w, err := NewBuilder().AlgorithmSeeded(PCG64, testSeed(PCG64, 5)).Init()
	require.NoError(t, err)

	first, err := w.GlobalEntity(PCG64)
	require.NoError(t, err)

	again, err := w.InitGlobal(PCG64, nil)
	require.NoError(t, err)
	assert.Equal(t, first, again, "re-initialising must not create a second Global")

	// The original seed was not disturbed.
	seed, err := GlobalSeed(w, PCG64)
	require.NoError(t, err)
	assert.Equal(t, testSeed(PCG64, 5), seed.Bytes())
}

func TestUnresolvedGlobalMissing(t *testing.T) {
	w, err := NewBuilder().Init()
	require.NoError(t, err)

	_, err = w.GlobalEntity(ChaCha8)
	var unresolved *UnresolvedGlobalError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, 0, unresolved.Matches)
	assert.Equal(t, ChaCha8, unresolved.Algorithm)
}

func TestUnresolvedGlobalDuplicate(t *testing.T) {
	w, err := NewBuilder().AlgorithmSeeded(ChaCha8, testSeed(ChaCha8, 1)).Init()
	require.NoError(t, err)

	// Violate the invariant by hand: a second marked entity of the same
	// algorithm.
	rogue := w.Spawn()
	Add(w, rogue, &Global{})
	seed, _ := SeedOf(ChaCha8, testSeed(ChaCha8, 2))
	require.NoError(t, ApplySeed(w, rogue, seed))

	_, err = w.GlobalEntity(ChaCha8)
	var unresolved *UnresolvedGlobalError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, 2, unresolved.Matches)
}

func TestGlobalReseedAffectsLaterForks(t *testing.T) {
	w, err := NewBuilder().AlgorithmSeeded(ChaCha8, testSeed(ChaCha8, 2)).Init()
	require.NoError(t, err)
	global, err := w.GlobalEntity(ChaCha8)
	require.NoError(t, err)

	before := Get[Generator](w, global).ForkSeed()

	require.NoError(t, w.Rng(global).Reseed(Explicit(testSeed(ChaCha8, 3))))
	after := Get[Generator](w, global).ForkSeed()

	assert.False(t, before.Equal(after))
}
