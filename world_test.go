package entropy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type health struct {
	points int
}

func TestComponentAddGetRemove(t *testing.T) {
	w := NewWorld()
	e := w.Spawn()

	require.True(t, w.Alive(e))
	assert.Nil(t, Get[health](w, e))
	assert.False(t, Has[health](w, e))

	Add(w, e, &health{points: 10})
	require.True(t, Has[health](w, e))
	assert.Equal(t, 10, Get[health](w, e).points)

	// Replacement swaps the stored component wholesale.
	Add(w, e, &health{points: 3})
	assert.Equal(t, 3, Get[health](w, e).points)

	Remove[health](w, e)
	assert.False(t, Has[health](w, e))
	assert.Nil(t, Get[health](w, e))
}

func TestDespawnDetachesComponents(t *testing.T) {
	w := NewWorld()
	e := w.Spawn()
	Add(w, e, &health{points: 1})

	w.Despawn(e)
	assert.False(t, w.Alive(e))
	assert.Nil(t, Get[health](w, e))

	// Operations on the dead handle are no-ops, never panics.
	Add(w, e, &health{points: 2})
	assert.Nil(t, Get[health](w, e))
	w.Despawn(e)
}

func TestSeedAttachInstallsGenerator(t *testing.T) {
	w := NewWorld()
	e := w.Spawn()

	seed, err := SeedOf(ChaCha8, testSeed(ChaCha8, 2))
	require.NoError(t, err)
	require.NoError(t, ApplySeed(w, e, seed))

	gen := Get[Generator](w, e)
	require.NotNil(t, gen, "installing a seed must install its generator")
	assert.Equal(t, ChaCha8, gen.Algorithm())
	assert.True(t, seed.Equal(*Get[Seed](w, e)))
	assert.True(t, seed.Equal(gen.Seed()))
}

func TestReseedReplacesSeedAndStateTogether(t *testing.T) {
	w := NewWorld()
	e := w.Spawn()

	first, _ := SeedOf(PCG64, testSeed(PCG64, 1))
	require.NoError(t, ApplySeed(w, e, first))
	Get[Generator](w, e).Uint64() // advance away from the initial state

	second, _ := SeedOf(PCG64, testSeed(PCG64, 2))
	require.NoError(t, ApplySeed(w, e, second))

	gen := Get[Generator](w, e)
	assert.True(t, second.Equal(gen.Seed()))

	// The stream was rebuilt from the new seed, not patched: it matches a
	// fresh generator from the same bytes.
	fresh := second.generator()
	for i := 0; i < 8; i++ {
		require.Equal(t, fresh.Uint64(), gen.Uint64())
	}
}

func TestRemovingSeedRemovesGenerator(t *testing.T) {
	w := NewWorld()
	e := w.Spawn()

	seed, _ := SeedOf(PCG32, testSeed(PCG32, 4))
	require.NoError(t, ApplySeed(w, e, seed))
	require.NotNil(t, Get[Generator](w, e))

	Remove[Seed](w, e)
	assert.Nil(t, Get[Generator](w, e))
}

func TestApplySeedOnDeadEntity(t *testing.T) {
	w := NewWorld()
	e := w.Spawn()
	w.Despawn(e)

	seed, _ := SeedOf(ChaCha8, testSeed(ChaCha8, 1))
	assert.ErrorIs(t, ApplySeed(w, e, seed), ErrDespawned)
}

func TestQueryOrderIsStable(t *testing.T) {
	w := NewWorld()
	for i := 0; i < 8; i++ {
		Add(w, w.Spawn(), &health{points: i})
	}
	first := Query[health](w)
	second := Query[health](w)
	require.Len(t, first, 8)
	assert.Equal(t, first, second)
}

func TestObserverDispatch(t *testing.T) {
	w := NewWorld()
	e := w.Spawn()

	var got []Entity
	Observe(w, func(w *World, e Entity, ev Linked) error {
		got = append(got, e)
		return nil
	})

	require.NoError(t, w.Trigger(e, Linked{}))
	require.Len(t, got, 1)
	assert.Equal(t, e, got[0])

	// Untyped events with no observers are fine.
	assert.NoError(t, w.Trigger(e, struct{ x int }{}))
}
