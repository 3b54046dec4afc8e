package dice_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/Gzeu/cosmic-legends-server/internal/game/dice"
)

func TestCryptoSource_Bounds(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(10)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 10)
	}
}

func TestCryptoSource_PanicsOnNonPositive(t *testing.T) {
	src := dice.NewCryptoSource()
	assert.Panics(t, func() { src.Intn(0) })
	assert.Panics(t, func() { src.Intn(-5) })
}

func TestSequenceSource_ReplaysAndWraps(t *testing.T) {
	src := dice.NewSequenceSource(3, 7, 11)
	assert.Equal(t, 3, src.Intn(100))
	assert.Equal(t, 7, src.Intn(100))
	assert.Equal(t, 11, src.Intn(100))
	assert.Equal(t, 3, src.Intn(100)) // wraps
}

func TestFloat_InUnitInterval(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		f := dice.Float(src)
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}

func TestChance_Extremes(t *testing.T) {
	src := dice.NewCryptoSource()
	assert.False(t, dice.Chance(src, 0))
	assert.False(t, dice.Chance(src, -10))
	assert.True(t, dice.Chance(src, 100))
	assert.True(t, dice.Chance(src, 150))
}

func TestVariance_Property_WithinSpread(t *testing.T) {
	src := dice.NewCryptoSource()
	rapid.Check(t, func(rt *rapid.T) {
		spread := rapid.Float64Range(0, 0.5).Draw(rt, "spread")
		v := dice.Variance(src, spread)
		assert.GreaterOrEqual(rt, v, 1-spread)
		assert.Less(rt, v, 1+spread+1e-9)
	})
}

func TestBetween_Property_Inclusive(t *testing.T) {
	src := dice.NewCryptoSource()
	rapid.Check(t, func(rt *rapid.T) {
		low := rapid.IntRange(-50, 50).Draw(rt, "low")
		high := rapid.IntRange(low, low+100).Draw(rt, "high")
		v := dice.Between(src, low, high)
		assert.GreaterOrEqual(rt, v, low)
		assert.LessOrEqual(rt, v, high)
	})
}

func TestPick_SingleElement(t *testing.T) {
	src := dice.NewCryptoSource()
	assert.Equal(t, "only", dice.Pick(src, []string{"only"}))
}

func TestShuffle_IsPermutation(t *testing.T) {
	src := dice.NewCryptoSource()
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 30).Draw(rt, "n")
		in := make([]int, n)
		for i := range in {
			in[i] = i
		}
		out := dice.Shuffle(src, in)
		require.Len(rt, out, n)
		sorted := make([]int, n)
		copy(sorted, out)
		sort.Ints(sorted)
		assert.Equal(rt, in, sorted)
	})
}

func TestShuffle_DoesNotMutateInput(t *testing.T) {
	src := dice.NewSequenceSource(0, 0, 0, 0)
	in := []string{"a", "b", "c", "d"}
	_ = dice.Shuffle(src, in)
	assert.Equal(t, []string{"a", "b", "c", "d"}, in)
}
