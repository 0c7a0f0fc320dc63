package fortuna

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPowersOfTwo(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint64(1), powersOfTwo[0])
	assert.Equal(t, uint64(2), powersOfTwo[1])
	assert.Equal(t, uint64(1<<31), powersOfTwo[31])
}

func TestReseedPools(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []int{0}, reseedPools(1))
	assert.Equal(t, []int{0, 1}, reseedPools(2))
	assert.Equal(t, []int{0}, reseedPools(3))
	assert.Equal(t, []int{0, 1, 2}, reseedPools(4))
	assert.Equal(t, []int{0, 1, 2, 3}, reseedPools(8))
	assert.Len(t, reseedPools(1<<31), NumPools)

	for k := uint64(1); k <= 4096; k++ {
		var expected []int
		for p := 0; p < NumPools; p++ {
			if k%(1<<p) == 0 {
				expected = append(expected, p)
			}
		}
		require.Equal(t, expected, reseedPools(k), "reseed %d", k)
	}
}

func TestReseedSchedule(t *testing.T) {
	t.Parallel()

	f, clock := newTestInstance()
	for k := uint64(1); k <= 16; k++ {
		fillPools(f.Accumulator(), MinPoolSize)
		clock.Advance(MinReseedInterval)

		_, err := f.Generate(1)
		require.NoError(t, err)
		require.Equal(t, k, f.ReseedCount())

		for p := 0; p < NumPools; p++ {
			harvested := f.Accumulator().Pool(p).Size() == 0
			assert.Equal(t, k%(1<<p) == 0, harvested, "reseed %d pool %d", k, p)
		}
		clearPools(f.Accumulator())
	}
}
