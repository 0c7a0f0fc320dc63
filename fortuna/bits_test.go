package fortuna

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// xorshiftSource is a deterministic BitSource for testing derived values.
type xorshiftSource struct {
	state uint64
}

func (s *xorshiftSource) Next(bits int) (uint32, error) {
	s.state ^= s.state << 13
	s.state ^= s.state >> 7
	s.state ^= s.state << 17
	return uint32(s.state >> (64 - bits)), nil
}

func TestDerivedValues(t *testing.T) {
	t.Parallel()

	s := &xorshiftSource{state: 0x9E3779B97F4A7C15}

	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v, err := Intn(s, 7)
		require.NoError(t, err)
		assert.True(t, v >= 0 && v < 7)
		seen[v] = true

		v, err = Intn(s, 16)
		require.NoError(t, err)
		assert.True(t, v >= 0 && v < 16)

		v64, err := Int63n(s, 1000)
		require.NoError(t, err)
		assert.True(t, v64 >= 0 && v64 < 1000)

		v64, err = Int63n(s, 1<<40)
		require.NoError(t, err)
		assert.True(t, v64 >= 0 && v64 < 1<<40)

		v31, err := Int31(s)
		require.NoError(t, err)
		assert.True(t, v31 >= 0)

		v63, err := Int63(s)
		require.NoError(t, err)
		assert.True(t, v63 >= 0)

		f, err := Float64(s)
		require.NoError(t, err)
		assert.True(t, f >= 0 && f < 1)

		f32, err := Float32(s)
		require.NoError(t, err)
		assert.True(t, f32 >= 0 && f32 < 1)
	}
	assert.Len(t, seen, 7, "all values should show up")

	assert.Panics(t, func() { _, _ = Intn(s, 0) })
	assert.Panics(t, func() { _, _ = Int63n(s, -1) })
}

func TestBoolAndFill(t *testing.T) {
	t.Parallel()

	s := &xorshiftSource{state: 42}

	trues := 0
	for i := 0; i < 1000; i++ {
		b, err := Bool(s)
		require.NoError(t, err)
		if b {
			trues++
		}
	}
	assert.True(t, trues > 100 && trues < 900)

	p := make([]byte, 7)
	require.NoError(t, Fill(s, p))
	assert.NotEqual(t, make([]byte, 7), p)

	u, err := Uint64(s)
	require.NoError(t, err)
	assert.NotZero(t, u)
	_, err = Uint32(s)
	require.NoError(t, err)
}
