package fortuna

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chunkRefiller struct {
	chunks [][]byte
	calls  int
	err    error
}

func (r *chunkRefiller) refill() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	chunk := r.chunks[r.calls%len(r.chunks)]
	r.calls++
	// hand out a copy, as the buffer wipes used bytes
	return append([]byte(nil), chunk...), nil
}

func TestBufferNext(t *testing.T) {
	t.Parallel()

	r := &chunkRefiller{chunks: [][]byte{{0xAB, 0xCD, 0xEF, 0x01}}}
	b := &RandomDataBuffer{}

	v, err := b.Next(8, r.refill)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xAB), v)
	assert.Equal(t, 1, r.calls)

	// whole bytes are consumed, only the low bits are kept
	v, err = b.Next(4, r.refill)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xD), v)

	v, err = b.Next(16, r.refill)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xEF01), v)
	assert.Equal(t, 0, b.Buffered())
	assert.Equal(t, 1, r.calls)

	// spans a refill
	v, err = b.Next(32, r.refill)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xABCDEF01), v)
	assert.Equal(t, 2, r.calls)

	_, err = b.Next(0, r.refill)
	assert.True(t, errors.Is(err, ErrInvalidBitCount))
}

func TestBufferRead(t *testing.T) {
	t.Parallel()

	r := &chunkRefiller{chunks: [][]byte{{1, 2, 3}, {4, 5}}}
	b := &RandomDataBuffer{}

	p := make([]byte, 4)
	n, err := b.Read(p, r.refill)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte{1, 2, 3, 4}, p)
	assert.Equal(t, 1, b.Buffered())

	p = make([]byte, 2)
	n, err = b.Read(p, r.refill)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte{5, 1}, p)
	assert.Equal(t, 3, r.calls)
}

func TestBufferWipesUsedBytes(t *testing.T) {
	t.Parallel()

	chunk := []byte{9, 9, 9, 9}
	b := &RandomDataBuffer{}
	refill := func() ([]byte, error) {
		return chunk, nil
	}

	_, err := b.Next(16, refill)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 9, 9}, chunk)

	_, err = b.Read(make([]byte, 2), refill)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0}, chunk)
}

func TestBufferRefillError(t *testing.T) {
	t.Parallel()

	failure := errors.New("no data")
	b := &RandomDataBuffer{}

	_, err := b.Next(8, (&chunkRefiller{err: failure}).refill)
	assert.True(t, errors.Is(err, failure))

	n, err := b.Read(make([]byte, 8), (&chunkRefiller{err: failure}).refill)
	assert.True(t, errors.Is(err, failure))
	assert.Equal(t, 0, n)

	_, err = b.Next(8, func() ([]byte, error) { return nil, nil })
	assert.Error(t, err)
}
