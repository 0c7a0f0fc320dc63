package fortuna

import (
	"crypto/aes"
	"crypto/sha256"
	"errors"
	"testing"

	"github.com/aead/serpent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorNotReady(t *testing.T) {
	t.Parallel()

	g := NewGenerator(nil)
	assert.False(t, g.Seeded())

	data, err := g.PseudoRandomData(16)
	assert.True(t, errors.Is(err, ErrNotReady))
	assert.Nil(t, data, "no partial output before seeding")
}

func TestGeneratorKnownAnswer(t *testing.T) {
	t.Parallel()

	seed := []byte("fortuna known answer seed")
	first := sha256.Sum256(seed)
	key := sha256.Sum256(first[:])
	block, err := aes.NewCipher(key[:])
	require.NoError(t, err)

	encryptCounter := func(n byte) []byte {
		counter := make([]byte, BlockSize)
		counter[BlockSize-1] = n
		out := make([]byte, BlockSize)
		block.Encrypt(out, counter)
		return out
	}

	g := NewGenerator(nil)
	require.NoError(t, g.Reseed(seed))
	assert.True(t, g.Seeded())
	assert.Equal(t, key, g.key)
	assert.Equal(t, initialCounter(), g.counter)

	data, err := g.PseudoRandomData(20)
	require.NoError(t, err)
	expected := append(encryptCounter(1), encryptCounter(2)...)
	assert.Equal(t, expected[:20], data)

	// key and counter are replaced by the following three blocks
	var nextKey [KeySize]byte
	copy(nextKey[:], append(encryptCounter(3), encryptCounter(4)...))
	var nextCounter [BlockSize]byte
	copy(nextCounter[:], encryptCounter(5))
	assert.Equal(t, nextKey, g.key)
	assert.Equal(t, nextCounter, g.counter)
}

func TestGeneratorReseedChainsKey(t *testing.T) {
	t.Parallel()

	g := NewGenerator(nil)
	require.NoError(t, g.Reseed([]byte("first seed")))
	oldKey := g.key

	seed := []byte("second seed")
	first := sha256.Sum256(append(oldKey[:], seed...))
	expected := sha256.Sum256(first[:])

	require.NoError(t, g.Reseed(seed))
	assert.Equal(t, expected, g.key, "key must be sha256d(old key || seed)")
	assert.Equal(t, initialCounter(), g.counter)
}

func TestGeneratorRekey(t *testing.T) {
	t.Parallel()

	g := NewGenerator(nil)
	require.NoError(t, g.Reseed([]byte("seed")))

	seen := make(map[[KeySize]byte]struct{})
	var last []byte
	for i := 0; i < 100; i++ {
		key := g.key
		_, ok := seen[key]
		assert.False(t, ok, "key used twice")
		seen[key] = struct{}{}

		data, err := g.PseudoRandomData(32)
		require.NoError(t, err)
		assert.NotEqual(t, last, data)
		assert.NotEqual(t, key, g.key, "key must change after every request")
		last = data
	}

	// reseeding mixes in the previous key
	a := NewGenerator(nil)
	b := NewGenerator(nil)
	require.NoError(t, a.Reseed([]byte("one")))
	require.NoError(t, a.Reseed([]byte("two")))
	require.NoError(t, b.Reseed([]byte("two")))
	assert.NotEqual(t, a.key, b.key)
}

func TestGeneratorRequestSize(t *testing.T) {
	t.Parallel()

	g := NewGenerator(nil)
	require.NoError(t, g.Reseed([]byte("seed")))

	key := g.key
	data, err := g.PseudoRandomData(0)
	require.NoError(t, err)
	assert.Empty(t, data)
	assert.Equal(t, key, g.key, "empty request must not touch state")

	_, err = g.PseudoRandomData(MaxRequestSize + 1)
	assert.True(t, errors.Is(err, ErrRequestTooLarge))

	data, err = g.PseudoRandomData(MaxRequestSize)
	require.NoError(t, err)
	assert.Len(t, data, MaxRequestSize)
}

func TestGeneratorSerpent(t *testing.T) {
	t.Parallel()

	aesGen := NewGenerator(nil)
	serpentGen := NewGenerator(serpent.NewCipher)
	require.NoError(t, aesGen.Reseed([]byte("seed")))
	require.NoError(t, serpentGen.Reseed([]byte("seed")))
	assert.Equal(t, aesGen.key, serpentGen.key)

	aesData, err := aesGen.PseudoRandomData(64)
	require.NoError(t, err)
	serpentData, err := serpentGen.PseudoRandomData(64)
	require.NoError(t, err)
	assert.Len(t, serpentData, 64)
	assert.NotEqual(t, aesData, serpentData)
}

func TestIncrementCounter(t *testing.T) {
	t.Parallel()

	counter := initialCounter()
	incrementCounter(&counter)
	assert.Equal(t, byte(2), counter[BlockSize-1])

	counter = [BlockSize]byte{}
	counter[BlockSize-1] = 0xff
	counter[BlockSize-2] = 0xff
	incrementCounter(&counter)
	assert.Equal(t, [BlockSize]byte{13: 1}, counter)

	// wraps around
	for i := range counter {
		counter[i] = 0xff
	}
	incrementCounter(&counter)
	assert.Equal(t, [BlockSize]byte{}, counter)
}
