package fortuna

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/seehuhn/sha256d"
)

const (
	// KeySize is the size of the generator key in bytes.
	KeySize = 32
	// BlockSize is the block size of the generator cipher in bytes, which is also the size of the counter.
	BlockSize = 16
	// MaxRequestSize is the maximum amount of bytes a Generator returns per request.
	MaxRequestSize = 1 << 20
)

// CipherFunc creates a block cipher from a 32 byte key. The cipher must have a block size of 16 bytes.
type CipherFunc func(key []byte) (cipher.Block, error)

// Generator produces pseudo random data by running a block cipher in counter mode.
// It is not safe for concurrent use.
type Generator struct {
	newCipher CipherFunc

	key     [KeySize]byte
	counter [BlockSize]byte
	block   cipher.Block
	seeded  bool
}

// NewGenerator returns an unseeded generator using the given cipher, AES-256 if nil.
func NewGenerator(newCipher CipherFunc) *Generator {
	if newCipher == nil {
		newCipher = aes.NewCipher
	}
	return &Generator{
		newCipher: newCipher,
	}
}

// Seeded returns whether the generator was reseeded at least once.
func (g *Generator) Seeded() bool {
	return g.seeded
}

// Reseed mixes the seed into the key and resets the counter.
func (g *Generator) Reseed(seed []byte) error {
	h := sha256d.New()
	if g.seeded {
		_, _ = h.Write(g.key[:])
	}
	_, _ = h.Write(seed)

	var newKey [KeySize]byte
	h.Sum(newKey[:0])

	if err := g.rekey(newKey, initialCounter()); err != nil {
		return err
	}
	g.seeded = true
	return nil
}

// PseudoRandomData returns n pseudo random bytes and then replaces the key and counter.
func (g *Generator) PseudoRandomData(n int) ([]byte, error) {
	switch {
	case !g.seeded:
		return nil, ErrNotReady
	case n < 0:
		return nil, fmt.Errorf("fortuna: invalid request size %d", n)
	case n > MaxRequestSize:
		return nil, ErrRequestTooLarge
	case n == 0:
		return []byte{}, nil
	}

	data := g.generateBlocks(n)

	// derive next key and counter from further output
	next := g.generateBlocks(KeySize + BlockSize)
	var key [KeySize]byte
	var counter [BlockSize]byte
	copy(key[:], next[:KeySize])
	copy(counter[:], next[KeySize:])
	wipe(next)

	if err := g.rekey(key, counter); err != nil {
		// cannot happen with a cipher that accepted a key of the same size before
		wipe(data)
		return nil, err
	}
	return data, nil
}

func (g *Generator) rekey(key [KeySize]byte, counter [BlockSize]byte) error {
	block, err := g.newCipher(key[:])
	if err != nil {
		return fmt.Errorf("fortuna: failed to create cipher: %w", err)
	}
	if block.BlockSize() != BlockSize {
		return fmt.Errorf("fortuna: cipher has a block size of %d bytes, expected %d", block.BlockSize(), BlockSize)
	}

	g.key = key
	g.counter = counter
	g.block = block
	return nil
}

// generateBlocks encrypts successive counter values and returns the first n bytes.
func (g *Generator) generateBlocks(n int) []byte {
	blocks := (n + BlockSize - 1) / BlockSize
	out := make([]byte, blocks*BlockSize)
	for i := 0; i < blocks; i++ {
		g.block.Encrypt(out[i*BlockSize:], g.counter[:])
		incrementCounter(&g.counter)
	}
	return out[:n]
}

func initialCounter() (counter [BlockSize]byte) {
	counter[BlockSize-1] = 1
	return counter
}

// incrementCounter increments the big endian 128 bit counter.
func incrementCounter(counter *[BlockSize]byte) {
	for i := BlockSize - 1; i >= 0; i-- {
		counter[i]++
		if counter[i] != 0 {
			return
		}
	}
}

func wipe(data []byte) {
	for i := range data {
		data[i] = 0
	}
}
