package fortuna

import "errors"

var errEmptyRefill = errors.New("fortuna: refill returned no data")

// RefillFunc returns a fresh chunk of random data.
type RefillFunc func() ([]byte, error)

// RandomDataBuffer hands out random data from a chunk in small pieces.
// Every byte is used once, exhausted chunks are wiped and replaced via the refill function.
// It is not safe for concurrent use.
type RandomDataBuffer struct {
	buffer []byte
	pos    int
}

// Next returns a value with its lowest bits set randomly.
// Whole bytes are consumed, the remaining bits of the last byte are discarded.
func (b *RandomDataBuffer) Next(bits int, refill RefillFunc) (uint32, error) {
	if bits < 1 || bits > 32 {
		return 0, ErrInvalidBitCount
	}

	var value uint32
	for i := 0; i < (bits+7)/8; i++ {
		if err := b.ensure(refill); err != nil {
			return 0, err
		}
		value = value<<8 | uint32(b.buffer[b.pos])
		b.buffer[b.pos] = 0
		b.pos++
	}

	if bits < 32 {
		value &= 1<<bits - 1
	}
	return value, nil
}

// Read fills p with random data.
func (b *RandomDataBuffer) Read(p []byte, refill RefillFunc) (n int, err error) {
	for n < len(p) {
		if err := b.ensure(refill); err != nil {
			return n, err
		}
		copied := copy(p[n:], b.buffer[b.pos:])
		wipe(b.buffer[b.pos : b.pos+copied])
		b.pos += copied
		n += copied
	}
	return n, nil
}

// Buffered returns the amount of unused bytes.
func (b *RandomDataBuffer) Buffered() int {
	return len(b.buffer) - b.pos
}

func (b *RandomDataBuffer) ensure(refill RefillFunc) error {
	if b.pos < len(b.buffer) {
		return nil
	}

	b.buffer = nil
	b.pos = 0
	data, err := refill()
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return errEmptyRefill
	}
	b.buffer = data
	return nil
}
