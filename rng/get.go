package rng

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/safing/portrng/fortuna"
)

// Reader provides a global instance to read from the RNG.
var Reader io.Reader = reader{}

type reader struct{}

// Read fills b with random data from the global generator.
func (r reader) Read(b []byte) (n int, err error) {
	return Read(b)
}

// Read fills b with random data from the global generator.
func Read(b []byte) (n int, err error) {
	instance := Instance()
	if instance == nil {
		return 0, ErrNotStarted
	}
	return instance.Read(b)
}

// Bytes returns n random bytes.
func Bytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := io.ReadFull(Reader, b)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Number returns a random number from 0 to (incl.) max.
func Number(max uint64) (uint64, error) {
	instance := Instance()
	if instance == nil {
		return 0, ErrNotStarted
	}

	if max == math.MaxUint64 {
		return fortuna.Uint64(instance)
	}
	if max <= math.MaxInt64-1 {
		n, err := fortuna.Int63n(instance, int64(max)+1)
		return uint64(n), err
	}

	// reject values above max
	for {
		b, err := Bytes(8)
		if err != nil {
			return 0, err
		}
		if n := binary.BigEndian.Uint64(b); n <= max {
			return n, nil
		}
	}
}

// Next returns a value with its lowest bits set randomly, see fortuna.BitSource.
func Next(bits int) (uint32, error) {
	instance := Instance()
	if instance == nil {
		return 0, ErrNotStarted
	}
	return instance.Next(bits)
}

// Bool returns a random bool.
func Bool() (bool, error) {
	instance := Instance()
	if instance == nil {
		return false, ErrNotStarted
	}
	return fortuna.Bool(instance)
}

// IsReady returns whether the global generator is available.
func IsReady() bool {
	return Instance() != nil
}
