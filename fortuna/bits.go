package fortuna

// BitSource produces random bits.
type BitSource interface {
	// Next returns a value with its lowest bits set randomly, bits must be between 1 and 32.
	Next(bits int) (uint32, error)
}

// Uint32 returns a random uint32.
func Uint32(s BitSource) (uint32, error) {
	return s.Next(32)
}

// Int31 returns a non-negative random int32.
func Int31(s BitSource) (int32, error) {
	v, err := s.Next(31)
	return int32(v), err
}

// Uint64 returns a random uint64.
func Uint64(s BitSource) (uint64, error) {
	hi, err := s.Next(32)
	if err != nil {
		return 0, err
	}
	lo, err := s.Next(32)
	if err != nil {
		return 0, err
	}
	return uint64(hi)<<32 | uint64(lo), nil
}

// Int63 returns a non-negative random int64.
func Int63(s BitSource) (int64, error) {
	v, err := Uint64(s)
	return int64(v >> 1), err
}

// Intn returns a uniformly distributed random int in [0, n). It panics if n <= 0.
func Intn(s BitSource, n int) (int, error) {
	if n <= 0 {
		panic("invalid argument to Intn")
	}
	if n > 1<<31-1 {
		v, err := Int63n(s, int64(n))
		return int(v), err
	}

	bound := int32(n)
	// powers of two can use the high bits directly
	if bound&(bound-1) == 0 {
		v, err := s.Next(31)
		if err != nil {
			return 0, err
		}
		return int((int64(bound) * int64(v)) >> 31), nil
	}

	for {
		v, err := Int31(s)
		if err != nil {
			return 0, err
		}
		val := v % bound
		// reject values from the last incomplete range, detected by overflow
		if v-val+(bound-1) >= 0 {
			return int(val), nil
		}
	}
}

// Int63n returns a uniformly distributed random int64 in [0, n). It panics if n <= 0.
func Int63n(s BitSource, n int64) (int64, error) {
	if n <= 0 {
		panic("invalid argument to Int63n")
	}
	if n&(n-1) == 0 {
		v, err := Int63(s)
		return v & (n - 1), err
	}

	limit := int64((1 << 63) - 1 - (1<<63)%uint64(n))
	for {
		v, err := Int63(s)
		if err != nil {
			return 0, err
		}
		if v <= limit {
			return v % n, nil
		}
	}
}

// Float64 returns a random float64 in [0.0, 1.0).
func Float64(s BitSource) (float64, error) {
	hi, err := s.Next(26)
	if err != nil {
		return 0, err
	}
	lo, err := s.Next(27)
	if err != nil {
		return 0, err
	}
	return float64(uint64(hi)<<27|uint64(lo)) / (1 << 53), nil
}

// Float32 returns a random float32 in [0.0, 1.0).
func Float32(s BitSource) (float32, error) {
	v, err := s.Next(24)
	if err != nil {
		return 0, err
	}
	return float32(v) / (1 << 24), nil
}

// Bool returns a random bool.
func Bool(s BitSource) (bool, error) {
	v, err := s.Next(1)
	return v == 1, err
}

// Fill fills p with random bytes.
func Fill(s BitSource, p []byte) error {
	for i := 0; i < len(p); {
		v, err := s.Next(32)
		if err != nil {
			return err
		}
		for j := 0; j < 4 && i < len(p); j++ {
			p[i] = byte(v)
			v >>= 8
			i++
		}
	}
	return nil
}
