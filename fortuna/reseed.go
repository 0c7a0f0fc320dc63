package fortuna

import (
	"time"

	"github.com/safing/portrng/crypto/hash"
)

const (
	// MinPoolSize is the amount of bytes pool 0 must hold before a reseed.
	MinPoolSize = 64
	// MinReseedInterval is the minimum time between two reseeds.
	MinReseedInterval = 100 * time.Millisecond
)

var powersOfTwo = func() (table [NumPools]uint64) {
	for i := range table {
		table[i] = 1 << i
	}
	return table
}()

// reseedPools returns the indices of the pools that are harvested for the given reseed.
func reseedPools(reseedCount uint64) []int {
	pools := make([]int, 0, NumPools)
	for p, power := range powersOfTwo {
		if reseedCount%power != 0 {
			// all higher powers are multiples of this one
			break
		}
		pools = append(pools, p)
	}
	return pools
}

// maybeReseed reseeds the generator if pool 0 holds enough entropy and the last reseed was long enough ago.
// Must be called with the instance lock held.
func (f *Fortuna) maybeReseed() error {
	if f.acc.Pool(0).Size() < MinPoolSize {
		return nil
	}
	now := f.clock()
	if !f.lastReseed.IsZero() && now.Sub(f.lastReseed) < MinReseedInterval {
		return nil
	}

	f.reseedCount++
	f.lastReseed = now

	pools := reseedPools(f.reseedCount)
	seed := make([]byte, 0, len(pools)*hash.DigestSize)
	for _, p := range pools {
		digest := f.acc.Pool(p).GetAndClear()
		seed = append(seed, digest[:]...)
	}
	defer wipe(seed)

	if err := f.generator.Reseed(seed); err != nil {
		return err
	}
	reseedCounter.Inc()
	return nil
}
