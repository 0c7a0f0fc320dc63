package fortuna

import (
	gohash "hash"
	"sync"
	"sync/atomic"

	"github.com/safing/portrng/crypto/hash"
)

// NumPools is the number of entropy pools.
const NumPools = 32

// Pool accumulates entropy events into a running digest.
type Pool struct {
	lock   sync.Mutex
	alg    hash.Algorithm
	digest gohash.Hash
	size   atomic.Int64
}

func newPool(alg hash.Algorithm) *Pool {
	return &Pool{
		alg:    alg,
		digest: alg.New(),
	}
}

// Add folds the event into the pool.
func (p *Pool) Add(event []byte) {
	p.lock.Lock()
	defer p.lock.Unlock()

	_, _ = p.digest.Write(event)
	p.size.Add(int64(len(event)))
}

// Size returns the amount of bytes added since the last clear.
func (p *Pool) Size() int64 {
	return p.size.Load()
}

// GetAndClear returns the digest of all events added since the last clear and resets the pool.
func (p *Pool) GetAndClear() [hash.DigestSize]byte {
	sum, _ := p.drain()
	return sum
}

// drain returns the digest and size of the pool and clears it.
func (p *Pool) drain() (sum [hash.DigestSize]byte, size int64) {
	p.lock.Lock()
	defer p.lock.Unlock()

	// pool digests are hashed twice
	var inner [hash.DigestSize]byte
	p.digest.Sum(inner[:0])
	sum = p.alg.Sum(inner[:])

	p.digest.Reset()
	size = p.size.Swap(0)
	return sum, size
}
