/*
Package fortuna implements the Fortuna cryptographically secure pseudo random number generator.

Entropy sources are registered with an Accumulator, which invokes them on a bounded worker pool and spreads their events across 32 pools in round-robin order.
A Fortuna instance reseeds its Generator from those pools following the exponential pool schedule, at most every 100ms and only once pool 0 holds at least 64 bytes.
The Generator runs a block cipher in counter mode and replaces its key after every request, so a compromised state does not reveal earlier output.

	rng, err := fortuna.CreateInstance(ctx, nil, entropy.Defaults()...)
	if err != nil {
		return err
	}
	defer rng.Close()

	key := make([]byte, 32)
	_, err = rng.Read(key)
*/
package fortuna
