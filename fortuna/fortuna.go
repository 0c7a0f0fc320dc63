package fortuna

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/safing/portrng/crypto/hash"
	"github.com/safing/portrng/log"
)

const (
	// DefaultPollInterval is the default interval for checking pool 0 while waiting for entropy.
	DefaultPollInterval = 10 * time.Millisecond
	// DefaultShutdownTimeout is the timeout used by Close.
	DefaultShutdownTimeout = 30 * time.Second

	// refillSize is the size of the chunks served via the random data buffer.
	refillSize = MaxRequestSize

	abortStartTimeout = 1 * time.Second
)

// Options configures a Fortuna instance.
type Options struct {
	// NewCipher creates the generator cipher, AES-256 if nil.
	NewCipher CipherFunc
	// PoolHash is the pool hash algorithm, SHA2-256 if zero.
	PoolHash hash.Algorithm
	// Workers is the number of concurrent source invocations.
	Workers int
	// PollInterval is the interval for checking pool 0 while waiting for entropy.
	PollInterval time.Duration
	// Clock returns the current time, time.Now if nil.
	Clock func() time.Time
}

func (opts *Options) withDefaults() *Options {
	withDefaults := &Options{}
	if opts != nil {
		*withDefaults = *opts
	}

	if withDefaults.Workers <= 0 {
		withDefaults.Workers = DefaultWorkers
	}
	if withDefaults.PollInterval <= 0 {
		withDefaults.PollInterval = DefaultPollInterval
	}
	if withDefaults.Clock == nil {
		withDefaults.Clock = time.Now
	}
	return withDefaults
}

// Fortuna is a cryptographically secure pseudo random number generator.
// It is safe for concurrent use.
type Fortuna struct {
	lock sync.Mutex

	acc       *Accumulator
	generator *Generator
	buffer    RandomDataBuffer

	reseedCount uint64
	lastReseed  time.Time
	clock       func() time.Time
}

// CreateInstance starts an accumulator with the given sources and waits until pool 0 holds enough entropy for the first reseed.
// Canceling ctx aborts the wait with ErrInterrupted.
func CreateInstance(ctx context.Context, opts *Options, sources ...EntropySource) (*Fortuna, error) {
	opts = opts.withDefaults()

	acc := NewAccumulator(opts.Workers, opts.PoolHash)
	for _, source := range sources {
		if err := acc.AddSource(source); err != nil {
			return nil, err
		}
	}
	if err := acc.Start(); err != nil {
		return nil, err
	}

	started := time.Now()
	if err := acc.WaitForPool(ctx, 0, MinPoolSize, opts.PollInterval); err != nil {
		if shutdownErr := acc.Shutdown(abortStartTimeout); shutdownErr != nil {
			log.Warningf("fortuna: failed to stop entropy sources: %s", shutdownErr)
		}
		return nil, fmt.Errorf("fortuna: failed to wait for initial entropy: %w", err)
	}
	log.Debugf("fortuna: collected initial entropy in %s", time.Since(started))

	return New(acc, opts), nil
}

// New returns a Fortuna instance that reseeds from the given accumulator. It does not wait for entropy.
func New(acc *Accumulator, opts *Options) *Fortuna {
	opts = opts.withDefaults()
	return &Fortuna{
		acc:       acc,
		generator: NewGenerator(opts.NewCipher),
		clock:     opts.Clock,
	}
}

// Accumulator returns the accumulator of the instance.
func (f *Fortuna) Accumulator() *Accumulator {
	return f.acc
}

// ReseedCount returns the number of reseeds so far.
func (f *Fortuna) ReseedCount() uint64 {
	f.lock.Lock()
	defer f.lock.Unlock()

	return f.reseedCount
}

// randomData returns up to MaxRequestSize bytes directly from the generator, reseeding first if due.
// Must be called with the instance lock held.
func (f *Fortuna) randomData(n int) ([]byte, error) {
	if err := f.maybeReseed(); err != nil {
		return nil, err
	}
	if f.reseedCount == 0 {
		return nil, ErrNotReady
	}

	data, err := f.generator.PseudoRandomData(n)
	if err != nil {
		return nil, err
	}
	generatedBytesCounter.Add(len(data))
	return data, nil
}

func (f *Fortuna) refill() ([]byte, error) {
	return f.randomData(refillSize)
}

// Read fills p with random data. It implements io.Reader.
func (f *Fortuna) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}

	f.lock.Lock()
	defer f.lock.Unlock()

	return f.buffer.Read(p, f.refill)
}

// Next returns a value with its lowest bits set randomly. It implements BitSource.
func (f *Fortuna) Next(bits int) (uint32, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	return f.buffer.Next(bits, f.refill)
}

// Generate returns n bytes directly from the generator, in chunks of at most MaxRequestSize bytes.
// Every chunk is a separate request, which may reseed and always rekeys.
func (f *Fortuna) Generate(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("fortuna: invalid request size %d", n)
	}

	data := make([]byte, 0, n)
	for len(data) < n {
		chunkSize := n - len(data)
		if chunkSize > MaxRequestSize {
			chunkSize = MaxRequestSize
		}

		chunk, err := f.generateChunk(chunkSize)
		if err != nil {
			wipe(data)
			return nil, err
		}
		data = append(data, chunk...)
	}
	return data, nil
}

func (f *Fortuna) generateChunk(n int) ([]byte, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	return f.randomData(n)
}

// Shutdown stops the entropy sources of the accumulator, see Accumulator.Shutdown.
func (f *Fortuna) Shutdown(timeout time.Duration) error {
	return f.acc.Shutdown(timeout)
}

// Close shuts down with DefaultShutdownTimeout.
func (f *Fortuna) Close() error {
	return f.Shutdown(DefaultShutdownTimeout)
}
