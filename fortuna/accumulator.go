package fortuna

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tevino/abool"
	"golang.org/x/sync/semaphore"

	"github.com/safing/portrng/crypto/hash"
	"github.com/safing/portrng/log"
	"github.com/safing/portrng/metrics"
)

const (
	// DefaultWorkers is the default number of concurrent source invocations.
	DefaultWorkers = 4

	sourcePanicBackoff = 1 * time.Second
)

// Accumulator owns the entropy pools and drives the registered entropy sources.
type Accumulator struct {
	pools  [NumPools]*Pool
	cursor atomic.Uint32

	sources     []*registeredSource
	sourcesLock sync.Mutex

	workers *semaphore.Weighted
	wg      sync.WaitGroup

	started  *abool.AtomicBool
	shutdown *abool.AtomicBool

	// stopCtx is canceled when shutdown begins, no new invocations are started after that.
	stopCtx        context.Context
	stopScheduling context.CancelFunc
	// invokeCtx is handed to sources and canceled when shutdown completes or times out.
	invokeCtx         context.Context
	cancelInvocations context.CancelFunc

	waiters    atomic.Int32
	notify     chan struct{}
	notifyLock sync.Mutex
}

type registeredSource struct {
	name   string
	source EntropySource
	adder  *sourceAdder
}

// NewAccumulator returns a new accumulator that runs at most workers source invocations at once.
// Pools use the given hash algorithm, SHA2-256 if zero.
func NewAccumulator(workers int, poolHash hash.Algorithm) *Accumulator {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if poolHash == 0 {
		poolHash = hash.SHA2_256
	}
	if poolHash.New() == nil || poolHash.Size() != hash.DigestSize {
		log.Warningf("fortuna: unsupported pool hash %d, falling back to %s", poolHash, hash.SHA2_256)
		poolHash = hash.SHA2_256
	}

	a := &Accumulator{
		workers:  semaphore.NewWeighted(int64(workers)),
		started:  abool.NewBool(false),
		shutdown: abool.NewBool(false),
		notify:   make(chan struct{}),
	}
	for i := range a.pools {
		a.pools[i] = newPool(poolHash)
	}
	a.stopCtx, a.stopScheduling = context.WithCancel(context.Background())
	a.invokeCtx, a.cancelInvocations = context.WithCancel(context.Background())

	return a
}

// Pool returns the pool with the given index.
func (a *Accumulator) Pool(index int) *Pool {
	return a.pools[index]
}

// AddSource registers an entropy source. Sources can only be added before Start.
func (a *Accumulator) AddSource(source EntropySource) error {
	a.sourcesLock.Lock()
	defer a.sourcesLock.Unlock()

	if a.started.IsSet() {
		return ErrAlreadyStarted
	}

	name := SourceName(source)
	a.sources = append(a.sources, &registeredSource{
		name:   name,
		source: source,
		adder:  a.newSourceAdder(name),
	})
	return nil
}

// Start starts invoking the registered sources.
func (a *Accumulator) Start() error {
	a.sourcesLock.Lock()
	defer a.sourcesLock.Unlock()

	if a.shutdown.IsSet() || !a.started.SetToIf(false, true) {
		return ErrAlreadyStarted
	}

	for _, src := range a.sources {
		a.wg.Add(1)
		go a.runSource(src)
	}
	log.Debugf("fortuna: started %d entropy sources", len(a.sources))

	return nil
}

func (a *Accumulator) runSource(src *registeredSource) {
	defer a.wg.Done()

	var delay time.Duration
	for {
		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-a.stopCtx.Done():
				timer.Stop()
				return
			}
		}

		if err := a.workers.Acquire(a.stopCtx, 1); err != nil {
			return
		}
		next, scheduled := a.invoke(src)
		a.workers.Release(1)

		if !scheduled {
			log.Warningf("fortuna: entropy source %s did not schedule its next invocation, stopping it", src.name)
			return
		}
		delay = next
	}
}

func (a *Accumulator) invoke(src *registeredSource) (delay time.Duration, scheduled bool) {
	defer func() {
		if panicVal := recover(); panicVal != nil {
			log.Errorf("fortuna: entropy source %s panicked: %s", src.name, panicVal)
			delay = sourcePanicBackoff
			scheduled = true
		}
	}()

	schedule := &invocationSchedule{}
	src.source.ProduceEvents(a.invokeCtx, schedule, src.adder)
	return schedule.delay, schedule.scheduled
}

// Shutdown stops invoking sources and waits up to timeout for running invocations to finish.
// After the timeout, running invocations are canceled and ErrShutdownTimeout is returned.
// Pools are left intact. Subsequent calls return nil.
func (a *Accumulator) Shutdown(timeout time.Duration) error {
	a.sourcesLock.Lock()
	if !a.shutdown.SetToIf(false, true) {
		a.sourcesLock.Unlock()
		return nil
	}
	a.stopScheduling()
	a.sourcesLock.Unlock()
	defer a.cancelInvocations()

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-done:
		return nil
	case <-timer.C:
		log.Warningf("fortuna: entropy sources did not stop within %s", timeout)
		return ErrShutdownTimeout
	}
}

// WaitForPool blocks until the pool with the given index holds at least minSize bytes.
// The pool size is checked whenever events are added, and every pollInterval.
func (a *Accumulator) WaitForPool(ctx context.Context, index int, minSize int64, pollInterval time.Duration) error {
	if index < 0 || index >= NumPools {
		return fmt.Errorf("fortuna: invalid pool index %d", index)
	}
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	a.waiters.Add(1)
	defer a.waiters.Add(-1)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		// get signal before checking to not miss any add
		added := a.addSignal()
		if a.pools[index].Size() >= minSize {
			return nil
		}

		select {
		case <-added:
		case <-ticker.C:
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
		}
	}
}

func (a *Accumulator) addSignal() <-chan struct{} {
	a.notifyLock.Lock()
	defer a.notifyLock.Unlock()

	return a.notify
}

func (a *Accumulator) signalAdd() {
	if a.waiters.Load() == 0 {
		return
	}

	a.notifyLock.Lock()
	defer a.notifyLock.Unlock()

	close(a.notify)
	a.notify = make(chan struct{})
}

// add routes the event to the next pool in round-robin order.
func (a *Accumulator) add(event []byte) {
	index := (a.cursor.Add(1) - 1) % NumPools
	a.pools[index].Add(event)
	a.signalAdd()
}

type sourceAdder struct {
	acc    *Accumulator
	events *metrics.Counter
	bytes  *metrics.Counter
}

func (a *Accumulator) newSourceAdder(name string) *sourceAdder {
	labels := map[string]string{"source": name}
	return &sourceAdder{
		acc:    a,
		events: metrics.GetOrCreateCounter("fortuna_source_events_total", labels, &metrics.Options{Name: "Entropy Events"}),
		bytes:  metrics.GetOrCreateCounter("fortuna_source_bytes_total", labels, &metrics.Options{Name: "Entropy Bytes"}),
	}
}

func (sa *sourceAdder) Add(event []byte) {
	if len(event) == 0 {
		return
	}

	sa.acc.add(event)
	sa.events.Inc()
	sa.bytes.Add(len(event))
}
