package entropy

import (
	"context"
	"time"

	"github.com/safing/portrng/fortuna"
)

// ThreadTime samples the CPU time used by the process.
type ThreadTime struct{}

// Name implements fortuna.Named.
func (tt *ThreadTime) Name() string { return ThreadTimeName }

// ProduceEvents implements fortuna.EntropySource.
func (tt *ThreadTime) ProduceEvents(_ context.Context, scheduler fortuna.Scheduler, adder fortuna.Adder) {
	if nanos, ok := processCPUTime(); ok {
		adder.Add(twoLeastSignificantBytes(nanos))
	}
	scheduler.Schedule(100 * time.Millisecond)
}
