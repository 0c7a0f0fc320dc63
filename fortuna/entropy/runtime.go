package entropy

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/safing/portrng/fortuna"
)

// Scheduling samples the delay between its invocations, which depends on scheduler and system load.
type Scheduling struct {
	last time.Time
}

// Name implements fortuna.Named.
func (s *Scheduling) Name() string { return SchedulingName }

// ProduceEvents implements fortuna.EntropySource.
func (s *Scheduling) ProduceEvents(_ context.Context, scheduler fortuna.Scheduler, adder fortuna.Adder) {
	now := time.Now()
	if !s.last.IsZero() {
		adder.Add(twoLeastSignificantBytes(now.Sub(s.last).Nanoseconds()))
	}
	s.last = now
	scheduler.Schedule(10 * time.Millisecond)
}

// GarbageCollector samples garbage collection statistics.
type GarbageCollector struct{}

// Name implements fortuna.Named.
func (gc *GarbageCollector) Name() string { return GarbageCollectorName }

// ProduceEvents implements fortuna.EntropySource.
func (gc *GarbageCollector) ProduceEvents(_ context.Context, scheduler fortuna.Scheduler, adder fortuna.Adder) {
	var stats debug.GCStats
	debug.ReadGCStats(&stats)
	adder.Add(twoLeastSignificantBytes(stats.NumGC + stats.PauseTotal.Nanoseconds()))
	scheduler.Schedule(10 * time.Second)
}
