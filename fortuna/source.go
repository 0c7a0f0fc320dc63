package fortuna

import (
	"context"
	"fmt"
	"time"
)

// Scheduler is handed to an entropy source to request its next invocation.
type Scheduler interface {
	// Schedule requests the next invocation after the given delay.
	// Only the last call within an invocation counts.
	Schedule(delay time.Duration)
}

// Adder is handed to an entropy source to emit entropy events.
type Adder interface {
	Add(event []byte)
}

// EntropySource produces entropy events when invoked by the Accumulator.
// Sources must call Schedule before returning, otherwise they are not invoked again.
type EntropySource interface {
	ProduceEvents(ctx context.Context, scheduler Scheduler, adder Adder)
}

// Named may be implemented by entropy sources to provide a name for logs and metrics.
type Named interface {
	Name() string
}

// SourceFunc adapts a function to an EntropySource.
type SourceFunc func(ctx context.Context, scheduler Scheduler, adder Adder)

// ProduceEvents calls fn.
func (fn SourceFunc) ProduceEvents(ctx context.Context, scheduler Scheduler, adder Adder) {
	fn(ctx, scheduler, adder)
}

// SourceName returns the name of the source.
func SourceName(source EntropySource) string {
	if named, ok := source.(Named); ok {
		return named.Name()
	}
	return fmt.Sprintf("%T", source)
}

type invocationSchedule struct {
	delay     time.Duration
	scheduled bool
}

func (s *invocationSchedule) Schedule(delay time.Duration) {
	if delay < 0 {
		delay = 0
	}
	s.delay = delay
	s.scheduled = true
}
