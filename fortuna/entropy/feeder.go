package entropy

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/safing/portrng/fortuna"
)

const feederBufferSize = 100

// Feeder is an entropy source that forwards data supplied by other components.
type Feeder struct {
	input chan []byte
}

// NewFeeder returns a new feeder.
func NewFeeder() *Feeder {
	return &Feeder{
		input: make(chan []byte, feederBufferSize),
	}
}

// Name implements fortuna.Named.
func (f *Feeder) Name() string { return FeederName }

// Supply queues data for the next invocation of the feeder.
// It returns false if the queue is full and the data was dropped.
func (f *Feeder) Supply(data []byte) bool {
	if len(data) == 0 {
		return true
	}

	select {
	case f.input <- data:
		return true
	default:
		return false
	}
}

// SupplyInt64 queues an integer for the next invocation of the feeder.
func (f *Feeder) SupplyInt64(value int64) bool {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint64(data, uint64(value))
	return f.Supply(data)
}

// ProduceEvents implements fortuna.EntropySource.
func (f *Feeder) ProduceEvents(ctx context.Context, scheduler fortuna.Scheduler, adder fortuna.Adder) {
	defer scheduler.Schedule(100 * time.Millisecond)

	for {
		select {
		case data := <-f.input:
			adder.Add(data)
		case <-ctx.Done():
			return
		default:
			return
		}
	}
}
