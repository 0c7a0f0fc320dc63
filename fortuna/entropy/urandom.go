package entropy

import (
	"context"
	"time"

	"github.com/safing/portrng/fortuna"
	"github.com/safing/portrng/log"
)

const urandomEventSize = 32

// URandom reads random data from the operating system.
type URandom struct{}

// Name implements fortuna.Named.
func (u *URandom) Name() string { return URandomName }

// ProduceEvents implements fortuna.EntropySource.
func (u *URandom) ProduceEvents(_ context.Context, scheduler fortuna.Scheduler, adder fortuna.Adder) {
	defer scheduler.Schedule(100 * time.Millisecond)

	data := make([]byte, urandomEventSize)
	if err := readOS(data); err != nil {
		log.Warningf("entropy: failed to read random data from os: %s", err)
		return
	}
	adder.Add(data)
}
