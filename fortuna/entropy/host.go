package entropy

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/load"
	"github.com/shirou/gopsutil/mem"

	"github.com/safing/portrng/fortuna"
	"github.com/safing/portrng/log"
)

var processStart = time.Now()

// LoadAverage samples the 1 minute system load average.
type LoadAverage struct{}

// Name implements fortuna.Named.
func (la *LoadAverage) Name() string { return LoadAverageName }

// ProduceEvents implements fortuna.EntropySource.
func (la *LoadAverage) ProduceEvents(ctx context.Context, scheduler fortuna.Scheduler, adder fortuna.Adder) {
	defer scheduler.Schedule(1 * time.Second)

	avg, err := load.AvgWithContext(ctx)
	if err != nil {
		log.Tracef("entropy: failed to get load average: %s", err)
		return
	}
	adder.Add(twoLeastSignificantBytes(int64(avg.Load1 * 100)))
}

// FreeMemory samples the amount of free system memory.
type FreeMemory struct{}

// Name implements fortuna.Named.
func (fm *FreeMemory) Name() string { return FreeMemoryName }

// ProduceEvents implements fortuna.EntropySource.
func (fm *FreeMemory) ProduceEvents(ctx context.Context, scheduler fortuna.Scheduler, adder fortuna.Adder) {
	defer scheduler.Schedule(100 * time.Millisecond)

	stat, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		log.Tracef("entropy: failed to get memory stats: %s", err)
		return
	}
	adder.Add(twoLeastSignificantBytes(int64(stat.Free)))
}

// Uptime samples the host uptime combined with the process run time in nanoseconds.
type Uptime struct{}

// Name implements fortuna.Named.
func (u *Uptime) Name() string { return UptimeName }

// ProduceEvents implements fortuna.EntropySource.
func (u *Uptime) ProduceEvents(ctx context.Context, scheduler fortuna.Scheduler, adder fortuna.Adder) {
	defer scheduler.Schedule(1 * time.Second)

	uptime, err := host.UptimeWithContext(ctx)
	if err != nil {
		log.Tracef("entropy: failed to get host uptime: %s", err)
	}
	adder.Add(twoLeastSignificantBytes(int64(uptime) + time.Since(processStart).Nanoseconds()))
}
