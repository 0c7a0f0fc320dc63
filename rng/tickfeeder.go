package rng

import (
	"context"
	"time"
)

const (
	tickDuration = 10 * time.Millisecond
	tickPushes   = 64
)

// tickFeeder collects the least significant bit of the current nanosecond time on every tick and supplies them in batches of 64.
// The more work the program does, the better the quality, as the scheduler cannot always run the goroutine right when it is ready.
func tickFeeder(ctx context.Context) error {
	var value int64
	var pushes int

	ticker := time.NewTicker(tickDuration)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			value = (value << 1) | (time.Now().UnixNano() % 2)

			pushes++
			if pushes >= tickPushes {
				SupplyEntropyAsInt(value)
				pushes = 0
			}

		case <-ctx.Done():
			return nil
		}
	}
}
