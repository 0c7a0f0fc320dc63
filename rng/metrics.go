package rng

import (
	"errors"

	"github.com/safing/portrng/metrics"
)

var (
	startupHistogram      *metrics.Histogram
	droppedEntropyCounter = metrics.GetOrCreateCounter(
		"random_dropped_entropy_total",
		nil,
		&metrics.Options{Name: "Dropped Entropy Supplies"},
	)
)

func init() {
	var err error
	startupHistogram, err = metrics.NewHistogram(
		"random_startup_seconds",
		nil,
		&metrics.Options{Name: "Initial Entropy Collection Duration"},
	)
	if err != nil {
		panic(err)
	}
}

func registerMetrics() error {
	_, err := metrics.NewGauge(
		"random_reseeds",
		nil,
		func() float64 {
			if instance := Instance(); instance != nil {
				return float64(instance.ReseedCount())
			}
			return 0
		},
		&metrics.Options{Name: "Reseeds"},
	)
	if err != nil && !errors.Is(err, metrics.ErrAlreadyRegistered) {
		return err
	}

	_, err = metrics.NewGauge(
		"random_pool_0_bytes",
		nil,
		func() float64 {
			if instance := Instance(); instance != nil {
				return float64(instance.Accumulator().Pool(0).Size())
			}
			return 0
		},
		&metrics.Options{Name: "Entropy in Pool 0"},
	)
	if err != nil && !errors.Is(err, metrics.ErrAlreadyRegistered) {
		return err
	}

	return nil
}
