package metrics

import (
	"errors"
	"fmt"

	vm "github.com/VictoriaMetrics/metrics"
)

// Counter is a counter metric.
type Counter struct {
	*metricBase
	*vm.Counter
}

// NewCounter registers a new counter metric.
func NewCounter(id string, labels map[string]string, opts *Options) (*Counter, error) {
	base, err := newMetricBase(id, labels, opts)
	if err != nil {
		return nil, err
	}

	m := &Counter{
		metricBase: base,
		Counter:    set.GetOrCreateCounter(base.LabeledID()),
	}
	if err := register(m); err != nil {
		return nil, err
	}

	return m, nil
}

// GetOrCreateCounter returns the counter with the given ID and labels, registering it if needed.
// It panics if the ID is invalid or already used by another metric type.
func GetOrCreateCounter(id string, labels map[string]string, opts *Options) *Counter {
	if existing, ok := lookup(buildLabeledID(id, labels)); ok {
		counter, ok := existing.(*Counter)
		if !ok {
			panic(fmt.Sprintf("metric %s is not a counter", existing.LabeledID()))
		}
		return counter
	}

	counter, err := NewCounter(id, labels, opts)
	switch {
	case err == nil:
		return counter
	case errors.Is(err, ErrAlreadyRegistered):
		// lost a race, retry lookup
		return GetOrCreateCounter(id, labels, opts)
	default:
		panic(err)
	}
}
