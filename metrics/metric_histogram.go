package metrics

import (
	vm "github.com/VictoriaMetrics/metrics"
)

// Histogram is a histogram metric.
type Histogram struct {
	*metricBase
	*vm.Histogram
}

// NewHistogram registers a new histogram metric.
func NewHistogram(id string, labels map[string]string, opts *Options) (*Histogram, error) {
	base, err := newMetricBase(id, labels, opts)
	if err != nil {
		return nil, err
	}

	m := &Histogram{
		metricBase: base,
		Histogram:  set.GetOrCreateHistogram(base.LabeledID()),
	}
	if err := register(m); err != nil {
		return nil, err
	}

	return m, nil
}
