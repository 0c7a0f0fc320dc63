package metrics

import (
	vm "github.com/VictoriaMetrics/metrics"
)

// Gauge is a gauge metric whose value is fetched when metrics are exported.
type Gauge struct {
	*metricBase
	*vm.Gauge
}

// NewGauge registers a new gauge metric.
func NewGauge(id string, labels map[string]string, fn func() float64, opts *Options) (*Gauge, error) {
	base, err := newMetricBase(id, labels, opts)
	if err != nil {
		return nil, err
	}

	m := &Gauge{
		metricBase: base,
		Gauge:      set.GetOrCreateGauge(base.LabeledID(), fn),
	}
	if err := register(m); err != nil {
		return nil, err
	}

	return m, nil
}
