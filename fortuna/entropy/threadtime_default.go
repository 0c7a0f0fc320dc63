//go:build !linux

package entropy

import (
	"runtime/metrics"
)

const cpuTimeMetric = "/cpu/classes/total:cpu-seconds"

func processCPUTime() (nanos int64, ok bool) {
	sample := []metrics.Sample{{Name: cpuTimeMetric}}
	metrics.Read(sample)
	if sample[0].Value.Kind() != metrics.KindFloat64 {
		return 0, false
	}
	return int64(sample[0].Value.Float64() * 1e9), true
}
