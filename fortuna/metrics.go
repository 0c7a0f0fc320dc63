package fortuna

import (
	"github.com/safing/portrng/metrics"
)

var (
	reseedCounter = metrics.GetOrCreateCounter(
		"fortuna_reseeds_total",
		nil,
		&metrics.Options{Name: "Fortuna Reseeds"},
	)
	generatedBytesCounter = metrics.GetOrCreateCounter(
		"fortuna_generated_bytes_total",
		nil,
		&metrics.Options{Name: "Fortuna Generated Bytes"},
	)
)
