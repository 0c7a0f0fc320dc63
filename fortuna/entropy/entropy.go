// Package entropy provides entropy sources for the fortuna accumulator.
package entropy

import (
	"strings"

	"github.com/safing/portrng/fortuna"
)

// Source names.
const (
	SchedulingName       = "scheduling"
	GarbageCollectorName = "gc"
	LoadAverageName      = "load_average"
	FreeMemoryName       = "free_memory"
	ThreadTimeName       = "thread_time"
	UptimeName           = "uptime"
	URandomName          = "urandom"
	FeederName           = "feeder"
)

// DefaultNames lists the names of the default sources.
var DefaultNames = []string{
	SchedulingName,
	GarbageCollectorName,
	LoadAverageName,
	FreeMemoryName,
	ThreadTimeName,
	UptimeName,
	URandomName,
}

// Defaults returns a new instance of every default source.
func Defaults() []fortuna.EntropySource {
	sources := make([]fortuna.EntropySource, 0, len(DefaultNames))
	for _, name := range DefaultNames {
		source, _ := ByName(name)
		sources = append(sources, source)
	}
	return sources
}

// ByName returns a new instance of the default source with the given name.
func ByName(name string) (source fortuna.EntropySource, ok bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case SchedulingName:
		return &Scheduling{}, true
	case GarbageCollectorName:
		return &GarbageCollector{}, true
	case LoadAverageName:
		return &LoadAverage{}, true
	case FreeMemoryName:
		return &FreeMemory{}, true
	case ThreadTimeName:
		return &ThreadTime{}, true
	case UptimeName:
		return &Uptime{}, true
	case URandomName:
		return &URandom{}, true
	default:
		return nil, false
	}
}

// twoLeastSignificantBytes returns the lowest two bytes of value, least significant first.
func twoLeastSignificantBytes(value int64) []byte {
	return []byte{byte(value), byte(value >> 8)}
}
