package metrics

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"sync"

	vm "github.com/VictoriaMetrics/metrics"
)

// Format required by prometheus for metric and label names.
const prometheusBaseFormat = "[a-zA-Z_][a-zA-Z0-9_]*"

var (
	// ErrAlreadyRegistered is returned when a metric with the same ID is already registered.
	ErrAlreadyRegistered = errors.New("metric already registered")
	// ErrInvalidID is returned when a metric ID or label name does not match the required format.
	ErrInvalidID = errors.New("invalid metric ID")

	prometheusFormat = regexp.MustCompile("^" + prometheusBaseFormat + "$")

	set          = vm.NewSet()
	registry     = make(map[string]Metric)
	registryLock sync.RWMutex
)

// Metric represents one or more metrics.
type Metric interface {
	ID() string
	LabeledID() string
	Opts() *Options
}

// Options can be used to set advanced metric settings.
type Options struct {
	// Name defines an optional human readable name for the metric.
	Name string
}

type metricBase struct {
	Identifier        string
	Labels            map[string]string
	LabeledIdentifier string
	Options           *Options
}

func newMetricBase(id string, labels map[string]string, opts *Options) (*metricBase, error) {
	if !prometheusFormat.MatchString(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	for labelName := range labels {
		if !prometheusFormat.MatchString(labelName) {
			return nil, fmt.Errorf("%w: label %q of %q", ErrInvalidID, labelName, id)
		}
	}
	if opts == nil {
		opts = &Options{}
	}

	return &metricBase{
		Identifier:        id,
		Labels:            labels,
		LabeledIdentifier: buildLabeledID(id, labels),
		Options:           opts,
	}, nil
}

// ID returns the given ID of the metric.
func (m *metricBase) ID() string {
	return m.Identifier
}

// LabeledID returns the Prometheus-compatible labeled ID of the metric.
func (m *metricBase) LabeledID() string {
	return m.LabeledIdentifier
}

// Opts returns the metric options.
func (m *metricBase) Opts() *Options {
	return m.Options
}

func buildLabeledID(id string, labels map[string]string) string {
	if len(labels) == 0 {
		return id
	}

	labelNames := make([]string, 0, len(labels))
	for name := range labels {
		labelNames = append(labelNames, name)
	}
	sort.Strings(labelNames)

	builder := new(strings.Builder)
	builder.WriteString(id)
	builder.WriteString("{")
	for i, name := range labelNames {
		if i > 0 {
			builder.WriteString(",")
		}
		builder.WriteString(fmt.Sprintf("%s=%q", name, labels[name]))
	}
	builder.WriteString("}")
	return builder.String()
}

func register(m Metric) error {
	registryLock.Lock()
	defer registryLock.Unlock()

	if _, ok := registry[m.LabeledID()]; ok {
		return ErrAlreadyRegistered
	}
	registry[m.LabeledID()] = m
	return nil
}

func lookup(labeledID string) (Metric, bool) {
	registryLock.RLock()
	defer registryLock.RUnlock()

	m, ok := registry[labeledID]
	return m, ok
}

// Registered returns the labeled IDs of all registered metrics, sorted.
func Registered() []string {
	registryLock.RLock()
	defer registryLock.RUnlock()

	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// WritePrometheus writes all registered metrics in the Prometheus text format.
// Process metrics are included if withProcess is set.
func WritePrometheus(w io.Writer, withProcess bool) {
	set.WritePrometheus(w)
	if withProcess {
		vm.WriteProcessMetrics(w)
	}
}
