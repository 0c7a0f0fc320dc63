package metrics

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter(t *testing.T) {
	t.Parallel()

	c, err := NewCounter("test_counter_total", map[string]string{"source": "a"}, &Options{Name: "Test Counter"})
	require.NoError(t, err)
	c.Add(2)
	assert.Equal(t, `test_counter_total{source="a"}`, c.LabeledID())
	assert.Equal(t, "test_counter_total", c.ID())
	assert.Equal(t, "Test Counter", c.Opts().Name)

	_, err = NewCounter("test_counter_total", map[string]string{"source": "a"}, nil)
	assert.True(t, errors.Is(err, ErrAlreadyRegistered), "duplicate registration must fail")

	same := GetOrCreateCounter("test_counter_total", map[string]string{"source": "a"}, nil)
	assert.Equal(t, uint64(2), same.Get())
	same.Inc()
	assert.Equal(t, uint64(3), c.Get())

	buf := new(bytes.Buffer)
	WritePrometheus(buf, false)
	assert.Contains(t, buf.String(), `test_counter_total{source="a"} 3`)
	assert.Contains(t, Registered(), `test_counter_total{source="a"}`)
}

func TestInvalidID(t *testing.T) {
	t.Parallel()

	_, err := NewCounter("test/invalid", nil, nil)
	assert.True(t, errors.Is(err, ErrInvalidID))

	_, err = NewGauge("test_valid", map[string]string{"in-valid": "x"}, func() float64 { return 0 }, nil)
	assert.True(t, errors.Is(err, ErrInvalidID))
}

func TestGaugeAndHistogram(t *testing.T) {
	t.Parallel()

	_, err := NewGauge("test_gauge", nil, func() float64 { return 42 }, nil)
	require.NoError(t, err)

	h, err := NewHistogram("test_histogram_seconds", nil, nil)
	require.NoError(t, err)
	h.Update(0.5)

	buf := new(bytes.Buffer)
	WritePrometheus(buf, true)
	out := buf.String()
	assert.Contains(t, out, "test_gauge 42")
	assert.Contains(t, out, "test_histogram_seconds_count 1")
	assert.Contains(t, out, "go_goroutines", "process metrics should be included")
}

func TestBuildLabeledID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "plain", buildLabeledID("plain", nil))
	assert.Equal(t, `id{a="1",b="2"}`, buildLabeledID("id", map[string]string{"b": "2", "a": "1"}))
}
