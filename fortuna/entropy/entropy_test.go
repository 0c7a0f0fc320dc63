package entropy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/safing/portrng/fortuna"
)

type recorder struct {
	schedules []time.Duration
	events    [][]byte
}

func (r *recorder) Schedule(delay time.Duration) {
	r.schedules = append(r.schedules, delay)
}

func (r *recorder) Add(event []byte) {
	r.events = append(r.events, event)
}

func invoke(source fortuna.EntropySource) *recorder {
	r := &recorder{}
	source.ProduceEvents(context.Background(), r, r)
	return r
}

func TestFreeMemory(t *testing.T) {
	t.Parallel()

	r := invoke(&FreeMemory{})
	assert.Equal(t, []time.Duration{100 * time.Millisecond}, r.schedules)
	for _, event := range r.events {
		assert.Len(t, event, 2)
	}
}

func TestURandom(t *testing.T) {
	t.Parallel()

	r := invoke(&URandom{})
	assert.Equal(t, []time.Duration{100 * time.Millisecond}, r.schedules)
	if assert.Len(t, r.events, 1) {
		assert.Len(t, r.events[0], 32)
		assert.NotEqual(t, make([]byte, 32), r.events[0])
	}
}

func TestDefaultSources(t *testing.T) {
	t.Parallel()

	expectedCadence := map[string]time.Duration{
		SchedulingName:       10 * time.Millisecond,
		GarbageCollectorName: 10 * time.Second,
		LoadAverageName:      time.Second,
		FreeMemoryName:       100 * time.Millisecond,
		ThreadTimeName:       100 * time.Millisecond,
		UptimeName:           time.Second,
		URandomName:          100 * time.Millisecond,
	}

	sources := Defaults()
	assert.Len(t, sources, len(DefaultNames))
	for _, source := range sources {
		name := fortuna.SourceName(source)
		r := invoke(source)
		assert.Equal(t, []time.Duration{expectedCadence[name]}, r.schedules, "source %s", name)
		assert.LessOrEqual(t, len(r.events), 1, "source %s", name)
	}

	// the scheduling source needs a previous invocation
	scheduling := &Scheduling{}
	assert.Empty(t, invoke(scheduling).events)
	time.Sleep(time.Millisecond)
	assert.Len(t, invoke(scheduling).events, 1)

	_, ok := ByName("does_not_exist")
	assert.False(t, ok)
	source, ok := ByName(" URandom ")
	assert.True(t, ok)
	assert.Equal(t, URandomName, fortuna.SourceName(source))
}

func TestFeeder(t *testing.T) {
	t.Parallel()

	feeder := NewFeeder()
	assert.True(t, feeder.Supply([]byte{1, 2, 3}))
	assert.True(t, feeder.SupplyInt64(42))
	assert.True(t, feeder.Supply(nil))

	r := invoke(feeder)
	assert.Equal(t, [][]byte{{1, 2, 3}, {42, 0, 0, 0, 0, 0, 0, 0}}, r.events)
	assert.Equal(t, []time.Duration{100 * time.Millisecond}, r.schedules)

	for i := 0; i < feederBufferSize; i++ {
		assert.True(t, feeder.Supply([]byte{1}))
	}
	assert.False(t, feeder.Supply([]byte{1}), "full feeder drops data")
}

func TestTwoLeastSignificantBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte{0x34, 0x12}, twoLeastSignificantBytes(0x7F1234))
}

func TestWithAccumulator(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rng, err := fortuna.CreateInstance(ctx, nil, Defaults()...)
	if !assert.NoError(t, err) {
		return
	}
	defer func() {
		assert.NoError(t, rng.Shutdown(5*time.Second))
	}()

	data, err := rng.Generate(64)
	assert.NoError(t, err)
	assert.Len(t, data, 64)
}
