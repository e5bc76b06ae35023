package metrics

import (
	"reflect"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct{}

// ============================================================================
//                              Recorder 测试
// ============================================================================

func TestRecorder_DefaultNamespace(t *testing.T) {
	rec := NewRecorder(Config{})
	rec.LogRaised(reflect.TypeFor[testEvent]())

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(rec))

	n, err := testutil.GatherAndCount(reg, "eventbus_events_raised_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRecorder_Counters(t *testing.T) {
	rec := NewRecorder(Config{Namespace: "test"})
	typ := reflect.TypeFor[testEvent]()
	name := typ.String()

	rec.LogRaised(typ)
	rec.LogRaised(typ)
	start := rec.StartHandler()
	rec.LogHandled(typ, start, false)
	rec.LogHandled(typ, start, true)
	rec.LogHandled(typ, start, false)

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.raised.WithLabelValues(name)))
	assert.Equal(t, 2.0, testutil.ToFloat64(rec.handled.WithLabelValues(name, resultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.handled.WithLabelValues(name, resultFailed)))

	assert.Equal(t, Totals{Raised: 2, Handled: 3, Failed: 1}, rec.Totals())
}

func TestRecorder_DurationUsesClock(t *testing.T) {
	mock := clock.NewMock()
	rec := NewRecorder(Config{Namespace: "test", Clock: mock})
	typ := reflect.TypeFor[testEvent]()

	start := rec.StartHandler()
	assert.Equal(t, mock.Now(), start)
	mock.Add(3 * time.Millisecond)
	rec.LogHandled(typ, start, false)

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(rec))
	families, err := reg.Gather()
	require.NoError(t, err)

	var sum float64
	var found bool
	for _, mf := range families {
		if mf.GetName() != "test_handler_duration_seconds" {
			continue
		}
		found = true
		sum = mf.GetMetric()[0].GetHistogram().GetSampleSum()
	}
	require.True(t, found)
	assert.InDelta(t, 0.003, sum, 1e-9)
}

func TestRecorder_TypeMetricsCached(t *testing.T) {
	rec := NewRecorder(Config{})
	typ := reflect.TypeFor[testEvent]()

	a := rec.forType(typ)
	b := rec.forType(typ)
	assert.Same(t, a, b)
}
