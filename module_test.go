package eventbus

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dep2p/go-eventbus/config"
)

// ============================================================================
// Fx 模块测试
// ============================================================================

func TestModule_ProvidesBus(t *testing.T) {
	var bus *Bus[testCategory]

	app := fxtest.New(t,
		fx.NopLogger,
		Module[testCategory](),
		fx.Invoke(func(b *Bus[testCategory]) { bus = b }),
	)
	app.RequireStart()
	defer app.RequireStop()

	require.NotNil(t, bus)
	calls := 0
	Subscribe(bus, Handler[pingEvent](Listener(func(*pingEvent) { calls++ })))
	Raise(bus, pingEvent{})
	assert.Equal(t, 1, calls)
}

type otherCategory struct{}

type otherEvent struct {
	Of[otherCategory]
}

func TestModule_CategoriesAreSeparate(t *testing.T) {
	var (
		a *Bus[testCategory]
		b *Bus[otherCategory]
	)

	app := fxtest.New(t,
		fx.NopLogger,
		Module[testCategory](),
		Module[otherCategory](),
		fx.Invoke(func(x *Bus[testCategory], y *Bus[otherCategory]) {
			a, b = x, y
		}),
	)
	app.RequireStart()
	defer app.RequireStop()

	Subscribe(b, Handler[otherEvent](Listener(func(*otherEvent) {})))
	assert.Empty(t, a.EventTypes())
	assert.Len(t, b.EventTypes(), 1)
}

func TestModule_UsesInjectedSink(t *testing.T) {
	sink := NewCollector()
	var bus *Bus[testCategory]

	app := fxtest.New(t,
		fx.NopLogger,
		fx.Provide(func() ErrorSink { return sink }),
		Module[testCategory](),
		fx.Invoke(func(b *Bus[testCategory]) { bus = b }),
	)
	app.RequireStart()
	defer app.RequireStop()

	Subscribe(bus, Handler[pingEvent](NewHandler(func(*pingEvent) error { return errors.New("x") })))
	Raise(bus, pingEvent{})
	assert.Equal(t, 1, sink.Len())
}

func TestModule_FallsBackToZap(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	var bus *Bus[testCategory]

	app := fxtest.New(t,
		fx.NopLogger,
		fx.Supply(zap.New(core)),
		Module[testCategory](),
		fx.Invoke(func(b *Bus[testCategory]) { bus = b }),
	)
	app.RequireStart()
	defer app.RequireStop()

	Subscribe(bus, Handler[pingEvent](NewHandler(func(*pingEvent) error { return errors.New("x") })))
	Raise(bus, pingEvent{})
	assert.Equal(t, 1, logs.FilterMessage("eventbus handler failed").Len())
}

func TestModule_InvalidConfigFailsStart(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Pool.Prewarm = -1

	app := fx.New(
		fx.NopLogger,
		fx.Supply(cfg),
		Module[testCategory](),
		fx.Invoke(func(*Bus[testCategory]) {}),
	)
	require.Error(t, app.Err())
	assert.Contains(t, app.Err().Error(), config.ErrInvalidPoolPrewarm.Error())
}

func TestModule_WithMetrics(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Metrics.Enabled = true
	cfg.Metrics.Namespace = "moduletest"
	reg := prometheus.NewRegistry()

	var bus *Bus[testCategory]
	app := fxtest.New(t,
		fx.NopLogger,
		fx.Supply(cfg),
		fx.Provide(func() prometheus.Registerer { return reg }),
		MetricsModule,
		Module[testCategory](),
		fx.Invoke(func(b *Bus[testCategory]) { bus = b }),
	)
	app.RequireStart()
	defer app.RequireStop()

	// Recorder 由 MetricsModule 注册，总线不再另建
	assert.Nil(t, bus.MetricsCollector())

	Subscribe(bus, Handler[pingEvent](Listener(func(*pingEvent) {})))
	Raise(bus, pingEvent{})
	Raise(bus, pingEvent{})

	count, err := testutil.GatherAndCount(reg, "moduletest_events_raised_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	families, err := reg.Gather()
	require.NoError(t, err)
	var raised float64
	for _, mf := range families {
		if mf.GetName() == "moduletest_events_raised_total" {
			raised = mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	assert.Equal(t, float64(2), raised)
}
