package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-eventbus/config"
)

// ============================================================================
// Fx 模块测试
// ============================================================================

func TestModule_DisabledWithoutConfig(t *testing.T) {
	var rec *Recorder

	app := fxtest.New(t,
		Module,
		fx.Invoke(func(in struct {
			fx.In
			Recorder *Recorder `optional:"true"`
		}) {
			rec = in.Recorder
		}),
	)
	app.RequireStart()
	app.RequireStop()

	assert.Nil(t, rec)
}

func TestModule_EnabledRegisters(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Metrics.Enabled = true
	cfg.Metrics.Namespace = "fxtest"
	reg := prometheus.NewRegistry()

	var rec *Recorder
	app := fxtest.New(t,
		fx.Supply(cfg),
		fx.Provide(func() prometheus.Registerer { return reg }),
		Module,
		fx.Invoke(func(r *Recorder) { rec = r }),
	)
	app.RequireStart()
	defer app.RequireStop()

	require.NotNil(t, rec)
	assert.False(t, reg.Unregister(NewRecorder(Config{Namespace: "other"})))
	assert.True(t, reg.Unregister(rec))
}

func TestConfigFromUnified(t *testing.T) {
	cfg, enabled := ConfigFromUnified(nil)
	assert.False(t, enabled)
	assert.Equal(t, DefaultConfig(), cfg)

	unified := config.NewConfig()
	unified.Metrics.Enabled = true
	unified.Metrics.Namespace = "ns"
	cfg, enabled = ConfigFromUnified(unified)
	assert.True(t, enabled)
	assert.Equal(t, "ns", cfg.Namespace)
}
