package eventbus

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/dep2p/go-eventbus/config"
	"github.com/dep2p/go-eventbus/internal/core/metrics"
)

// ============================================================================
// Fx 模块
// ============================================================================

// MetricsModule 提供 prometheus 指标记录器的 Fx 模块
//
// 统一配置中启用指标时，Module 创建的总线会自动使用它。
// 同一个应用中只需要加载一次。
var MetricsModule = metrics.Module

// Params 总线依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config    `optional:"true"`
	Sink       ErrorSink         `optional:"true"`
	Zap        *zap.Logger       `optional:"true"`
	Recorder   *metrics.Recorder `optional:"true"`
}

// Module 返回类别 C 的总线 Fx 模块
//
// 错误上报的选择顺序：注入的 ErrorSink，注入的 *zap.Logger，默认 LogSink。
func Module[C any]() fx.Option {
	return fx.Module("eventbus",
		fx.Provide(ProvideBus[C]),
		fx.Invoke(registerLifecycle[C]),
	)
}

// ProvideBus 从依赖参数创建总线
func ProvideBus[C any](p Params) (*Bus[C], error) {
	var opts []Option
	// Recorder 必须先于配置设置，否则 WithConfig 会另建一个
	if p.Recorder != nil {
		opts = append(opts, WithReporter(p.Recorder))
	}
	if p.UnifiedCfg != nil {
		opts = append(opts, WithConfig(p.UnifiedCfg))
	}
	switch {
	case p.Sink != nil:
		opts = append(opts, WithErrorSink(p.Sink))
	case p.Zap != nil:
		opts = append(opts, WithErrorSink(ZapSink(p.Zap)))
	}
	return New[C](opts...)
}

// lifecycleInput 生命周期输入参数
type lifecycleInput[C any] struct {
	fx.In
	LC  fx.Lifecycle
	Bus *Bus[C]
}

// registerLifecycle 注册生命周期
func registerLifecycle[C any](input lifecycleInput[C]) {
	input.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Debug("eventbus started", "category", TypeOf[C]())
			return nil
		},
		OnStop: func(_ context.Context) error {
			logger.Debug("eventbus stopped",
				"category", TypeOf[C](),
				"eventTypes", len(input.Bus.EventTypes()))
			return nil
		},
	})
}
