package eventbus

import (
	"fmt"

	"github.com/dep2p/go-eventbus/config"
	"github.com/dep2p/go-eventbus/internal/core/metrics"
)

// Option 总线配置选项函数
type Option func(*options) error

// Interceptor 发布拦截器
//
// event 是 *T。拦截器调用 next 执行投递，可以在前后附加逻辑，
// 也可以不调用 next 直接丢弃事件。
type Interceptor func(event any, next func())

// Reporter 指标上报接口
type Reporter = metrics.Reporter

// options 内部选项结构
type options struct {
	sink          ErrorSink
	interceptor   Interceptor
	reporter      Reporter
	recorder      *metrics.Recorder
	prewarm       int
	recoverPanics bool
}

// newOptions 创建默认选项
func newOptions() *options {
	return &options{
		sink:          LogSink(),
		prewarm:       config.DefaultPoolConfig().Prewarm,
		recoverPanics: true,
	}
}

// ============================================================================
//                              基础选项
// ============================================================================

// WithErrorSink 设置处理器失败的上报目标
func WithErrorSink(sink ErrorSink) Option {
	return func(o *options) error {
		if sink == nil {
			return fmt.Errorf("error sink 不能为空")
		}
		o.sink = sink
		return nil
	}
}

// WithInterceptor 设置发布拦截器
//
// 拦截器包裹每一次 Raise，用于过滤或包装投递。
func WithInterceptor(i Interceptor) Option {
	return func(o *options) error {
		o.interceptor = i
		return nil
	}
}

// WithReporter 设置指标上报
func WithReporter(r Reporter) Option {
	return func(o *options) error {
		o.reporter = r
		return nil
	}
}

// WithPrewarm 设置每个注册表预分配的游标数量
func WithPrewarm(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("%w: %d", config.ErrInvalidPoolPrewarm, n)
		}
		o.prewarm = n
		return nil
	}
}

// WithRecoverPanics 设置是否恢复处理器 panic
//
// 默认开启。关闭后 panic 会从 Raise 传播出去，进行中的游标仍会被释放。
func WithRecoverPanics(enabled bool) Option {
	return func(o *options) error {
		o.recoverPanics = enabled
		return nil
	}
}

// ============================================================================
//                              配置选项
// ============================================================================

// WithConfig 使用统一配置
//
// 配置先经过校验。启用指标且未通过 WithReporter 设置上报时，
// 创建一个 prometheus Recorder，可通过 Bus.MetricsCollector 注册。
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return fmt.Errorf("配置不能为空")
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		o.prewarm = cfg.Pool.Prewarm
		o.recoverPanics = cfg.RecoverPanics
		if cfg.Metrics.Enabled && o.reporter == nil {
			o.recorder = metrics.NewRecorder(metrics.Config{Namespace: cfg.Metrics.Namespace})
			o.reporter = o.recorder
		}
		return nil
	}
}
