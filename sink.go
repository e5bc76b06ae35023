package eventbus

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ErrorSink 处理器失败的上报目标
//
// Report 在投递过程中同步调用，每个失败的处理器调用一次。
type ErrorSink interface {
	Report(failure *HandlerFailure)
}

// ErrorSinkFunc 函数形式的 ErrorSink
type ErrorSinkFunc func(failure *HandlerFailure)

// Report 实现 ErrorSink
func (f ErrorSinkFunc) Report(failure *HandlerFailure) {
	f(failure)
}

// ============================================================================
//                              LogSink
// ============================================================================

type logSink struct{}

// LogSink 返回写入 eventbus 组件日志的 ErrorSink，这是总线的默认 sink
func LogSink() ErrorSink {
	return logSink{}
}

func (logSink) Report(f *HandlerFailure) {
	if f.Panicked {
		logger.Error("handler panicked",
			"type", f.EventType,
			"err", f.Err,
			"stack", string(f.Stack))
		return
	}
	logger.Error("handler failed",
		"type", f.EventType,
		"err", f.Err)
}

// ============================================================================
//                              ZapSink
// ============================================================================

type zapSink struct {
	l *zap.Logger
}

// ZapSink 返回写入 zap logger 的 ErrorSink
func ZapSink(l *zap.Logger) ErrorSink {
	if l == nil {
		l = zap.NewNop()
	}
	return zapSink{l: l}
}

func (s zapSink) Report(f *HandlerFailure) {
	fields := []zap.Field{
		zap.Stringer("type", f.EventType),
		zap.Error(f.Err),
		zap.Bool("panicked", f.Panicked),
	}
	if f.Panicked {
		fields = append(fields, zap.ByteString("stack", f.Stack))
	}
	s.l.Error("eventbus handler failed", fields...)
}

// ============================================================================
//                              Collector
// ============================================================================

// Collector 收集所有失败的 ErrorSink
//
// 主要用于测试，也可以在批量发布后统一检查失败。
type Collector struct {
	failures []*HandlerFailure
}

// NewCollector 创建 Collector
func NewCollector() *Collector {
	return &Collector{}
}

// Report 实现 ErrorSink
func (c *Collector) Report(f *HandlerFailure) {
	c.failures = append(c.failures, f)
}

// Failures 返回已收集的失败
func (c *Collector) Failures() []*HandlerFailure {
	return c.failures
}

// Len 返回已收集的失败数量
func (c *Collector) Len() int {
	return len(c.failures)
}

// Err 将所有失败合并为一个错误，没有失败时返回 nil
func (c *Collector) Err() error {
	var err error
	for _, f := range c.failures {
		err = multierr.Append(err, f)
	}
	return err
}

// Reset 清空已收集的失败
func (c *Collector) Reset() {
	c.failures = nil
}
