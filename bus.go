package eventbus

import (
	"reflect"
	"runtime/debug"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dep2p/go-eventbus/internal/core/registry"
	"github.com/dep2p/go-eventbus/pkg/lib/log"
)

var logger = log.Logger("eventbus")

// ============================================================================
//                              Bus 实现
// ============================================================================

// Bus 事件总线
//
// C 是事件类别，只有嵌入了 Of[C] 的事件才能在该总线上发布。
// 每个 Bus 直接持有自己的注册表，多个 Bus 之间的订阅互不可见，
// Bus 不可达后其注册表随之被回收。
type Bus[C any] struct {
	opts  *options
	table *registry.Table
}

// New 创建事件总线
func New[C any](opts ...Option) (*Bus[C], error) {
	o := newOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	return &Bus[C]{
		opts:  o,
		table: registry.NewTable(o.prewarm, onRegistryCreated),
	}, nil
}

// EventTypes 返回已创建注册表的事件类型
func (b *Bus[C]) EventTypes() []reflect.Type {
	return b.table.Types()
}

// MetricsCollector 返回 WithConfig 创建的指标收集器，未启用指标时返回 nil
func (b *Bus[C]) MetricsCollector() prometheus.Collector {
	if b.opts.recorder == nil {
		return nil
	}
	return b.opts.recorder
}

func onRegistryCreated(typ reflect.Type) {
	logger.Debug("registry created", "type", typ)
}

// ============================================================================
//                              订阅
// ============================================================================

// SubscribeOpt 订阅选项函数
type SubscribeOpt func(*subscribeSettings)

type subscribeSettings struct {
	priority int
}

// Priority 设置订阅优先级，默认 0
//
// 数值大的先投递，相同优先级按订阅顺序投递。
func Priority(p int) SubscribeOpt {
	return func(s *subscribeSettings) {
		s.priority = p
	}
}

// Subscribe 订阅事件类型 T
//
// 同一个处理器可以订阅多次，每次产生一个独立的条目。
func Subscribe[C any, T Event[C]](b *Bus[C], h Handler[T], opts ...SubscribeOpt) {
	var s subscribeSettings
	for _, opt := range opts {
		opt(&s)
	}
	registry.GetOrCreate[Handler[T]](b.table, TypeOf[T]()).Insert(h, s.priority)
}

// SubscribeFunc 订阅函数，返回用于取消订阅的处理器
func SubscribeFunc[C any, T Event[C]](b *Bus[C], fn func(*T) error, opts ...SubscribeOpt) Handler[T] {
	h := NewHandler(fn)
	Subscribe[C, T](b, h, opts...)
	return h
}

// Unsubscribe 取消订阅
//
// 删除 h 的全部条目，而不只是最近一次订阅的条目。
// 事件类型从未被使用过时不做任何事。
// h 的动态类型不可比较时无法按身份匹配，记录一条警告后返回。
func Unsubscribe[C any, T Event[C]](b *Bus[C], h Handler[T]) {
	if !registry.Comparable(h) {
		logger.Warn("unsubscribe ignored, handler type is not comparable",
			"type", TypeOf[T](),
			"handler", reflect.TypeOf(h))
		return
	}
	reg, ok := registry.Get[Handler[T]](b.table, TypeOf[T]())
	if !ok {
		return
	}
	reg.Remove(h)
}

// ListenerCount 返回事件类型 T 的条目数量
func ListenerCount[C any, T Event[C]](b *Bus[C]) int {
	reg, ok := registry.Get[Handler[T]](b.table, TypeOf[T]())
	if !ok {
		return 0
	}
	return reg.Len()
}

// ============================================================================
//                              发布
// ============================================================================

// Raise 发布事件
func Raise[C any, T Event[C]](b *Bus[C], event T) {
	RaiseRef(b, &event)
}

// RaiseRef 按引用发布事件
//
// 处理器收到的就是 event 本身，可以修改它，后续处理器看到修改后的值。
// 设置了 Interceptor 时由拦截器决定是否投递。
func RaiseRef[C any, T Event[C]](b *Bus[C], event *T) {
	if b.opts.interceptor != nil {
		b.opts.interceptor(event, func() { deliver(b, event) })
		return
	}
	deliver(b, event)
}

// deliver 按优先级顺序调用所有处理器
func deliver[C any, T Event[C]](b *Bus[C], event *T) {
	typ := TypeOf[T]()
	reg := registry.GetOrCreate[Handler[T]](b.table, typ)

	rep := b.opts.reporter
	if rep != nil {
		rep.LogRaised(typ)
	}

	c := reg.Acquire()
	defer reg.Release(c)

	for {
		h, ok := reg.Advance(c)
		if !ok {
			return
		}

		if rep == nil {
			if f := invoke(h, event, b.opts.recoverPanics); f != nil {
				b.report(typ, f)
			}
			continue
		}

		start := rep.StartHandler()
		f := invoke(h, event, b.opts.recoverPanics)
		rep.LogHandled(typ, start, f != nil)
		if f != nil {
			b.report(typ, f)
		}
	}
}

// invoke 调用单个处理器，返回失败信息
func invoke[T any](h Handler[T], event *T, recoverPanics bool) (f *HandlerFailure) {
	if recoverPanics {
		defer func() {
			if r := recover(); r != nil {
				f = &HandlerFailure{
					Event:    event,
					Handler:  h,
					Err:      panicError(r),
					Panicked: true,
					Stack:    debug.Stack(),
				}
			}
		}()
	}

	if err := h.Handle(event); err != nil {
		return &HandlerFailure{
			Event:   event,
			Handler: h,
			Err:     err,
		}
	}
	return nil
}

func (b *Bus[C]) report(typ reflect.Type, f *HandlerFailure) {
	f.EventType = typ
	b.opts.sink.Report(f)
}
