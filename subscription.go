package eventbus

// Subscription 订阅句柄
//
// 将 Subscribe 和 Unsubscribe 组合为一个可关闭的对象，常用于测试：
//
//	sub := eventbus.SubscribeScoped(bus, h)
//	defer sub.Close()
//
// Close 只调用 Unsubscribe，没有其他行为。
type Subscription[C any, T Event[C]] struct {
	bus     *Bus[C]
	handler Handler[T]
}

// SubscribeScoped 订阅并返回句柄
func SubscribeScoped[C any, T Event[C]](b *Bus[C], h Handler[T], opts ...SubscribeOpt) *Subscription[C, T] {
	Subscribe[C, T](b, h, opts...)
	return &Subscription[C, T]{bus: b, handler: h}
}

// Handler 返回订阅的处理器
func (s *Subscription[C, T]) Handler() Handler[T] {
	return s.handler
}

// Close 取消订阅，实现 io.Closer
func (s *Subscription[C, T]) Close() error {
	Unsubscribe[C, T](s.bus, s.handler)
	return nil
}
