// Package eventbus 实现进程内强类型事件总线
//
// 任何调用方都可以发布一个类型化的事件值，事件按优先级确定性地投递给
// 该事件类型当前的全部订阅者。
//
// # 快速开始
//
//	// 事件类别
//	type GameEvent struct{}
//
//	// 事件通过嵌入 eventbus.Of 声明所属类别
//	type PlayerJoined struct {
//	    eventbus.Of[GameEvent]
//	    Name string
//	}
//
//	bus, _ := eventbus.New[GameEvent]()
//
//	h := eventbus.SubscribeFunc(bus, func(e *PlayerJoined) error {
//	    fmt.Println("joined:", e.Name)
//	    return nil
//	}, eventbus.Priority(10))
//
//	eventbus.Raise(bus, PlayerJoined{Name: "alice"})
//	eventbus.Unsubscribe(bus, h)
//
// 类别在编译期检查：只有嵌入了 Of[GameEvent] 的事件才能在
// Bus[GameEvent] 上发布。
//
// # 投递顺序
//
// 优先级数值大的先投递；优先级相同时按订阅顺序投递。
//
// # 重入
//
// 处理器内部可以再次调用 Raise、Subscribe、Unsubscribe。
// 遍历过程中的插入和删除会同步调整所有进行中的遍历：
//   - 插入到当前位置之前的处理器，本次不会被调用
//   - 删除即将访问的处理器，本次跳过它，但不会跳过它后面的处理器
//   - 已经调用过的处理器不会被重复调用
//
// # 失败隔离
//
// 处理器返回错误或 panic 时，失败被包装为 *HandlerFailure 上报给
// ErrorSink，投递继续进行，Raise 本身永远不会失败。
//
// # 取消订阅
//
// Unsubscribe 删除该处理器的全部条目，而不只是最近一次订阅的条目。
// 同一个处理器订阅两次、取消一次后，它不再收到任何事件。
//
// # 并发
//
// Bus 不是并发安全的。同一个 Bus 的所有调用必须发生在同一个逻辑线程上，
// 需要跨 goroutine 使用时由调用方加锁。
//
// # 分配
//
// 稳态下 RaiseRef 不产生内存分配：遍历游标来自每个注册表自己的对象池。
// Raise 按值接收事件，事件本身会逃逸到堆上。
//
// # Fx 模块
//
//	app := fx.New(
//	    eventbus.Module[GameEvent](),
//	    fx.Invoke(func(bus *eventbus.Bus[GameEvent]) {
//	        // ...
//	    }),
//	)
package eventbus
