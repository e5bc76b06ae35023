package eventbus

// Handler 事件处理器
//
// 处理器按身份（==）匹配：Unsubscribe 删除所有与之相等的条目。
// 通常使用指针类型。函数类型或含切片的结构体值也能订阅，
// 但无法比较，Unsubscribe 对它们不生效，需要取消时用 NewHandler 包装。
type Handler[T any] interface {
	Handle(event *T) error
}

// FuncHandler 函数处理器
//
// 函数值不可比较，FuncHandler 以指针身份代替函数身份。
// 同一个函数包装两次得到两个不同的处理器。
type FuncHandler[T any] struct {
	fn func(*T) error
}

// NewHandler 将函数包装为处理器
func NewHandler[T any](fn func(*T) error) *FuncHandler[T] {
	return &FuncHandler[T]{fn: fn}
}

// Listener 将不返回错误的函数包装为处理器
func Listener[T any](fn func(*T)) *FuncHandler[T] {
	return &FuncHandler[T]{fn: func(e *T) error {
		fn(e)
		return nil
	}}
}

// Handle 实现 Handler
func (h *FuncHandler[T]) Handle(event *T) error {
	return h.fn(event)
}
