package eventbus

import (
	"errors"
	"fmt"
	"reflect"
)

// 公共错误定义
var (
	// ErrHandlerPanic 处理器 panic
	//
	// panic 被恢复后包装为 HandlerFailure，其 Err 满足 errors.Is(err, ErrHandlerPanic)。
	ErrHandlerPanic = errors.New("handler panicked")
)

// HandlerFailure 处理器调用失败
//
// 这是投递过程中唯一的错误类型：在调用点捕获，上报给 ErrorSink 一次，
// 之后继续投递给下一个处理器，不会从 Raise 传播出去。
type HandlerFailure struct {
	// EventType 事件类型
	EventType reflect.Type

	// Event 事件指针（*T）
	Event any

	// Handler 失败的处理器（Handler[T]）
	Handler any

	// Err 处理器返回的错误，或包装了 ErrHandlerPanic 的 panic 值
	Err error

	// Panicked 是否由 panic 引起
	Panicked bool

	// Stack panic 时的调用栈
	Stack []byte
}

// Error 实现 error 接口
func (f *HandlerFailure) Error() string {
	return fmt.Sprintf("eventbus: %s handler failed: %v", f.EventType, f.Err)
}

// Unwrap 返回底层错误
func (f *HandlerFailure) Unwrap() error {
	return f.Err
}

// panicError 将 panic 值转换为错误
func panicError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("%w: %w", ErrHandlerPanic, err)
	}
	return fmt.Errorf("%w: %v", ErrHandlerPanic, r)
}
