package eventbus

import "reflect"

// Of 事件类别标记
//
// 事件结构体嵌入 Of[C] 后即属于类别 C，可以在 Bus[C] 上发布和订阅。
type Of[C any] struct{}

func (Of[C]) eventCategory(C) {}

// Event 类别 C 的事件约束
//
// 只能通过嵌入 Of[C] 满足。
type Event[C any] interface {
	eventCategory(C)
}

// TypeOf 返回事件类型 T 的 reflect.Type，即注册表的键
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}
