package registry

import (
	"reflect"
)

// Table 事件类型到注册表的映射
//
// 每个总线实例直接持有一个 Table，注册表随总线一起被回收，
// 不需要弱引用，也不需要显式清理。
type Table struct {
	slots map[reflect.Type]any

	// prewarm 新建注册表时预分配的游标数量
	prewarm int

	// onCreate 新建注册表时的回调（可选）
	onCreate func(reflect.Type)
}

// NewTable 创建映射表
func NewTable(prewarm int, onCreate func(reflect.Type)) *Table {
	return &Table{
		slots:    make(map[reflect.Type]any),
		prewarm:  prewarm,
		onCreate: onCreate,
	}
}

// Get 查找 key 对应的注册表
func Get[H comparable](t *Table, key reflect.Type) (*Registry[H], bool) {
	slot, ok := t.slots[key]
	if !ok {
		return nil, false
	}
	return slot.(*Registry[H]), true
}

// GetOrCreate 查找或创建 key 对应的注册表
func GetOrCreate[H comparable](t *Table, key reflect.Type) *Registry[H] {
	if r, ok := Get[H](t, key); ok {
		return r
	}
	r := New[H](t.prewarm)
	t.slots[key] = r
	if t.onCreate != nil {
		t.onCreate(key)
	}
	return r
}

// Types 返回已创建注册表的事件类型
func (t *Table) Types() []reflect.Type {
	types := make([]reflect.Type, 0, len(t.slots))
	for typ := range t.slots {
		types = append(types, typ)
	}
	return types
}

// Len 返回注册表数量
func (t *Table) Len() int {
	return len(t.slots)
}
