// Package registry 实现单个事件类型的监听器注册表
//
// Registry 持有按优先级降序排列的监听器列表，以及当前正在遍历该列表的
// 游标集合。列表在遍历过程中可以被修改（重入订阅、取消订阅、嵌套发布），
// 插入和删除都会同步调整所有活跃游标的位置，保证一次遍历既不跳过
// 尚未访问的条目，也不重复访问已经访问过的条目。
//
// 游标来自对象池，稳态下的遍历不产生内存分配。
//
// 本包不是并发安全的。
package registry

import (
	"reflect"
	"slices"

	"github.com/dep2p/go-eventbus/internal/core/pool"
)

// ============================================================================
//                              Entry
// ============================================================================

// Entry 监听器条目
//
// 相等性只比较 Handler，不比较 Priority。
type Entry[H comparable] struct {
	Handler  H
	Priority int
}

// Matches 判断条目是否属于 h
//
// 动态类型不可比较的处理器（函数类型、含切片的结构体值）与任何值都不匹配。
func (e Entry[H]) Matches(h H) bool {
	return sameHandler(e.Handler, h)
}

// Comparable 判断 h 的动态类型能否用 == 比较
func Comparable[H comparable](h H) bool {
	t := reflect.TypeOf(any(h))
	return t == nil || t.Comparable()
}

// sameHandler 比较两个处理器，比较会 panic 时视为不相等
//
// 类型可比较的结构体仍可能在接口字段里装着不可比较的值，所以还要 recover。
func sameHandler[H comparable](a, b H) (same bool) {
	if !Comparable(a) || !Comparable(b) {
		return false
	}
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

// ============================================================================
//                              Cursor
// ============================================================================

// Cursor 遍历游标
//
// index 指向下一个要访问的条目。
type Cursor[H comparable] struct {
	owner *Registry[H]
	index int
}

// Owner 返回游标所属的注册表，已释放的游标返回 nil
func (c *Cursor[H]) Owner() *Registry[H] {
	return c.owner
}

// Index 返回下一个要访问的位置
func (c *Cursor[H]) Index() int {
	return c.index
}

// ============================================================================
//                              Registry
// ============================================================================

// Registry 监听器注册表
type Registry[H comparable] struct {
	entries []Entry[H]
	cursors []*Cursor[H]
	pool    *pool.Pool[Cursor[H]]
}

// New 创建注册表，prewarm 为预分配的游标数量
func New[H comparable](prewarm int) *Registry[H] {
	r := &Registry[H]{
		pool: pool.New[Cursor[H]](nil),
	}
	if prewarm > 0 {
		r.pool.Prewarm(prewarm)
		r.cursors = make([]*Cursor[H], 0, prewarm)
	}
	return r
}

// Len 返回条目数量
func (r *Registry[H]) Len() int {
	return len(r.entries)
}

// Entries 返回条目快照
func (r *Registry[H]) Entries() []Entry[H] {
	return slices.Clone(r.entries)
}

// ActiveCursors 返回活跃游标数量
func (r *Registry[H]) ActiveCursors() int {
	return len(r.cursors)
}

// PoolStats 返回游标池统计
func (r *Registry[H]) PoolStats() pool.Stats {
	return r.pool.Stats()
}

// Insert 按优先级插入条目
//
// 插入位置是第一个优先级严格小于 priority 的条目，同优先级保持订阅顺序。
// 位置在插入点之后的活跃游标后移一位。
func (r *Registry[H]) Insert(h H, priority int) {
	i := len(r.entries)
	for j, e := range r.entries {
		if e.Priority < priority {
			i = j
			break
		}
	}
	r.entries = slices.Insert(r.entries, i, Entry[H]{Handler: h, Priority: priority})

	for _, c := range r.cursors {
		if c.index > i {
			c.index++
		}
	}
}

// Remove 删除所有属于 h 的条目，返回删除数量
//
// 从尾部向头部扫描。游标的 index 指向下一个要访问的条目，
// 所以只有 index > i 的游标前移一位；index == i 的游标此时已经指向
// 补位到 i 的下一个条目。改成 index >= i 会重放删除点前一个条目。
// 这样游标既不会重访已经访问过的条目，也不会跳过删除点之后的条目。
//
// h 的动态类型不可比较时不删除任何条目，返回 0。
func (r *Registry[H]) Remove(h H) int {
	if !Comparable(h) {
		return 0
	}
	removed := 0
	for i := len(r.entries) - 1; i >= 0; i-- {
		if !r.entries[i].Matches(h) {
			continue
		}
		r.entries = slices.Delete(r.entries, i, i+1)
		removed++

		for _, c := range r.cursors {
			if c.index > i {
				c.index--
			}
		}
	}
	return removed
}

// Acquire 从池中取出游标并登记为活跃游标
func (r *Registry[H]) Acquire() *Cursor[H] {
	c := r.pool.Get()
	c.index = 0
	c.owner = r
	r.cursors = append(r.cursors, c)
	return c
}

// Advance 返回下一个处理器，遍历结束时 ok 为 false
func (r *Registry[H]) Advance(c *Cursor[H]) (h H, ok bool) {
	if c.index >= len(r.entries) {
		return h, false
	}
	h = r.entries[c.index].Handler
	c.index++
	return h, true
}

// Release 注销游标并归还到池中
func (r *Registry[H]) Release(c *Cursor[H]) {
	if c.owner != r {
		return
	}
	for i, active := range r.cursors {
		if active == c {
			last := len(r.cursors) - 1
			r.cursors[i] = r.cursors[last]
			r.cursors[last] = nil
			r.cursors = r.cursors[:last]
			break
		}
	}
	c.owner = nil
	c.index = 0
	r.pool.Put(c)
}
