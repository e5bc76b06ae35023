// Package pool 提供泛型空闲链表对象池
//
// Pool 不做容量限制，也没有淘汰策略。调用方负责在复用前
// 把对象重置到干净状态（registry 的 Acquire 就是这样做的）。
//
// Pool 不是并发安全的，与事件总线的单线程模型保持一致。
package pool

// Pool 空闲链表对象池
type Pool[T any] struct {
	free  []*T
	newFn func() *T

	hits   uint64
	misses uint64
}

// Stats 对象池统计
type Stats struct {
	// Hits 从空闲链表取到对象的次数
	Hits uint64
	// Misses 空闲链表为空、新建对象的次数
	Misses uint64
	// Idle 当前空闲对象数
	Idle int
}

// New 创建对象池
//
// newFn 为 nil 时使用 new(T) 构造。
func New[T any](newFn func() *T) *Pool[T] {
	if newFn == nil {
		newFn = func() *T { return new(T) }
	}
	return &Pool[T]{newFn: newFn}
}

// Get 取出一个对象，空闲链表为空时新建
func (p *Pool[T]) Get() *T {
	n := len(p.free)
	if n == 0 {
		p.misses++
		return p.newFn()
	}
	x := p.free[n-1]
	p.free[n-1] = nil
	p.free = p.free[:n-1]
	p.hits++
	return x
}

// Put 归还对象
func (p *Pool[T]) Put(x *T) {
	if x == nil {
		return
	}
	p.free = append(p.free, x)
}

// Prewarm 预分配 n 个对象放入空闲链表
func (p *Pool[T]) Prewarm(n int) {
	for i := 0; i < n; i++ {
		p.free = append(p.free, p.newFn())
	}
}

// Len 返回空闲对象数
func (p *Pool[T]) Len() int {
	return len(p.free)
}

// Stats 返回统计信息
func (p *Pool[T]) Stats() Stats {
	return Stats{
		Hits:   p.hits,
		Misses: p.misses,
		Idle:   len(p.free),
	}
}
