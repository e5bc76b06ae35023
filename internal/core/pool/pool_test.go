package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	n int
}

// ============================================================================
//                              基础功能测试
// ============================================================================

func TestPool_GetEmptyConstructs(t *testing.T) {
	built := 0
	p := New(func() *item {
		built++
		return &item{n: built}
	})

	x := p.Get()
	require.NotNil(t, x)
	assert.Equal(t, 1, x.n)
	assert.Equal(t, 1, built)
	assert.Equal(t, Stats{Misses: 1}, p.Stats())
}

func TestPool_PutThenGetReuses(t *testing.T) {
	p := New[item](nil)

	x := p.Get()
	x.n = 7
	p.Put(x)
	assert.Equal(t, 1, p.Len())

	y := p.Get()
	assert.Same(t, x, y)
	assert.Equal(t, 7, y.n, "pool does not reset items")
	assert.Equal(t, 0, p.Len())

	s := p.Stats()
	assert.Equal(t, uint64(1), s.Hits)
	assert.Equal(t, uint64(1), s.Misses)
}

func TestPool_LIFOOrder(t *testing.T) {
	p := New[item](nil)
	a, b := &item{n: 1}, &item{n: 2}
	p.Put(a)
	p.Put(b)

	assert.Same(t, b, p.Get())
	assert.Same(t, a, p.Get())
}

func TestPool_PutNilIgnored(t *testing.T) {
	p := New[item](nil)
	p.Put(nil)
	assert.Equal(t, 0, p.Len())
}

func TestPool_Prewarm(t *testing.T) {
	p := New[item](nil)
	p.Prewarm(4)
	assert.Equal(t, 4, p.Len())

	for i := 0; i < 4; i++ {
		p.Get()
	}
	s := p.Stats()
	assert.Equal(t, uint64(4), s.Hits)
	assert.Equal(t, uint64(0), s.Misses)
	assert.Equal(t, 0, s.Idle)
}
