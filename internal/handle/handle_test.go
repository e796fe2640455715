package handle

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_InsertGetRemove(t *testing.T) {
	tbl := NewTable[string]()

	a := tbl.Insert("a")
	b := tbl.Insert("b")
	assert.NotEqual(t, a, b)
	assert.NotZero(t, a)
	assert.Equal(t, 2, tbl.Len())

	v, ok := tbl.Get(a)
	require.True(t, ok)
	assert.Equal(t, "a", v)

	v, ok = tbl.Remove(a)
	require.True(t, ok)
	assert.Equal(t, "a", v)
	assert.Equal(t, 1, tbl.Len())

	_, ok = tbl.Get(a)
	assert.False(t, ok, "removed handle still resolves")

	v, ok = tbl.Get(b)
	require.True(t, ok)
	assert.Equal(t, "b", v)
}

func TestTable_ZeroHandle(t *testing.T) {
	tbl := NewTable[int]()
	tbl.Insert(1)

	_, ok := tbl.Get(0)
	assert.False(t, ok)
	_, ok = tbl.Remove(0)
	assert.False(t, ok)
	assert.Equal(t, 1, tbl.Len())
}

func TestTable_DoubleRemove(t *testing.T) {
	tbl := NewTable[int]()
	h := tbl.Insert(7)

	_, ok := tbl.Remove(h)
	require.True(t, ok)
	_, ok = tbl.Remove(h)
	assert.False(t, ok, "second remove succeeded")
	assert.Equal(t, 0, tbl.Len())
}

func TestTable_StaleHandleAfterReuse(t *testing.T) {
	tbl := NewTable[string]()
	old := tbl.Insert("old")
	tbl.Remove(old)

	fresh := tbl.Insert("fresh")
	assert.NotEqual(t, old, fresh, "reused slot must get a new generation")

	_, ok := tbl.Get(old)
	assert.False(t, ok, "stale handle resolved to the new value")
	_, ok = tbl.Remove(old)
	assert.False(t, ok)

	v, ok := tbl.Get(fresh)
	require.True(t, ok)
	assert.Equal(t, "fresh", v)
}

func TestTable_ForeignHandle(t *testing.T) {
	tbl := NewTable[int]()
	tbl.Insert(1)

	for _, h := range []Handle{makeHandle(5, 1), makeHandle(0, 9), Handle(1 << 40)} {
		_, ok := tbl.Get(h)
		assert.False(t, ok, "handle %#x", uint64(h))
	}
}

func TestTable_Grows(t *testing.T) {
	tbl := NewTable[int]()
	handles := make([]Handle, 100)
	for i := range handles {
		handles[i] = tbl.Insert(i)
	}
	assert.Equal(t, 100, tbl.Len())

	for i, h := range handles {
		v, ok := tbl.Get(h)
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
}

func TestTable_Handles(t *testing.T) {
	tbl := NewTable[int]()
	a := tbl.Insert(1)
	b := tbl.Insert(2)
	c := tbl.Insert(3)
	tbl.Remove(b)

	assert.ElementsMatch(t, []Handle{a, c}, tbl.Handles())
	assert.Empty(t, NewTable[int]().Handles())
}

func TestTable_Concurrent(t *testing.T) {
	tbl := NewTable[int]()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				h := tbl.Insert(g*1000 + i)
				v, ok := tbl.Get(h)
				if !ok || v != g*1000+i {
					t.Errorf("Get(%#x) = %d, %v", uint64(h), v, ok)
					return
				}
				if _, ok := tbl.Remove(h); !ok {
					t.Errorf("Remove(%#x) failed", uint64(h))
					return
				}
			}
		}(g)
	}
	wg.Wait()

	assert.Equal(t, 0, tbl.Len())
}
