// Package handle maps Go objects to opaque integer ids that can cross the
// cgo boundary.
//
// C code may not keep Go pointers, so librure hands out ids instead. Each id
// carries the generation of its slot; once an object is removed its slot is
// reused under a new generation and the old id stops resolving. Double
// frees and use-after-free from the C side become failed lookups rather
// than memory corruption.
package handle

import (
	"math"
	"sync"

	"github.com/coregx/coregex-capi/internal/sparse"
)

// Handle is an opaque object id. The zero Handle never resolves.
//
// The low 32 bits hold the slot index plus one and the high 32 bits the
// slot generation.
type Handle uint64

func makeHandle(index, gen uint32) Handle {
	return Handle(uint64(gen)<<32 | uint64(index+1))
}

func (h Handle) split() (index, gen uint32, ok bool) {
	lo := uint32(h)
	if lo == 0 {
		return 0, 0, false
	}
	return lo - 1, uint32(h >> 32), true
}

type slot[T any] struct {
	value T
	gen   uint32
}

// Table stores values of one type under generation-checked handles.
// It is safe for concurrent use.
type Table[T any] struct {
	mu       sync.RWMutex
	slots    []slot[T]
	freeList []uint32
	live     *sparse.SparseSet
}

// NewTable creates an empty table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{
		slots:    make([]slot[T], 0, 16),
		freeList: make([]uint32, 0, 16),
		live:     sparse.NewSparseSet(16),
	}
}

// Insert stores v and returns its handle.
// Panics if the table already holds math.MaxUint32-1 slots.
func (t *Table[T]) Insert(v T) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	var idx uint32
	if n := len(t.freeList); n > 0 {
		idx = t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
	} else {
		if uint64(len(t.slots)) >= math.MaxUint32-1 {
			panic("handle: table full")
		}
		//nolint:gosec // G115: bounded by the check above
		idx = uint32(len(t.slots))
		t.slots = append(t.slots, slot[T]{gen: 1})
		if len(t.slots) > t.live.Capacity() {
			//nolint:gosec // G115: cap of a slice bounded like len
			t.live.Grow(uint32(cap(t.slots)))
		}
	}

	s := &t.slots[idx]
	s.value = v
	t.live.Insert(idx)
	return makeHandle(idx, s.gen)
}

// lookup returns the slot index for h if h is live. Callers hold t.mu.
func (t *Table[T]) lookup(h Handle) (uint32, bool) {
	idx, gen, ok := h.split()
	if !ok || !t.live.Contains(idx) {
		return 0, false
	}
	return idx, t.slots[idx].gen == gen
}

// Get returns the value stored under h.
func (t *Table[T]) Get(h Handle) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	idx, ok := t.lookup(h)
	if !ok {
		var zero T
		return zero, false
	}
	return t.slots[idx].value, true
}

// Remove deletes the value stored under h and returns it. Later calls with
// the same handle report false.
func (t *Table[T]) Remove(h Handle) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	idx, ok := t.lookup(h)
	if !ok {
		return zero, false
	}

	s := &t.slots[idx]
	v := s.value
	s.value = zero
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	t.live.Remove(idx)
	t.freeList = append(t.freeList, idx)
	return v, true
}

// Len returns the number of live handles.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.live.Len()
}

// Handles returns the live handles in no particular order.
func (t *Table[T]) Handles() []Handle {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Handle, 0, t.live.Len())
	t.live.Iter(func(idx uint32) {
		out = append(out, makeHandle(idx, t.slots[idx].gen))
	})
	return out
}
