// Package sparse provides a sparse set of small integers.
//
// A sparse set supports O(1) insertion, deletion and membership testing
// while keeping a dense list of its members. The handle tables use one to
// track which slots are live, so the live count and a leak listing never
// have to walk the free slots.
package sparse

// SparseSet is a set of uint32 values below its capacity.
// The sparse array maps a value to its index in the dense array.
type SparseSet struct {
	sparse []uint32 // value -> index in dense
	dense  []uint32
}

// NewSparseSet creates a set able to hold values in [0, capacity).
func NewSparseSet(capacity uint32) *SparseSet {
	return &SparseSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Capacity returns the exclusive upper bound on values.
func (s *SparseSet) Capacity() int {
	return len(s.sparse)
}

// Grow raises the capacity to at least capacity. Members are kept.
func (s *SparseSet) Grow(capacity uint32) {
	if int(capacity) <= len(s.sparse) {
		return
	}
	sparse := make([]uint32, capacity)
	copy(sparse, s.sparse)
	s.sparse = sparse
}

// Insert adds value and reports whether it was absent.
// Panics if value >= Capacity.
func (s *SparseSet) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	//nolint:gosec // G115: len(dense) < len(sparse) which came from a uint32
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

// Contains reports whether value is in the set.
func (s *SparseSet) Contains(value uint32) bool {
	if uint64(value) >= uint64(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return int(idx) < len(s.dense) && s.dense[idx] == value
}

// Remove deletes value and reports whether it was present.
func (s *SparseSet) Remove(value uint32) bool {
	if !s.Contains(value) {
		return false
	}

	// swap with the last member and pop
	idx := s.sparse[value]
	last := s.dense[len(s.dense)-1]
	s.dense[idx] = last
	s.sparse[last] = idx
	s.dense = s.dense[:len(s.dense)-1]
	return true
}

// Len returns the number of members.
func (s *SparseSet) Len() int {
	return len(s.dense)
}

// Iter calls f for each member.
func (s *SparseSet) Iter(f func(uint32)) {
	for _, v := range s.dense {
		f(v)
	}
}
