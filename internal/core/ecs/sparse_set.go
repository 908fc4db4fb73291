package ecs

// Tombstone marks an unoccupied slot in a sparse index array.
const Tombstone = ^uint32(0)

// SparseSet is dense storage for one component type keyed by EntityID.
//
// sparse[id] holds the dense index of id's component (or Tombstone);
// denseToSparse[k] maps dense slot k back to its EntityID. The invariant
// sparse[denseToSparse[k]] == k holds for every dense k.
//
// Removal swaps the target with the last dense slot and truncates, so dense
// order is not insertion order once anything has been removed. Pointers
// returned by Insert/Emplace/Get are valid until the next structural change
// of this set.
type SparseSet[T any] struct {
	sparse        []uint32
	dense         []T
	denseToSparse []EntityID
}

func NewSparseSet[T any](capacity int) *SparseSet[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &SparseSet[T]{
		dense:         make([]T, 0, capacity),
		denseToSparse: make([]EntityID, 0, capacity),
	}
}

// Emplace stores a zero T for id. Returns nil if id is already occupied.
func (s *SparseSet[T]) Emplace(id EntityID) *T {
	var zero T
	return s.Insert(id, zero)
}

// Insert stores a copy of v for id. Returns nil (and leaves the existing
// value untouched) if id is already occupied.
func (s *SparseSet[T]) Insert(id EntityID, v T) *T {
	if s.Contains(id) {
		return nil
	}
	if int(id) >= len(s.sparse) {
		s.grow(id)
	}
	k := len(s.dense)
	s.dense = append(s.dense, v)
	s.denseToSparse = append(s.denseToSparse, id)
	s.sparse[id] = uint32(k)
	return &s.dense[k]
}

func (s *SparseSet[T]) grow(id EntityID) {
	n := int(id) + 1
	if double := 2 * len(s.sparse); double > n {
		n = double
	}
	for len(s.sparse) < n {
		s.sparse = append(s.sparse, Tombstone)
	}
}

func (s *SparseSet[T]) Contains(id EntityID) bool {
	return int(id) < len(s.sparse) && s.sparse[id] != Tombstone
}

func (s *SparseSet[T]) Get(id EntityID) *T {
	if !s.Contains(id) {
		return nil
	}
	return &s.dense[s.sparse[id]]
}

// Remove erases id's component unless the component vetoes via OnRemove.
// Returns false if id is absent or the removal was vetoed.
func (s *SparseSet[T]) Remove(id EntityID) bool {
	c := s.Get(id)
	if c == nil {
		return false
	}
	if r, ok := any(c).(Remover); ok && !r.OnRemove() {
		return false
	}
	return s.Erase(id)
}

// Erase removes id's component without consulting any hook.
func (s *SparseSet[T]) Erase(id EntityID) bool {
	if !s.Contains(id) {
		return false
	}
	k := s.sparse[id]
	last := uint32(len(s.dense) - 1)
	if k != last {
		moved := s.denseToSparse[last]
		s.dense[k] = s.dense[last]
		s.denseToSparse[k] = moved
		s.sparse[moved] = k
	}
	var zero T
	s.dense[last] = zero
	s.dense = s.dense[:last]
	s.denseToSparse = s.denseToSparse[:last]
	s.sparse[id] = Tombstone
	return true
}

// Len is the number of stored components.
func (s *SparseSet[T]) Len() int { return len(s.dense) }

// At returns the component at dense position k and its owner.
func (s *SparseSet[T]) At(k int) (*T, EntityID) {
	return &s.dense[k], s.denseToSparse[k]
}

// EntityAt returns the owner of dense position k.
func (s *SparseSet[T]) EntityAt(k int) EntityID { return s.denseToSparse[k] }

// DenseIndex returns id's position in dense storage.
func (s *SparseSet[T]) DenseIndex(id EntityID) (int, bool) {
	if !s.Contains(id) {
		return 0, false
	}
	return int(s.sparse[id]), true
}

// Entities exposes the dense owner list. Callers must not modify it.
func (s *SparseSet[T]) Entities() []EntityID { return s.denseToSparse }

// Values exposes dense storage directly for tight loops.
func (s *SparseSet[T]) Values() []T { return s.dense }

// Raw returns id's component as an any holding *T, or nil.
func (s *SparseSet[T]) Raw(id EntityID) any {
	if c := s.Get(id); c != nil {
		return c
	}
	return nil
}

func (s *SparseSet[T]) Clear() {
	clear(s.dense)
	s.dense = s.dense[:0]
	s.denseToSparse = s.denseToSparse[:0]
	for i := range s.sparse {
		s.sparse[i] = Tombstone
	}
}
