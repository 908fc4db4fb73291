package ecs

// storage is the type-erased face of a SparseSet[T]. The EntityManager keeps
// one per component type so it can destroy entities and walk their component
// types without knowing the concrete T.
type storage interface {
	Contains(id EntityID) bool
	Erase(id EntityID) bool
	Raw(id EntityID) any
	Len() int
	EntityAt(k int) EntityID
	Clear()
}

var _ storage = (*SparseSet[struct{}])(nil)
