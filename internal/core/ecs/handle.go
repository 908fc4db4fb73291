package ecs

import (
	"cmp"
	"fmt"
)

// EntityID is an index into every per-type sparse array. Indices are recycled
// after destruction, so an EntityID alone is never a stable reference.
type EntityID uint32

// VersionID counts destructions of an entity slot. Slots start at 1; 0 marks a
// handle that was never issued.
type VersionID uint32

// EntityHandle encodes a 32-bit index in the lower bits and a 32-bit version
// in the upper bits. The version increments on destroy to invalidate stale refs.
type EntityHandle uint64

// NilHandle never refers to a live entity.
const NilHandle EntityHandle = 0

func NewEntityHandle(id EntityID, version VersionID) EntityHandle {
	return EntityHandle(uint64(version)<<32 | uint64(id))
}

func (h EntityHandle) ID() EntityID       { return EntityID(h) }
func (h EntityHandle) Version() VersionID { return VersionID(h >> 32) }

// Less orders handles by index only.
func (h EntityHandle) Less(o EntityHandle) bool { return h.ID() < o.ID() }

// IsValid is a local sanity check (version >= 1). It says nothing about
// liveness; ask the EntityManager for that.
func (h EntityHandle) IsValid() bool { return h.Version() >= 1 }

func (h EntityHandle) String() string {
	return fmt.Sprintf("%d:%d", h.ID(), h.Version())
}

// CompareHandles orders handles by index, for slices.SortFunc.
func CompareHandles(a, b EntityHandle) int {
	return cmp.Compare(a.ID(), b.ID())
}
