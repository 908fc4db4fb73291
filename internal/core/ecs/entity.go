package ecs

// EntityRegistry manages entity allocation with versioned indices and a free list.
//
// A handle {i, v} is valid iff v == versions[i]. Destroying a slot bumps its
// version, so every handle issued before the destroy is permanently stale.
//
// Known limitation: versions are 32-bit and wrap. A slot destroyed 2^32 times
// can alias a handle issued before the wrap. This is not mitigated.
type EntityRegistry struct {
	versions []VersionID
	alive    []bool
	freeList []EntityID
	live     int
}

func NewEntityRegistry(capacity int) *EntityRegistry {
	if capacity < 0 {
		capacity = 0
	}
	return &EntityRegistry{
		versions: make([]VersionID, 0, capacity),
		alive:    make([]bool, 0, capacity),
		freeList: make([]EntityID, 0, capacity/4),
	}
}

// Create pops a recycled index if one is available, otherwise appends a new
// slot at version 1.
func (r *EntityRegistry) Create() EntityHandle {
	r.live++
	if n := len(r.freeList); n > 0 {
		id := r.freeList[n-1]
		r.freeList = r.freeList[:n-1]
		r.alive[id] = true
		return NewEntityHandle(id, r.versions[id])
	}
	id := EntityID(len(r.versions))
	r.versions = append(r.versions, 1)
	r.alive = append(r.alive, true)
	return NewEntityHandle(id, 1)
}

func (r *EntityRegistry) IsValid(h EntityHandle) bool {
	id := h.ID()
	return int(id) < len(r.versions) && r.versions[id] == h.Version()
}

// Destroy bumps the slot version and recycles the index. Returns false for a
// stale handle (already destroyed).
func (r *EntityRegistry) Destroy(h EntityHandle) bool {
	if !r.IsValid(h) || !r.alive[h.ID()] {
		return false
	}
	id := h.ID()
	r.versions[id]++
	r.alive[id] = false
	r.freeList = append(r.freeList, id)
	r.live--
	return true
}

// Alive reports whether the slot currently holds a live entity.
func (r *EntityRegistry) Alive(id EntityID) bool {
	return int(id) < len(r.alive) && r.alive[id]
}

// Current returns the live handle occupying a slot.
func (r *EntityRegistry) Current(id EntityID) (EntityHandle, bool) {
	if !r.Alive(id) {
		return NilHandle, false
	}
	return NewEntityHandle(id, r.versions[id]), true
}

// Version exposes the slot's current version (alive or not). Zero for slots
// never allocated.
func (r *EntityRegistry) Version(id EntityID) VersionID {
	if int(id) >= len(r.versions) {
		return 0
	}
	return r.versions[id]
}

// Len is the number of live entities.
func (r *EntityRegistry) Len() int { return r.live }

// Cap is the number of slots ever allocated.
func (r *EntityRegistry) Cap() int { return len(r.versions) }

// Free is the number of indices waiting for reuse.
func (r *EntityRegistry) Free() int { return len(r.freeList) }

// Each calls fn for every live entity in index order.
func (r *EntityRegistry) Each(fn func(EntityHandle)) {
	for i, ok := range r.alive {
		if ok {
			fn(NewEntityHandle(EntityID(i), r.versions[i]))
		}
	}
}
