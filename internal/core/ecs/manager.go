package ecs

import (
	"iter"

	"go.uber.org/zap"
)

// EntityManager combines the entity registry, one SparseSet per component
// type, and the ops registry used for lifecycle dispatch.
//
// Not safe for concurrent use. Structural changes (create, destroy, add,
// remove) invalidate in-flight view cursors; defer them to a commit point.
type EntityManager struct {
	entities *EntityRegistry
	stores   []storage // indexed by ComponentTypeID; nil until first use
	active   []bool    // indexed by EntityID
	ops      *OpsRegistry
	capacity int
	log      *zap.Logger
}

type Option func(*EntityManager)

func WithLogger(log *zap.Logger) Option {
	return func(m *EntityManager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithOpsRegistry swaps DefaultOps for r.
func WithOpsRegistry(r *OpsRegistry) Option {
	return func(m *EntityManager) {
		if r != nil {
			m.ops = r
		}
	}
}

// WithCapacity presizes the registry and every component store.
func WithCapacity(n int) Option {
	return func(m *EntityManager) { m.capacity = n }
}

func NewEntityManager(opts ...Option) *EntityManager {
	m := &EntityManager{
		ops:      DefaultOps,
		capacity: 256,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.entities = NewEntityRegistry(m.capacity)
	m.stores = make([]storage, 0, 32)
	m.active = make([]bool, 0, m.capacity)
	return m
}

func (m *EntityManager) Entities() *EntityRegistry { return m.entities }
func (m *EntityManager) Ops() *OpsRegistry         { return m.ops }
func (m *EntityManager) Logger() *zap.Logger       { return m.log }

// Create allocates a new, active entity.
func (m *EntityManager) Create() EntityHandle {
	h := m.entities.Create()
	id := int(h.ID())
	for id >= len(m.active) {
		m.active = append(m.active, false)
	}
	m.active[id] = true
	return h
}

func (m *EntityManager) IsValid(h EntityHandle) bool {
	return m.entities.IsValid(h) && m.entities.Alive(h.ID())
}

// Len is the number of live entities.
func (m *EntityManager) Len() int { return m.entities.Len() }

// Destroy fires every attached component's OnRemove hook, erases all of the
// entity's components and retires the handle.
//
// Unlike RemoveByType, a veto returned from OnRemove does not block anything
// here: hooks get to clean up but the entity always goes away.
func (m *EntityManager) Destroy(h EntityHandle) bool {
	if !m.IsValid(h) {
		return false
	}
	id := h.ID()
	for i := 0; i < len(m.stores); i++ {
		s := m.stores[i]
		if s == nil || !s.Contains(id) {
			continue
		}
		tid := ComponentTypeID(i)
		if ops := m.ops.Ops(tid); ops.OnRemove != nil && !ops.OnRemove(s.Raw(id)) {
			m.log.Debug("remove veto ignored on destroy",
				zap.Stringer("entity", h), zap.String("component", TypeName(tid)))
		}
	}
	for _, s := range m.stores {
		if s != nil {
			s.Erase(id)
		}
	}
	m.active[id] = false
	return m.entities.Destroy(h)
}

func (m *EntityManager) store(tid ComponentTypeID) storage {
	if int(tid) >= len(m.stores) {
		return nil
	}
	return m.stores[tid]
}

// StoreOf returns the SparseSet backing T, or nil if no T was ever added.
func StoreOf[T any](m *EntityManager) *SparseSet[T] {
	s := m.store(TypeID[T]())
	if s == nil {
		return nil
	}
	return s.(*SparseSet[T])
}

func ensureStore[T any](m *EntityManager) *SparseSet[T] {
	tid := TypeID[T]()
	for int(tid) >= len(m.stores) {
		m.stores = append(m.stores, nil)
	}
	if s := m.stores[tid]; s != nil {
		return s.(*SparseSet[T])
	}
	if !m.ops.Registered(tid) {
		m.ops.Register(tid, ReflectOps[T]())
	}
	s := NewSparseSet[T](m.capacity)
	m.stores[tid] = s
	return s
}

// Emplace attaches a copy of v to h. Returns nil if h is stale or already
// has a T. Attach hooks are not fired; use Add on a GameObject for that.
func Emplace[T any](m *EntityManager, h EntityHandle, v T) *T {
	if !m.IsValid(h) {
		return nil
	}
	return ensureStore[T](m).Insert(h.ID(), v)
}

// Get returns h's T, or nil if h is stale or has none.
func Get[T any](m *EntityManager, h EntityHandle) *T {
	if !m.IsValid(h) {
		return nil
	}
	s := StoreOf[T](m)
	if s == nil {
		return nil
	}
	return s.Get(h.ID())
}

func Has[T any](m *EntityManager, h EntityHandle) bool {
	return m.HasType(h, TypeID[T]())
}

// Remove detaches h's T unless its OnRemove vetoes.
func Remove[T any](m *EntityManager, h EntityHandle) bool {
	return m.RemoveByType(h, TypeID[T]())
}

func (m *EntityManager) HasType(h EntityHandle, tid ComponentTypeID) bool {
	if !m.IsValid(h) {
		return false
	}
	s := m.store(tid)
	return s != nil && s.Contains(h.ID())
}

// RemoveByType is the type-erased form of Remove. OnRemove runs once; a false
// result leaves the component in place. No other hook fires.
func (m *EntityManager) RemoveByType(h EntityHandle, tid ComponentTypeID) bool {
	if !m.IsValid(h) {
		return false
	}
	s := m.store(tid)
	if s == nil || !s.Contains(h.ID()) {
		return false
	}
	if ops := m.ops.Ops(tid); ops.OnRemove != nil && !ops.OnRemove(s.Raw(h.ID())) {
		m.log.Debug("component removal vetoed",
			zap.Stringer("entity", h), zap.String("component", TypeName(tid)))
		return false
	}
	return s.Erase(h.ID())
}

// Raw returns h's component of type tid as an any holding *T, or nil. Meant
// for ops dispatch; typed code should use Get.
func (m *EntityManager) Raw(h EntityHandle, tid ComponentTypeID) any {
	if !m.IsValid(h) {
		return nil
	}
	s := m.store(tid)
	if s == nil {
		return nil
	}
	return s.Raw(h.ID())
}

// ComponentTypes lazily yields the id of every component type attached to h,
// in id order.
func (m *EntityManager) ComponentTypes(h EntityHandle) iter.Seq[ComponentTypeID] {
	return func(yield func(ComponentTypeID) bool) {
		if !m.IsValid(h) {
			return
		}
		id := h.ID()
		for i := 0; i < len(m.stores); i++ {
			if s := m.stores[i]; s != nil && s.Contains(id) {
				if !yield(ComponentTypeID(i)) {
					return
				}
			}
		}
	}
}

// Count is the number of entities carrying component type tid.
func (m *EntityManager) Count(tid ComponentTypeID) int {
	if s := m.store(tid); s != nil {
		return s.Len()
	}
	return 0
}

// Clone copies every component of src that dst lacks, via each type's Clone
// op. Returns the number of components copied; NonCloneable types are
// skipped silently.
func (m *EntityManager) Clone(src, dst EntityHandle) int {
	if src == dst || !m.IsValid(src) || !m.IsValid(dst) {
		return 0
	}
	n := 0
	for tid := range m.ComponentTypes(src) {
		if m.HasType(dst, tid) {
			continue
		}
		ops := m.ops.Ops(tid)
		if ops.Clone == nil {
			continue
		}
		if ops.Clone(m, src, dst) != nil {
			n++
		} else {
			m.log.Debug("component not cloned",
				zap.Stringer("source", src), zap.String("component", TypeName(tid)))
		}
	}
	return n
}

// IsActive reports h's GameObject-level active flag. Stale handles are inactive.
func (m *EntityManager) IsActive(h EntityHandle) bool {
	return m.IsValid(h) && m.active[h.ID()]
}

// SetActive flips h's active flag and notifies every attached component's
// OnActivate/OnDeactivate. Returns false when h is stale or the state is
// unchanged.
func (m *EntityManager) SetActive(h EntityHandle, active bool) bool {
	if !m.IsValid(h) || m.active[h.ID()] == active {
		return false
	}
	m.active[h.ID()] = active
	for tid := range m.ComponentTypes(h) {
		ops := m.ops.Ops(tid)
		c := m.Raw(h, tid)
		if active && ops.OnActivate != nil {
			ops.OnActivate(c)
		} else if !active && ops.OnDeactivate != nil {
			ops.OnDeactivate(c)
		}
	}
	return true
}

// SetEnabled calls Enable or Disable on h's component of type tid. Returns
// false if the component is missing or not a Toggler.
func (m *EntityManager) SetEnabled(h EntityHandle, tid ComponentTypeID, enabled bool) bool {
	c := m.Raw(h, tid)
	if c == nil {
		return false
	}
	ops := m.ops.Ops(tid)
	switch {
	case enabled && ops.Enable != nil:
		ops.Enable(c)
	case !enabled && ops.Disable != nil:
		ops.Disable(c)
	default:
		return false
	}
	return true
}

// Dispatch calls fn with the ops and component pointer of every component on h.
// The pooling subsystem uses it to fire OnAcquire/OnRelease.
func (m *EntityManager) Dispatch(h EntityHandle, fn func(tid ComponentTypeID, ops ComponentOps, c any)) {
	for tid := range m.ComponentTypes(h) {
		fn(tid, m.ops.Ops(tid), m.Raw(h, tid))
	}
}

// Clear destroys every live entity.
func (m *EntityManager) Clear() {
	var live []EntityHandle
	m.entities.Each(func(h EntityHandle) { live = append(live, h) })
	for _, h := range live {
		m.Destroy(h)
	}
}
