package ecs

import "sync"

// Capabilities a component may expose on its pointer type. None is required;
// a plain struct is a valid component.
type (
	// Remover may veto removal of a single component.
	Remover interface{ OnRemove() bool }
	// Acquirer is notified when its object leaves a reuse pool.
	Acquirer interface{ OnAcquire() }
	// Releaser is notified when its object is parked in a reuse pool.
	Releaser interface{ OnRelease() }
	// Toggler must provide both halves.
	Toggler interface {
		Enable()
		Disable()
	}
	// EnabledReporter is consulted by views filtered with WhereEnabled.
	EnabledReporter interface{ IsEnabled() bool }
	// Activator follows the owning GameObject's active state; both halves required.
	Activator interface {
		OnActivate()
		OnDeactivate()
	}
	// Attacher runs once after the component is added through a GameObject.
	Attacher interface{ OnAttach(obj GameObject) }
	// CloneHook runs on the fresh copy after a clone, receiving the source.
	CloneHook[T any] interface{ OnClone(src *T) }
	// NonCloneable components are skipped when an entity is cloned.
	NonCloneable interface{ NonCloneable() }
)

// ComponentOps is the per-type dispatch table. Each field is nil when the type
// lacks that capability, so callers nil-check per operation. Component
// arguments are any values holding *T.
type ComponentOps struct {
	OnAcquire    func(c any)
	OnRelease    func(c any)
	OnRemove     func(c any) bool
	Enable       func(c any)
	Disable      func(c any)
	IsEnabled    func(c any) bool
	Clone        func(m *EntityManager, src, dst EntityHandle) any
	OnActivate   func(c any)
	OnDeactivate func(c any)
	OnAttach     func(c any, obj GameObject)
}

// OpsRegistry holds one ComponentOps per ComponentTypeID.
type OpsRegistry struct {
	mu  sync.RWMutex
	ops []ComponentOps
	set []bool
}

func NewOpsRegistry() *OpsRegistry {
	return &OpsRegistry{
		ops: make([]ComponentOps, 0, 64),
		set: make([]bool, 0, 64),
	}
}

// DefaultOps is the process-wide registry used by managers unless
// WithOpsRegistry says otherwise.
var DefaultOps = NewOpsRegistry()

// Register stores ops for id. Registering the same id again replaces the
// previous table.
func (r *OpsRegistry) Register(id ComponentTypeID, ops ComponentOps) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for int(id) >= len(r.ops) {
		r.ops = append(r.ops, ComponentOps{})
		r.set = append(r.set, false)
	}
	r.ops[id] = ops
	r.set[id] = true
}

// Ops returns the table for id; an unregistered id yields an all-nil table.
func (r *OpsRegistry) Ops(id ComponentTypeID) ComponentOps {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(id) >= len(r.ops) {
		return ComponentOps{}
	}
	return r.ops[id]
}

func (r *OpsRegistry) Registered(id ComponentTypeID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int(id) < len(r.set) && r.set[id]
}

// RegisterType builds T's ops table in DefaultOps and returns T's id. Safe to
// call repeatedly.
func RegisterType[T any]() ComponentTypeID {
	return RegisterTypeIn[T](DefaultOps)
}

// RegisterTypeIn is RegisterType against a specific registry.
func RegisterTypeIn[T any](r *OpsRegistry) ComponentTypeID {
	id := TypeID[T]()
	r.Register(id, ReflectOps[T]())
	return id
}

// ReflectOps probes *T for each capability and wires a forwarding closure
// where present. OnRemove defaults to always-allow; Clone is a nil-returning
// no-op for NonCloneable types.
func ReflectOps[T any]() ComponentOps {
	var ops ComponentOps
	probe := any(new(T))

	if _, ok := probe.(Remover); ok {
		ops.OnRemove = func(c any) bool { return c.(Remover).OnRemove() }
	} else {
		ops.OnRemove = func(any) bool { return true }
	}
	if _, ok := probe.(Acquirer); ok {
		ops.OnAcquire = func(c any) { c.(Acquirer).OnAcquire() }
	}
	if _, ok := probe.(Releaser); ok {
		ops.OnRelease = func(c any) { c.(Releaser).OnRelease() }
	}
	if _, ok := probe.(Toggler); ok {
		ops.Enable = func(c any) { c.(Toggler).Enable() }
		ops.Disable = func(c any) { c.(Toggler).Disable() }
	}
	if _, ok := probe.(EnabledReporter); ok {
		ops.IsEnabled = func(c any) bool { return c.(EnabledReporter).IsEnabled() }
	}
	if _, ok := probe.(Activator); ok {
		ops.OnActivate = func(c any) { c.(Activator).OnActivate() }
		ops.OnDeactivate = func(c any) { c.(Activator).OnDeactivate() }
	}
	if _, ok := probe.(Attacher); ok {
		ops.OnAttach = func(c any, obj GameObject) { c.(Attacher).OnAttach(obj) }
	}
	if _, ok := probe.(NonCloneable); ok {
		ops.Clone = func(*EntityManager, EntityHandle, EntityHandle) any { return nil }
	} else {
		ops.Clone = cloneInto[T]
	}
	return ops
}

// cloneInto copies src's T onto dst, then lets the copy re-derive anything
// that must not be shared via OnClone.
func cloneInto[T any](m *EntityManager, src, dst EntityHandle) any {
	s := Get[T](m, src)
	if s == nil {
		return nil
	}
	c := Emplace(m, dst, *s)
	if c == nil {
		return nil
	}
	if h, ok := any(c).(CloneHook[T]); ok {
		h.OnClone(Get[T](m, src))
	}
	return c
}
