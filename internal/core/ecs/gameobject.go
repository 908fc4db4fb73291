package ecs

import "fmt"

// GameObject pairs an EntityHandle with its manager. It owns nothing; copies
// refer to the same entity and go stale together when it is destroyed.
//
// The zero GameObject has no manager. Calling mutating helpers on it panics;
// calling them on a stale object returns nil/false.
type GameObject struct {
	handle  EntityHandle
	manager *EntityManager
}

func NewGameObject(m *EntityManager, h EntityHandle) GameObject {
	return GameObject{handle: h, manager: m}
}

func (o GameObject) Handle() EntityHandle    { return o.handle }
func (o GameObject) Manager() *EntityManager { return o.manager }

// IsValid reports whether the object has a manager and its entity is alive.
func (o GameObject) IsValid() bool {
	return o.manager != nil && o.manager.IsValid(o.handle)
}

func (o GameObject) IsActive() bool {
	return o.manager != nil && o.manager.IsActive(o.handle)
}

// SetActive is a no-op when the state is unchanged; otherwise every attached
// component's activation hook is notified.
func (o GameObject) SetActive(active bool) {
	o.mustManager().SetActive(o.handle, active)
}

func (o GameObject) Destroy() bool {
	return o.mustManager().Destroy(o.handle)
}

func (o GameObject) String() string {
	if o.manager == nil {
		return "GameObject(nil)"
	}
	return fmt.Sprintf("GameObject(%s)", o.handle)
}

func (o GameObject) mustManager() *EntityManager {
	if o.manager == nil {
		panic("ecs: GameObject has no manager")
	}
	return o.manager
}

// Add attaches v and finalizes it: OnAttach, then OnActivate or OnDeactivate
// depending on the object's active state. Adding a type the object already
// has is a programmer error and panics. Returns nil for a stale object.
func Add[T any](o GameObject, v T) *T {
	m := o.mustManager()
	if !m.IsValid(o.handle) {
		return nil
	}
	if Has[T](m, o.handle) {
		panic(fmt.Sprintf("ecs: %s already has %s", o.handle, TypeName(TypeID[T]())))
	}
	c := Emplace(m, o.handle, v)
	ops := m.ops.Ops(TypeID[T]())
	if ops.OnAttach != nil {
		ops.OnAttach(c, o)
	}
	// Hooks may have grown this store; re-read before every use.
	c = Get[T](m, o.handle)
	if c == nil {
		return nil
	}
	if m.IsActive(o.handle) {
		if ops.OnActivate != nil {
			ops.OnActivate(c)
		}
	} else if ops.OnDeactivate != nil {
		ops.OnDeactivate(c)
	}
	return Get[T](m, o.handle)
}

// GetOrAdd returns the existing T or adds v.
func GetOrAdd[T any](o GameObject, v T) *T {
	if c := Component[T](o); c != nil {
		return c
	}
	return Add(o, v)
}

// Component returns the object's T, or nil.
func Component[T any](o GameObject) *T {
	if o.manager == nil {
		return nil
	}
	return Get[T](o.manager, o.handle)
}

func HasComponent[T any](o GameObject) bool {
	return o.manager != nil && Has[T](o.manager, o.handle)
}

// RemoveComponent detaches T unless its OnRemove vetoes.
func RemoveComponent[T any](o GameObject) bool {
	return Remove[T](o.mustManager(), o.handle)
}
