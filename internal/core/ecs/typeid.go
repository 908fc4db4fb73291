package ecs

import (
	"reflect"
	"sync"
)

// ComponentTypeID is a dense, zero-based index assigned to each component type
// on first request. It indexes the manager's store table and the ops registry.
//
// Ids follow first-use order, so they are stable within a process run only.
// Never persist them.
type ComponentTypeID uint32

var componentTypes = struct {
	sync.RWMutex
	byType map[reflect.Type]ComponentTypeID
	types  []reflect.Type
}{
	byType: make(map[reflect.Type]ComponentTypeID, 64),
}

// TypeID returns T's id, assigning the next free one on first use.
func TypeID[T any]() ComponentTypeID {
	return typeIDOf(reflect.TypeFor[T]())
}

func typeIDOf(t reflect.Type) ComponentTypeID {
	componentTypes.RLock()
	id, ok := componentTypes.byType[t]
	componentTypes.RUnlock()
	if ok {
		return id
	}

	componentTypes.Lock()
	defer componentTypes.Unlock()
	if id, ok := componentTypes.byType[t]; ok {
		return id
	}
	id = ComponentTypeID(len(componentTypes.types))
	componentTypes.byType[t] = id
	componentTypes.types = append(componentTypes.types, t)
	return id
}

// TypeOf maps an id back to its Go type, or nil for an unassigned id.
func TypeOf(id ComponentTypeID) reflect.Type {
	componentTypes.RLock()
	defer componentTypes.RUnlock()
	if int(id) >= len(componentTypes.types) {
		return nil
	}
	return componentTypes.types[id]
}

// TypeName is a diagnostic label for logs.
func TypeName(id ComponentTypeID) string {
	if t := TypeOf(id); t != nil {
		return t.String()
	}
	return "<unknown>"
}

// NumTypes is the number of ids assigned so far.
func NumTypes() int {
	componentTypes.RLock()
	defer componentTypes.RUnlock()
	return len(componentTypes.types)
}
