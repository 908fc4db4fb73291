package world

import (
	"github.com/l1jgo/gameworld/internal/core/ecs"
	"github.com/l1jgo/gameworld/internal/core/event"
	"go.uber.org/zap"
)

type commandKind uint8

const (
	cmdDestroy commandKind = iota
	cmdRemove
	cmdClone
)

func (k commandKind) String() string {
	switch k {
	case cmdDestroy:
		return "destroy"
	case cmdRemove:
		return "remove"
	case cmdClone:
		return "clone"
	}
	return "unknown"
}

// command is one deferred structural change.
type command struct {
	kind   commandKind
	entity ecs.EntityHandle
	typeID ecs.ComponentTypeID
	done   func(ecs.GameObject)
}

// MarkForDestruction queues an entity for destruction at the next Flush.
func (w *World) MarkForDestruction(h ecs.EntityHandle) {
	w.commands = append(w.commands, command{kind: cmdDestroy, entity: h})
}

// QueueRemove queues removal of one component type. The component's
// OnRemove veto is honored when the command is applied.
func (w *World) QueueRemove(h ecs.EntityHandle, tid ecs.ComponentTypeID) {
	w.commands = append(w.commands, command{kind: cmdRemove, entity: h, typeID: tid})
}

// QueueRemoveComponent is QueueRemove for a static type.
func QueueRemoveComponent[T any](w *World, h ecs.EntityHandle) {
	w.QueueRemove(h, ecs.TypeID[T]())
}

// QueueClone queues a clone of src; done (if non-nil) receives the new object
// when the clone is applied.
func (w *World) QueueClone(src ecs.GameObject, done func(ecs.GameObject)) {
	w.commands = append(w.commands, command{kind: cmdClone, entity: src.Handle(), done: done})
}

// Pending is the number of queued commands.
func (w *World) Pending() int { return len(w.commands) }

// Flush applies every queued command in FIFO order. Commands queued by hooks
// while flushing are applied in the same pass. Commands whose entity has
// gone stale are dropped. Returns the number of commands that took effect.
func (w *World) Flush() int {
	if w.flushing {
		return 0
	}
	w.flushing = true
	defer func() { w.flushing = false }()

	applied := 0
	for i := 0; i < len(w.commands); i++ {
		if w.apply(w.commands[i]) {
			applied++
		}
	}
	clear(w.commands)
	w.commands = w.commands[:0]
	return applied
}

func (w *World) apply(c command) bool {
	if !w.manager.IsValid(c.entity) {
		w.log.Debug("dropping command for stale entity",
			zap.Stringer("kind", c.kind), zap.Stringer("entity", c.entity))
		return false
	}
	switch c.kind {
	case cmdDestroy:
		return w.Destroy(c.entity)
	case cmdRemove:
		if !w.manager.HasType(c.entity, c.typeID) {
			return false
		}
		if !w.manager.RemoveByType(c.entity, c.typeID) {
			event.Emit(w.bus, event.RemovalVetoed{Entity: c.entity, Component: c.typeID})
			return false
		}
		event.Emit(w.bus, event.ComponentRemoved{Entity: c.entity, Component: c.typeID})
		return true
	case cmdClone:
		obj := w.Clone(ecs.NewGameObject(w.manager, c.entity))
		if c.done != nil {
			c.done(obj)
		}
		return true
	}
	return false
}
