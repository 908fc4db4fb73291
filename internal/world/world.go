package world

import (
	"github.com/google/uuid"
	"github.com/l1jgo/gameworld/internal/core/ecs"
	"github.com/l1jgo/gameworld/internal/core/event"
	"go.uber.org/zap"
)

// World is the game-facing entity façade. It owns the EntityManager, a
// deferred command queue flushed at commit points, and the event bus that
// lifecycle notifications are emitted on.
//
// Accessed only from the game loop goroutine; no locks.
type World struct {
	id       string
	manager  *ecs.EntityManager
	bus      *event.Bus
	log      *zap.Logger
	commands []command
	flushing bool
}

func New(log *zap.Logger, bus *event.Bus, opts ...ecs.Option) *World {
	if log == nil {
		log = zap.NewNop()
	}
	if bus == nil {
		bus = event.NewBus()
	}
	id := uuid.NewString()
	log = log.With(zap.String("world", id))
	opts = append([]ecs.Option{ecs.WithLogger(log.Named("ecs"))}, opts...)
	return &World{
		id:       id,
		manager:  ecs.NewEntityManager(opts...),
		bus:      bus,
		log:      log,
		commands: make([]command, 0, 64),
	}
}

// ID identifies this world instance in logs.
func (w *World) ID() string { return w.id }

func (w *World) Manager() *ecs.EntityManager { return w.manager }
func (w *World) Bus() *event.Bus             { return w.bus }
func (w *World) Logger() *zap.Logger         { return w.log }

// Len is the number of live entities.
func (w *World) Len() int { return w.manager.Len() }

// AddGameObject creates a bare, active object.
func (w *World) AddGameObject() ecs.GameObject {
	return w.AddPrefabInstance("")
}

// AddPrefabInstance creates a bare object tagged with the prefab it will be
// built from; the tag only travels on the EntityCreated event.
func (w *World) AddPrefabInstance(prefab string) ecs.GameObject {
	h := w.manager.Create()
	event.Emit(w.bus, event.EntityCreated{Entity: h, Prefab: prefab})
	return ecs.NewGameObject(w.manager, h)
}

// Find wraps a handle, reporting whether it still refers to a live entity.
func (w *World) Find(h ecs.EntityHandle) (ecs.GameObject, bool) {
	if !w.manager.IsValid(h) {
		return ecs.GameObject{}, false
	}
	return ecs.NewGameObject(w.manager, h), true
}

// Clone creates a new object carrying copies of every cloneable component on
// src, with src's active state. Structural: do not call mid-iteration; use
// QueueClone there. Returns the zero GameObject if src is stale.
func (w *World) Clone(src ecs.GameObject) ecs.GameObject {
	if !src.IsValid() || src.Manager() != w.manager {
		return ecs.GameObject{}
	}
	h := w.manager.Create()
	n := w.manager.Clone(src.Handle(), h)
	if !src.IsActive() {
		w.manager.SetActive(h, false)
	}
	event.Emit(w.bus, event.EntityCloned{Source: src.Handle(), Clone: h, Copied: n})
	return ecs.NewGameObject(w.manager, h)
}

// Destroy removes an entity immediately. Structural: prefer
// MarkForDestruction while systems are iterating.
func (w *World) Destroy(h ecs.EntityHandle) bool {
	if !w.manager.Destroy(h) {
		return false
	}
	event.Emit(w.bus, event.EntityDestroyed{Entity: h})
	return true
}

// View1 is the world-level query factory for one component type.
func View1[A any](w *World) *ecs.View1[A] { return ecs.NewView1[A](w.manager) }

func View2[A, B any](w *World) *ecs.View2[A, B] { return ecs.NewView2[A, B](w.manager) }

func View3[A, B, C any](w *World) *ecs.View3[A, B, C] {
	return ecs.NewView3[A, B, C](w.manager)
}
