package pool

import (
	"github.com/l1jgo/gameworld/internal/core/ecs"
	"github.com/l1jgo/gameworld/internal/world"
	"go.uber.org/zap"
)

// Factory builds a fresh object when the pool has nothing parked.
type Factory func(w *world.World) ecs.GameObject

// Pool recycles GameObjects instead of destroying them. Parked objects stay
// alive but inactive; their components receive OnRelease when parked and
// OnAcquire when handed out again.
//
// Accessed only from the game loop goroutine.
type Pool struct {
	name    string
	world   *world.World
	factory Factory
	parked  []ecs.EntityHandle
	isFree  map[ecs.EntityHandle]struct{}
	log     *zap.Logger
}

func New(name string, w *world.World, factory Factory) *Pool {
	return &Pool{
		name:    name,
		world:   w,
		factory: factory,
		parked:  make([]ecs.EntityHandle, 0, 32),
		isFree:  make(map[ecs.EntityHandle]struct{}, 32),
		log:     w.Logger().With(zap.String("pool", name)),
	}
}

func (p *Pool) Name() string { return p.name }

// Len is the number of parked objects.
func (p *Pool) Len() int { return len(p.parked) }

// Acquire returns a parked object if one is still alive, otherwise a new one
// from the factory. The object is activated and every component's OnAcquire
// fires before it is returned.
func (p *Pool) Acquire() ecs.GameObject {
	m := p.world.Manager()
	for len(p.parked) > 0 {
		h := p.parked[len(p.parked)-1]
		p.parked = p.parked[:len(p.parked)-1]
		delete(p.isFree, h)
		if !m.IsValid(h) {
			// Destroyed behind our back while parked.
			continue
		}
		obj := ecs.NewGameObject(m, h)
		p.activate(obj)
		return obj
	}

	obj := p.factory(p.world)
	if !obj.IsValid() {
		p.log.Warn("pool factory returned an invalid object")
		return obj
	}
	p.activate(obj)
	return obj
}

func (p *Pool) activate(obj ecs.GameObject) {
	obj.SetActive(true)
	obj.Manager().Dispatch(obj.Handle(), func(_ ecs.ComponentTypeID, ops ecs.ComponentOps, c any) {
		if ops.OnAcquire != nil {
			ops.OnAcquire(c)
		}
	})
}

// Release parks obj: OnRelease fires on every component, then the object is
// deactivated. Returns false for stale or already parked objects.
func (p *Pool) Release(obj ecs.GameObject) bool {
	if !obj.IsValid() || obj.Manager() != p.world.Manager() {
		return false
	}
	h := obj.Handle()
	if _, parked := p.isFree[h]; parked {
		return false
	}
	obj.Manager().Dispatch(h, func(_ ecs.ComponentTypeID, ops ecs.ComponentOps, c any) {
		if ops.OnRelease != nil {
			ops.OnRelease(c)
		}
	})
	obj.SetActive(false)
	p.parked = append(p.parked, h)
	p.isFree[h] = struct{}{}
	return true
}

// Prewarm builds n objects through the factory and parks them.
func (p *Pool) Prewarm(n int) int {
	made := 0
	for i := 0; i < n; i++ {
		obj := p.factory(p.world)
		if !obj.IsValid() {
			break
		}
		if p.Release(obj) {
			made++
		}
	}
	if made > 0 {
		p.log.Debug("pool prewarmed", zap.Int("count", made))
	}
	return made
}

// Drain queues every parked object for destruction at the next commit.
func (p *Pool) Drain() int {
	n := len(p.parked)
	for _, h := range p.parked {
		p.world.MarkForDestruction(h)
	}
	p.parked = p.parked[:0]
	clear(p.isFree)
	return n
}
