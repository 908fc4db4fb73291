package system

import (
	"time"

	"github.com/l1jgo/gameworld/internal/component"
	"github.com/l1jgo/gameworld/internal/core/ecs"
	coresys "github.com/l1jgo/gameworld/internal/core/system"
	"github.com/l1jgo/gameworld/internal/pool"
	"github.com/l1jgo/gameworld/internal/world"
	"go.uber.org/zap"
)

// LifetimeSystem counts down Lifetime on active objects. Expired objects go
// back to their named pool when one is registered, otherwise they are marked
// for destruction. Phase 3 (PostUpdate).
type LifetimeSystem struct {
	world   *world.World
	pools   map[string]*pool.Pool
	expired []ecs.GameObject
	log     *zap.Logger
}

func NewLifetimeSystem(w *world.World, pools ...*pool.Pool) *LifetimeSystem {
	s := &LifetimeSystem{
		world: w,
		pools: make(map[string]*pool.Pool, len(pools)),
		log:   w.Logger().Named("lifetime"),
	}
	for _, p := range pools {
		s.pools[p.Name()] = p
	}
	return s
}

func (s *LifetimeSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *LifetimeSystem) Update(dt time.Duration) {
	s.expired = s.expired[:0]
	world.View1[component.Lifetime](s.world).Each(func(obj ecs.GameObject, l *component.Lifetime) {
		if !obj.IsActive() || l.TTL <= 0 {
			return
		}
		l.Remaining -= dt
		if l.Expired() {
			s.expired = append(s.expired, obj)
		}
	})

	// Release and destroy outside the iteration.
	for _, obj := range s.expired {
		l := ecs.Component[component.Lifetime](obj)
		if p, ok := s.pools[l.Pooled]; ok {
			if p.Release(obj) {
				continue
			}
			s.log.Debug("pool refused expired object",
				zap.String("pool", l.Pooled), zap.Stringer("entity", obj.Handle()))
		}
		s.world.MarkForDestruction(obj.Handle())
	}
}
