package system

import (
	"time"

	"github.com/l1jgo/gameworld/internal/component"
	"github.com/l1jgo/gameworld/internal/core/ecs"
	coresys "github.com/l1jgo/gameworld/internal/core/system"
	"github.com/l1jgo/gameworld/internal/world"
)

// DeathSystem marks active objects whose Health has dropped to zero for
// destruction. Phase 3 (PostUpdate).
type DeathSystem struct {
	world *world.World
}

func NewDeathSystem(w *world.World) *DeathSystem {
	return &DeathSystem{world: w}
}

func (s *DeathSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *DeathSystem) Update(_ time.Duration) {
	world.View1[component.Health](s.world).Each(func(obj ecs.GameObject, h *component.Health) {
		if obj.IsActive() && h.Dead() {
			s.world.MarkForDestruction(obj.Handle())
		}
	})
}
