package system

import (
	"time"

	"github.com/l1jgo/gameworld/internal/component"
	"github.com/l1jgo/gameworld/internal/core/ecs"
	coresys "github.com/l1jgo/gameworld/internal/core/system"
	"github.com/l1jgo/gameworld/internal/world"
)

// MovementSystem integrates Velocity into Transform for active objects whose
// velocity is not frozen. Phase 2 (Update).
type MovementSystem struct {
	world *world.World
}

func NewMovementSystem(w *world.World) *MovementSystem {
	return &MovementSystem{world: w}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *MovementSystem) Update(dt time.Duration) {
	secs := dt.Seconds()
	world.View2[component.Transform, component.Velocity](s.world).
		WhereEnabled().
		Each(func(obj ecs.GameObject, tr *component.Transform, v *component.Velocity) {
			if !obj.IsActive() {
				return
			}
			tr.X += v.DX * secs
			tr.Y += v.DY * secs
		})
}
