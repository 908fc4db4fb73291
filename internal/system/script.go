package system

import (
	"time"

	coresys "github.com/l1jgo/gameworld/internal/core/system"
	"github.com/l1jgo/gameworld/internal/scripting"
	"go.uber.org/zap"
)

// ScriptSystem calls the scripts' on_tick each tick. Script errors are logged
// and do not stop the loop. Phase 2 (Update).
type ScriptSystem struct {
	engine *scripting.Engine
	log    *zap.Logger
}

func NewScriptSystem(engine *scripting.Engine, log *zap.Logger) *ScriptSystem {
	return &ScriptSystem{engine: engine, log: log}
}

func (s *ScriptSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *ScriptSystem) Update(dt time.Duration) {
	if err := s.engine.Tick(dt); err != nil {
		s.log.Error("script tick failed", zap.Error(err))
	}
}
