package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: collect external input
	PhasePreUpdate               // 1: deliver last tick's events
	PhaseUpdate                  // 2: game logic
	PhasePostUpdate              // 3: expiry, pooling, bookkeeping
	PhaseCommit                  // 4: last chance to queue structural changes
)

var phaseNames = [...]string{"input", "pre-update", "update", "post-update", "commit"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
