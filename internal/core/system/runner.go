package system

import (
	"slices"
	"time"
)

// Runner executes systems in phase order each tick. Systems within a phase
// keep registration order. After each phase the commit hook runs, which is
// where deferred structural changes are applied; systems never see the
// entity store change underneath an iteration.
type Runner struct {
	systems []System
	sorted  bool
	commit  func()
	ticks   uint64
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 16),
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// SetCommitHook installs fn to run between phases.
func (r *Runner) SetCommitHook(fn func()) {
	r.commit = fn
}

// Tick runs every phase in order, committing after each non-empty one.
func (r *Runner) Tick(dt time.Duration) {
	r.ensureSorted()
	for i := 0; i < len(r.systems); {
		phase := r.systems[i].Phase()
		for ; i < len(r.systems) && r.systems[i].Phase() == phase; i++ {
			r.systems[i].Update(dt)
		}
		r.runCommit()
	}
	r.ticks++
}

// TickPhase runs only the systems of one phase, then commits.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() == phase {
			s.Update(dt)
		}
	}
	r.runCommit()
}

// Ticks is the number of completed Tick calls.
func (r *Runner) Ticks() uint64 { return r.ticks }

// Len is the number of registered systems.
func (r *Runner) Len() int { return len(r.systems) }

func (r *Runner) runCommit() {
	if r.commit != nil {
		r.commit()
	}
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		slices.SortStableFunc(r.systems, func(a, b System) int {
			return int(a.Phase()) - int(b.Phase())
		})
		r.sorted = true
	}
}
