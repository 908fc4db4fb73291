package component

import (
	"time"

	"github.com/l1jgo/gameworld/internal/core/ecs"
)

// Lifetime expires an entity after TTL of active time. A zero TTL never
// expires. When Pooled is set the lifetime system returns the object to its
// pool instead of destroying it.
type Lifetime struct {
	TTL       time.Duration `yaml:"ttl"`
	Remaining time.Duration `yaml:"-"`
	Pooled    string        `yaml:"pool"`
}

func (l *Lifetime) OnAttach(ecs.GameObject) { l.Remaining = l.TTL }

// OnAcquire rewinds the clock each time the object leaves a pool.
func (l *Lifetime) OnAcquire() { l.Remaining = l.TTL }

func (l *Lifetime) OnRelease() { l.Remaining = 0 }

// Expired reports whether a finite lifetime has run out.
func (l *Lifetime) Expired() bool { return l.TTL > 0 && l.Remaining <= 0 }
