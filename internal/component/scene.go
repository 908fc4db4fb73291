package component

import (
	"sync/atomic"

	"github.com/l1jgo/gameworld/internal/core/ecs"
)

var nextNode atomic.Uint64

// NewSceneNode allocates an opaque scene-graph node id. The scene graph
// itself lives outside the entity core; components only hold the id.
func NewSceneNode() uint64 { return nextNode.Add(1) }

// SceneNodeRef binds an entity to its scene-graph node. A node belongs to
// exactly one entity, so a cloned ref gets its own node parented like the
// source's.
type SceneNodeRef struct {
	Node   uint64 `yaml:"-"`
	Parent uint64 `yaml:"parent"`
	Layer  string `yaml:"layer"`
}

func (s *SceneNodeRef) OnAttach(ecs.GameObject) {
	if s.Node == 0 {
		s.Node = NewSceneNode()
	}
}

func (s *SceneNodeRef) OnClone(src *SceneNodeRef) {
	s.Node = NewSceneNode()
	s.Parent = src.Parent
}

// Renderable follows its object's active state: inactive objects are hidden
// without losing their sprite.
type Renderable struct {
	Sprite  string `yaml:"sprite"`
	Visible bool   `yaml:"-"`
}

func (r *Renderable) OnActivate()   { r.Visible = true }
func (r *Renderable) OnDeactivate() { r.Visible = false }
