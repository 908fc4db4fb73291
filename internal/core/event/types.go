package event

import "github.com/l1jgo/gameworld/internal/core/ecs"

// Lifecycle events emitted by the world when it applies structural changes
// at a commit point.

type EntityCreated struct {
	Entity ecs.EntityHandle
	Prefab string // empty for objects not built from a prefab
}

type EntityDestroyed struct {
	Entity ecs.EntityHandle
}

type ComponentRemoved struct {
	Entity    ecs.EntityHandle
	Component ecs.ComponentTypeID
}

// RemovalVetoed reports a queued remove that the component refused.
type RemovalVetoed struct {
	Entity    ecs.EntityHandle
	Component ecs.ComponentTypeID
}

type EntityCloned struct {
	Source ecs.EntityHandle
	Clone  ecs.EntityHandle
	Copied int
}
