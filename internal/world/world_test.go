package world

import (
	"testing"

	"github.com/l1jgo/gameworld/internal/core/ecs"
	"github.com/l1jgo/gameworld/internal/core/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type health struct{ HP int }

type shield struct{ Up bool }

func (s *shield) OnRemove() bool { return !s.Up }

type spawner struct{ Parent ecs.EntityHandle }

func newTestWorld(t *testing.T) *World {
	t.Helper()
	return New(zaptest.NewLogger(t), nil, ecs.WithCapacity(16))
}

func drain[T any](b *event.Bus) []T {
	var got []T
	event.Subscribe(b, func(ev T) { got = append(got, ev) })
	b.SwapBuffers()
	b.DispatchAll()
	return got
}

func TestWorldAddAndFind(t *testing.T) {
	w := newTestWorld(t)
	obj := w.AddGameObject()
	require.True(t, obj.IsValid())
	assert.True(t, obj.IsActive())

	found, ok := w.Find(obj.Handle())
	require.True(t, ok)
	assert.Equal(t, obj, found)
	assert.Equal(t, 1, w.Len())

	created := drain[event.EntityCreated](w.Bus())
	require.Len(t, created, 1)
	assert.Equal(t, obj.Handle(), created[0].Entity)
}

func TestWorldIDsAreDistinct(t *testing.T) {
	a, b := newTestWorld(t), newTestWorld(t)
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestWorldFindStale(t *testing.T) {
	w := newTestWorld(t)
	obj := w.AddGameObject()
	require.True(t, w.Destroy(obj.Handle()))

	_, ok := w.Find(obj.Handle())
	assert.False(t, ok)
	assert.False(t, w.Destroy(obj.Handle()))
}

func TestWorldDeferredDestroy(t *testing.T) {
	w := newTestWorld(t)
	obj := w.AddGameObject()
	ecs.Add(obj, health{HP: 5})

	w.MarkForDestruction(obj.Handle())
	assert.True(t, obj.IsValid())
	assert.Equal(t, 1, w.Pending())

	assert.Equal(t, 1, w.Flush())
	assert.False(t, obj.IsValid())
	assert.Equal(t, 0, w.Pending())

	destroyed := drain[event.EntityDestroyed](w.Bus())
	require.Len(t, destroyed, 1)
	assert.Equal(t, obj.Handle(), destroyed[0].Entity)
}

func TestWorldDestroyQueuedDuringIteration(t *testing.T) {
	w := newTestWorld(t)
	for i := 0; i < 10; i++ {
		ecs.Add(w.AddGameObject(), health{HP: i})
	}

	View1[health](w).Each(func(o ecs.GameObject, h *health) {
		if h.HP%2 == 0 {
			w.MarkForDestruction(o.Handle())
		}
	})
	assert.Equal(t, 10, w.Len())
	assert.Equal(t, 5, w.Flush())
	assert.Equal(t, 5, w.Len())
	View1[health](w).Each(func(_ ecs.GameObject, h *health) {
		assert.Equal(t, 1, h.HP%2)
	})
}

func TestWorldDoubleMarkAppliesOnce(t *testing.T) {
	w := newTestWorld(t)
	obj := w.AddGameObject()
	w.MarkForDestruction(obj.Handle())
	w.MarkForDestruction(obj.Handle())
	assert.Equal(t, 1, w.Flush())
}

func TestWorldQueuedRemoveHonorsVeto(t *testing.T) {
	w := newTestWorld(t)
	obj := w.AddGameObject()
	ecs.Add(obj, shield{Up: true})

	QueueRemoveComponent[shield](w, obj.Handle())
	assert.Equal(t, 0, w.Flush())
	assert.True(t, ecs.HasComponent[shield](obj))

	vetoed := drain[event.RemovalVetoed](w.Bus())
	require.Len(t, vetoed, 1)
	assert.Equal(t, ecs.TypeID[shield](), vetoed[0].Component)

	ecs.Component[shield](obj).Up = false
	QueueRemoveComponent[shield](w, obj.Handle())
	assert.Equal(t, 1, w.Flush())
	assert.False(t, ecs.HasComponent[shield](obj))
}

func TestWorldQueuedRemoveOfAbsentComponent(t *testing.T) {
	w := newTestWorld(t)
	obj := w.AddGameObject()
	QueueRemoveComponent[health](w, obj.Handle())
	assert.Equal(t, 0, w.Flush())
	assert.Empty(t, drain[event.ComponentRemoved](w.Bus()))
}

func TestWorldClone(t *testing.T) {
	w := newTestWorld(t)
	src := w.AddGameObject()
	ecs.Add(src, health{HP: 30})
	src.SetActive(false)

	dup := w.Clone(src)
	require.True(t, dup.IsValid())
	assert.NotEqual(t, src.Handle(), dup.Handle())
	assert.Equal(t, 30, ecs.Component[health](dup).HP)
	assert.False(t, dup.IsActive())

	ecs.Component[health](dup).HP = 1
	assert.Equal(t, 30, ecs.Component[health](src).HP)
}

func TestWorldCloneStale(t *testing.T) {
	w := newTestWorld(t)
	src := w.AddGameObject()
	w.Destroy(src.Handle())
	assert.False(t, w.Clone(src).IsValid())

	other := New(nil, nil)
	assert.False(t, w.Clone(other.AddGameObject()).IsValid())
}

func TestWorldQueuedClone(t *testing.T) {
	w := newTestWorld(t)
	src := w.AddGameObject()
	ecs.Add(src, health{HP: 9})

	var got ecs.GameObject
	w.QueueClone(src, func(o ecs.GameObject) { got = o })
	assert.Equal(t, 1, w.Len())
	assert.Equal(t, 1, w.Flush())
	require.True(t, got.IsValid())
	assert.Equal(t, 9, ecs.Component[health](got).HP)

	cloned := drain[event.EntityCloned](w.Bus())
	require.Len(t, cloned, 1)
	assert.Equal(t, src.Handle(), cloned[0].Source)
	assert.Equal(t, 1, cloned[0].Copied)
}

func TestWorldCommandsQueuedDuringFlushApplyInSamePass(t *testing.T) {
	w := newTestWorld(t)
	parent := w.AddGameObject()
	ecs.Add(parent, spawner{})

	w.QueueClone(parent, func(o ecs.GameObject) {
		ecs.Component[spawner](o).Parent = parent.Handle()
		w.MarkForDestruction(parent.Handle())
	})
	assert.Equal(t, 2, w.Flush())
	assert.False(t, parent.IsValid())
	assert.Equal(t, 1, w.Len())
}

func TestWorldStaleCommandsDropped(t *testing.T) {
	w := newTestWorld(t)
	obj := w.AddGameObject()
	w.Destroy(obj.Handle())

	w.MarkForDestruction(obj.Handle())
	w.QueueRemove(obj.Handle(), ecs.TypeID[health]())
	w.QueueClone(obj, nil)
	assert.Equal(t, 0, w.Flush())
	assert.Equal(t, 0, w.Pending())
}

func TestWorldViewFactories(t *testing.T) {
	w := newTestWorld(t)
	a := w.AddGameObject()
	ecs.Add(a, health{})
	ecs.Add(a, shield{})
	ecs.Add(a, spawner{})

	assert.Equal(t, 1, View1[health](w).Count())
	assert.Equal(t, 1, View2[health, shield](w).Count())
	assert.Equal(t, 1, View3[health, shield, spawner](w).Count())
}
