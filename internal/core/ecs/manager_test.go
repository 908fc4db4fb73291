package ecs

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestManager(t *testing.T) *EntityManager {
	t.Helper()
	return NewEntityManager(WithLogger(zaptest.NewLogger(t)), WithCapacity(8))
}

func TestManagerEmplaceGetHas(t *testing.T) {
	m := newTestManager(t)
	h := m.Create()

	p := Emplace(m, h, position{X: 3, Y: 4})
	require.NotNil(t, p)
	assert.True(t, Has[position](m, h))
	assert.False(t, Has[velocity](m, h))
	assert.Equal(t, position{X: 3, Y: 4}, *Get[position](m, h))
	assert.Nil(t, Get[velocity](m, h))
	assert.Equal(t, 1, m.Count(TypeID[position]()))
}

func TestManagerDoubleEmplaceRejected(t *testing.T) {
	m := newTestManager(t)
	h := m.Create()

	require.NotNil(t, Emplace(m, h, position{X: 1}))
	assert.Nil(t, Emplace(m, h, position{X: 2}))
	assert.Equal(t, 1.0, Get[position](m, h).X)
}

func TestManagerStaleHandle(t *testing.T) {
	m := newTestManager(t)
	h := m.Create()
	Emplace(m, h, position{})
	require.True(t, m.Destroy(h))

	assert.False(t, m.IsValid(h))
	assert.Nil(t, Emplace(m, h, velocity{}))
	assert.Nil(t, Get[position](m, h))
	assert.False(t, Has[position](m, h))
	assert.False(t, Remove[position](m, h))
	assert.Nil(t, m.Raw(h, TypeID[position]()))
	assert.False(t, m.Destroy(h))
	assert.Equal(t, 0, m.Clone(h, m.Create()))
}

func TestManagerRecyclesWithoutLeakingComponents(t *testing.T) {
	m := newTestManager(t)
	h := m.Create()
	Emplace(m, h, position{X: 1})
	m.Destroy(h)

	n := m.Create()
	require.Equal(t, h.ID(), n.ID())
	assert.Equal(t, h.Version()+1, n.Version())
	assert.False(t, Has[position](m, n))
}

func TestManagerRemoveVetoScenario(t *testing.T) {
	m := newTestManager(t)
	h := m.Create()
	Emplace(m, h, lockable{Locked: true})

	assert.False(t, Remove[lockable](m, h))
	assert.True(t, Has[lockable](m, h))

	Get[lockable](m, h).Locked = false
	assert.True(t, Remove[lockable](m, h))
	assert.False(t, Has[lockable](m, h))
}

func TestManagerRemoveAbsent(t *testing.T) {
	m := newTestManager(t)
	h := m.Create()
	assert.False(t, Remove[position](m, h))
	assert.False(t, m.RemoveByType(h, ComponentTypeID(1<<20)))
}

func TestManagerRemoveFiresHookOnce(t *testing.T) {
	m := newTestManager(t)
	h := m.Create()
	calls := 0
	Emplace(m, h, removeCounter{Calls: &calls})

	require.True(t, Remove[removeCounter](m, h))
	assert.Equal(t, 1, calls)
}

// Destroy runs every OnRemove but a veto does not keep the entity alive. This
// is deliberately different from Remove, where the veto wins.
func TestManagerDestroyIgnoresVeto(t *testing.T) {
	m := newTestManager(t)
	h := m.Create()
	calls := 0
	Emplace(m, h, lockable{Locked: true})
	Emplace(m, h, removeCounter{Veto: true, Calls: &calls})

	require.True(t, m.Destroy(h))
	assert.Equal(t, 1, calls)
	assert.False(t, m.IsValid(h))
	assert.Equal(t, 0, m.Count(TypeID[lockable]()))
	assert.Equal(t, 0, m.Count(TypeID[removeCounter]()))
}

func TestManagerComponentTypes(t *testing.T) {
	m := newTestManager(t)
	h := m.Create()
	Emplace(m, h, velocity{})
	Emplace(m, h, position{})

	got := slices.Collect(m.ComponentTypes(h))
	want := []ComponentTypeID{TypeID[position](), TypeID[velocity]()}
	slices.Sort(want)
	assert.Equal(t, want, got)

	// Stops early when the consumer does.
	n := 0
	for range m.ComponentTypes(h) {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestManagerCloneFidelity(t *testing.T) {
	m := newTestManager(t)
	src := m.Create()
	Emplace(m, src, position{X: 1, Y: 2})
	Emplace(m, src, velocity{DX: 3})

	dst := m.Create()
	assert.Equal(t, 2, m.Clone(src, dst))
	assert.Equal(t, position{X: 1, Y: 2}, *Get[position](m, dst))
	assert.Equal(t, velocity{DX: 3}, *Get[velocity](m, dst))

	Get[position](m, dst).X = 50
	assert.Equal(t, 1.0, Get[position](m, src).X)
}

func TestManagerCloneKeepsExistingTargetComponents(t *testing.T) {
	m := newTestManager(t)
	src, dst := m.Create(), m.Create()
	Emplace(m, src, position{X: 1})
	Emplace(m, dst, position{X: 9})

	assert.Equal(t, 0, m.Clone(src, dst))
	assert.Equal(t, 9.0, Get[position](m, dst).X)
}

func TestManagerCloneRunsOnClone(t *testing.T) {
	m := newTestManager(t)
	src, dst := m.Create(), m.Create()
	Emplace(m, src, sceneRef{Node: 7})

	require.Equal(t, 1, m.Clone(src, dst))
	got := Get[sceneRef](m, dst)
	assert.Equal(t, 1007, got.Node)
	assert.Equal(t, 7, got.Source)
	assert.Equal(t, 7, Get[sceneRef](m, src).Node)
}

func TestManagerCloneSkipsNonCloneable(t *testing.T) {
	m := newTestManager(t)
	src, dst := m.Create(), m.Create()
	Emplace(m, src, socket{FD: 4})
	Emplace(m, src, position{X: 2})

	assert.Equal(t, 1, m.Clone(src, dst))
	assert.False(t, Has[socket](m, dst))
	assert.True(t, Has[position](m, dst))
}

func TestManagerCloneOntoSelf(t *testing.T) {
	m := newTestManager(t)
	h := m.Create()
	Emplace(m, h, position{})
	assert.Equal(t, 0, m.Clone(h, h))
}

func TestManagerSetActiveNotifies(t *testing.T) {
	m := newTestManager(t)
	h := m.Create()
	Emplace(m, h, hooked{})
	require.True(t, m.IsActive(h))

	assert.False(t, m.SetActive(h, true))
	assert.True(t, m.SetActive(h, false))
	assert.True(t, m.SetActive(h, true))
	assert.Equal(t, []string{"deactivate", "activate"}, Get[hooked](m, h).Calls)
}

func TestManagerSetEnabled(t *testing.T) {
	m := newTestManager(t)
	h := m.Create()
	Emplace(m, h, hooked{})
	Emplace(m, h, position{})

	assert.True(t, m.SetEnabled(h, TypeID[hooked](), true))
	assert.True(t, Get[hooked](m, h).IsEnabled())
	assert.False(t, m.SetEnabled(h, TypeID[position](), true))
	assert.False(t, m.SetEnabled(h, TypeID[velocity](), true))
}

func TestManagerDispatch(t *testing.T) {
	m := newTestManager(t)
	h := m.Create()
	Emplace(m, h, hooked{})
	Emplace(m, h, position{})

	m.Dispatch(h, func(_ ComponentTypeID, ops ComponentOps, c any) {
		if ops.OnAcquire != nil {
			ops.OnAcquire(c)
		}
	})
	assert.Equal(t, []string{"acquire"}, Get[hooked](m, h).Calls)
}

func TestManagerRawIsTypedPointer(t *testing.T) {
	m := newTestManager(t)
	h := m.Create()
	Emplace(m, h, position{X: 8})

	raw := m.Raw(h, TypeID[position]())
	p, ok := raw.(*position)
	require.True(t, ok)
	assert.Equal(t, 8.0, p.X)
	assert.Nil(t, m.Raw(h, TypeID[velocity]()))
}

func TestManagerClear(t *testing.T) {
	m := newTestManager(t)
	for i := 0; i < 5; i++ {
		Emplace(m, m.Create(), position{})
	}
	m.Clear()
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, m.Count(TypeID[position]()))
}

func TestManagerAutoRegistersOps(t *testing.T) {
	r := NewOpsRegistry()
	m := NewEntityManager(WithOpsRegistry(r))
	h := m.Create()
	Emplace(m, h, lockable{Locked: true})

	assert.True(t, r.Registered(TypeID[lockable]()))
	assert.False(t, Remove[lockable](m, h))
}
