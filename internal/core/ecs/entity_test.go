package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCreateStartsAtVersionOne(t *testing.T) {
	r := NewEntityRegistry(0)
	a := r.Create()
	b := r.Create()
	assert.Equal(t, NewEntityHandle(0, 1), a)
	assert.Equal(t, NewEntityHandle(1, 1), b)
	assert.Equal(t, 2, r.Len())
}

func TestRegistryHandleStaleness(t *testing.T) {
	r := NewEntityRegistry(4)
	h := r.Create()
	require.True(t, r.IsValid(h))

	require.True(t, r.Destroy(h))
	assert.False(t, r.IsValid(h))

	// Reusing the slot must not resurrect the old handle.
	reused := r.Create()
	assert.Equal(t, h.ID(), reused.ID())
	assert.False(t, r.IsValid(h))
	assert.True(t, r.IsValid(reused))
}

func TestRegistryRecyclesIndexWithBumpedVersion(t *testing.T) {
	r := NewEntityRegistry(4)
	h := r.Create()
	r.Destroy(h)
	n := r.Create()

	assert.Equal(t, h.ID(), n.ID())
	assert.Equal(t, h.Version()+1, n.Version())
	assert.Equal(t, 0, r.Free())
	assert.Equal(t, 1, r.Cap())
}

func TestRegistryDoubleDestroy(t *testing.T) {
	r := NewEntityRegistry(0)
	h := r.Create()
	assert.True(t, r.Destroy(h))
	assert.False(t, r.Destroy(h))
	assert.Equal(t, 0, r.Len())
}

func TestRegistryOutOfRange(t *testing.T) {
	r := NewEntityRegistry(0)
	assert.False(t, r.IsValid(NewEntityHandle(99, 1)))
	assert.False(t, r.Destroy(NewEntityHandle(99, 1)))
	assert.False(t, r.Alive(99))
	assert.Equal(t, VersionID(0), r.Version(99))
	_, ok := r.Current(99)
	assert.False(t, ok)
}

func TestRegistryEachVisitsLiveOnly(t *testing.T) {
	r := NewEntityRegistry(0)
	a, b, c := r.Create(), r.Create(), r.Create()
	r.Destroy(b)

	var got []EntityHandle
	r.Each(func(h EntityHandle) { got = append(got, h) })
	assert.Equal(t, []EntityHandle{a, c}, got)
}
