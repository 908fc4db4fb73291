package event

import (
	"testing"

	"github.com/l1jgo/gameworld/internal/core/ecs"
	"github.com/stretchr/testify/assert"
)

func TestBusDeliversNextTick(t *testing.T) {
	b := NewBus()
	var got []ecs.EntityHandle
	Subscribe(b, func(ev EntityDestroyed) { got = append(got, ev.Entity) })

	h := ecs.NewEntityHandle(3, 1)
	Emit(b, EntityDestroyed{Entity: h})
	assert.Equal(t, 1, b.Pending())

	// Not visible until the buffers swap.
	b.DispatchAll()
	assert.Empty(t, got)

	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []ecs.EntityHandle{h}, got)
	assert.Equal(t, 0, b.Pending())

	// Front is consumed by the next swap.
	b.SwapBuffers()
	b.DispatchAll()
	assert.Len(t, got, 1)
}

func TestBusRoutesByType(t *testing.T) {
	b := NewBus()
	created, removed := 0, 0
	Subscribe(b, func(EntityCreated) { created++ })
	Subscribe(b, func(ComponentRemoved) { removed++ })
	Subscribe(b, func(ComponentRemoved) { removed++ })

	Emit(b, EntityCreated{})
	Emit(b, ComponentRemoved{})
	Emit(b, RemovalVetoed{})
	b.SwapBuffers()
	b.DispatchAll()

	assert.Equal(t, 1, created)
	assert.Equal(t, 2, removed)
}

func TestBusHandlerEmitsIntoNextTick(t *testing.T) {
	b := NewBus()
	cloned := 0
	Subscribe(b, func(ev EntityCreated) { Emit(b, EntityCloned{Source: ev.Entity}) })
	Subscribe(b, func(EntityCloned) { cloned++ })

	Emit(b, EntityCreated{})
	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, 0, cloned)
	assert.Equal(t, 1, b.Pending())

	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, 1, cloned)
}
