package data

import (
	"fmt"
	"slices"

	"github.com/l1jgo/gameworld/internal/component"
	"github.com/l1jgo/gameworld/internal/core/ecs"
	"gopkg.in/yaml.v3"
)

// componentCodec decodes one named component from YAML and attaches it.
type componentCodec struct {
	typeID ecs.ComponentTypeID
	check  func(node *yaml.Node) error
	attach func(obj ecs.GameObject, node *yaml.Node) error
}

// Components maps the component names used in data files to Go types.
type Components struct {
	codecs map[string]componentCodec
	names  map[ecs.ComponentTypeID]string
}

func NewComponents() *Components {
	return &Components{
		codecs: make(map[string]componentCodec, 16),
		names:  make(map[ecs.ComponentTypeID]string, 16),
	}
}

// Register makes T available to prefabs under name and registers T's ops.
// Re-registering a name replaces it.
func Register[T any](c *Components, name string) {
	decode := func(node *yaml.Node) (T, error) {
		var v T
		if node == nil || node.Kind == 0 {
			return v, nil
		}
		if node.Tag == "!!null" {
			return v, nil
		}
		if err := node.Decode(&v); err != nil {
			return v, fmt.Errorf("decode component %s: %w", name, err)
		}
		return v, nil
	}
	id := ecs.RegisterType[T]()
	c.codecs[name] = componentCodec{
		typeID: id,
		check: func(node *yaml.Node) error {
			_, err := decode(node)
			return err
		},
		attach: func(obj ecs.GameObject, node *yaml.Node) error {
			v, err := decode(node)
			if err != nil {
				return err
			}
			if ecs.HasComponent[T](obj) {
				return fmt.Errorf("component %s listed twice", name)
			}
			if ecs.Add(obj, v) == nil {
				return fmt.Errorf("attach component %s: object %s is stale", name, obj.Handle())
			}
			return nil
		},
	}
	c.names[id] = name
}

// TypeID resolves a data-file component name.
func (c *Components) TypeID(name string) (ecs.ComponentTypeID, bool) {
	codec, ok := c.codecs[name]
	return codec.typeID, ok
}

// Name is the data-file name registered for a type id.
func (c *Components) Name(id ecs.ComponentTypeID) (string, bool) {
	n, ok := c.names[id]
	return n, ok
}

// Names returns every registered name, sorted.
func (c *Components) Names() []string {
	out := make([]string, 0, len(c.codecs))
	for n := range c.codecs {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// DefaultComponents registers the engine's built-in component set.
func DefaultComponents() *Components {
	c := NewComponents()
	Register[component.Transform](c, "transform")
	Register[component.Velocity](c, "velocity")
	Register[component.Health](c, "health")
	Register[component.Shield](c, "shield")
	Register[component.Lifetime](c, "lifetime")
	Register[component.SceneNodeRef](c, "scene_node")
	Register[component.Renderable](c, "renderable")
	Register[component.SessionRef](c, "session")
	Register[component.Name](c, "name")
	return c
}
