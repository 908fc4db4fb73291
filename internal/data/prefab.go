package data

import (
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/l1jgo/gameworld/internal/core/ecs"
	"github.com/l1jgo/gameworld/internal/world"
	"gopkg.in/yaml.v3"
)

// PrefabEntry is a named component recipe loaded from YAML. Components is a
// mapping node so attach order follows the file.
type PrefabEntry struct {
	Name       string    `yaml:"name"`
	Inactive   bool      `yaml:"inactive"`
	Components yaml.Node `yaml:"components"`
}

// componentNodes yields (name, value) pairs of the components mapping.
func (e *PrefabEntry) componentNodes() [][2]*yaml.Node {
	n := &e.Components
	if n.Kind != yaml.MappingNode {
		return nil
	}
	out := make([][2]*yaml.Node, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		out = append(out, [2]*yaml.Node{n.Content[i], n.Content[i+1]})
	}
	return out
}

// PrefabTable provides lookup and spawning of prefabs by name.
type PrefabTable struct {
	prefabs     map[string]*PrefabEntry
	order       []string
	components  *Components
	fingerprint uint64
}

// LoadPrefabTable loads a prefab list YAML file.
func LoadPrefabTable(path string, comps *Components) (*PrefabTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prefab list: %w", err)
	}
	t, err := ParsePrefabTable(raw, comps)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ParsePrefabTable parses and validates a prefab list. Every component name
// must be registered in comps and decode cleanly.
func ParsePrefabTable(raw []byte, comps *Components) (*PrefabTable, error) {
	var entries []PrefabEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse prefab list: %w", err)
	}
	t := &PrefabTable{
		prefabs:     make(map[string]*PrefabEntry, len(entries)),
		order:       make([]string, 0, len(entries)),
		components:  comps,
		fingerprint: xxhash.Sum64(raw),
	}
	for i := range entries {
		e := &entries[i]
		if e.Name == "" {
			return nil, fmt.Errorf("prefab #%d has no name", i)
		}
		if _, dup := t.prefabs[e.Name]; dup {
			return nil, fmt.Errorf("duplicate prefab %q", e.Name)
		}
		if e.Components.Kind != 0 && e.Components.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("prefab %q: components must be a mapping", e.Name)
		}
		for _, kv := range e.componentNodes() {
			codec, ok := comps.codecs[kv[0].Value]
			if !ok {
				return nil, fmt.Errorf("prefab %q: unknown component %q", e.Name, kv[0].Value)
			}
			if err := codec.check(kv[1]); err != nil {
				return nil, fmt.Errorf("prefab %q: %w", e.Name, err)
			}
		}
		t.prefabs[e.Name] = e
		t.order = append(t.order, e.Name)
	}
	return t, nil
}

// Get returns the named prefab, or nil.
func (t *PrefabTable) Get(name string) *PrefabEntry {
	return t.prefabs[name]
}

// Count returns the total number of prefabs loaded.
func (t *PrefabTable) Count() int {
	return len(t.prefabs)
}

// Names lists prefabs in file order.
func (t *PrefabTable) Names() []string {
	return t.order
}

// Fingerprint is a hash of the raw YAML the table was parsed from.
func (t *PrefabTable) Fingerprint() uint64 {
	return t.fingerprint
}

func (t *PrefabTable) Components() *Components {
	return t.components
}

// Spawn creates an object in w and attaches the prefab's components in file
// order. Inactive prefabs are deactivated before anything is attached so
// hooks see the right state. On failure the half-built object is destroyed.
func (t *PrefabTable) Spawn(w *world.World, name string) (ecs.GameObject, error) {
	e := t.prefabs[name]
	if e == nil {
		return ecs.GameObject{}, fmt.Errorf("unknown prefab %q", name)
	}
	obj := w.AddPrefabInstance(name)
	if e.Inactive {
		obj.SetActive(false)
	}
	for _, kv := range e.componentNodes() {
		if err := t.components.codecs[kv[0].Value].attach(obj, kv[1]); err != nil {
			w.Destroy(obj.Handle())
			return ecs.GameObject{}, fmt.Errorf("spawn %q: %w", name, err)
		}
	}
	return obj, nil
}
