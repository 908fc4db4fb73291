package component

// Health tracks hit points.
type Health struct {
	Current int `yaml:"current"`
	Max     int `yaml:"max"`
}

func (h *Health) Dead() bool { return h.Current <= 0 }

// Shield absorbs damage while raised and cannot be stripped off an entity
// until it drops.
type Shield struct {
	Raised bool `yaml:"raised"`
	Charge int  `yaml:"charge"`
}

func (s *Shield) OnRemove() bool { return !s.Raised }
