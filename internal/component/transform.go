package component

// Transform is an entity's world-space placement.
// Pure data, zero methods; movement happens in systems.
type Transform struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}

// Velocity is applied to Transform once per tick by the movement system,
// scaled by elapsed seconds.
type Velocity struct {
	DX     float64 `yaml:"dx"`
	DY     float64 `yaml:"dy"`
	Frozen bool    `yaml:"frozen"`
}

// IsEnabled lets views built WhereEnabled skip frozen movers.
func (v *Velocity) IsEnabled() bool { return !v.Frozen }

func (v *Velocity) Enable()  { v.Frozen = false }
func (v *Velocity) Disable() { v.Frozen = true }
