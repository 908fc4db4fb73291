package ecs

type position struct{ X, Y float64 }

type velocity struct{ DX, DY float64 }

type marker struct{}

type lockable struct{ Locked bool }

func (l *lockable) OnRemove() bool { return !l.Locked }

// hooked records every lifecycle callback it receives.
type hooked struct {
	Calls    []string
	Attached GameObject
	enabled  bool
}

func (h *hooked) OnAcquire()      { h.Calls = append(h.Calls, "acquire") }
func (h *hooked) OnRelease()      { h.Calls = append(h.Calls, "release") }
func (h *hooked) OnActivate()     { h.Calls = append(h.Calls, "activate") }
func (h *hooked) OnDeactivate()   { h.Calls = append(h.Calls, "deactivate") }
func (h *hooked) Enable()         { h.enabled = true }
func (h *hooked) Disable()        { h.enabled = false }
func (h *hooked) IsEnabled() bool { return h.enabled }

func (h *hooked) OnAttach(o GameObject) {
	h.Calls = append(h.Calls, "attach")
	h.Attached = o
}

// sceneRef stands in for a component holding a handle that must be re-derived
// on copy rather than shared.
type sceneRef struct {
	Node   int
	Source int
}

func (s *sceneRef) OnClone(src *sceneRef) {
	s.Source = src.Node
	s.Node = src.Node + 1000
}

type socket struct{ FD int }

func (*socket) NonCloneable() {}

// removeCounter counts OnRemove calls and can be told to veto.
type removeCounter struct {
	Veto  bool
	Calls *int
}

func (r *removeCounter) OnRemove() bool {
	*r.Calls++
	return !r.Veto
}
