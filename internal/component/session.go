package component

// SessionRef links an entity to a controlling client session. A session
// drives exactly one entity, so clones never inherit it.
type SessionRef struct {
	SessionID uint64 `yaml:"session_id"`
}

func (*SessionRef) NonCloneable() {}

// Name is a display label.
type Name struct {
	Value string `yaml:"value"`
}
