package effects

import "sort"

// Effect names as stored in the preference key.
const (
	NameNature    = "nature"
	NameMinimal   = "minimal"
	NameWireframe = "wireframe"
	NameCanyon    = "canyon"
	NameCyberpunk = "cyberpunk"
	NameStarfield = "starfield"
)

// Registry maps effect names to constructors.
type Registry struct {
	ctors map[string]Constructor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// Builtin returns a registry holding every built-in effect.
func Builtin() *Registry {
	r := NewRegistry()
	r.Register(NameNature, NewNature)
	r.Register(NameMinimal, NewMinimal)
	r.Register(NameWireframe, NewTerrain(NameWireframe))
	r.Register(NameCanyon, NewTerrain(NameCanyon))
	r.Register(NameCyberpunk, NewSynthwave)
	r.Register(NameStarfield, NewStarfield)
	return r
}

// Register adds or replaces a constructor.
func (r *Registry) Register(name string, ctor Constructor) {
	r.ctors[name] = ctor
}

// Lookup returns the constructor for name.
func (r *Registry) Lookup(name string) (Constructor, bool) {
	ctor, ok := r.ctors[name]
	return ctor, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.ctors))
	for name := range r.ctors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
