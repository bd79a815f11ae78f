package hsm

// Region is a named container, owned by a State, holding an ordered list
// of child vertices. Exactly one child must be an initial-family
// pseudo-state (Initial, ShallowHistory, or DeepHistory); Validate checks
// this and Compile resolves the initial pointer.
type Region struct {
	name     string
	owner    *State
	children []Vertex
	initial  Vertex // resolved during compile; an initial-family PseudoState
	pipe     pipelines
	sm       *StateMachine
}

// NewRegion creates a new region owned by state. State machine mutation
// through the construction API invalidates the owning machine's clean
// flag, so the next Initialise/Evaluate call recompiles.
func NewRegion(name string, state *State) *Region {
	r := &Region{name: name, owner: state, sm: state.sm}
	state.regions = append(state.regions, r)
	state.sm.clean = false
	return r
}

// Name returns the region's own name.
func (r *Region) Name() string { return r.name }

// QualifiedName returns the region's ancestor-qualified name.
func (r *Region) QualifiedName() string {
	sep := r.sm.config.NamespaceSeparator
	if r.owner == nil {
		return r.name
	}
	return r.owner.QualifiedName() + sep + r.name
}

// Vertices returns the region's child vertices in declaration order.
func (r *Region) Vertices() []Vertex { return r.children }

// addChild appends v to the region's children. Each vertex constructor
// calls this; it is not part of the public construction surface.
func (r *Region) addChild(v Vertex) {
	r.children = append(r.children, v)
	r.sm.clean = false
}

// Remove detaches v from this region (and, implicitly, from the model),
// invalidating the owning machine's compiled pipelines.
func (r *Region) Remove(v Vertex) {
	for i, c := range r.children {
		if c == v {
			r.children = append(r.children[:i], r.children[i+1:]...)
			if r.initial == v {
				r.initial = nil
			}
			r.sm.clean = false
			return
		}
	}
}

// isComplete reports whether the region's currently active vertex (per
// instance) is a FinalState. Completion evaluation uses this to decide
// whether an owning composite state is complete.
func (r *Region) isComplete(instance Instance) bool {
	cur := instance.GetCurrent(r)
	if cur == nil {
		return false
	}
	_, ok := cur.(*FinalState)
	return ok
}
