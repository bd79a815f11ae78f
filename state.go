package hsm

import "fmt"

// vertexParent is satisfied by both *State and *Region so that a new
// vertex can be built directly under a State (using or lazily creating its
// default region) or under an explicit Region (required once a state has
// more than one region, i.e. is orthogonal).
type vertexParent interface {
	regionFor() *Region
}

func (r *Region) regionFor() *Region { return r }

func (s *State) regionFor() *Region { return s.defaultRegion() }

// defaultRegion returns the state's sole region, lazily creating one named
// Config.DefaultRegionName if the state has none yet. It panics if the
// state already has more than one region: an orthogonal state's vertices
// must be attached to an explicit Region.
func (s *State) defaultRegion() *Region {
	switch len(s.regions) {
	case 0:
		return NewRegion(s.sm.config.DefaultRegionName, s)
	case 1:
		return s.regions[0]
	default:
		panic(fmt.Sprintf("state %s is orthogonal (%d regions); specify an explicit Region", s.name, len(s.regions)))
	}
}

// State is a simple, composite, or orthogonal vertex: simple with zero
// child regions, composite with one, orthogonal with two or more, all
// concurrently active.
type State struct {
	name          string
	owner         *Region // nil for a StateMachine's embedded root state
	regions       []*Region
	entryBehavior []Action
	exitBehavior  []Action
	out           []*Transition
	pipe          pipelines
	sm            *StateMachine
}

// NewState creates a new state under parent, which may be a *State (using
// or lazily creating its default region) or a *Region (required for an
// orthogonal parent).
func NewState(name string, parent vertexParent) *State {
	r := parent.regionFor()
	s := &State{name: name, owner: r, sm: r.sm}
	r.addChild(s)
	return s
}

// Entry appends an action to run when the state is entered, after any
// ancestor already being entered and before descent into child regions.
// May be called multiple times; actions run in the order added.
func (s *State) Entry(a Action) *State {
	s.entryBehavior = append(s.entryBehavior, a)
	s.sm.clean = false
	return s
}

// Exit appends an action to run when the state is exited, before any
// ancestor being exited and after any child regions have already exited.
func (s *State) Exit(a Action) *State {
	s.exitBehavior = append(s.exitBehavior, a)
	s.sm.clean = false
	return s
}

// Regions returns the state's child regions in declaration order.
func (s *State) Regions() []*Region { return s.regions }

// IsSimple reports whether the state owns no regions.
func (s *State) IsSimple() bool { return len(s.regions) == 0 }

// IsComposite reports whether the state owns at least one region.
func (s *State) IsComposite() bool { return len(s.regions) >= 1 }

// IsOrthogonal reports whether the state owns two or more regions.
func (s *State) IsOrthogonal() bool { return len(s.regions) >= 2 }

func (s *State) Name() string              { return s.name }
func (s *State) QualifiedName() string     { return qualify(s) }
func (s *State) region() *Region           { return s.owner }
func (s *State) setRegion(r *Region)       { s.owner = r }
func (s *State) outgoing() []*Transition   { return s.out }
func (s *State) addOutgoing(t *Transition) { s.out = append(s.out, t) }
func (s *State) pipes() *pipelines         { return &s.pipe }
func (s *State) machine() *StateMachine    { return s.sm }

// isComplete reports whether s is complete for the given instance: a
// simple state is complete the moment it is entered; a composite state is
// complete once every one of its regions has reached a FinalState.
func (s *State) isComplete(instance Instance) bool {
	if s.IsSimple() {
		return true
	}
	for _, r := range s.regions {
		if !r.isComplete(instance) {
			return false
		}
	}
	return true
}

// FinalState marks a region as having run to completion; it accepts no
// outgoing transitions (enforced by Validate).
type FinalState struct {
	name          string
	owner         *Region
	entryBehavior []Action
	out           []*Transition // always empty after validation; present so FinalState satisfies Vertex
	pipe          pipelines
	sm            *StateMachine
}

// NewFinalState creates a new final state under parent.
func NewFinalState(name string, parent vertexParent) *FinalState {
	r := parent.regionFor()
	f := &FinalState{name: name, owner: r, sm: r.sm}
	r.addChild(f)
	return f
}

// Entry appends an action to run when the final state is entered.
func (f *FinalState) Entry(a Action) *FinalState {
	f.entryBehavior = append(f.entryBehavior, a)
	f.sm.clean = false
	return f
}

func (f *FinalState) Name() string              { return f.name }
func (f *FinalState) QualifiedName() string     { return qualify(f) }
func (f *FinalState) region() *Region           { return f.owner }
func (f *FinalState) setRegion(r *Region)       { f.owner = r }
func (f *FinalState) outgoing() []*Transition   { return f.out }
func (f *FinalState) addOutgoing(t *Transition) { f.out = append(f.out, t) }
func (f *FinalState) pipes() *pipelines         { return &f.pipe }
func (f *FinalState) machine() *StateMachine    { return f.sm }
