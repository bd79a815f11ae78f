package hsm

import "strings"

// pipelines holds the four ordered action lists the compiler precomputes
// per element: leave, beginEnter, endEnter, and their concatenation
// enter. They are empty until Compile runs.
type pipelines struct {
	leave      []Action
	beginEnter []Action
	endEnter   []Action
	enter      []Action
}

func (p *pipelines) reset() {
	p.leave = nil
	p.beginEnter = nil
	p.endEnter = nil
	p.enter = nil
}

// Vertex is any node that can be a transition endpoint: a State, a
// FinalState, or a PseudoState. The interface's unexported methods keep it
// a closed set implemented only by this package's own types.
type Vertex interface {
	// Name returns the vertex's own (unqualified) name.
	Name() string
	// QualifiedName returns ancestor names joined by the owning state
	// machine's configured separator.
	QualifiedName() string

	region() *Region
	setRegion(*Region)
	outgoing() []*Transition
	addOutgoing(*Transition)
	pipes() *pipelines
	machine() *StateMachine
}

// ownerRegionOf returns v's owning region, or nil if v is the root state of
// a StateMachine (which owns no region itself).
func ownerRegionOf(v Vertex) *Region {
	return v.region()
}

// qualify builds a dotted (or separator-joined) name by walking a vertex's
// region/state ancestry up to the root.
func qualify(v Vertex) string {
	sep := v.machine().config.NamespaceSeparator
	var parts []string
	cur := v
	for {
		parts = append(parts, cur.Name())
		r := cur.region()
		if r == nil {
			break
		}
		cur = r.owner
	}
	// parts were collected leaf-first; reverse.
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, sep)
}
