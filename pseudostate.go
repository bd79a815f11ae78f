package hsm

// PseudoStateKind distinguishes the transient vertex kinds used to
// structure transitions.
type PseudoStateKind int

const (
	Initial PseudoStateKind = iota
	ShallowHistory
	DeepHistory
	Choice
	Junction
	Terminate
)

func (k PseudoStateKind) String() string {
	switch k {
	case Initial:
		return "Initial"
	case ShallowHistory:
		return "ShallowHistory"
	case DeepHistory:
		return "DeepHistory"
	case Choice:
		return "Choice"
	case Junction:
		return "Junction"
	case Terminate:
		return "Terminate"
	default:
		return "Unknown"
	}
}

// IsHistory reports whether k is ShallowHistory or DeepHistory.
func (k PseudoStateKind) IsHistory() bool {
	return k == ShallowHistory || k == DeepHistory
}

// IsInitialFamily reports whether k is Initial or one of the History kinds
// — the set of kinds a region may use as its single required entry point.
func (k PseudoStateKind) IsInitialFamily() bool {
	return k == Initial || k.IsHistory()
}

// PseudoState is a transient vertex used for structuring transitions:
// Initial, ShallowHistory, DeepHistory, Choice, Junction, or Terminate.
type PseudoState struct {
	name  string
	owner *Region
	kind  PseudoStateKind
	out   []*Transition
	pipe  pipelines
	sm    *StateMachine
}

// NewPseudoState creates a new pseudo-state of the given kind under parent.
func NewPseudoState(name string, parent vertexParent, kind PseudoStateKind) *PseudoState {
	r := parent.regionFor()
	p := &PseudoState{name: name, owner: r, kind: kind, sm: r.sm}
	r.addChild(p)
	return p
}

// Kind returns the pseudo-state's kind.
func (p *PseudoState) Kind() PseudoStateKind { return p.kind }

func (p *PseudoState) Name() string              { return p.name }
func (p *PseudoState) QualifiedName() string     { return qualify(p) }
func (p *PseudoState) region() *Region           { return p.owner }
func (p *PseudoState) setRegion(r *Region)       { p.owner = r }
func (p *PseudoState) outgoing() []*Transition   { return p.out }
func (p *PseudoState) addOutgoing(t *Transition) { p.out = append(p.out, t) }
func (p *PseudoState) pipes() *pipelines         { return &p.pipe }
func (p *PseudoState) machine() *StateMachine    { return p.sm }
