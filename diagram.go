package hsm

import (
	"fmt"
	"strconv"
	"strings"
)

type edgeKey struct {
	src, dst Vertex
}

// DiagramBuilder allows minor customizations of a PlantUML diagram before
// building it. Create one via StateMachine.DiagramBuilder; DiagramPUML is
// a shorthand for the common case. This is presentation tooling layered on
// top of the model tree, not part of the compiled engine.
type DiagramBuilder struct {
	sm           *StateMachine
	eventName    func(int) string
	defaultArrow string
	arrows       map[edgeKey]string
	markActive   Instance
}

// DefaultArrow changes the arrow style used for transitions. The default is "-->".
func (db *DiagramBuilder) DefaultArrow(arrow string) *DiagramBuilder {
	db.defaultArrow = arrow
	return db
}

// Arrow specifies the arrow style used for transitions from src to dst.
// See https://crashedmind.github.io/PlantUMLHitchhikersGuide/layout/layout.html.
func (db *DiagramBuilder) Arrow(src, dst Vertex, arrow string) *DiagramBuilder {
	db.arrows[edgeKey{src, dst}] = arrow
	return db
}

// MarkActive annotates every vertex currently active in instance with a
// note, useful for visualizing a live or a captured run.
func (db *DiagramBuilder) MarkActive(instance Instance) *DiagramBuilder {
	db.markActive = instance
	return db
}

// Build renders the model as a PlantUML state diagram.
func (db *DiagramBuilder) Build() string {
	var bld strings.Builder
	bld.WriteString("@startuml\n\n")
	for _, r := range db.sm.Regions() {
		db.dumpRegion(&bld, 0, r)
	}
	bld.WriteString("\n@enduml\n")
	return bld.String()
}

// DiagramBuilder creates a builder for customizing a PlantUML diagram
// before building it. eventName maps an Event.Id to a display name.
func (sm *StateMachine) DiagramBuilder(eventName func(int) string) *DiagramBuilder {
	return &DiagramBuilder{
		sm:           sm,
		eventName:    eventName,
		defaultArrow: "-->",
		arrows:       make(map[edgeKey]string),
	}
}

// DiagramPUML builds a PlantUML diagram of the model. Shorthand for
// sm.DiagramBuilder(eventName).Build().
func (sm *StateMachine) DiagramPUML(eventName func(int) string) string {
	return sm.DiagramBuilder(eventName).Build()
}

func (db *DiagramBuilder) dumpRegion(bld *strings.Builder, indent int, r *Region) {
	prefix := strings.Repeat("  ", indent)
	for _, v := range r.children {
		db.dumpVertex(bld, indent, v)
	}
	// The Initial pseudo-state itself isn't drawn; by UML convention its
	// one outgoing transition is rendered as the region's own "[*] -->"
	// entry arrow.
	for _, v := range r.children {
		if ps, ok := v.(*PseudoState); ok && ps.kind == Initial && len(ps.out) == 1 {
			fmt.Fprintf(bld, "%s[*] --> %s\n", prefix, alias(ps.out[0].target))
		}
	}
}

func (db *DiagramBuilder) dumpVertex(bld *strings.Builder, indent int, v Vertex) {
	prefix := strings.Repeat("  ", indent)
	switch vv := v.(type) {
	case *PseudoState:
		switch vv.kind {
		case Initial:
			return
		case Choice:
			fmt.Fprintf(bld, "%sstate %s <<choice>>\n", prefix, alias(v))
		case Junction:
			fmt.Fprintf(bld, "%sstate %s <<junction>>\n", prefix, alias(v))
		case ShallowHistory:
			fmt.Fprintf(bld, "%sstate \"H\" as %s\n", prefix, alias(v))
		case DeepHistory:
			fmt.Fprintf(bld, "%sstate \"H*\" as %s\n", prefix, alias(v))
		case Terminate:
			fmt.Fprintf(bld, "%sstate %s <<end>>\n", prefix, alias(v))
		}
		db.dumpOutgoing(bld, indent, v)
	case *FinalState:
		fmt.Fprintf(bld, "%sstate %s <<end>>\n", prefix, alias(v))
	case *State:
		db.dumpState(bld, indent, vv)
		db.dumpOutgoing(bld, indent, v)
	}
	if db.markActive != nil && db.isActive(v) {
		fmt.Fprintf(bld, "%snote right of %s : active\n", prefix, alias(v))
	}
}

func (db *DiagramBuilder) dumpState(bld *strings.Builder, indent int, s *State) {
	prefix := strings.Repeat("  ", indent)
	if len(s.regions) == 0 {
		fmt.Fprintf(bld, "%sstate %s\n", prefix, alias(s))
	} else {
		fmt.Fprintf(bld, "%sstate %s {\n", prefix, alias(s))
		for i, r := range s.regions {
			if i > 0 {
				fmt.Fprintf(bld, "%s--\n", strings.Repeat("  ", indent+1))
			}
			db.dumpRegion(bld, indent+1, r)
		}
		fmt.Fprintf(bld, "%s}\n", prefix)
	}
	if len(s.entryBehavior) > 0 {
		fmt.Fprintf(bld, "%s%s : entry\n", prefix, alias(s))
	}
	if len(s.exitBehavior) > 0 {
		fmt.Fprintf(bld, "%s%s : exit\n", prefix, alias(s))
	}
}

func (db *DiagramBuilder) dumpOutgoing(bld *strings.Builder, indent int, v Vertex) {
	prefix := strings.Repeat("  ", indent)
	for _, t := range v.outgoing() {
		label := db.label(t)
		if t.kind == Internal || t.target == nil {
			fmt.Fprintf(bld, "%s%s : %s\n", prefix, alias(v), label)
			continue
		}
		fmt.Fprintf(bld, "%s%s %s %s : %s\n", prefix, alias(v), db.arrowFor(v, t.target), alias(t.target), label)
	}
}

func (db *DiagramBuilder) arrowFor(src, dst Vertex) string {
	if a, ok := db.arrows[edgeKey{src, dst}]; ok {
		return a
	}
	return db.defaultArrow
}

func (db *DiagramBuilder) label(t *Transition) string {
	var parts []string
	if t.trigger != NoTrigger {
		parts = append(parts, db.eventLabel(t.trigger))
	}
	if t.isElse {
		parts = append(parts, "[else]")
	}
	if len(parts) == 0 {
		return "/"
	}
	return strings.Join(parts, " ")
}

func (db *DiagramBuilder) eventLabel(id int) string {
	if db.eventName != nil {
		return db.eventName(id)
	}
	return strconv.Itoa(id)
}

func (db *DiagramBuilder) isActive(v Vertex) bool {
	r := v.region()
	if r == nil {
		return false
	}
	if db.markActive.GetCurrent(r) != v {
		return false
	}
	// A region keeps its last record after its owning state is exited, so
	// the owner must itself be active (the root state always is).
	if r.owner.region() == nil {
		return true
	}
	return db.isActive(r.owner)
}

func alias(v Vertex) string {
	return sanitizeAlias(v.QualifiedName())
}

func sanitizeAlias(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', ' ', '-':
			return '_'
		default:
			return r
		}
	}, s)
}
