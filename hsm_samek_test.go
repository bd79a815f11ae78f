package hsm

// This mirrors the classic nested-composite-state example from Miro
// Samek's "Practical Statecharts in C/C++" (p. 95):
// https://www.state-machine.com/doc/PSiCC.pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	samekA = iota
	samekB
	samekC
	samekD
	samekE
	samekF
	samekG
	samekH
)

// samekInstance extends MapInstance with the one piece of extended state
// the example's guards/actions need. The engine's Instance interface is
// purely structural; a domain's own data travels in its own Instance
// implementation, not inside the engine.
type samekInstance struct {
	*MapInstance
	foo bool
}

func samekTrace(buf *bytes.Buffer, txt string) Action {
	return func(Event, Instance, bool) {
		buf.WriteString(txt)
		buf.WriteByte('\n')
	}
}

func buildSamekMachine(buf *bytes.Buffer) *StateMachine {
	sm := NewStateMachine("samek", WithLogger(NewNopLogger()))

	s0 := NewState("s0", sm)
	s0.Entry(samekTrace(buf, "enter s0")).Exit(samekTrace(buf, "exit s0"))
	s0Init := NewPseudoState("init", s0, Initial)

	s1 := NewState("s1", s0)
	s1.Entry(samekTrace(buf, "enter s1")).Exit(samekTrace(buf, "exit s1"))
	s1Init := NewPseudoState("init", s1, Initial)

	s11 := NewState("s11", s1)
	s11.Entry(samekTrace(buf, "enter s11")).Exit(samekTrace(buf, "exit s11"))

	s2 := NewState("s2", s0)
	s2.Entry(samekTrace(buf, "enter s2")).Exit(samekTrace(buf, "exit s2"))
	s2Init := NewPseudoState("init", s2, Initial)

	s21 := NewState("s21", s2)
	s21.Entry(samekTrace(buf, "enter s21")).Exit(samekTrace(buf, "exit s21"))
	s21Init := NewPseudoState("init", s21, Initial)

	s211 := NewState("s211", s21)
	s211.Entry(samekTrace(buf, "enter s211")).Exit(samekTrace(buf, "exit s211"))

	NewTransition(NewPseudoState("init", sm, Initial), s0, NoTrigger, External)
	NewTransition(s0Init, s1, NoTrigger, External)
	NewTransition(s1Init, s11, NoTrigger, External)
	NewTransition(s2Init, s21, NoTrigger, External)
	NewTransition(s21Init, s211, NoTrigger, External)

	isFoo := func(e Event, inst Instance) bool { return inst.(*samekInstance).foo }
	isNotFoo := func(e Event, inst Instance) bool { return !inst.(*samekInstance).foo }
	setFoo := func(e Event, inst Instance, dh bool) { inst.(*samekInstance).foo = true }

	NewTransition(s0, s211, samekE, Local)

	NewTransition(s1, s0, samekD, External)
	NewTransition(s1, s1, samekA, External)
	NewTransition(s1, s2, samekC, External)

	NewTransition(s11, nil, samekH, Internal).When(isFoo)
	NewTransition(s11, s211, samekG, External)

	NewTransition(s2, s1, samekC, External)
	NewTransition(s2, s11, samekF, External)

	NewTransition(s21, s21, samekH, External).When(isNotFoo).Effect(setFoo)

	return sm
}

func TestSamekNestedComposite(t *testing.T) {
	var buf bytes.Buffer
	sm := buildSamekMachine(&buf)
	require := assert.New(t)
	require.NoError(Compile(sm))

	inst := &samekInstance{MapInstance: NewMapInstance()}
	require.NoError(Initialise(sm, inst))

	deliver := func(id int) {
		_, err := Evaluate(sm, inst, Event{Id: id})
		require.NoError(err)
	}

	buf.WriteString("event A\n")
	deliver(samekA)

	buf.WriteString("event Ext\n")
	deliver(samekE)

	buf.WriteString("event Ext\n")
	deliver(samekE)

	buf.WriteString("event A\n")
	deliver(samekA)

	buf.WriteString("event H\n")
	deliver(samekH)

	buf.WriteString("event H\n")
	deliver(samekH)

	want := `enter s0
enter s1
enter s11
event A
exit s11
exit s1
enter s1
enter s11
event Ext
exit s11
exit s1
enter s2
enter s21
enter s211
event Ext
exit s211
exit s21
exit s2
enter s2
enter s21
enter s211
event A
event H
exit s211
exit s21
enter s21
enter s211
event H
`
	require.Equal(want, buf.String())
}

func BenchmarkSamekNestedComposite(b *testing.B) {
	var buf bytes.Buffer
	sm := buildSamekMachine(&buf)
	if err := Compile(sm); err != nil {
		b.Fatal(err)
	}

	for i := 0; i < b.N; i++ {
		buf.Reset()
		inst := &samekInstance{MapInstance: NewMapInstance()}
		_ = Initialise(sm, inst)
		_, _ = Evaluate(sm, inst, Event{Id: samekA})
		_, _ = Evaluate(sm, inst, Event{Id: samekE})
		_, _ = Evaluate(sm, inst, Event{Id: samekE})
		_, _ = Evaluate(sm, inst, Event{Id: samekA})
		_, _ = Evaluate(sm, inst, Event{Id: samekH})
		_, _ = Evaluate(sm, inst, Event{Id: samekH})
	}
}
