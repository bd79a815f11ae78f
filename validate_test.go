package hsm_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/umlstate/hsm"
)

func diagMessages(diags hsm.Diagnostics) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Message
	}
	return out
}

func anyContains(msgs []string, substr string) bool {
	for _, m := range msgs {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func TestValidateMissingInitial(t *testing.T) {
	sm := hsm.NewStateMachine("v", hsm.WithLogger(hsm.NewNopLogger()))
	hsm.NewState("foo", sm)

	err := hsm.Compile(sm)
	assert.Error(t, err)
	diags, ok := err.(hsm.Diagnostics)
	assert.True(t, ok)
	assert.True(t, anyContains(diagMessages(diags), "no initial-family"))
}

func TestValidateDuplicateInitial(t *testing.T) {
	sm := hsm.NewStateMachine("v", hsm.WithLogger(hsm.NewNopLogger()))
	foo := hsm.NewState("foo", sm)
	bar := hsm.NewState("bar", sm)
	hsm.NewTransition(hsm.NewPseudoState("i1", sm, hsm.Initial), foo, hsm.NoTrigger, hsm.External)
	hsm.NewTransition(hsm.NewPseudoState("i2", sm, hsm.Initial), bar, hsm.NoTrigger, hsm.External)

	err := hsm.Compile(sm)
	assert.Error(t, err)
	diags := err.(hsm.Diagnostics)
	assert.True(t, anyContains(diagMessages(diags), "initial-family children"))
}

func TestValidateFinalStateWithOutgoing(t *testing.T) {
	sm := hsm.NewStateMachine("v", hsm.WithLogger(hsm.NewNopLogger()))
	foo := hsm.NewState("foo", sm)
	fin := hsm.NewFinalState("done", sm)
	hsm.NewTransition(hsm.NewPseudoState("i", sm, hsm.Initial), foo, hsm.NoTrigger, hsm.External)
	hsm.NewTransition(fin, foo, 0, hsm.External)

	err := hsm.Compile(sm)
	assert.Error(t, err)
	diags := err.(hsm.Diagnostics)
	assert.True(t, anyContains(diagMessages(diags), "final state has"))
}

func TestValidateChoiceWithoutElseOrEnoughBranches(t *testing.T) {
	sm := hsm.NewStateMachine("v", hsm.WithLogger(hsm.NewNopLogger()))
	foo := hsm.NewState("foo", sm)
	hsm.NewTransition(hsm.NewPseudoState("i", sm, hsm.Initial), foo, hsm.NoTrigger, hsm.External)

	choice := hsm.NewPseudoState("c", sm, hsm.Choice)
	hsm.NewTransition(foo, choice, 0, hsm.External)
	hsm.NewTransition(choice, foo, hsm.NoTrigger, hsm.External).When(func(hsm.Event, hsm.Instance) bool { return true })

	diags := hsm.Validate(sm)
	found := false
	for _, d := range diags {
		if d.Severity == hsm.SeverityWarning && strings.Contains(d.Message, "no else()") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidateElseOnWrongKind(t *testing.T) {
	sm := hsm.NewStateMachine("v", hsm.WithLogger(hsm.NewNopLogger()))
	foo := hsm.NewState("foo", sm)
	bar := hsm.NewState("bar", sm)
	hsm.NewTransition(hsm.NewPseudoState("i", sm, hsm.Initial), foo, hsm.NoTrigger, hsm.External)
	hsm.NewTransition(foo, bar, 0, hsm.External).Else()

	diags := hsm.Validate(sm)
	found := false
	for _, d := range diags {
		if d.Severity == hsm.SeverityError && strings.Contains(d.Message, "else is only valid") {
			found = true
		}
	}
	assert.True(t, found)
}
