package hsm_test

import (
	"fmt"
	"testing"

	"github.com/umlstate/hsm"
)

func TestPumlExample1(t *testing.T) {
	const (
		evNewData = iota
		evEnoughData
		evPause
		evSucceeded
		evFailed
		evResume
		evAborted
	)

	sm := hsm.NewStateMachine("pipeline", hsm.WithLogger(hsm.NewNopLogger()))

	state1 := hsm.NewState("State1", sm)
	state2 := hsm.NewState("State2", sm)
	state3 := hsm.NewState("State3", sm)
	hsm.NewTransition(hsm.NewPseudoState("init", sm, hsm.Initial), state1, hsm.NoTrigger, hsm.External)

	accEnoughData := hsm.NewState("AccumulateEnoughData", state3)
	processData := hsm.NewState("ProcessData", state3)
	hist := hsm.NewPseudoState("hist", state3, hsm.ShallowHistory)
	hsm.NewTransition(hist, accEnoughData, hsm.NoTrigger, hsm.External)

	hsm.NewTransition(accEnoughData, accEnoughData, evNewData, hsm.External)
	hsm.NewTransition(accEnoughData, processData, evEnoughData, hsm.External)

	hsm.NewTransition(state3, state2, evPause, hsm.External)
	hsm.NewTransition(state2, state3, evResume, hsm.External)
	hsm.NewTransition(state1, state2, evSucceeded, hsm.External)
	hsm.NewTransition(state3, state3, evFailed, hsm.External)

	saveResult := func(hsm.Event, hsm.Instance, bool) {}
	hsm.NewTransition(state3, nil, evSucceeded, hsm.Internal).Effect(saveResult)

	hsm.NewTransition(state1, nil, evAborted, hsm.Internal)
	hsm.NewTransition(state2, nil, evAborted, hsm.Internal)
	hsm.NewTransition(state3, nil, evAborted, hsm.Internal)

	if err := hsm.Compile(sm); err != nil {
		t.Fatal(err)
	}

	evMapper := func(i int) string {
		return []string{
			"New data",
			"Enough data",
			"Pause",
			"Succeeded",
			"Failed",
			"Resume",
			"Aborted",
		}[i]
	}

	puml := sm.DiagramBuilder(evMapper).DefaultArrow("->").Arrow(state2, state3, "--->").Build()
	fmt.Println(puml)

	inst := hsm.NewMapInstance()
	if err := hsm.Initialise(sm, inst); err != nil {
		t.Fatal(err)
	}
	fmt.Println(sm.DiagramBuilder(evMapper).MarkActive(inst).Build())
}
