package hsm

// Initialise compiles sm if needed and runs the root's enter pipeline
// against instance, entering its initial configuration, then runs the
// completion cascade in case that configuration is already complete.
func Initialise(sm *StateMachine, instance Instance) error {
	if err := compileIfNeeded(sm); err != nil {
		return err
	}
	runPipeline(sm.pipes().enter, Event{Id: NoTrigger}, instance, false)
	cascadeCompletion(sm, instance)
	return nil
}

// Evaluate compiles sm if needed, then attempts to consume event starting
// at the deepest active configuration and bubbling outward. It returns
// true iff a transition was selected and its traversal ran to completion;
// a selected compound transition that dead-ends at an ill-formed
// choice/junction returns false. A terminated instance short-circuits to
// false without touching the model.
func Evaluate(sm *StateMachine, instance Instance, event Event) (bool, error) {
	if err := compileIfNeeded(sm); err != nil {
		return false, err
	}
	if instance.IsTerminated() {
		return false, nil
	}
	fired, ok := consume(sm, &sm.State, event, instance)
	if fired != nil && ok {
		// An internal transition exits and enters nothing, so it cannot
		// complete anything by itself; it only triggers completion
		// evaluation when configured to (its effect may have changed
		// extended state a completion guard reads).
		if fired.kind != Internal || sm.config.InternalTransitionsTriggerCompletion {
			cascadeCompletion(sm, instance)
		}
	}
	return ok, nil
}

// consume searches the active configuration depth-first, trying the
// deepest active region's current child before a state's own outgoing
// transitions, stopping at the first trigger-and-guard match. Orthogonal
// regions are searched in declaration order and the search short-circuits
// on the first match; a message is never broadcast to sibling regions.
//
// It returns the transition selected (nil if none matched anywhere) and
// whether its traversal ran to completion. Once a transition is selected
// the search is over either way: a traversal that dead-ends at an
// ill-formed pseudo-state does not resume bubbling.
func consume(sm *StateMachine, v Vertex, event Event, instance Instance) (*Transition, bool) {
	if s, isState := v.(*State); isState {
		for _, r := range s.regions {
			cur := instance.GetCurrent(r)
			if cur == nil {
				continue
			}
			if fired, ok := consume(sm, cur, event, instance); fired != nil {
				return fired, ok
			}
		}
	}
	for _, t := range v.outgoing() {
		if t.trigger == NoTrigger || t.trigger != event.Id {
			continue
		}
		if !t.guardAccepts(event, instance) {
			continue
		}
		return t, execute(sm, t, event, instance)
	}
	return nil, false
}

// execute runs a selected transition's precompiled traverse pipeline, then
// follows any compound continuation through Choice/Junction pseudo-states.
// Initial and History targets are flattened at compile time
// (appendPseudoStateContinuation); an Initial leaves t.compound true only
// when its transition continues into a Choice/Junction, and this loop
// then steps through it. The loop exists for Choice/Junction, whose guards
// can only be evaluated against the live message. It returns false when the chain dead-ends at
// an ill-formed pseudo-state, leaving the instance where the last
// completed traversal put it.
func execute(sm *StateMachine, t *Transition, event Event, instance Instance) bool {
	runPipeline(t.traverse, event, instance, false)
	for t.compound {
		ps, ok := t.target.(*PseudoState)
		if !ok {
			return true
		}
		next := selectPseudo(sm, ps, event, instance)
		if next == nil {
			// Ill-formed: already logged by selectPseudo.
			return false
		}
		runPipeline(next.traverse, event, instance, false)
		t = next
	}
	return true
}

// selectPseudo picks the outgoing transition a pseudo-state routes to.
// Initial/History are usually resolved eagerly at compile time; this
// branch is reached for an Initial whose transition continues into a
// Choice/Junction.
func selectPseudo(sm *StateMachine, ps *PseudoState, event Event, instance Instance) *Transition {
	switch ps.kind {
	case Choice:
		return selectChoice(sm, ps, event, instance)
	case Junction:
		return selectJunction(sm, ps, event, instance)
	case Initial, ShallowHistory, DeepHistory:
		if len(ps.out) == 1 {
			return ps.out[0]
		}
		return nil
	default: // Terminate: entering it already set the flag; nothing to select.
		return nil
	}
}

func selectChoice(sm *StateMachine, ps *PseudoState, event Event, instance Instance) *Transition {
	var enabled []*Transition
	var elseT *Transition
	for _, t := range ps.out {
		if t.isElse {
			elseT = t
			continue
		}
		if t.guardAccepts(event, instance) {
			enabled = append(enabled, t)
		}
	}
	switch {
	case len(enabled) > 0:
		return enabled[sm.rng(len(enabled))]
	case elseT != nil:
		return elseT
	default:
		sm.logger.Error("ill-formed: choice with no enabled transition", "path", ps.QualifiedName())
		return nil
	}
}

func selectJunction(sm *StateMachine, ps *PseudoState, event Event, instance Instance) *Transition {
	var matched []*Transition
	var elseT *Transition
	for _, t := range ps.out {
		if t.isElse {
			elseT = t
			continue
		}
		if t.guardAccepts(event, instance) {
			matched = append(matched, t)
		}
	}
	switch {
	case len(matched) == 1:
		return matched[0]
	case len(matched) == 0 && elseT != nil:
		return elseT
	case len(matched) > 1:
		sm.logger.Error("ill-formed: junction has multiple enabled transitions", "path", ps.QualifiedName())
		return nil
	default:
		sm.logger.Error("ill-formed: junction has no enabled transition and no else", "path", ps.QualifiedName())
		return nil
	}
}

// cascadeCompletion repeatedly walks the active configuration depth-first,
// firing at most one completion transition per pass, until a full pass
// fires none. The walk covers the whole active configuration rather than
// only just-entered vertices: an ancestor may become complete on a later
// message than the one that entered it, when its last region reaches a
// final state. Completion guards are evaluated against a null
// message-equivalent (NoTrigger), never the event that happened to trigger
// the walk — so a counter a transition's effect just incremented is
// visible, but its Data is not mistaken for the completed state's own
// trigger.
func cascadeCompletion(sm *StateMachine, instance Instance) {
	completionEvent := Event{Id: NoTrigger}
	for !instance.IsTerminated() && walkCompletion(sm, &sm.State, completionEvent, instance) {
	}
}

func walkCompletion(sm *StateMachine, s *State, completionEvent Event, instance Instance) bool {
	for _, r := range s.regions {
		if cs, ok := instance.GetCurrent(r).(*State); ok {
			if walkCompletion(sm, cs, completionEvent, instance) {
				return true
			}
		}
	}
	return tryCompleteState(sm, s, completionEvent, instance)
}

// tryCompleteState fires the first enabled completion transition from s if
// s is complete: a simple state is complete the moment it is entered, a
// composite state once every region has reached a FinalState.
func tryCompleteState(sm *StateMachine, s *State, completionEvent Event, instance Instance) bool {
	if !s.isComplete(instance) {
		return false
	}
	for _, t := range s.out {
		if t.trigger != NoTrigger {
			continue
		}
		if !t.guardAccepts(completionEvent, instance) {
			continue
		}
		return execute(sm, t, completionEvent, instance)
	}
	return false
}
