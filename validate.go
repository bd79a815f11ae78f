package hsm

import "fmt"

// Validate walks the model rooted at sm and returns every diagnostic
// found. It does not mutate the model. Compile calls Validate and aborts
// compilation if any diagnostic is SeverityError.
func Validate(sm *StateMachine) Diagnostics {
	var diags Diagnostics
	report := func(sev Severity, path, format string, args ...any) {
		diags = append(diags, Diagnostic{Severity: sev, Path: path, Message: fmt.Sprintf(format, args...)})
	}

	var walkState func(s *State)
	walkState = func(s *State) {
		for _, t := range s.out {
			if t.isElse {
				report(SeverityError, s.QualifiedName(), "else() transition from a state; else is only valid on Choice/Junction")
			}
			validateTransitionKind(t, report)
		}
		for _, r := range s.regions {
			validateRegion(r, report)
			for _, v := range r.children {
				switch vv := v.(type) {
				case *State:
					walkState(vv)
				case *FinalState:
					if len(vv.out) > 0 {
						report(SeverityError, vv.QualifiedName(), "final state has %d outgoing transition(s); final states must have none", len(vv.out))
					}
				case *PseudoState:
					validatePseudoState(vv, report)
				}
			}
		}
	}
	walkState(&sm.State)

	return diags
}

// validateTransitionKind catches the one construction-time combination the
// normalization in NewTransition can't rule out: a Local transition whose
// source isn't a State. Local reentry is scoped to one of the source's own
// regions, which only a composite State has.
func validateTransitionKind(t *Transition, report func(Severity, string, string, ...any)) {
	if t.kind != Local {
		return
	}
	if _, ok := t.source.(*State); !ok {
		report(SeverityError, t.source.QualifiedName(), "Local transition to %s has a non-State source; only composite states can scope a Local self-transition", t.target.QualifiedName())
	}
}

func validateRegion(r *Region, report func(Severity, string, string, ...any)) {
	var initials []Vertex
	for _, v := range r.children {
		if ps, ok := v.(*PseudoState); ok && ps.kind.IsInitialFamily() {
			initials = append(initials, ps)
		}
	}
	switch len(initials) {
	case 0:
		report(SeverityError, r.QualifiedName(), "region has no initial-family (Initial/ShallowHistory/DeepHistory) child")
	case 1:
		// resolved by Compile
	default:
		report(SeverityError, r.QualifiedName(), "region has %d initial-family children; exactly one is required", len(initials))
	}
}

func validatePseudoState(p *PseudoState, report func(Severity, string, string, ...any)) {
	switch p.kind {
	case Choice, Junction:
		validateChoiceOrJunction(p, report)
	case Initial:
		if len(p.out) != 1 {
			report(SeverityError, p.QualifiedName(), "Initial pseudo-state has %d outgoing transitions; exactly one is required", len(p.out))
		}
	case ShallowHistory, DeepHistory:
		if len(p.out) != 1 {
			report(SeverityError, p.QualifiedName(), "History pseudo-state has %d outgoing transitions; exactly one default target is required", len(p.out))
		}
	case Terminate:
		if len(p.out) > 0 {
			report(SeverityError, p.QualifiedName(), "Terminate pseudo-state has %d outgoing transition(s); it must have none", len(p.out))
		}
	}
	for _, t := range p.out {
		if t.isElse && p.kind != Choice && p.kind != Junction {
			report(SeverityError, p.QualifiedName(), "else() transition from a %s pseudo-state; else is only valid on Choice/Junction", p.kind)
		}
		validateTransitionKind(t, report)
	}
}

func validateChoiceOrJunction(p *PseudoState, report func(Severity, string, string, ...any)) {
	if len(p.out) == 0 {
		report(SeverityError, p.QualifiedName(), "%s has no outgoing transitions", p.kind)
		return
	}
	var elseCount, guardedCount int
	for _, t := range p.out {
		if t.isElse {
			elseCount++
		} else {
			guardedCount++
		}
	}
	if elseCount > 1 {
		report(SeverityError, p.QualifiedName(), "%s has %d else() transitions; at most one is allowed", p.kind, elseCount)
	}
	if elseCount == 0 && guardedCount < 2 {
		report(SeverityWarning, p.QualifiedName(), "%s has no else() branch and fewer than two guarded outgoing transitions; a message may find no enabled transition", p.kind)
	}
}
