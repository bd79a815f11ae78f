package hsm

// Compile validates sm and, if no errors were found, precomputes every
// element's entry/exit pipelines and every transition's traversal
// pipeline. It is the only place tree structure is walked; Evaluate
// afterwards does nothing but invoke the flat pipelines Compile built.
//
// Compile is idempotent: recompiling an unchanged model produces
// equivalent pipelines.
func Compile(sm *StateMachine) error {
	diags := Validate(sm)
	for _, d := range diags {
		switch d.Severity {
		case SeverityError:
			sm.logger.Error(d.Message, "path", d.Path)
		default:
			sm.logger.Warn(d.Message, "path", d.Path)
		}
	}
	if diags.HasErrors() {
		return diags
	}

	compileState(&sm.State, false)
	for _, t := range allTransitions(sm) {
		compileTransition(t)
	}

	sm.clean = true
	return nil
}

// compileIfNeeded runs Compile when the model isn't clean and the engine
// is configured to auto-compile; otherwise it reports whether the model is
// usable as-is.
func compileIfNeeded(sm *StateMachine) error {
	if sm.clean {
		return nil
	}
	if !sm.config.AutoCompile {
		return Diagnostics{{Severity: SeverityError, Path: sm.QualifiedName(), Message: "model is not compiled and AutoCompile is disabled"}}
	}
	return Compile(sm)
}

// ---- Pass A: element pipelines ----

func compileState(s *State, aboveDeepHistory bool) {
	for _, r := range s.regions {
		compileRegion(r, aboveDeepHistory)
	}

	owner := s.owner
	begin := make([]Action, 0, 1+len(s.entryBehavior))
	begin = append(begin, func(e Event, inst Instance, dh bool) {
		if owner != nil {
			inst.SetCurrent(owner, s)
		}
	})
	begin = append(begin, s.entryBehavior...)
	s.pipe.beginEnter = begin

	var end []Action
	for _, r := range s.regions {
		end = append(end, r.pipe.enter...)
	}
	s.pipe.endEnter = end

	enter := make([]Action, 0, len(begin)+len(end))
	enter = append(enter, begin...)
	enter = append(enter, end...)
	s.pipe.enter = enter

	var leave []Action
	for i := len(s.regions) - 1; i >= 0; i-- {
		leave = append(leave, s.regions[i].pipe.leave...)
	}
	leave = append(leave, s.exitBehavior...)
	s.pipe.leave = leave
}

func compileRegion(r *Region, aboveDeepHistory bool) {
	r.initial = nil
	for _, v := range r.children {
		if ps, ok := v.(*PseudoState); ok && ps.kind.IsInitialFamily() {
			r.initial = ps
			break
		}
	}

	var isHistoryKind, isDeepHistoryKind bool
	var defaultTarget Vertex
	if ps, ok := r.initial.(*PseudoState); ok {
		isHistoryKind = ps.kind.IsHistory()
		isDeepHistoryKind = ps.kind == DeepHistory
		if len(ps.out) == 1 {
			defaultTarget = ps.out[0].target
		}
	}

	useHistory := aboveDeepHistory || isHistoryKind
	region := r
	r.pipe.beginEnter = nil
	r.pipe.endEnter = []Action{historyRestoreOrDefault(region, useHistory, defaultTarget)}
	r.pipe.enter = r.pipe.endEnter
	r.pipe.leave = []Action{func(e Event, inst Instance, dh bool) {
		if cur := inst.GetCurrent(region); cur != nil {
			runPipeline(cur.pipes().leave, e, inst, dh)
		}
	}}

	childrenAboveDeepHistory := aboveDeepHistory || isDeepHistoryKind
	for _, v := range r.children {
		switch vv := v.(type) {
		case *State:
			compileState(vv, childrenAboveDeepHistory)
		case *FinalState:
			compileFinalState(vv)
		case *PseudoState:
			compilePseudoState(vv)
		}
	}
}

// historyRestoreOrDefault builds the dynamic action a region (or a
// transition targeting a History pseudo-state directly) uses to pick its
// entered child: the recorded current vertex when useHistory is set and
// one is recorded, otherwise defaultTarget, entered fresh.
func historyRestoreOrDefault(region *Region, useHistory bool, defaultTarget Vertex) Action {
	return func(e Event, inst Instance, _ bool) {
		if useHistory {
			if cur := inst.GetCurrent(region); cur != nil {
				runPipeline(cur.pipes().enter, e, inst, true)
				return
			}
		}
		if defaultTarget != nil {
			runPipeline(defaultTarget.pipes().enter, e, inst, false)
		}
	}
}

func compileFinalState(f *FinalState) {
	owner := f.owner
	begin := make([]Action, 0, 1+len(f.entryBehavior))
	begin = append(begin, func(e Event, inst Instance, dh bool) {
		inst.SetCurrent(owner, f)
	})
	begin = append(begin, f.entryBehavior...)
	f.pipe.beginEnter = begin
	f.pipe.endEnter = nil
	f.pipe.enter = begin
	f.pipe.leave = nil
}

func compilePseudoState(p *PseudoState) {
	p.pipe.reset()
	if p.kind == Terminate {
		p.pipe.beginEnter = []Action{func(e Event, inst Instance, dh bool) {
			inst.SetTerminated(true)
		}}
	}
	p.pipe.enter = p.pipe.beginEnter
}

// ---- Pass B: transition traversal ----

func allTransitions(sm *StateMachine) []*Transition {
	var out []*Transition
	var walk func(s *State)
	walk = func(s *State) {
		out = append(out, s.out...)
		for _, r := range s.regions {
			for _, v := range r.children {
				switch vv := v.(type) {
				case *State:
					walk(vv)
				case *PseudoState:
					out = append(out, vv.out...)
				}
			}
		}
	}
	walk(&sm.State)
	return out
}

func compileTransition(t *Transition) {
	switch t.kind {
	case Internal:
		// Actions only; no exit, no entry. Whether the effect re-triggers
		// completion evaluation is Evaluate's call, per configuration.
		t.traverse = append([]Action{}, t.actions...)
	case Local:
		compileLocalTransition(t)
	default:
		compileExternalTransition(t)
	}
	appendPseudoStateContinuation(t)
}

func compileLocalTransition(t *Transition) {
	s := t.source.(*State)
	region := regionOfSourceContainingTarget(s, t.target)
	traverse := make([]Action, 0)
	traverse = append(traverse, func(e Event, inst Instance, dh bool) {
		if cur := inst.GetCurrent(region); cur != nil {
			runPipeline(cur.pipes().leave, e, inst, dh)
		}
	})
	traverse = append(traverse, t.actions...)
	chain := chainFromRegionToVertex(region, t.target)
	traverse = append(traverse, enterChainPipeline(chain)...)
	t.traverse = traverse
}

func compileExternalTransition(t *Transition) {
	lca := lowestCommonRegion(t.source, t.target)
	chainS := chainFromRegionToVertex(lca, t.source)
	chainV := chainFromRegionToVertex(lca, t.target)

	traverse := make([]Action, 0)
	traverse = append(traverse, chainS[0].pipes().leave...)
	traverse = append(traverse, t.actions...)
	traverse = append(traverse, enterChainPipeline(chainV)...)
	t.traverse = traverse
}

// enterChainPipeline runs beginEnter for every ancestor of the chain's
// last element, then the full (recursive) enter for the last element
// itself. An intermediate ancestor descends explicitly only into the
// region containing the next chain element; its remaining regions are
// entered through their own enter pipelines (default or history), so an
// orthogonal ancestor ends up fully active.
func enterChainPipeline(chain []Vertex) []Action {
	var pipe []Action
	for i := 0; i < len(chain)-1; i++ {
		pipe = append(pipe, chain[i].pipes().beginEnter...)
		if s, ok := chain[i].(*State); ok {
			onPath := ownerRegionOf(chain[i+1])
			for _, r := range s.regions {
				if r != onPath {
					pipe = append(pipe, r.pipe.enter...)
				}
			}
		}
	}
	pipe = append(pipe, chain[len(chain)-1].pipes().enter...)
	return pipe
}

// appendPseudoStateContinuation handles a transition whose target is
// itself a pseudo-state, where more work follows the primary traversal.
// Initial is deterministic (exactly one outgoing transition, enforced by
// Validate) and is spliced in eagerly, flattening the whole chain into one
// pipeline, unless that transition continues into a Choice/Junction: then
// t is marked compound and the evaluator follows the chain from the
// Initial at runtime. t.target is never rewritten, so recompiling yields
// the same pipelines. History is runtime-dependent (it may restore a recorded vertex
// instead of following its default transition) and gets a dynamic action
// appended, mirroring a region's own history restoration. Choice/Junction
// guards depend on the live message, so the compiler only records that
// re-selection must happen at runtime (t.compound).
func appendPseudoStateContinuation(t *Transition) {
	ps, ok := t.target.(*PseudoState)
	if !ok {
		return
	}
	switch {
	case ps.kind == Choice || ps.kind == Junction:
		t.compound = true
	case ps.kind == Initial:
		if len(ps.out) != 1 {
			return
		}
		sub := ps.out[0]
		compileTransition(sub)
		if sub.compound {
			t.compound = true
			return
		}
		t.traverse = append(t.traverse, sub.traverse...)
	case ps.kind.IsHistory():
		region := ps.owner
		var defaultTarget Vertex
		if len(ps.out) == 1 {
			defaultTarget = ps.out[0].target
		}
		t.traverse = append(t.traverse, historyRestoreOrDefault(region, true, defaultTarget))
	}
}

// ---- shared ancestry helpers ----

func regionChain(v Vertex) []*Region {
	var chain []*Region
	for r := ownerRegionOf(v); r != nil; r = ownerRegionOf(r.owner) {
		chain = append(chain, r)
	}
	return chain
}

// lowestCommonRegion returns the deepest region that is an ancestor of
// both a and b.
func lowestCommonRegion(a, b Vertex) *Region {
	inA := make(map[*Region]bool)
	for _, r := range regionChain(a) {
		inA[r] = true
	}
	for _, r := range regionChain(b) {
		if inA[r] {
			return r
		}
	}
	return nil
}

// chainFromRegionToVertex returns v's ancestors from the direct child of
// region down to v itself, shallowest first.
func chainFromRegionToVertex(region *Region, v Vertex) []Vertex {
	var chain []Vertex
	cur := v
	for {
		chain = append(chain, cur)
		r := ownerRegionOf(cur)
		if r == region {
			break
		}
		cur = r.owner
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// regionOfSourceContainingTarget returns the region, owned directly by s,
// that v descends into. Used for Local transitions, whose target must be a
// proper descendant of their source.
func regionOfSourceContainingTarget(s *State, v Vertex) *Region {
	cur := v
	for {
		r := ownerRegionOf(cur)
		if r == nil {
			return nil
		}
		if r.owner == s {
			return r
		}
		cur = r.owner
	}
}
