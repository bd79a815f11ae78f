// Package hsm implements a UML-style hierarchical finite state machine
// engine: a shared, compiled model (regions, states, pseudo-states and
// transitions) evaluated by any number of independent instances.
//
// A model is assembled with the fluent construction API (NewStateMachine,
// NewRegion, NewState, NewFinalState, NewPseudoState, NewTransition), then
// compiled with Compile (or implicitly, on first use, if AutoCompile is
// set). Compilation validates the model and precomputes, per element, the
// ordered action pipelines the evaluator runs: no tree walking happens at
// message-evaluation time beyond transition selection itself.
//
// Each instance's active configuration — which vertex is current in each
// region, and whether the instance has terminated — lives behind the
// Instance interface, so hosts can persist or swap it freely; MapInstance
// is the bundled default.
package hsm
