package hsm

// StateMachine is the root of a model tree: itself a State (so it may own
// one region, or several for a top-level orthogonal model), plus the
// clean flag that tracks whether compiled pipelines match the current
// model, and the engine-level collaborators: config, logger, and the
// pluggable random function Choice selection uses.
type StateMachine struct {
	State

	clean  bool
	config *Config
	logger Logger
	rng    RandomFunc
}

// Option configures a StateMachine at construction time.
type Option func(*StateMachine)

// WithConfig overrides the default Config.
func WithConfig(c *Config) Option {
	return func(sm *StateMachine) { sm.config = c }
}

// WithLogger overrides the default Logger.
func WithLogger(l Logger) Option {
	return func(sm *StateMachine) { sm.logger = l }
}

// WithRandom overrides the default RandomFunc used by Choice selection.
func WithRandom(r RandomFunc) Option {
	return func(sm *StateMachine) { sm.rng = r }
}

// NewStateMachine creates a new, empty model root named name.
func NewStateMachine(name string, opts ...Option) *StateMachine {
	sm := &StateMachine{
		config: DefaultConfig(),
		logger: defaultLogger(),
		rng:    defaultRandom,
	}
	sm.State = State{name: name, sm: sm}
	for _, opt := range opts {
		opt(sm)
	}
	return sm
}

// Config returns the state machine's engine configuration.
func (sm *StateMachine) Config() *Config { return sm.config }

// Logger returns the state machine's logging sink.
func (sm *StateMachine) Logger() Logger { return sm.logger }

// IsClean reports whether the compiled pipelines match the current model.
func (sm *StateMachine) IsClean() bool { return sm.clean }
