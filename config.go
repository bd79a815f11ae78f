package hsm

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config gathers the engine-level knobs into one object per state machine
// rather than scattering them as ambient package globals.
type Config struct {
	// NamespaceSeparator joins ancestor names when building a qualified
	// name. Defaults to ".".
	NamespaceSeparator string `yaml:"namespaceSeparator"`

	// DefaultRegionName names the region lazily created when a vertex is
	// constructed directly under a State that has none yet.
	DefaultRegionName string `yaml:"defaultRegionName"`

	// InternalTransitionsTriggerCompletion, when true, makes an internal
	// transition re-evaluate completion transitions from its source after
	// running its actions.
	InternalTransitionsTriggerCompletion bool `yaml:"internalTransitionsTriggerCompletion"`

	// AutoCompile, when true (the default), makes Initialise/Evaluate
	// compile the model on first use if it is not clean.
	AutoCompile bool `yaml:"autoCompile"`
}

// DefaultConfig returns the engine's out-of-the-box configuration.
func DefaultConfig() *Config {
	return &Config{
		NamespaceSeparator: ".",
		DefaultRegionName:  "region",
		AutoCompile:        true,
	}
}

// LoadConfig reads engine configuration from a YAML file, starting from
// DefaultConfig so an omitted field keeps its default. This loads engine
// configuration only; models are assembled in code, never deserialized.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
