package means

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/kolkov/means/internal/vm"
)

// DefaultStackSize is the VM stack capacity used when Config.StackSize is unset.
const DefaultStackSize = vm.DefaultStackSize

// Config holds configuration options for program execution.
type Config struct {
	// StackSize is the fixed VM stack capacity (default: DefaultStackSize).
	// A program that holds more values than this faults with a stack overflow.
	StackSize int `yaml:"stack_size"`

	// Trace enables per-instruction execution tracing.
	Trace bool `yaml:"trace"`

	// Output is the writer for values printed by the program.
	// If nil, output is captured and returned in Result.Output.
	Output io.Writer `yaml:"-"`

	// TraceOutput receives trace lines when Trace is set.
	// If nil, os.Stderr is used.
	TraceOutput io.Writer `yaml:"-"`
}

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.StackSize <= 0 {
		c.StackSize = DefaultStackSize
	}
	if c.Trace && c.TraceOutput == nil {
		c.TraceOutput = os.Stderr
	}
}

// validate rejects settings that applyDefaults cannot repair.
func (c *Config) validate() error {
	if c.StackSize < 0 {
		return fmt.Errorf("stack_size must not be negative, got %d", c.StackSize)
	}
	return nil
}

// LoadConfig reads a YAML configuration file. A missing file yields the
// default configuration. Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	config := &Config{}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		config.applyDefaults()
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.UnmarshalWithOptions(data, config, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	config.applyDefaults()
	return config, nil
}
