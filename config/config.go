// Package config holds the simulator configuration and its JSON form.
package config

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Unsupported-instruction policies.
const (
	// PolicyNoop executes an unrecognized instruction as a no-op.
	PolicyNoop = "noop"
	// PolicyFail stops the simulation with an unsupported-opcode error.
	PolicyFail = "fail"
)

// Log formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// MaxRegister is the highest register index that can be seeded.
const MaxRegister = 31

// Config holds simulator settings.
type Config struct {
	// DataMemoryWords is the data memory capacity in words.
	// Default: 65536.
	DataMemoryWords uint32 `json:"data_memory_words"`

	// UnsupportedPolicy is "noop" or "fail". Default: "noop".
	UnsupportedPolicy string `json:"unsupported_policy"`

	// MaxCycles caps the number of cycles Run executes. 0 means no limit.
	// Default: 1000000.
	MaxCycles uint64 `json:"max_cycles"`

	// InitialRegisters seeds registers before the first cycle.
	InitialRegisters map[uint8]uint32 `json:"initial_registers,omitempty"`

	// LogLevel is a zerolog level name. Default: "info".
	LogLevel string `json:"log_level"`

	// LogFormat is "console" or "json". Default: "console".
	LogFormat string `json:"log_format"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		DataMemoryWords:   1 << 16,
		UnsupportedPolicy: PolicyNoop,
		MaxCycles:         1000000,
		LogLevel:          "info",
		LogFormat:         LogFormatConsole,
	}
}

// LoadConfig loads a Config from a JSON file. Fields missing from the file
// keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig writes a Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to serialize config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}

	return nil
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if c.DataMemoryWords == 0 {
		return errors.New("data_memory_words must be > 0")
	}

	switch strings.ToLower(c.UnsupportedPolicy) {
	case PolicyNoop, PolicyFail:
	default:
		return errors.Errorf("unsupported_policy must be %q or %q, got %q",
			PolicyNoop, PolicyFail, c.UnsupportedPolicy)
	}

	switch strings.ToLower(c.LogFormat) {
	case LogFormatConsole, LogFormatJSON:
	default:
		return errors.Errorf("log_format must be %q or %q, got %q",
			LogFormatConsole, LogFormatJSON, c.LogFormat)
	}

	for reg := range c.InitialRegisters {
		if reg > MaxRegister {
			return errors.Errorf("initial_registers: register %d out of range", reg)
		}
	}

	return nil
}

// Strict reports whether unsupported instructions should fail.
func (c *Config) Strict() bool {
	return strings.ToLower(c.UnsupportedPolicy) == PolicyFail
}

// Clone returns a deep copy of the Config.
func (c *Config) Clone() *Config {
	clone := *c

	if c.InitialRegisters != nil {
		clone.InitialRegisters = make(map[uint8]uint32, len(c.InitialRegisters))
		for reg, v := range c.InitialRegisters {
			clone.InitialRegisters[reg] = v
		}
	}

	return &clone
}
