package config

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/collatzcheck/internal/errors"
)

// FileConfig is the YAML representation of the configuration. Keys mirror
// the long flag names. Absent keys leave the corresponding setting alone.
//
//	threads: 8
//	per_thread: 1000000
//	start: 295147905179352825856
//	backend: big
//	batches: 0
//	count_steps: false
//	lock_threads: true
//	metrics_addr: ":9090"
//	log_level: warn
type FileConfig struct {
	Threads     *uint64     `yaml:"threads"`
	PerThread   *uint64     `yaml:"per_thread"`
	Start       *NumberText `yaml:"start"`
	Backend     *string     `yaml:"backend"`
	Batches     *uint64     `yaml:"batches"`
	CountSteps  *bool       `yaml:"count_steps"`
	LockThreads *bool       `yaml:"lock_threads"`
	MetricsAddr *string     `yaml:"metrics_addr"`
	TUI         *bool       `yaml:"tui"`
	Quiet       *bool       `yaml:"quiet"`
	Verbose     *bool       `yaml:"verbose"`
	NoColor     *bool       `yaml:"no_color"`
	LogLevel    *string     `yaml:"log_level"`
}

// NumberText keeps the literal text of a YAML scalar, so that a start
// number written without quotes is not resolved to a float when it exceeds
// the int64 range.
type NumberText string

// UnmarshalYAML implements yaml.Unmarshaler.
func (n *NumberText) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return apperrors.InvalidNumber("start", "expected a scalar at line %d", value.Line)
	}
	*n = NumberText(value.Value)
	return nil
}

// LoadFile reads and decodes a YAML configuration file. Unknown keys are
// rejected.
//
// Parameters:
//   - path: The path of the YAML file.
//
// Returns:
//   - *FileConfig: The decoded file.
//   - error: A ConfigError if the file cannot be read or decoded.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewConfigError("cannot read config file: %v", err)
	}
	return DecodeFile(bytes.NewReader(data), path)
}

// DecodeFile decodes YAML configuration from r. name is used in error
// messages. An empty document yields an empty FileConfig.
func DecodeFile(r io.Reader, name string) (*FileConfig, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var fc FileConfig
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		var vErr apperrors.ValidationError
		if errors.As(err, &vErr) {
			return nil, err
		}
		return nil, apperrors.NewConfigError("invalid config file %s: %v", name, err)
	}
	return &fc, nil
}

// apply copies every key present in the file onto cfg, unless the matching
// flag was set on the command line.
func (fc *FileConfig) apply(cfg *AppConfig, fs *flag.FlagSet) {
	setUint := func(dst *uint64, src *uint64, flags ...string) {
		if src != nil && !isFlagSetAny(fs, flags...) {
			*dst = *src
		}
	}
	setString := func(dst *string, src *string, flags ...string) {
		if src != nil && !isFlagSetAny(fs, flags...) {
			*dst = *src
		}
	}
	setBool := func(dst *bool, src *bool, flags ...string) {
		if src != nil && !isFlagSetAny(fs, flags...) {
			*dst = *src
		}
	}

	setUint(&cfg.Threads, fc.Threads, "threads")
	setUint(&cfg.PerThread, fc.PerThread, "per-thread")
	if fc.Start != nil && !isFlagSet(fs, "start") {
		cfg.Start = string(*fc.Start)
	}
	setString(&cfg.Backend, fc.Backend, "backend")
	setUint(&cfg.MaxBatches, fc.Batches, "batches")
	setBool(&cfg.CountSteps, fc.CountSteps, "count-steps")
	setBool(&cfg.LockThreads, fc.LockThreads, "lock-threads")
	setString(&cfg.MetricsAddr, fc.MetricsAddr, "metrics-addr")
	setBool(&cfg.TUI, fc.TUI, "tui")
	setBool(&cfg.Quiet, fc.Quiet, "quiet", "q")
	setBool(&cfg.Verbose, fc.Verbose, "verbose", "v")
	setBool(&cfg.NoColor, fc.NoColor, "no-color")
	setString(&cfg.LogLevel, fc.LogLevel, "log-level")
}
