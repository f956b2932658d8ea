// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/agbru/collatzcheck/internal/errors"
)

// getEnvString returns the value of the environment variable with the given key
// (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the COLLATZ_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string) error
}

// envOverrides is the declarative table of all environment variable overrides.
// A malformed value is reported as an error.
var envOverrides = []envOverride{
	// Scan geometry
	{"THREADS", []string{"threads"}, func(c *AppConfig, v string) (err error) {
		c.Threads, err = ParseCount("threads", v)
		return err
	}},
	{"PER_THREAD", []string{"per-thread"}, func(c *AppConfig, v string) (err error) {
		c.PerThread, err = ParseCount("per-thread", v)
		return err
	}},
	{"START", []string{"start"}, func(c *AppConfig, v string) error {
		c.Start = v
		return nil
	}},
	{"BATCHES", []string{"batches"}, func(c *AppConfig, v string) error {
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return apperrors.InvalidCount("batches", "%q is not a decimal count", v)
		}
		c.MaxBatches = parsed
		return nil
	}},

	// String overrides
	{"BACKEND", []string{"backend"}, func(c *AppConfig, v string) error {
		c.Backend = v
		return nil
	}},
	{"METRICS_ADDR", []string{"metrics-addr"}, func(c *AppConfig, v string) error {
		c.MetricsAddr = v
		return nil
	}},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) error {
		c.LogLevel = v
		return nil
	}},

	// Boolean overrides
	{"COUNT_STEPS", []string{"count-steps"}, boolOverride("COUNT_STEPS", func(c *AppConfig) *bool { return &c.CountSteps })},
	{"LOCK_THREADS", []string{"lock-threads"}, boolOverride("LOCK_THREADS", func(c *AppConfig) *bool { return &c.LockThreads })},
	{"TUI", []string{"tui"}, boolOverride("TUI", func(c *AppConfig) *bool { return &c.TUI })},
	{"QUIET", []string{"quiet", "q"}, boolOverride("QUIET", func(c *AppConfig) *bool { return &c.Quiet })},
	{"VERBOSE", []string{"verbose", "v"}, boolOverride("VERBOSE", func(c *AppConfig) *bool { return &c.Verbose })},
	{"NO_COLOR", []string{"no-color"}, boolOverride("NO_COLOR", func(c *AppConfig) *bool { return &c.NoColor })},
}

func boolOverride(key string, field func(*AppConfig) *bool) func(*AppConfig, string) error {
	return func(c *AppConfig, v string) error {
		b, ok := parseBoolEnv(v)
		if !ok {
			return apperrors.NewConfigError("%s%s: %q is not a boolean", EnvPrefix, key, v)
		}
		*field(c) = b
		return nil
	}
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
func parseBoolEnv(val string) (value, ok bool) {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	}
	return false, false
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > file > Defaults.
//
// Supported environment variables (all prefixed with COLLATZ_):
//   - THREADS, PER_THREAD, START, BATCHES, BACKEND, METRICS_ADDR, LOG_LEVEL,
//     COUNT_STEPS, LOCK_THREADS, TUI, QUIET, VERBOSE, NO_COLOR
//   - CONFIG is read by ParseConfig before the file is loaded.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) error {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			if err := o.apply(config, val); err != nil {
				return err
			}
		}
	}
	return nil
}
