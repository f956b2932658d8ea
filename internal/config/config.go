// Package config handles the configuration of the Collatz checker. It
// defines the AppConfig structure and resolves it from command-line flags,
// COLLATZ_* environment variables and an optional YAML file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"math/bits"
	"runtime"

	"github.com/agbru/collatzcheck/internal/bignum"
	apperrors "github.com/agbru/collatzcheck/internal/errors"
	"github.com/agbru/collatzcheck/internal/logging"
)

// EnvPrefix is the prefix for all environment variables recognized by the
// application.
const EnvPrefix = "COLLATZ_"

// AppConfig aggregates the application's configuration parameters.
//
// Zero values of Threads and PerThread and an empty Start mean "not
// provided"; the CLI prompts for them before Validate is called.
type AppConfig struct {
	// Threads is the number of workers per batch.
	Threads uint64
	// PerThread is the number of candidates each worker verifies per batch.
	PerThread uint64
	// Start is the decimal text of the first candidate.
	Start string
	// Backend names the arbitrary-precision backend.
	Backend string
	// MaxBatches stops the scan after this many batches; 0 runs forever.
	MaxBatches uint64
	// CountSteps enables the longest-trajectory diagnostic.
	CountSteps bool
	// LockThreads pins every worker goroutine to its own OS thread.
	LockThreads bool
	// MetricsAddr is the listen address of the Prometheus endpoint; empty
	// disables it.
	MetricsAddr string
	// ConfigFile is the path of the YAML file that was loaded, if any.
	ConfigFile string
	// TUI starts the interactive dashboard instead of the line output.
	TUI bool
	// Quiet suppresses the banner and settings summary.
	Quiet bool
	// Verbose adds a statistics line after every batch.
	Verbose bool
	// NoColor disables ANSI colors.
	NoColor bool
	// LogLevel is the zerolog level for the structured log on stderr.
	LogLevel string
}

// Defaults returns the configuration used when nothing overrides a field.
func Defaults() AppConfig {
	return AppConfig{
		Backend:     bignum.DefaultBackend,
		LockThreads: true,
		LogLevel:    "warn",
	}
}

// RecommendedThreads returns the thread count suggested at the prompt, half
// of the logical CPUs and at least one.
func RecommendedThreads() uint64 {
	return uint64(max(1, runtime.NumCPU()/2))
}

// NeedsPrompt reports which of the scan parameters are still missing.
func (c AppConfig) NeedsPrompt() (threads, perThread, start bool) {
	return c.Threads == 0, c.PerThread == 0, c.Start == ""
}

// BatchSize returns Threads × PerThread. It is only meaningful after
// Validate has succeeded.
func (c AppConfig) BatchSize() uint64 { return c.Threads * c.PerThread }

// ParseConfig parses the command-line arguments and resolves the final
// configuration.
//
// Resolution order (highest priority first): flags, COLLATZ_* environment
// variables, the YAML file named by --config or COLLATZ_CONFIG, defaults.
// Scan parameters still missing afterwards are left at their zero value.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: The command-line arguments, without the program name.
//   - errorWriter: The writer for flag errors and usage output.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: A ConfigError or ValidationError; flag.ErrHelp when -h is given.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	cfg := Defaults()

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [flags]\n\n", programName)
		fmt.Fprintln(errorWriter, "Verifies the Collatz conjecture batch after batch, from a start number onwards.")
		fmt.Fprintln(errorWriter, "Missing thread count, per-thread count or start number are prompted for on stdin.")
		fmt.Fprintln(errorWriter)
		fs.PrintDefaults()
	}

	fs.Var(&countValue{field: "threads", p: &cfg.Threads}, "threads", "Number of worker threads per batch.")
	fs.Var(&countValue{field: "per-thread", p: &cfg.PerThread}, "per-thread", "Number of candidates each thread verifies per batch.")
	fs.StringVar(&cfg.Start, "start", cfg.Start, "Decimal start number (at least 1, no upper bound).")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, fmt.Sprintf("Arbitrary-precision backend (%v).", bignum.List()))
	fs.Uint64Var(&cfg.MaxBatches, "batches", cfg.MaxBatches, "Stop after this many batches (0 runs until interrupted).")
	fs.BoolVar(&cfg.CountSteps, "count-steps", cfg.CountSteps, "Report the longest trajectory of every batch.")
	fs.BoolVar(&cfg.LockThreads, "lock-threads", cfg.LockThreads, "Pin every worker to its own OS thread.")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Serve Prometheus metrics on this address (e.g. :9090).")
	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "YAML configuration file.")
	fs.BoolVar(&cfg.TUI, "tui", cfg.TUI, "Start the interactive dashboard.")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "Only print batch lines.")
	fs.BoolVar(&cfg.Quiet, "q", cfg.Quiet, "Shorthand for --quiet.")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Print statistics after every batch.")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Shorthand for --verbose.")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable colored output.")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Structured log level on stderr (debug, info, warn, error, disabled).")
	fs.Bool("version", false, "Print version information and exit.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cfg, err
		}
		return cfg, apperrors.NewConfigError("%v", err)
	}
	if fs.NArg() > 0 {
		return cfg, apperrors.NewConfigError("unexpected arguments: %v", fs.Args())
	}

	path := cfg.ConfigFile
	if !isFlagSet(fs, "config") {
		path = getEnvString("CONFIG", path)
	}
	if path != "" {
		fc, err := LoadFile(path)
		if err != nil {
			return cfg, err
		}
		fc.apply(&cfg, fs)
		cfg.ConfigFile = path
	}

	if err := applyEnvOverrides(&cfg, fs); err != nil {
		return cfg, err
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return cfg, err
	}
	if cfg.Quiet && cfg.Verbose {
		return cfg, apperrors.NewConfigError("--quiet and --verbose cannot be used together")
	}
	return cfg, nil
}

// Validate checks a fully populated configuration.
//
// Returns:
//   - error: A ValidationError of class ErrInvalidCount for bad counts or an
//     overflowing batch size, of class ErrInvalidNumber for a bad start, or
//     a ValidationError on "backend" for an unknown backend.
func (c AppConfig) Validate() error {
	if c.Threads == 0 {
		return apperrors.InvalidCount("threads", "must be at least 1")
	}
	if c.PerThread == 0 {
		return apperrors.InvalidCount("per-thread", "must be at least 1")
	}
	if hi, _ := bits.Mul64(c.Threads, c.PerThread); hi != 0 {
		return apperrors.InvalidCount("per-thread", "batch size %d × %d does not fit in 64 bits", c.Threads, c.PerThread)
	}
	backend, err := bignum.Get(c.Backend)
	if err != nil {
		return err
	}
	if _, err := backend.Parse(c.Start); err != nil {
		return err
	}
	return nil
}

// ParseCount parses a thread or per-thread count. The text must consist of
// ASCII digits only and denote a value in [1, 2^64-2].
func ParseCount(field, s string) (uint64, error) {
	if s == "" {
		return 0, apperrors.InvalidCount(field, "empty input")
	}
	var n uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, apperrors.InvalidCount(field, "%q is not a decimal count", s)
		}
		hi, lo := bits.Mul64(n, 10)
		sum, carry := bits.Add64(lo, uint64(c-'0'), 0)
		if hi != 0 || carry != 0 {
			return 0, apperrors.InvalidCount(field, "%q is too large", s)
		}
		n = sum
	}
	if n == 0 {
		return 0, apperrors.InvalidCount(field, "must be at least 1")
	}
	if n == math.MaxUint64 {
		return 0, apperrors.InvalidCount(field, "%q is too large", s)
	}
	return n, nil
}

// countValue is a flag.Value for counts that applies ParseCount, so that
// flags reject signs, hexadecimal and separators like the prompt does.
type countValue struct {
	field string
	p     *uint64
}

func (v *countValue) String() string {
	if v == nil || v.p == nil || *v.p == 0 {
		return ""
	}
	return fmt.Sprint(*v.p)
}

func (v *countValue) Set(s string) error {
	n, err := ParseCount(v.field, s)
	if err != nil {
		return err
	}
	*v.p = n
	return nil
}
