package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/agbru/collatzcheck/internal/bignum"
	"github.com/agbru/collatzcheck/internal/config"
	apperrors "github.com/agbru/collatzcheck/internal/errors"
)

// invalidInput is printed after a rejected answer, before the prompt is
// repeated.
const invalidInput = "Invalid input."

// Prompter asks for missing scan parameters on an interactive stream.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewPrompter creates a Prompter reading answers line by line from in and
// writing prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(in), out: out}
}

// readLine prints the prompt and returns the next line without its line
// terminator. End of input is a configuration error.
func (p *Prompter) readLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", apperrors.WrapError(err, "reading %q", strings.TrimSuffix(prompt, ": "))
		}
		fmt.Fprintln(p.out)
		return "", apperrors.NewConfigError("input closed while waiting for %q", strings.TrimSuffix(prompt, ": "))
	}
	return strings.TrimSuffix(p.scanner.Text(), "\r"), nil
}

// Count prompts for a positive count until a valid answer is given.
//
// Parameters:
//   - label: The prompt text, without the trailing ": ".
//   - field: The configuration field name used in errors.
//
// Returns:
//   - uint64: The accepted count.
//   - error: A ConfigError if the input ends first.
func (p *Prompter) Count(label, field string) (uint64, error) {
	for {
		line, err := p.readLine(label + ": ")
		if err != nil {
			return 0, err
		}
		if n, err := config.ParseCount(field, line); err == nil {
			return n, nil
		}
		fmt.Fprintln(p.out, invalidInput)
	}
}

// Start prompts for the start number until backend accepts it. The
// accepted decimal text is returned.
func (p *Prompter) Start(backend bignum.Backend) (string, error) {
	for {
		line, err := p.readLine(StartPrompt + ": ")
		if err != nil {
			return "", err
		}
		if _, err := backend.Parse(line); err == nil {
			return line, nil
		}
		fmt.Fprintln(p.out, invalidInput)
	}
}

// StartPrompt is the question asked for the start number.
const StartPrompt = "Start number (Up to 2^68 has been checked as of 2020)"

// ThreadPrompt returns the question asked for the thread count.
func ThreadPrompt(recommended uint64) string {
	return fmt.Sprintf("Thread Count (%d Recommended)", recommended)
}

// PerThreadPrompt is the question asked for the per-thread count.
const PerThreadPrompt = "Iterations Per Thread (1000000 Recommended)"

// FillMissing prompts for every scan parameter cfg does not provide, in the
// order thread count, per-thread count, start number.
//
// Parameters:
//   - cfg: The configuration to complete in place.
//   - backend: The backend that validates the start number.
//
// Returns:
//   - error: A ConfigError if the input ends before every answer is given.
func (p *Prompter) FillMissing(cfg *config.AppConfig, backend bignum.Backend) error {
	needThreads, needPerThread, needStart := cfg.NeedsPrompt()
	var err error
	if needThreads {
		if cfg.Threads, err = p.Count(ThreadPrompt(config.RecommendedThreads()), "threads"); err != nil {
			return err
		}
	}
	if needPerThread {
		if cfg.PerThread, err = p.Count(PerThreadPrompt, "per-thread"); err != nil {
			return err
		}
	}
	if needStart {
		if cfg.Start, err = p.Start(backend); err != nil {
			return err
		}
	}
	return nil
}
