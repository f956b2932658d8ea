package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agbru/collatzcheck/internal/bignum"
	"github.com/agbru/collatzcheck/internal/cli"
	"github.com/agbru/collatzcheck/internal/config"
	apperrors "github.com/agbru/collatzcheck/internal/errors"
	"github.com/agbru/collatzcheck/internal/logging"
	"github.com/agbru/collatzcheck/internal/metrics"
	"github.com/agbru/collatzcheck/internal/orchestration"
	"github.com/agbru/collatzcheck/internal/tui"
	"github.com/agbru/collatzcheck/internal/ui"
)

// shutdownTimeout bounds the graceful stop of the metrics server.
const shutdownTimeout = 2 * time.Second

// Application represents the collatzcheck application instance.
type Application struct {
	Config    config.AppConfig
	In        io.Reader
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithInput sets the reader interactive prompts read from (default os.Stdin).
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.In = r }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{In: os.Stdin, ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "collatzcheck"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run resolves the remaining configuration, then scans until the batch
// limit is reached or the operator interrupts. It returns the process exit
// code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	level, err := logging.ParseLevel(a.Config.LogLevel)
	if err != nil {
		return a.fail(err)
	}
	zerolog.SetGlobalLevel(level)
	logger := logging.NewLogger(a.ErrWriter, "collatzcheck").
		WithLevel(level).
		With(logging.String("run_id", uuid.NewString()))

	outFile, _ := out.(*os.File)
	ui.InitTheme(a.Config.NoColor, outFile)

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	chatty := !a.Config.Quiet && !a.Config.TUI
	if chatty {
		cli.DisplayBanner(out)
	}

	backend, err := bignum.Get(a.Config.Backend)
	if err != nil {
		return a.fail(err)
	}
	if err := cli.NewPrompter(a.In, out).FillMissing(&a.Config, backend); err != nil {
		return a.fail(err)
	}
	if err := a.Config.Validate(); err != nil {
		return a.fail(err)
	}
	start, err := backend.Parse(a.Config.Start)
	if err != nil {
		return a.fail(err)
	}

	if chatty {
		cli.DisplaySettings(out, cli.Settings{
			Threads:   a.Config.Threads,
			PerThread: a.Config.PerThread,
			Start:     start,
			Backend:   backend.Name(),
		})
	}

	scheduler, err := orchestration.NewScheduler(a.Config.Threads, a.Config.PerThread, orchestration.Options{
		CountSteps:   a.Config.CountSteps,
		LockOSThread: a.Config.LockThreads,
	})
	if err != nil {
		return a.fail(err)
	}
	scheduler.SetLogger(logger.Zerolog().With().Str("component", "scheduler").Logger())

	recorder := metrics.NewRecorder()
	reporters := orchestration.MultiReporter{recorder, orchestration.LogReporter{Logger: logger}}

	if a.Config.MetricsAddr != "" {
		srv := metrics.NewServer(a.Config.MetricsAddr, recorder, logger)
		if err := srv.Start(); err != nil {
			return a.fail(err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("metrics server shutdown", err)
			}
		}()
	}

	logger.Info("scan starting",
		logging.String("start", start.String()),
		logging.Uint64("threads", a.Config.Threads),
		logging.Uint64("per_thread", a.Config.PerThread),
		logging.String("backend", backend.Name()),
		logging.Uint64("batches", a.Config.MaxBatches),
	)

	if a.Config.TUI {
		return a.runTUI(ctx, out, scheduler, reporters, start, backend.Name())
	}
	return a.runScan(ctx, out, scheduler, reporters, start, logger)
}

// runTUI launches the interactive dashboard and prints where the scan
// stopped once it exits.
func (a *Application) runTUI(ctx context.Context, out io.Writer, s *orchestration.Scheduler, reporters orchestration.MultiReporter, start bignum.Int, backend string) int {
	bridge := tui.NewReporter()
	loop := orchestration.NewLoop(s, append(reporters, bridge), a.Config.MaxBatches)

	outcome := tui.Run(ctx, tui.Session{
		Loop:     loop,
		Reporter: bridge,
		Start:    start,
		Backend:  backend,
		Version:  Version,
	})
	if !a.Config.Quiet {
		fmt.Fprintf(out, "Stopped after %d batches. Resume with --start %s.\n",
			outcome.Batches, outcome.Frontier)
	}
	return outcome.ExitCode
}

// fail reports err on the error writer and maps it to an exit code.
func (a *Application) fail(err error) int {
	fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
	return apperrors.ExitCodeFor(err)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
