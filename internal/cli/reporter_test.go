package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/agbru/collatzcheck/internal/bignum"
	"github.com/agbru/collatzcheck/internal/orchestration"
)

var batchLine = regexp.MustCompile(`^Trying (\d+) - (\d+)\.\.\. Passed \((\d+)ms\)\.$`)

func runLoop(t *testing.T, r orchestration.BatchReporter, threads, perThread, start, batches uint64) {
	t.Helper()
	s, err := orchestration.NewScheduler(threads, perThread, orchestration.Options{CountSteps: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := orchestration.NewLoop(s, r, batches).Run(context.Background(), bignum.Default().FromUint64(start)); err != nil {
		t.Fatal(err)
	}
}

func TestCLIReporter_LineOutput(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	runLoop(t, NewCLIReporter(&buf, CLIReporterOptions{}), 2, 3, 1, 3)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	want := [][2]string{{"1", "7"}, {"7", "13"}, {"13", "19"}}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), buf.String())
	}
	for i, line := range lines {
		m := batchLine.FindStringSubmatch(line)
		if m == nil {
			t.Fatalf("line %d %q does not match the batch format", i, line)
		}
		if m[1] != want[i][0] || m[2] != want[i][1] {
			t.Errorf("line %d reports %s - %s, want %s - %s", i, m[1], m[2], want[i][0], want[i][1])
		}
	}
}

func TestCLIReporter_Spinner(t *testing.T) {
	noColor(t)
	original := newSpinner
	defer func() { newSpinner = original }()

	var spinners []*MockSpinner
	newSpinner = func(_ io.Writer) Spinner {
		m := &MockSpinner{}
		spinners = append(spinners, m)
		return m
	}

	var buf bytes.Buffer
	runLoop(t, NewCLIReporter(&buf, CLIReporterOptions{Spinner: true}), 2, 3, 1, 2)

	if len(spinners) != 2 {
		t.Fatalf("expected one spinner per batch, got %d", len(spinners))
	}
	for i, m := range spinners {
		m.mu.Lock()
		if !m.started || !m.stopped {
			t.Errorf("spinner %d: started=%v stopped=%v", i, m.started, m.stopped)
		}
		if len(m.suffixes) == 0 || !strings.Contains(m.suffixes[0], "Trying") {
			t.Errorf("spinner %d first suffix = %v", i, m.suffixes)
		}
		m.mu.Unlock()
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 || !batchLine.MatchString(lines[0]) || !batchLine.MatchString(lines[1]) {
		t.Errorf("spinner mode should still print complete batch lines, got:\n%s", buf.String())
	}
}

func TestCLIReporter_Verbose(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	runLoop(t, NewCLIReporter(&buf, CLIReporterOptions{Verbose: true}), 2, 3, 1, 1)

	out := buf.String()
	for _, want := range []string{"Trying 1 - 7... Passed", "6 verified", "2 threads", "longest trajectory 8 steps at 6"} {
		if !strings.Contains(out, want) {
			t.Errorf("verbose output should contain %q, got:\n%s", want, out)
		}
	}
}

func TestFormatBatchStats(t *testing.T) {
	noColor(t)
	b := bignum.Default()
	got := FormatBatchStats(orchestration.BatchReport{
		Verified:   2_000_000,
		Elapsed:    time.Second,
		CPUTime:    2 * time.Second,
		Threads:    4,
		MaxSteps:   350,
		MaxStepsAt: b.FromUint64(77031),
	})
	for _, want := range []string{"2,000,000 verified", "2.00M/s", "4 threads", "cpu 2s (50% of threads)", "350 steps at 77031"} {
		if !strings.Contains(got, want) {
			t.Errorf("stats %q should contain %q", got, want)
		}
	}
}

func TestSpinnerWanted(t *testing.T) {
	if SpinnerWanted(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if SpinnerWanted(f) {
		t.Error("a regular file is not a terminal")
	}
}
