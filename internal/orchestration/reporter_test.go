package orchestration_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/agbru/collatzcheck/internal/bignum"
	"github.com/agbru/collatzcheck/internal/logging"
	"github.com/agbru/collatzcheck/internal/orchestration"
	"github.com/agbru/collatzcheck/internal/orchestration/mocks"
)

// condMatcher adapts a predicate to gomock.Matcher.
type condMatcher struct {
	desc string
	fn   func(x any) bool
}

func (m condMatcher) Matches(x any) bool { return m.fn(x) }
func (m condMatcher) String() string     { return m.desc }

func TestLoop_ReporterCallOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := mocks.NewMockBatchReporter(ctrl)

	planAt := func(start string) gomock.Matcher {
		return condMatcher{"plan starting at " + start, func(x any) bool {
			p, ok := x.(orchestration.BatchPlan)
			return ok && p.Start.String() == start && p.Size == 6 && len(p.Ranges) == 2
		}}
	}
	reportAt := func(start, end string) gomock.Matcher {
		return condMatcher{"report for " + start + " - " + end, func(x any) bool {
			r, ok := x.(orchestration.BatchReport)
			return ok && r.Start.String() == start && r.End.String() == end && r.Verified == 6
		}}
	}

	gomock.InOrder(
		reporter.EXPECT().BatchStarted(planAt("1")),
		reporter.EXPECT().BatchCompleted(reportAt("1", "7")),
		reporter.EXPECT().BatchStarted(planAt("7")),
		reporter.EXPECT().BatchCompleted(reportAt("7", "13")),
	)

	s, err := orchestration.NewScheduler(2, 3, orchestration.Options{})
	if err != nil {
		t.Fatal(err)
	}
	loop := orchestration.NewLoop(s, reporter, 2)
	if _, err := loop.Run(context.Background(), bignum.Default().FromUint64(1)); err != nil {
		t.Fatal(err)
	}
}

func TestMultiReporter(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mocks.NewMockBatchReporter(ctrl)
	second := mocks.NewMockBatchReporter(ctrl)

	gomock.InOrder(
		first.EXPECT().BatchStarted(gomock.Any()),
		second.EXPECT().BatchStarted(gomock.Any()),
		first.EXPECT().BatchCompleted(gomock.Any()),
		second.EXPECT().BatchCompleted(gomock.Any()),
	)

	m := orchestration.MultiReporter{first, second}
	plan := orchestration.Partition(bignum.Default().FromUint64(1), 1, 1)
	m.BatchStarted(plan)
	m.BatchCompleted(orchestration.BatchReport{Start: plan.Start, End: plan.End()})
}

func TestLogReporter(t *testing.T) {
	var buf bytes.Buffer
	r := orchestration.LogReporter{Logger: logging.NewLogger(&buf, "scan")}
	b := bignum.Default()
	r.BatchCompleted(orchestration.BatchReport{
		Index:      3,
		Start:      b.FromUint64(19),
		End:        b.FromUint64(25),
		Size:       6,
		Elapsed:    1500 * time.Millisecond,
		Verified:   6,
		MaxSteps:   20,
		MaxStepsAt: b.FromUint64(19),
	})

	out := buf.String()
	for _, want := range []string{"batch passed", `"start":"19"`, `"end":"25"`, `"elapsed_ms":1500`, `"max_steps":20`, "scan"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output should contain %s, got: %s", want, out)
		}
	}
}

func TestBatchReport_Rate(t *testing.T) {
	r := orchestration.BatchReport{Verified: 500, Elapsed: 250 * time.Millisecond}
	if r.Rate() != 2000 {
		t.Errorf("Rate() = %v, want 2000", r.Rate())
	}
	if (orchestration.BatchReport{Verified: 5}).Rate() != 0 {
		t.Error("zero elapsed should give a zero rate")
	}
}
