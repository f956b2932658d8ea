package tui

import (
	"time"

	"github.com/agbru/collatzcheck/internal/bignum"
	"github.com/agbru/collatzcheck/internal/orchestration"
)

// testPlan returns batch index of threads × perThread candidates from start.
func testPlan(index, start, threads, perThread uint64) orchestration.BatchPlan {
	plan := orchestration.Partition(bignum.Default().FromUint64(start), threads, perThread)
	plan.Index = index
	plan.Progress = orchestration.NewBatchProgress(plan.Size)
	return plan
}

// testReport returns the completion report of plan.
func testReport(plan orchestration.BatchPlan, elapsed time.Duration) orchestration.BatchReport {
	return orchestration.BatchReport{
		Index:    plan.Index,
		Start:    plan.Start,
		End:      plan.End(),
		Size:     plan.Size,
		Threads:  len(plan.Ranges),
		Elapsed:  elapsed,
		Verified: plan.Size,
	}
}
