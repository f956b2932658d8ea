package orchestration

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/collatzcheck/internal/bignum"
)

func TestPartition_Scenario(t *testing.T) {
	t.Parallel()
	plan := Partition(bignum.Default().FromUint64(1), 2, 3)

	if plan.Size != 6 {
		t.Errorf("Size = %d, want 6", plan.Size)
	}
	if len(plan.Ranges) != 2 {
		t.Fatalf("got %d sub-ranges, want 2", len(plan.Ranges))
	}
	want := []string{"[1, 4)", "[4, 7)"}
	for i, r := range plan.Ranges {
		if r.String() != want[i] {
			t.Errorf("sub-range %d = %s, want %s", i, r, want[i])
		}
	}
	if plan.Start.String() != "1" || plan.End().String() != "7" {
		t.Errorf("batch = %s - %s, want 1 - 7", plan.Start, plan.End())
	}
	if plan.Progress != nil {
		t.Error("Partition should not attach a progress counter")
	}
}

func TestPartition_DoesNotAliasFrontier(t *testing.T) {
	t.Parallel()
	frontier := bignum.Default().FromUint64(100)
	plan := Partition(frontier, 3, 10)

	plan.Ranges[0].Start.AddUint64(5)
	plan.Start.AddUint64(5)
	if frontier.CmpUint64(100) != 0 {
		t.Errorf("frontier changed to %s", frontier)
	}
	if plan.Ranges[1].Start.CmpUint64(110) != 0 {
		t.Errorf("sub-ranges share storage: second start is %s", plan.Ranges[1].Start)
	}
}

func TestPartition_BeyondUint64(t *testing.T) {
	t.Parallel()
	frontier, err := bignum.Default().Parse("18446744073709551610") // MaxUint64 - 5
	if err != nil {
		t.Fatal(err)
	}
	plan := Partition(frontier, 4, 4)
	if got := plan.Ranges[3].Start.String(); got != "18446744073709551622" {
		t.Errorf("last sub-range starts at %s, want 18446744073709551622", got)
	}
	if got := plan.End().String(); got != "18446744073709551626" {
		t.Errorf("End() = %s, want 18446744073709551626", got)
	}
}

// TestPartition_PropertyBased checks that the sub-ranges tile the batch
// exactly: sub-range i starts at frontier + i*perThread, each has perThread
// candidates, and the last one ends at frontier + threads*perThread.
func TestPartition_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)
	b := bignum.Default()

	properties.Property("sub-ranges cover the batch with no gaps or overlaps", prop.ForAll(
		func(start, threads, perThread uint64) bool {
			plan := Partition(b.FromUint64(start), threads, perThread)
			if uint64(len(plan.Ranges)) != threads || plan.Size != threads*perThread {
				return false
			}
			for i, r := range plan.Ranges {
				if r.Count != perThread {
					return false
				}
				if r.Start.CmpUint64(start+uint64(i)*perThread) != 0 {
					return false
				}
				if i > 0 && plan.Ranges[i-1].End().String() != r.Start.String() {
					return false
				}
			}
			last := plan.Ranges[len(plan.Ranges)-1]
			return last.End().CmpUint64(start+threads*perThread) == 0 &&
				plan.End().CmpUint64(start+threads*perThread) == 0
		},
		gen.UInt64Range(1, 1<<40),
		gen.UInt64Range(1, 64),
		gen.UInt64Range(1, 1<<16),
	))

	properties.TestingRun(t)
}

func TestBatchProgress(t *testing.T) {
	t.Parallel()
	p := NewBatchProgress(8)
	p.Add(2)
	p.Add(4)
	if p.Verified() != 6 || p.Total() != 8 {
		t.Errorf("got %d/%d, want 6/8", p.Verified(), p.Total())
	}
	if p.Fraction() != 0.75 {
		t.Errorf("Fraction() = %v, want 0.75", p.Fraction())
	}
	p.Add(10)
	if p.Fraction() != 1 {
		t.Errorf("Fraction() should clamp to 1, got %v", p.Fraction())
	}

	var nilProgress *BatchProgress
	if nilProgress.Fraction() != 0 {
		t.Error("nil progress should report 0")
	}
}
