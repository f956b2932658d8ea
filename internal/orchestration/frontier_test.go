package orchestration

import (
	"testing"

	"github.com/agbru/collatzcheck/internal/bignum"
)

func TestFrontier(t *testing.T) {
	t.Parallel()
	start := bignum.Default().FromUint64(27)
	f := NewFrontier(start)

	next := f.Next()
	next.AddUint64(1000)
	if f.String() != "27" {
		t.Errorf("Next() must return a copy, frontier is %s", f)
	}

	for k := 1; k <= 5; k++ {
		f.Advance(6)
		if f.Batches() != uint64(k) {
			t.Errorf("Batches() = %d, want %d", f.Batches(), k)
		}
	}
	if f.String() != "57" {
		t.Errorf("frontier = %s, want 57", f)
	}
	if start.CmpUint64(27) != 0 {
		t.Errorf("NewFrontier aliased its start, now %s", start)
	}
}
