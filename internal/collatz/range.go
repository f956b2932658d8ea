package collatz

import (
	"fmt"

	"github.com/agbru/collatzcheck/internal/bignum"
)

// Range is the half-open interval [Start, Start+Count) of consecutive
// candidates. Count is at least 1 and Start at least 1.
type Range struct {
	Start bignum.Int
	Count uint64
}

// End returns the exclusive upper bound Start+Count as a new value.
func (r Range) End() bignum.Int {
	end := r.Start.Clone()
	end.AddUint64(r.Count)
	return end
}

// String formats the range as "[start, end)".
func (r Range) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start, r.End())
}
