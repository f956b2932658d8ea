package collatz

import "github.com/agbru/collatzcheck/internal/bignum"

// Step applies one Collatz step to n in place: n/2 when n is even, 3n+1
// otherwise.
func Step(n bignum.Int) {
	if n.IsEven() {
		n.Halve()
		return
	}
	n.MulUint64(3)
	n.AddUint64(1)
}

// Verify iterates the Collatz map on a private copy of candidate until it
// reaches 1. candidate is not modified. Verify(1) returns without performing
// any step.
func Verify(candidate bignum.Int) {
	n := candidate.Clone()
	for n.CmpUint64(1) != 0 {
		Step(n)
	}
}

// StoppingTime verifies candidate like Verify and returns the number of steps
// taken to reach 1 (its total stopping time). StoppingTime(27) == 111.
func StoppingTime(candidate bignum.Int) uint64 {
	n := candidate.Clone()
	var steps uint64
	for n.CmpUint64(1) != 0 {
		Step(n)
		steps++
	}
	return steps
}
