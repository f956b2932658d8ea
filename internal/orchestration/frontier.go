package orchestration

import "github.com/agbru/collatzcheck/internal/bignum"

// Frontier is the next unchecked candidate of a run. It is owned by the
// Loop and only mutated between batches, so it needs no locking.
type Frontier struct {
	next    bignum.Int
	batches uint64
}

// NewFrontier starts a frontier at a copy of start.
func NewFrontier(start bignum.Int) *Frontier {
	return &Frontier{next: start.Clone()}
}

// Next returns a copy of the next unchecked candidate.
func (f *Frontier) Next() bignum.Int { return f.next.Clone() }

// Batches returns the number of completed batches.
func (f *Frontier) Batches() uint64 { return f.batches }

// Advance moves the frontier forward by one completed batch of size
// candidates. The frontier never moves backwards.
func (f *Frontier) Advance(size uint64) {
	f.next.AddUint64(size)
	f.batches++
}

// String formats the next unchecked candidate in base 10.
func (f *Frontier) String() string { return f.next.String() }
