package orchestration

import (
	"sync/atomic"

	"github.com/agbru/collatzcheck/internal/bignum"
	"github.com/agbru/collatzcheck/internal/collatz"
)

// BatchPlan is one batch of Size consecutive candidates starting at Start,
// split into equal, contiguous sub-ranges in ascending order. Ranges cover
// [Start, Start+Size) exactly.
type BatchPlan struct {
	// Index is the zero-based position of the batch in the run.
	Index uint64
	// Start is the first candidate of the batch.
	Start bignum.Int
	// Size is threads × per-thread candidates.
	Size uint64
	// Ranges holds one sub-range per worker, ordered by ascending start.
	Ranges []collatz.Range
	// Progress counts candidates verified so far. It is nil for plans built
	// by Partition and set by the Scheduler.
	Progress *BatchProgress
}

// End returns the exclusive upper bound Start+Size as a new value.
func (p BatchPlan) End() bignum.Int {
	end := p.Start.Clone()
	end.AddUint64(p.Size)
	return end
}

// Partition splits [frontier, frontier+threads*perThread) into threads
// sub-ranges of perThread candidates each. Sub-range i starts at
// frontier + i*perThread. frontier is not modified.
//
// threads and perThread must both be at least 1 and their product must fit
// in a uint64; config.Validate enforces this before the engine is built.
func Partition(frontier bignum.Int, threads, perThread uint64) BatchPlan {
	plan := BatchPlan{
		Start:  frontier.Clone(),
		Size:   threads * perThread,
		Ranges: make([]collatz.Range, 0, threads),
	}
	cursor := frontier.Clone()
	for i := uint64(0); i < threads; i++ {
		plan.Ranges = append(plan.Ranges, collatz.Range{Start: cursor.Clone(), Count: perThread})
		cursor.AddUint64(perThread)
	}
	return plan
}

// BatchProgress tracks how many candidates of an in-flight batch have been
// verified. Workers add to it concurrently; observers only read.
type BatchProgress struct {
	verified atomic.Uint64
	total    uint64
}

// NewBatchProgress creates a counter for a batch of total candidates.
func NewBatchProgress(total uint64) *BatchProgress {
	return &BatchProgress{total: total}
}

// Add records delta more verified candidates.
func (p *BatchProgress) Add(delta uint64) { p.verified.Add(delta) }

// Verified returns the number of candidates verified so far.
func (p *BatchProgress) Verified() uint64 { return p.verified.Load() }

// Total returns the batch size.
func (p *BatchProgress) Total() uint64 { return p.total }

// Fraction returns the completed share of the batch in [0, 1].
func (p *BatchProgress) Fraction() float64 {
	if p == nil || p.total == 0 {
		return 0
	}
	f := float64(p.Verified()) / float64(p.total)
	if f > 1 {
		f = 1
	}
	return f
}
