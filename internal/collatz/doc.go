// Package collatz implements the per-candidate Collatz verification and the
// worker that checks a contiguous sub-range of candidates.
//
// Verification has no iteration cap and no cycle detection: a candidate that
// never reaches 1 makes Verify run forever, which is how a counterexample
// would manifest.
package collatz
